// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sths34pf80

// DevConfig is the running configuration of the sensor. Use
// Dev.GetConfiguration() to read it, and Dev.SetConfiguration() to apply
// changes.
//
// Refer to the datasheet for the meaning of each setting.
type DevConfig struct {
	LPFMotion         LPFConfig
	LPFMotionPresence LPFConfig
	LPFAmbientTemp    LPFConfig
	LPFPresence       LPFConfig

	ObjectAveraging  AvgTMOS
	AmbientAveraging AvgT

	WideGainMode bool
	Sensitivity  int8

	BlockDataUpdate bool
	OutputDataRate  ODR

	IntActiveLow bool
	IntOpenDrain bool
	IntLatched   bool
	IntMask      IntMask
	IntSignal    IntSignal
}

// GetConfiguration reads every configuration register once and returns the
// decoded settings.
//
//	cfg, _ := dev.GetConfiguration()
//	fmt.Printf("Configuration=%#v\n", cfg)
func (d *Dev) GetConfiguration() (*DevConfig, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	regs := map[byte]byte{}
	for _, r := range []byte{regLPF1, regLPF2, regAvgTrim, regCtrl0, regSensData, regCtrl1, regCtrl3} {
		v, err := d.readRegister(r)
		if err != nil {
			return nil, err
		}
		regs[r] = v
	}
	get := func(f field) byte {
		return f.extract(regs[f.reg])
	}
	return &DevConfig{
		LPFMotion:         LPFConfig(get(fieldLPFMotion)),
		LPFMotionPresence: LPFConfig(get(fieldLPFMotionPresence)),
		LPFAmbientTemp:    LPFConfig(get(fieldLPFAmbientTemp)),
		LPFPresence:       LPFConfig(get(fieldLPFPresence)),
		ObjectAveraging:   AvgTMOS(get(fieldAvgTMOS)),
		AmbientAveraging:  AvgT(get(fieldAvgT)),
		WideGainMode:      get(fieldGain) == gainWide,
		Sensitivity:       int8(get(fieldSensitivity)),
		BlockDataUpdate:   get(fieldBDU) != 0,
		OutputDataRate:    ODR(get(fieldODR)),
		IntActiveLow:      get(fieldIntActiveLow) != 0,
		IntOpenDrain:      get(fieldIntOpenDrain) != 0,
		IntLatched:        get(fieldIntLatched) != 0,
		IntMask:           IntMask(get(fieldIntMask)),
		IntSignal:         IntSignal(get(fieldIntSignal)),
	}, nil
}

// SetConfiguration writes the settings of newCfg that differ from the device.
// The output data rate is written last so that acquisition starts with the
// rest of the configuration in place.
func (d *Dev) SetConfiguration(newCfg *DevConfig) error {
	current, err := d.GetConfiguration()
	if err != nil {
		return err
	}
	type change struct {
		differs bool
		apply   func() error
	}
	changes := []change{
		{current.LPFMotion != newCfg.LPFMotion, func() error { return d.SetLPFMotion(newCfg.LPFMotion) }},
		{current.LPFMotionPresence != newCfg.LPFMotionPresence, func() error { return d.SetLPFMotionPresence(newCfg.LPFMotionPresence) }},
		{current.LPFAmbientTemp != newCfg.LPFAmbientTemp, func() error { return d.SetLPFAmbientTemp(newCfg.LPFAmbientTemp) }},
		{current.LPFPresence != newCfg.LPFPresence, func() error { return d.SetLPFPresence(newCfg.LPFPresence) }},
		{current.ObjectAveraging != newCfg.ObjectAveraging, func() error { return d.SetObjectAveraging(newCfg.ObjectAveraging) }},
		{current.AmbientAveraging != newCfg.AmbientAveraging, func() error { return d.SetAmbientAveraging(newCfg.AmbientAveraging) }},
		{current.WideGainMode != newCfg.WideGainMode, func() error { return d.SetWideGainMode(newCfg.WideGainMode) }},
		{current.Sensitivity != newCfg.Sensitivity, func() error { return d.SetSensitivity(newCfg.Sensitivity) }},
		{current.BlockDataUpdate != newCfg.BlockDataUpdate, func() error { return d.SetBlockDataUpdate(newCfg.BlockDataUpdate) }},
		{current.IntActiveLow != newCfg.IntActiveLow, func() error { return d.SetIntActiveLow(newCfg.IntActiveLow) }},
		{current.IntOpenDrain != newCfg.IntOpenDrain, func() error { return d.SetIntOpenDrain(newCfg.IntOpenDrain) }},
		{current.IntLatched != newCfg.IntLatched, func() error { return d.SetIntLatched(newCfg.IntLatched) }},
		{current.IntMask != newCfg.IntMask, func() error { return d.SetIntMask(newCfg.IntMask) }},
		{current.IntSignal != newCfg.IntSignal, func() error { return d.SetIntSignal(newCfg.IntSignal) }},
		{current.OutputDataRate != newCfg.OutputDataRate, func() error { return d.SetOutputDataRate(newCfg.OutputDataRate) }},
	}
	for _, c := range changes {
		if !c.differs {
			continue
		}
		if err := c.apply(); err != nil {
			return err
		}
	}
	return nil
}

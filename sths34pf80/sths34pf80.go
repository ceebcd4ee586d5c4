// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sths34pf80

import (
	"fmt"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

const (
	// DefaultAddress is the only I²C address of the device.
	DefaultAddress uint16 = 0x5a
	// WhoAmIValue is the content of the WHO_AM_I register.
	WhoAmIValue byte = 0xd3
)

// Dev represents a STHS34PF80 sensor.
//
// Dev serializes its own register sequences. Another program or Dev
// writing the same device concurrently can still interleave with it.
type Dev struct {
	mu sync.Mutex
	c  *i2c.Dev
	// Bus opened by Open. It is closed when the connection is released.
	owned i2c.BusCloser
}

// NewI2C returns a Dev connected at addr on a bus owned by the caller. The
// WHO_AM_I register is verified before returning.
func NewI2C(b i2c.Bus, addr uint16) (*Dev, error) {
	d := &Dev{}
	if err := d.Begin(b, addr); err != nil {
		return nil, err
	}
	return d, nil
}

// Open opens the I²C bus by name through i2creg and connects to the sensor
// at addr. Use "" for the first available bus. The bus is owned by the
// returned Dev and closed by Close.
func Open(name string, addr uint16) (*Dev, error) {
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, &ConnectionError{Addr: addr, Err: err}
	}
	d := &Dev{}
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.begin(bus, addr, bus); err != nil {
		return nil, err
	}
	return d, nil
}

// Begin (re)connects d to the sensor at addr on b. A previous connection is
// released first, closing the bus if it was opened by Open, so b must not be
// that bus. On failure d is left disconnected and its accessors return
// NotConnectedError.
func (d *Dev) Begin(b i2c.Bus, addr uint16) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.begin(b, addr, nil)
}

func (d *Dev) begin(b i2c.Bus, addr uint16, owned i2c.BusCloser) error {
	_ = d.release()
	c := &i2c.Dev{Bus: b, Addr: addr}
	id := make([]byte, 1)
	if err := c.Tx([]byte{regWhoAmI}, id); err != nil {
		closeBus(owned)
		return &ConnectionError{Addr: addr, Err: err}
	}
	if id[0] != WhoAmIValue {
		closeBus(owned)
		return &IdentityMismatchError{Addr: addr, Got: id[0]}
	}
	d.c = c
	d.owned = owned
	return nil
}

func closeBus(b i2c.BusCloser) {
	if b != nil {
		_ = b.Close()
	}
}

// release drops the connection and closes the bus if d opened it.
func (d *Dev) release() error {
	d.c = nil
	if d.owned == nil {
		return nil
	}
	err := d.owned.Close()
	d.owned = nil
	return err
}

// Close releases the connection. The bus is closed only if it was opened
// by Open. Calling Close more than once is harmless.
func (d *Dev) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return wrap(d.release())
}

// Halt puts the sensor in power-down. Implements conn.Resource.
func (d *Dev) Halt() error {
	return d.SetOutputDataRate(ODRPowerDown)
}

func (d *Dev) String() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.c == nil {
		return "STHS34PF80{disconnected}"
	}
	return fmt.Sprintf("STHS34PF80{%s}", d.c)
}

// WhoAmI reads the identity register. It holds WhoAmIValue on a genuine
// part.
func (d *Dev) WhoAmI() (byte, error) {
	return d.getField(fieldWhoAmI)
}

// LPFMotion returns the low-pass filter applied to the motion signal.
func (d *Dev) LPFMotion() (LPFConfig, error) {
	v, err := d.getField(fieldLPFMotion)
	return LPFConfig(v), err
}

// SetLPFMotion sets the low-pass filter applied to the motion signal.
func (d *Dev) SetLPFMotion(cfg LPFConfig) error {
	return d.setField(fieldLPFMotion, byte(cfg))
}

// LPFMotionPresence returns the low-pass filter shared by the presence and
// motion signals.
func (d *Dev) LPFMotionPresence() (LPFConfig, error) {
	v, err := d.getField(fieldLPFMotionPresence)
	return LPFConfig(v), err
}

func (d *Dev) SetLPFMotionPresence(cfg LPFConfig) error {
	return d.setField(fieldLPFMotionPresence, byte(cfg))
}

// LPFAmbientTemp returns the low-pass filter applied to the ambient
// temperature shock signal.
func (d *Dev) LPFAmbientTemp() (LPFConfig, error) {
	v, err := d.getField(fieldLPFAmbientTemp)
	return LPFConfig(v), err
}

func (d *Dev) SetLPFAmbientTemp(cfg LPFConfig) error {
	return d.setField(fieldLPFAmbientTemp, byte(cfg))
}

// LPFPresence returns the low-pass filter applied to the presence signal.
func (d *Dev) LPFPresence() (LPFConfig, error) {
	v, err := d.getField(fieldLPFPresence)
	return LPFConfig(v), err
}

func (d *Dev) SetLPFPresence(cfg LPFConfig) error {
	return d.setField(fieldLPFPresence, byte(cfg))
}

// ObjectAveraging returns the number of samples averaged for the object
// temperature.
func (d *Dev) ObjectAveraging() (AvgTMOS, error) {
	v, err := d.getField(fieldAvgTMOS)
	return AvgTMOS(v), err
}

func (d *Dev) SetObjectAveraging(avg AvgTMOS) error {
	return d.setField(fieldAvgTMOS, byte(avg))
}

// AmbientAveraging returns the number of samples averaged for the ambient
// temperature.
func (d *Dev) AmbientAveraging() (AvgT, error) {
	v, err := d.getField(fieldAvgT)
	return AvgT(v), err
}

func (d *Dev) SetAmbientAveraging(avg AvgT) error {
	return d.setField(fieldAvgT, byte(avg))
}

// WideGainMode reports whether the GAIN field holds the wide mode pattern.
// Only an exact match counts: a GAIN field that is neither the wide nor the
// default pattern reads as false.
func (d *Dev) WideGainMode() (bool, error) {
	v, err := d.getField(fieldGain)
	return v == gainWide, err
}

// SetWideGainMode selects the wide gain mode, which extends the object
// temperature range at the cost of sensitivity. false restores the default
// gain.
func (d *Dev) SetWideGainMode(wide bool) error {
	v := gainDefault
	if wide {
		v = gainWide
	}
	return d.setField(fieldGain, v)
}

// Sensitivity returns the SENS_DATA register as a two's complement value.
func (d *Dev) Sensitivity() (int8, error) {
	v, err := d.getField(fieldSensitivity)
	return int8(v), err
}

// SetSensitivity writes the sensitivity compensation value. Refer to the
// application note for how it relates to the object sensitivity.
func (d *Dev) SetSensitivity(s int8) error {
	return d.setField(fieldSensitivity, byte(s))
}

// BlockDataUpdate reports whether output registers are only updated after
// both bytes were read.
func (d *Dev) BlockDataUpdate() (bool, error) {
	return d.getFlag(fieldBDU)
}

func (d *Dev) SetBlockDataUpdate(enable bool) error {
	return d.setFlag(fieldBDU, enable)
}

// OutputDataRate returns the current ODR. ODRPowerDown means the sensor
// only acquires on TriggerOneShot.
func (d *Dev) OutputDataRate() (ODR, error) {
	v, err := d.getField(fieldODR)
	return ODR(v), err
}

func (d *Dev) SetOutputDataRate(odr ODR) error {
	return d.setField(fieldODR, byte(odr))
}

// Boot reports whether a memory reboot is still in progress.
func (d *Dev) Boot() (bool, error) {
	return d.getFlag(fieldBoot)
}

// Reboot reloads the trimming parameters from non-volatile memory. The bit
// clears itself once done.
func (d *Dev) Reboot() error {
	return d.setFlag(fieldBoot, true)
}

// FuncCfgAccess reports whether the embedded function page is mapped.
func (d *Dev) FuncCfgAccess() (bool, error) {
	return d.getFlag(fieldFuncCfgAccess)
}

// SetFuncCfgAccess maps or unmaps the embedded function page. The threshold
// and hysteresis accessors handle this themselves.
func (d *Dev) SetFuncCfgAccess(enable bool) error {
	return d.setFlag(fieldFuncCfgAccess, enable)
}

// OneShot reports whether a one-shot acquisition is pending.
func (d *Dev) OneShot() (bool, error) {
	return d.getFlag(fieldOneShot)
}

// TriggerOneShot starts a single acquisition. The sensor must be in power
// down.
func (d *Dev) TriggerOneShot() error {
	return d.setFlag(fieldOneShot, true)
}

// IntActiveLow reports the INT pin polarity.
func (d *Dev) IntActiveLow() (bool, error) {
	return d.getFlag(fieldIntActiveLow)
}

func (d *Dev) SetIntActiveLow(activeLow bool) error {
	return d.setFlag(fieldIntActiveLow, activeLow)
}

// IntOpenDrain reports whether the INT pin is open drain rather than push
// pull.
func (d *Dev) IntOpenDrain() (bool, error) {
	return d.getFlag(fieldIntOpenDrain)
}

func (d *Dev) SetIntOpenDrain(openDrain bool) error {
	return d.setFlag(fieldIntOpenDrain, openDrain)
}

// IntMask returns the detection flags routed to the INT pin when IntSignal
// is IntOr.
func (d *Dev) IntMask() (IntMask, error) {
	v, err := d.getField(fieldIntMask)
	return IntMask(v), err
}

// SetIntMask selects the detection flags routed to the INT pin. Only the
// three low bits are kept.
func (d *Dev) SetIntMask(m IntMask) error {
	return d.setField(fieldIntMask, byte(m))
}

// IntLatched reports whether the INT pin stays asserted until FUNC_STATUS
// is read.
func (d *Dev) IntLatched() (bool, error) {
	return d.getFlag(fieldIntLatched)
}

func (d *Dev) SetIntLatched(latched bool) error {
	return d.setFlag(fieldIntLatched, latched)
}

func (d *Dev) IntSignal() (IntSignal, error) {
	v, err := d.getField(fieldIntSignal)
	return IntSignal(v), err
}

func (d *Dev) SetIntSignal(s IntSignal) error {
	return d.setField(fieldIntSignal, byte(s))
}

// DataReady reports whether a new set of output values is available.
func (d *Dev) DataReady() (bool, error) {
	return d.getFlag(fieldDataReady)
}

// FuncStatus returns all detection flags at once. Reading it clears a
// latched interrupt.
func (d *Dev) FuncStatus() (IntMask, error) {
	v, err := d.getField(fieldFuncStatus)
	return IntMask(v), err
}

func (d *Dev) AmbientShockFlag() (bool, error) {
	return d.getFlag(fieldAmbientShockFlag)
}

func (d *Dev) MotionFlag() (bool, error) {
	return d.getFlag(fieldMotionFlag)
}

func (d *Dev) PresenceFlag() (bool, error) {
	return d.getFlag(fieldPresenceFlag)
}

// ObjectTemperatureRaw returns the TOBJECT output in counts.
func (d *Dev) ObjectTemperatureRaw() (int16, error) {
	return d.getOutput(regTObjectL)
}

// AmbientTemperatureRaw returns the TAMBIENT output in counts.
func (d *Dev) AmbientTemperatureRaw() (int16, error) {
	return d.getOutput(regTAmbientL)
}

// CompensatedObjectRaw returns the ambient compensated object output.
func (d *Dev) CompensatedObjectRaw() (int16, error) {
	return d.getOutput(regTObjCompL)
}

func (d *Dev) PresenceRaw() (int16, error) {
	return d.getOutput(regTPresenceL)
}

func (d *Dev) MotionRaw() (int16, error) {
	return d.getOutput(regTMotionL)
}

func (d *Dev) AmbientShockRaw() (int16, error) {
	return d.getOutput(regTAmbShockL)
}

// Outputs is one set of raw output registers.
type Outputs struct {
	Object            int16
	Ambient           int16
	CompensatedObject int16
	Presence          int16
	Motion            int16
	AmbientShock      int16
}

func (o *Outputs) String() string {
	return fmt.Sprintf("object=%d ambient=%d comp=%d presence=%d motion=%d shock=%d",
		o.Object, o.Ambient, o.CompensatedObject, o.Presence, o.Motion, o.AmbientShock)
}

// ReadOutputs reads every output register. Enable BlockDataUpdate so that
// the LSB and MSB of each value belong to the same sample.
func (d *Dev) ReadOutputs() (*Outputs, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	o := &Outputs{}
	var err error
	for _, r := range []struct {
		low byte
		dst *int16
	}{
		{regTObjectL, &o.Object},
		{regTAmbientL, &o.Ambient},
		{regTObjCompL, &o.CompensatedObject},
		{regTPresenceL, &o.Presence},
		{regTMotionL, &o.Motion},
		{regTAmbShockL, &o.AmbientShock},
	} {
		if *r.dst, err = d.readRegister16(r.low); err != nil {
			return nil, err
		}
	}
	return o, nil
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}

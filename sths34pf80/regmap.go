// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sths34pf80

import "fmt"

// BitField describes a named range of bits inside a register.
type BitField struct {
	Name  string
	Shift uint8
	Width uint8
}

// Bits returns the bit range in datasheet notation, e.g. "5:3".
func (b BitField) Bits() string {
	if b.Width == 1 {
		return fmt.Sprintf("%d", b.Shift)
	}
	return fmt.Sprintf("%d:%d", b.Shift+b.Width-1, b.Shift)
}

// Extract returns the value of the field in reg.
func (b BitField) Extract(reg byte) byte {
	return field{width: b.Width, shift: b.Shift}.extract(reg)
}

// RegisterInfo describes a main page register.
type RegisterInfo struct {
	Address     byte
	Name        string
	Description string
	Access      string // "R" or "RW"
	Fields      []BitField
}

// RegisterValue is a register and the value read from it.
type RegisterValue struct {
	RegisterInfo
	Value byte
}

func (r *RegisterValue) String() string {
	s := fmt.Sprintf("0x%02X %-11s 0x%02X", r.Address, r.Name, r.Value)
	for _, f := range r.Fields {
		s += fmt.Sprintf(" %s=%d", f.Name, f.Extract(r.Value))
	}
	return s
}

func bitField(name string, f field) BitField {
	return BitField{Name: name, Shift: f.shift, Width: f.width}
}

// RegisterMap returns the main page registers in address order. The
// embedded function page is not listed; use the threshold and hysteresis
// accessors for it.
func RegisterMap() []RegisterInfo {
	return []RegisterInfo{
		{Address: regFuncCfgAddr, Name: "FUNC_CFG_ADDR", Description: "Embedded function address", Access: "RW"},
		{Address: regFuncCfgData, Name: "FUNC_CFG_DATA", Description: "Embedded function data", Access: "RW"},
		{Address: regLPF1, Name: "LPF1", Description: "Low-pass filter configuration 1", Access: "RW",
			Fields: []BitField{
				bitField("LPF_P_M", fieldLPFMotionPresence),
				bitField("LPF_M", fieldLPFMotion),
			}},
		{Address: regLPF2, Name: "LPF2", Description: "Low-pass filter configuration 2", Access: "RW",
			Fields: []BitField{
				bitField("LPF_P", fieldLPFPresence),
				bitField("LPF_A_T", fieldLPFAmbientTemp),
			}},
		{Address: regWhoAmI, Name: "WHO_AM_I", Description: "Device identification", Access: "R"},
		{Address: regAvgTrim, Name: "AVG_TRIM", Description: "Averaging configuration", Access: "RW",
			Fields: []BitField{
				bitField("AVG_T", fieldAvgT),
				bitField("AVG_TMOS", fieldAvgTMOS),
			}},
		{Address: regPageRW, Name: "PAGE_RW", Description: "Embedded function page access", Access: "RW",
			Fields: []BitField{
				bitField("FUNC_CFG_WRITE", fieldFuncCfgWrite),
				bitField("FUNC_CFG_READ", fieldFuncCfgRead),
			}},
		{Address: regCtrl0, Name: "CTRL0", Description: "Gain", Access: "RW",
			Fields: []BitField{bitField("GAIN", fieldGain)}},
		{Address: regSensData, Name: "SENS_DATA", Description: "Sensitivity", Access: "RW"},
		{Address: regCtrl1, Name: "CTRL1", Description: "Output data rate", Access: "RW",
			Fields: []BitField{
				bitField("BDU", fieldBDU),
				bitField("ODR", fieldODR),
			}},
		{Address: regCtrl2, Name: "CTRL2", Description: "Boot, embedded access and one-shot", Access: "RW",
			Fields: []BitField{
				bitField("BOOT", fieldBoot),
				bitField("FUNC_CFG_ACCESS", fieldFuncCfgAccess),
				bitField("ONE_SHOT", fieldOneShot),
			}},
		{Address: regCtrl3, Name: "CTRL3", Description: "Interrupt configuration", Access: "RW",
			Fields: []BitField{
				bitField("INT_H_L", fieldIntActiveLow),
				bitField("PP_OD", fieldIntOpenDrain),
				bitField("INT_MSK", fieldIntMask),
				bitField("INT_LATCHED", fieldIntLatched),
				bitField("IEN", fieldIntSignal),
			}},
		{Address: regStatus, Name: "STATUS", Description: "Status", Access: "R",
			Fields: []BitField{bitField("DRDY", fieldDataReady)}},
		{Address: regFuncStatus, Name: "FUNC_STATUS", Description: "Detection flags", Access: "R",
			Fields: []BitField{
				bitField("PRES_FLAG", fieldPresenceFlag),
				bitField("MOT_FLAG", fieldMotionFlag),
				bitField("TAMB_SHOCK_FLAG", fieldAmbientShockFlag),
			}},
		{Address: regTObjectL, Name: "TOBJECT_L", Description: "Object temperature LSB", Access: "R"},
		{Address: regTObjectH, Name: "TOBJECT_H", Description: "Object temperature MSB", Access: "R"},
		{Address: regTAmbientL, Name: "TAMBIENT_L", Description: "Ambient temperature LSB", Access: "R"},
		{Address: regTAmbientH, Name: "TAMBIENT_H", Description: "Ambient temperature MSB", Access: "R"},
		{Address: regTObjCompL, Name: "TOBJ_COMP_L", Description: "Compensated object temperature LSB", Access: "R"},
		{Address: regTObjCompH, Name: "TOBJ_COMP_H", Description: "Compensated object temperature MSB", Access: "R"},
		{Address: regTPresenceL, Name: "TPRESENCE_L", Description: "Presence LSB", Access: "R"},
		{Address: regTPresenceH, Name: "TPRESENCE_H", Description: "Presence MSB", Access: "R"},
		{Address: regTMotionL, Name: "TMOTION_L", Description: "Motion LSB", Access: "R"},
		{Address: regTMotionH, Name: "TMOTION_H", Description: "Motion MSB", Access: "R"},
		{Address: regTAmbShockL, Name: "TAMB_SHOCK_L", Description: "Ambient shock LSB", Access: "R"},
		{Address: regTAmbShockH, Name: "TAMB_SHOCK_H", Description: "Ambient shock MSB", Access: "R"},
	}
}

// Dump reads every register returned by RegisterMap, one transaction per
// register. Reading FUNC_STATUS clears a latched interrupt.
func (d *Dev) Dump() ([]RegisterValue, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	regs := RegisterMap()
	values := make([]RegisterValue, 0, len(regs))
	for _, info := range regs {
		v, err := d.readRegister(info.Address)
		if err != nil {
			return nil, fmt.Errorf("%w (register %s)", err, info.Name)
		}
		values = append(values, RegisterValue{RegisterInfo: info, Value: v})
	}
	return values, nil
}

// ReadRegister reads one main page register.
func (d *Dev) ReadRegister(address byte) (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readRegister(address)
}

// WriteRegister writes one main page register. Only registers listed as RW
// by RegisterMap are accepted; prefer the typed setters.
func (d *Dev) WriteRegister(address, value byte) error {
	if !writable(address) {
		return fmt.Errorf("sths34pf80: register 0x%02X is not writable", address)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeRegister(address, value)
}

func writable(address byte) bool {
	for _, r := range RegisterMap() {
		if r.Address == address {
			return r.Access == "RW"
		}
	}
	return false
}

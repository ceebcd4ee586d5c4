// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sths34pf80

import (
	"encoding/binary"

	"github.com/GermanBionicSystems/irdevices/common"
)

const (
	// Main page register addresses.
	regFuncCfgAddr   byte = 0x08
	regFuncCfgData   byte = 0x09
	regLPF1          byte = 0x0c
	regLPF2          byte = 0x0d
	regWhoAmI        byte = 0x0f
	regAvgTrim       byte = 0x10
	regPageRW        byte = 0x11
	regCtrl0         byte = 0x17
	regSensData      byte = 0x1d
	regCtrl1         byte = 0x20
	regCtrl2         byte = 0x21
	regCtrl3         byte = 0x22
	regStatus        byte = 0x23
	regFuncStatus    byte = 0x25
	regTObjectL      byte = 0x26
	regTObjectH      byte = 0x27
	regTAmbientL     byte = 0x28
	regTAmbientH     byte = 0x29
	regTObjCompL     byte = 0x38
	regTObjCompH     byte = 0x39
	regTPresenceL    byte = 0x3a
	regTPresenceH    byte = 0x3b
	regTMotionL      byte = 0x3c
	regTMotionH      byte = 0x3d
	regTAmbShockL    byte = 0x3e
	regTAmbShockH    byte = 0x3f
)

// field is a bit-field of width bits starting at bit shift of register reg.
type field struct {
	reg   byte
	width uint8
	shift uint8
}

var (
	fieldLPFMotion         = field{reg: regLPF1, width: 3, shift: 0}
	fieldLPFMotionPresence = field{reg: regLPF1, width: 3, shift: 3}
	fieldLPFAmbientTemp    = field{reg: regLPF2, width: 3, shift: 0}
	fieldLPFPresence       = field{reg: regLPF2, width: 3, shift: 3}
	fieldWhoAmI            = field{reg: regWhoAmI, width: 8, shift: 0}
	fieldAvgTMOS           = field{reg: regAvgTrim, width: 3, shift: 0}
	fieldAvgT              = field{reg: regAvgTrim, width: 2, shift: 4}
	fieldFuncCfgRead       = field{reg: regPageRW, width: 1, shift: 5}
	fieldFuncCfgWrite      = field{reg: regPageRW, width: 1, shift: 6}
	fieldGain              = field{reg: regCtrl0, width: 3, shift: 4}
	fieldSensitivity       = field{reg: regSensData, width: 8, shift: 0}
	fieldODR               = field{reg: regCtrl1, width: 4, shift: 0}
	fieldBDU               = field{reg: regCtrl1, width: 1, shift: 4}
	fieldOneShot           = field{reg: regCtrl2, width: 1, shift: 0}
	fieldFuncCfgAccess     = field{reg: regCtrl2, width: 1, shift: 4}
	fieldBoot              = field{reg: regCtrl2, width: 1, shift: 7}
	fieldIntSignal         = field{reg: regCtrl3, width: 2, shift: 0}
	fieldIntLatched        = field{reg: regCtrl3, width: 1, shift: 2}
	fieldIntMask           = field{reg: regCtrl3, width: 3, shift: 3}
	fieldIntOpenDrain      = field{reg: regCtrl3, width: 1, shift: 6}
	fieldIntActiveLow      = field{reg: regCtrl3, width: 1, shift: 7}
	fieldDataReady         = field{reg: regStatus, width: 1, shift: 2}
	fieldFuncStatus        = field{reg: regFuncStatus, width: 3, shift: 0}
	fieldAmbientShockFlag  = field{reg: regFuncStatus, width: 1, shift: 0}
	fieldMotionFlag        = field{reg: regFuncStatus, width: 1, shift: 1}
	fieldPresenceFlag      = field{reg: regFuncStatus, width: 1, shift: 2}
)

const (
	// GAIN patterns of CTRL0. Only these two are documented.
	gainWide    byte = 0x00
	gainDefault byte = 0x07
)

func (f field) extract(reg byte) byte {
	return common.ExtractField(reg, f.width, f.shift)
}

func (f field) insert(reg, value byte) byte {
	return common.InsertField(reg, value, f.width, f.shift)
}

// readRegister reads one byte. The caller must hold d.mu when the read is
// part of a longer sequence.
func (d *Dev) readRegister(address byte) (byte, error) {
	if d.c == nil {
		return 0, &NotConnectedError{}
	}
	rx := make([]byte, 1)
	if err := d.c.Tx([]byte{address}, rx); err != nil {
		return 0, wrap(err)
	}
	return rx[0], nil
}

func (d *Dev) writeRegister(address, value byte) error {
	if d.c == nil {
		return &NotConnectedError{}
	}
	return wrap(d.c.Tx([]byte{address, value}, nil))
}

// readRegister16 reads the little endian pair starting at address low. The
// device auto-increments the register address within a read.
func (d *Dev) readRegister16(low byte) (int16, error) {
	if d.c == nil {
		return 0, &NotConnectedError{}
	}
	rx := make([]byte, 2)
	if err := d.c.Tx([]byte{low}, rx); err != nil {
		return 0, wrap(err)
	}
	return int16(binary.LittleEndian.Uint16(rx)), nil
}

func (d *Dev) readField(f field) (byte, error) {
	v, err := d.readRegister(f.reg)
	if err != nil {
		return 0, err
	}
	return f.extract(v), nil
}

// writeField does a read-modify-write of the register holding f. value is
// truncated to the field width.
func (d *Dev) writeField(f field, value byte) error {
	v, err := d.readRegister(f.reg)
	if err != nil {
		return err
	}
	return d.writeRegister(f.reg, f.insert(v, value))
}

func (d *Dev) getField(f field) (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readField(f)
}

func (d *Dev) setField(f field, value byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeField(f, value)
}

func (d *Dev) getFlag(f field) (bool, error) {
	v, err := d.getField(f)
	return v != 0, err
}

func (d *Dev) setFlag(f field, value bool) error {
	var v byte
	if value {
		v = 1
	}
	return d.setField(f, v)
}

func (d *Dev) getOutput(low byte) (int16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readRegister16(low)
}

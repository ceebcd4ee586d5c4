// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sths34pf80

import (
	"errors"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// fakeSensor is an in-memory STHS34PF80. Registers are plain bytes, except
// FUNC_CFG_DATA which is routed to the embedded page the same way the
// hardware does it.
type fakeSensor struct {
	mu       sync.Mutex
	regs     [256]byte
	page     [256]byte
	pageAddr byte
	// Transactions seen, and Close calls.
	tx     int
	closed int
	// Set when the embedded page is written while ODR is not power-down.
	pageWhileRunning bool
	// Embedded page addresses written, in order.
	pageWrites []byte
}

func newFakeSensor() *fakeSensor {
	f := &fakeSensor{}
	f.regs[regWhoAmI] = WhoAmIValue
	f.regs[regAvgTrim] = 0x03
	f.regs[regCtrl0] = 0xf1
	return f
}

func (f *fakeSensor) String() string {
	return "fakeSensor"
}

func (f *fakeSensor) SetSpeed(physic.Frequency) error {
	return nil
}

func (f *fakeSensor) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func (f *fakeSensor) Tx(addr uint16, w, r []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tx++
	if addr != DefaultAddress {
		return errors.New("fakeSensor: nack")
	}
	if len(w) == 0 {
		return errors.New("fakeSensor: missing register address")
	}
	reg := w[0]
	for i, b := range w[1:] {
		f.write(reg+byte(i), b)
	}
	for i := range r {
		r[i] = f.read(reg + byte(i))
	}
	return nil
}

func (f *fakeSensor) embeddedAccess() bool {
	return fieldFuncCfgAccess.extract(f.regs[regCtrl2]) != 0
}

func (f *fakeSensor) write(reg, b byte) {
	switch {
	case reg == regFuncCfgAddr:
		f.pageAddr = b
	case reg == regFuncCfgData && f.embeddedAccess() && fieldFuncCfgWrite.extract(f.regs[regPageRW]) != 0:
		if fieldODR.extract(f.regs[regCtrl1]) != 0 {
			f.pageWhileRunning = true
		}
		f.page[f.pageAddr] = b
		f.pageWrites = append(f.pageWrites, f.pageAddr)
		f.pageAddr++
		return
	}
	f.regs[reg] = b
}

func (f *fakeSensor) read(reg byte) byte {
	if reg == regFuncCfgData && f.embeddedAccess() && fieldFuncCfgRead.extract(f.regs[regPageRW]) != 0 {
		return f.page[f.pageAddr]
	}
	return f.regs[reg]
}

var _ i2c.BusCloser = &fakeSensor{}

// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sths34pf80

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// WaitForInterrupt waits for the INT pin of the sensor, wired to pin, to
// become active and returns the detection flags from FUNC_STATUS. The edge
// waited for follows the polarity set with SetIntActiveLow. A negative
// timeout waits forever.
//
// With IntSignal set to IntDataReady the returned flags may be empty; check
// DataReady or read the outputs instead.
func (d *Dev) WaitForInterrupt(pin gpio.PinIn, timeout time.Duration) (IntMask, error) {
	activeLow, err := d.IntActiveLow()
	if err != nil {
		return 0, err
	}
	edge := gpio.RisingEdge
	if activeLow {
		edge = gpio.FallingEdge
	}
	if err := pin.In(gpio.PullNoChange, edge); err != nil {
		return 0, wrap(err)
	}
	if !pin.WaitForEdge(timeout) {
		return 0, ErrTimeout
	}
	return d.FuncStatus()
}

// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sths34pf80

import (
	"errors"
	"testing"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestWaitForInterrupt(t *testing.T) {
	bus := newFakeSensor()
	dev, err := NewI2C(bus, DefaultAddress)
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.SetIntSignal(IntOr); err != nil {
		t.Fatal(err)
	}
	if err := dev.SetIntMask(IntPresence | IntMotion); err != nil {
		t.Fatal(err)
	}
	bus.regs[regFuncStatus] = byte(IntPresence)

	pin := &gpiotest.Pin{N: "INT", Num: 17, EdgesChan: make(chan gpio.Level, 1)}
	pin.EdgesChan <- gpio.High
	m, err := dev.WaitForInterrupt(pin, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if m != IntPresence {
		t.Errorf("WaitForInterrupt()=%s expected presence", m)
	}

	if _, err := dev.WaitForInterrupt(pin, 10*time.Millisecond); !errors.Is(err, ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestWaitForInterrupt_activeLow(t *testing.T) {
	bus := newFakeSensor()
	dev, err := NewI2C(bus, DefaultAddress)
	if err != nil {
		t.Fatal(err)
	}
	if err := dev.SetIntActiveLow(true); err != nil {
		t.Fatal(err)
	}
	bus.regs[regFuncStatus] = byte(IntAmbientShock)
	pin := &gpiotest.Pin{N: "INT", Num: 17, EdgesChan: make(chan gpio.Level, 1)}
	pin.EdgesChan <- gpio.Low
	m, err := dev.WaitForInterrupt(pin, time.Second)
	if err != nil {
		t.Fatal(err)
	}
	if m != IntAmbientShock {
		t.Errorf("WaitForInterrupt()=%s expected ambient-shock", m)
	}
}

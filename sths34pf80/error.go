// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sths34pf80

import (
	"errors"
	"fmt"
)

// ConnectionError is returned when the bus can't be opened, or when the
// device does not answer at the requested address.
type ConnectionError struct {
	Addr uint16
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("sths34pf80: no device at 0x%02x: %v", e.Addr, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IdentityMismatchError is returned when a device answers at the address but
// its WHO_AM_I register does not hold WhoAmIValue.
type IdentityMismatchError struct {
	Addr uint16
	Got  byte
}

func (e *IdentityMismatchError) Error() string {
	return fmt.Sprintf("sths34pf80: device at 0x%02x reports id 0x%02x, expected 0x%02x", e.Addr, e.Got, WhoAmIValue)
}

// NotConnectedError is returned by every accessor of a Dev that has no
// connection, either because Begin failed or because Close was called.
type NotConnectedError struct{}

func (e *NotConnectedError) Error() string {
	return "sths34pf80: device is not connected"
}

// ErrTimeout is returned by WaitForInterrupt when no edge was seen on the
// interrupt pin.
var ErrTimeout = errors.New("sths34pf80: timed out waiting for interrupt")

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("sths34pf80: %w", err)
}

// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sths34pf80

import (
	"fmt"
	"strings"

	"periph.io/x/conn/v3/physic"
)

// LPFConfig is a low-pass filter cutoff, expressed as a divisor of the
// output data rate.
type LPFConfig uint8

const (
	LPFODRDiv9 LPFConfig = iota
	LPFODRDiv20
	LPFODRDiv50
	LPFODRDiv100
	LPFODRDiv200
	LPFODRDiv400
	LPFODRDiv800
)

var lpfDivisors = []int{9, 20, 50, 100, 200, 400, 800}

func (l LPFConfig) String() string {
	if int(l) < len(lpfDivisors) {
		return fmt.Sprintf("ODR/%d", lpfDivisors[l])
	}
	return fmt.Sprintf("LPFConfig(%d)", uint8(l))
}

// AvgTMOS is the number of averaged samples for object temperature. Higher
// values lower noise and limit the maximum output data rate.
type AvgTMOS uint8

const (
	AvgTMOS2 AvgTMOS = iota
	AvgTMOS8
	AvgTMOS32
	// AvgTMOS128 is the power-on default.
	AvgTMOS128
	AvgTMOS256
	AvgTMOS512
	AvgTMOS1024
	AvgTMOS2048
)

var avgTMOSSamples = []int{2, 8, 32, 128, 256, 512, 1024, 2048}

// Samples returns the number of averaged samples, or 0 for a value that does
// not fit the 3-bit field.
func (a AvgTMOS) Samples() int {
	if int(a) < len(avgTMOSSamples) {
		return avgTMOSSamples[a]
	}
	return 0
}

func (a AvgTMOS) String() string {
	if int(a) < len(avgTMOSSamples) {
		return fmt.Sprintf("%dx", avgTMOSSamples[a])
	}
	return fmt.Sprintf("AvgTMOS(%d)", uint8(a))
}

// AvgT is the number of averaged samples for ambient temperature.
type AvgT uint8

const (
	// AvgT8 is the power-on default.
	AvgT8 AvgT = iota
	AvgT4
	AvgT2
	AvgT1
)

// Samples returns the number of averaged samples, or 0 for a value that does
// not fit the 2-bit field.
func (a AvgT) Samples() int {
	if a > AvgT1 {
		return 0
	}
	return 8 >> a
}

func (a AvgT) String() string {
	if a > AvgT1 {
		return fmt.Sprintf("AvgT(%d)", uint8(a))
	}
	return fmt.Sprintf("%dx", a.Samples())
}

// ODR is the output data rate.
type ODR uint8

const (
	// ODRPowerDown stops continuous acquisition.
	ODRPowerDown ODR = iota
	ODR0_25Hz
	ODR0_5Hz
	ODR1Hz
	ODR2Hz
	ODR4Hz
	ODR8Hz
	ODR15Hz
	ODR30Hz
)

var odrFrequencies = []physic.Frequency{
	0,
	250 * physic.MilliHertz,
	500 * physic.MilliHertz,
	physic.Hertz,
	2 * physic.Hertz,
	4 * physic.Hertz,
	8 * physic.Hertz,
	15 * physic.Hertz,
	30 * physic.Hertz,
}

// Frequency returns the sampling frequency selected by o. Power-down and
// undocumented values return 0.
func (o ODR) Frequency() physic.Frequency {
	if int(o) < len(odrFrequencies) {
		return odrFrequencies[o]
	}
	return 0
}

func (o ODR) String() string {
	switch {
	case o == ODRPowerDown:
		return "PowerDown"
	case int(o) < len(odrFrequencies):
		return odrFrequencies[o].String()
	default:
		return fmt.Sprintf("ODR(%d)", uint8(o))
	}
}

// ODRForFrequency returns the ODR selecting exactly f. A frequency of 0
// selects ODRPowerDown.
func ODRForFrequency(f physic.Frequency) (ODR, error) {
	for i, freq := range odrFrequencies {
		if freq == f {
			return ODR(i), nil
		}
	}
	return 0, fmt.Errorf("sths34pf80: unsupported output data rate %s", f)
}

// IntSignal selects what drives the INT pin.
type IntSignal uint8

const (
	// IntHighZ leaves the pin in high impedance.
	IntHighZ IntSignal = iota
	// IntDataReady mirrors the DRDY status bit.
	IntDataReady
	// IntOr is the OR of the detection flags enabled by IntMask.
	IntOr
)

func (s IntSignal) String() string {
	switch s {
	case IntHighZ:
		return "HighZ"
	case IntDataReady:
		return "DataReady"
	case IntOr:
		return "Or"
	}
	return fmt.Sprintf("IntSignal(%d)", uint8(s))
}

// IntMask is a set of detection flags. It is used both to select the flags
// routed to the INT pin and to report FUNC_STATUS.
type IntMask uint8

const (
	IntAmbientShock IntMask = 1 << iota
	IntMotion
	IntPresence

	IntAll = IntAmbientShock | IntMotion | IntPresence
)

func (m IntMask) String() string {
	if m == 0 {
		return "none"
	}
	var s []string
	if m&IntPresence != 0 {
		s = append(s, "presence")
	}
	if m&IntMotion != 0 {
		s = append(s, "motion")
	}
	if m&IntAmbientShock != 0 {
		s = append(s, "ambient-shock")
	}
	if rest := m &^ IntAll; rest != 0 {
		s = append(s, fmt.Sprintf("0x%02x", uint8(rest)))
	}
	return strings.Join(s, "|")
}

// AlgoConfig holds the flags of the embedded ALGO_CONFIG register.
type AlgoConfig uint8

const (
	// AlgoSelAbs uses the absolute value of the detection output.
	AlgoSelAbs AlgoConfig = 0x02
	// AlgoCompType enables ambient temperature compensation of the object
	// signal.
	AlgoCompType AlgoConfig = 0x04
	// AlgoIntPulsed makes detection interrupts pulsed rather than latched
	// on the flag state.
	AlgoIntPulsed AlgoConfig = 0x08

	algoConfigMask = AlgoSelAbs | AlgoCompType | AlgoIntPulsed
)

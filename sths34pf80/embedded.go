// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package sths34pf80

import "encoding/binary"

// Embedded function page addresses. They are only reachable through
// FUNC_CFG_ADDR/FUNC_CFG_DATA while FUNC_CFG_ACCESS is set.
const (
	embPresenceThs   byte = 0x20
	embMotionThs     byte = 0x22
	embAmbShockThs   byte = 0x24
	embHystMotion    byte = 0x26
	embHystPresence  byte = 0x27
	embAlgoConfig    byte = 0x28
	embHystAmbShock  byte = 0x29
	embResetAlgo     byte = 0x2a
	thresholdMask         = 0x7fff
	resetAlgoTrigger byte = 0x01
)

// enterPowerDown saves the current ODR and stops acquisition. The embedded
// page must not be accessed while the sensor is running.
func (d *Dev) enterPowerDown() (ODR, error) {
	odr, err := d.readField(fieldODR)
	if err != nil {
		return 0, err
	}
	if odr != byte(ODRPowerDown) {
		if err := d.writeField(fieldODR, byte(ODRPowerDown)); err != nil {
			return 0, err
		}
	}
	return ODR(odr), nil
}

func (d *Dev) restoreODR(odr ODR) error {
	if odr == ODRPowerDown {
		return nil
	}
	return d.writeField(fieldODR, byte(odr))
}

// readEmbedded fills buf from the embedded page starting at address. d.mu
// must be held.
func (d *Dev) readEmbedded(address byte, buf []byte) error {
	odr, err := d.enterPowerDown()
	if err != nil {
		return err
	}
	if err := d.writeField(fieldFuncCfgAccess, 1); err != nil {
		return err
	}
	if err := d.writeField(fieldFuncCfgRead, 1); err != nil {
		return err
	}
	for i := range buf {
		if err := d.writeRegister(regFuncCfgAddr, address+byte(i)); err != nil {
			return err
		}
		if buf[i], err = d.readRegister(regFuncCfgData); err != nil {
			return err
		}
	}
	if err := d.writeField(fieldFuncCfgRead, 0); err != nil {
		return err
	}
	if err := d.writeField(fieldFuncCfgAccess, 0); err != nil {
		return err
	}
	return d.restoreODR(odr)
}

// writeEmbedded writes data to the embedded page starting at address. The
// page address auto-increments on each data write. d.mu must be held.
func (d *Dev) writeEmbedded(address byte, data []byte) error {
	odr, err := d.enterPowerDown()
	if err != nil {
		return err
	}
	if err := d.writeField(fieldFuncCfgAccess, 1); err != nil {
		return err
	}
	if err := d.writeField(fieldFuncCfgWrite, 1); err != nil {
		return err
	}
	if err := d.writeRegister(regFuncCfgAddr, address); err != nil {
		return err
	}
	for _, b := range data {
		if err := d.writeRegister(regFuncCfgData, b); err != nil {
			return err
		}
	}
	if err := d.writeField(fieldFuncCfgWrite, 0); err != nil {
		return err
	}
	if err := d.writeField(fieldFuncCfgAccess, 0); err != nil {
		return err
	}
	return d.restoreODR(odr)
}

func (d *Dev) getEmbedded8(address byte) (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf := make([]byte, 1)
	err := d.readEmbedded(address, buf)
	return buf[0], err
}

func (d *Dev) getThreshold(address byte) (uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	buf := make([]byte, 2)
	if err := d.readEmbedded(address, buf); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// setEmbedded writes data then restarts the detection algorithm, which
// only picks up new parameters on reset.
func (d *Dev) setEmbedded(address byte, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.writeEmbedded(address, data); err != nil {
		return err
	}
	return d.writeEmbedded(embResetAlgo, []byte{resetAlgoTrigger})
}

func (d *Dev) setThreshold(address byte, ths uint16) error {
	buf := make([]byte, 2)
	binary.LittleEndian.PutUint16(buf, ths&thresholdMask)
	return d.setEmbedded(address, buf)
}

// PresenceThreshold returns the presence detection threshold in counts.
func (d *Dev) PresenceThreshold() (uint16, error) {
	return d.getThreshold(embPresenceThs)
}

// SetPresenceThreshold sets the presence detection threshold. The threshold
// is 15 bits wide; bit 15 is dropped.
func (d *Dev) SetPresenceThreshold(ths uint16) error {
	return d.setThreshold(embPresenceThs, ths)
}

func (d *Dev) MotionThreshold() (uint16, error) {
	return d.getThreshold(embMotionThs)
}

// SetMotionThreshold sets the motion detection threshold, 15 bits wide.
func (d *Dev) SetMotionThreshold(ths uint16) error {
	return d.setThreshold(embMotionThs, ths)
}

func (d *Dev) AmbientShockThreshold() (uint16, error) {
	return d.getThreshold(embAmbShockThs)
}

// SetAmbientShockThreshold sets the ambient temperature shock threshold, 15
// bits wide.
func (d *Dev) SetAmbientShockThreshold(ths uint16) error {
	return d.setThreshold(embAmbShockThs, ths)
}

// PresenceHysteresis returns the hysteresis applied around the presence
// threshold.
func (d *Dev) PresenceHysteresis() (byte, error) {
	return d.getEmbedded8(embHystPresence)
}

func (d *Dev) SetPresenceHysteresis(h byte) error {
	return d.setEmbedded(embHystPresence, []byte{h})
}

func (d *Dev) MotionHysteresis() (byte, error) {
	return d.getEmbedded8(embHystMotion)
}

func (d *Dev) SetMotionHysteresis(h byte) error {
	return d.setEmbedded(embHystMotion, []byte{h})
}

func (d *Dev) AmbientShockHysteresis() (byte, error) {
	return d.getEmbedded8(embHystAmbShock)
}

func (d *Dev) SetAmbientShockHysteresis(h byte) error {
	return d.setEmbedded(embHystAmbShock, []byte{h})
}

// AlgoConfig returns the detection algorithm flags.
func (d *Dev) AlgoConfig() (AlgoConfig, error) {
	v, err := d.getEmbedded8(embAlgoConfig)
	return AlgoConfig(v), err
}

// SetAlgoConfig writes the detection algorithm flags. Undefined bits are
// cleared.
func (d *Dev) SetAlgoConfig(cfg AlgoConfig) error {
	return d.setEmbedded(embAlgoConfig, []byte{byte(cfg & algoConfigMask)})
}

// ResetAlgorithm restarts the detection algorithm. The threshold and
// hysteresis setters already do this.
func (d *Dev) ResetAlgorithm() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writeEmbedded(embResetAlgo, []byte{resetAlgoTrigger})
}

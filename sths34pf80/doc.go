// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package sths34pf80 controls an ST STHS34PF80 infrared presence, motion and
// ambient temperature sensor over I²C.
//
// The driver exposes the sensor's configuration and status as typed
// getter/setter pairs. Each one addresses a register and, where needed, a
// bit-field inside it. Setters read the register, replace only the bits of
// the field and write the byte back, so unrelated bits are preserved.
// Nothing is cached: every getter reads the device.
//
// Output registers (object, ambient, compensated, presence, motion and
// ambient shock) are returned as raw signed counts. Converting them into
// temperatures or detection decisions is left to the caller.
//
// # Datasheet
//
// https://www.st.com/resource/en/datasheet/sths34pf80.pdf
//
// # Application note
//
// https://www.st.com/resource/en/application_note/an5867-sths34pf80-lowpower-highsensitivity-infrared-sensor-for-presence-and-motion-detection-stmicroelectronics.pdf
package sths34pf80

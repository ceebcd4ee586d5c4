// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package common

// FieldMask returns the mask for a bit-field of width bits, not yet shifted
// into position. Widths of 8 or more return 0xff.
func FieldMask(width uint8) byte {
	if width >= 8 {
		return 0xff
	}
	return byte(1)<<width - 1
}

// ExtractField returns the width bits of reg starting at bit shift, moved
// down to bit 0.
func ExtractField(reg byte, width, shift uint8) byte {
	return (reg >> shift) & FieldMask(width)
}

// InsertField returns reg with the width bits starting at bit shift replaced
// by value. Bits of value above width are discarded, and bits of reg outside
// the field are left as they were.
func InsertField(reg, value byte, width, shift uint8) byte {
	mask := FieldMask(width) << shift
	return (reg &^ mask) | ((value << shift) & mask)
}

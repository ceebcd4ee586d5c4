// Copyright 2021 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package irdevices is a container for infrared sensor drivers built on
// periph.io.
//
// See the sths34pf80 package for the driver, regview for a terminal register
// viewer and cmd/sths34pf80 for a command line tool using both.
package irdevices

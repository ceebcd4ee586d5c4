// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package regview prints register contents to a terminal, one row per
// register and one ANSI colour block per bit, most significant bit first.
//
// Useful while bringing up a sensor, to see which bits a setter touched.
package regview

import (
	"bytes"
	"fmt"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Opts represents the options available for a View.
type Opts struct {
	// Palette used for the blocks. Defaults to ansi256.Default.
	Palette *ansi256.Palette
	// Colours of set and clear bits. The zero value selects green and dark
	// grey.
	Set   color.NRGBA
	Clear color.NRGBA
	// Plain prints 0 and 1 instead of coloured blocks, for output that is not
	// a terminal.
	Plain bool
	// W defaults to stdout, through go-colorable so ANSI codes work on
	// Windows consoles.
	W io.Writer

	_ struct{}
}

// Row is one register to display.
type Row struct {
	Address byte
	Name    string
	Value   byte
	// Note is printed after the value, typically the decoded fields.
	Note string
}

// View renders rows.
type View struct {
	w       io.Writer
	palette ansi256.Palette
	set     color.NRGBA
	clear   color.NRGBA
	plain   bool

	buf bytes.Buffer
}

// New returns a View. opts may be nil.
func New(opts *Opts) *View {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	v := &View{
		w:       opts.W,
		palette: *p,
		set:     opts.Set,
		clear:   opts.Clear,
		plain:   opts.Plain,
	}
	if v.w == nil {
		v.w = colorable.NewColorableStdout()
	}
	if v.set == (color.NRGBA{}) {
		v.set = color.NRGBA{0x00, 0xd7, 0x00, 0xff}
	}
	if v.clear == (color.NRGBA{}) {
		v.clear = color.NRGBA{0x30, 0x30, 0x30, 0xff}
	}
	return v
}

func (v *View) String() string {
	return "regview"
}

// Render writes one line per row.
func (v *View) Render(rows []Row) error {
	// This code is designed to minimize the amount of memory allocated per call.
	v.buf.Reset()
	for _, r := range rows {
		v.row(r)
		_ = v.buf.WriteByte('\n')
	}
	_, err := v.buf.WriteTo(v.w)
	return err
}

// Refresh redraws a single row in place, without a line feed, so it can be
// called repeatedly to follow a register.
func (v *View) Refresh(r Row) error {
	v.buf.Reset()
	_, _ = v.buf.WriteString("\r")
	v.row(r)
	_, err := v.buf.WriteTo(v.w)
	return err
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes and ends the current line.
func (v *View) Halt() error {
	if v.plain {
		_, err := v.w.Write([]byte("\n"))
		return err
	}
	_, err := v.w.Write([]byte("\n\033[0m"))
	return err
}

func (v *View) row(r Row) {
	fmt.Fprintf(&v.buf, "0x%02X %-15s ", r.Address, r.Name)
	if !v.plain {
		_, _ = v.buf.WriteString("\033[0m")
	}
	for bit := 7; bit >= 0; bit-- {
		on := r.Value&(1<<bit) != 0
		switch {
		case v.plain && on:
			_ = v.buf.WriteByte('1')
		case v.plain:
			_ = v.buf.WriteByte('0')
		case on:
			_, _ = io.WriteString(&v.buf, v.palette.Block(v.set))
		default:
			_, _ = io.WriteString(&v.buf, v.palette.Block(v.clear))
		}
	}
	if !v.plain {
		_, _ = v.buf.WriteString("\033[0m")
	}
	fmt.Fprintf(&v.buf, " 0x%02X", r.Value)
	if r.Note != "" {
		_, _ = v.buf.WriteString(" ")
		_, _ = v.buf.WriteString(r.Note)
	}
}

// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// sths34pf80 reads an STHS34PF80 infrared sensor.
//
// Without flags it prints the configuration and one set of outputs. -dump
// prints every register bit by bit, -watch polls the outputs and -int waits
// for presence, motion and ambient shock events on a GPIO pin. -http serves
// the registers over a websocket at /ws.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/irdevices/regserver"
	"github.com/GermanBionicSystems/irdevices/regview"
	"github.com/GermanBionicSystems/irdevices/sths34pf80"
)

func main() {
	if err := mainImpl(); err != nil {
		log.Fatalf("sths34pf80: %v", err)
	}
}

func mainImpl() error {
	bus := flag.String("b", "", "I²C bus to use")
	addr := flag.Uint("a", uint(sths34pf80.DefaultAddress), "I²C address")
	var freq physic.Frequency
	flag.Var(&freq, "odr", "output data rate, e.g. 1Hz; unset keeps the current one")
	bdu := flag.Bool("bdu", true, "block data update")
	dump := flag.Bool("dump", false, "print every register and exit")
	watch := flag.Duration("watch", 0, "poll the outputs at this interval")
	n := flag.Int("n", 0, "number of samples or events to print, 0 for no limit")
	intPin := flag.String("int", "", "GPIO pin wired to INT, to wait for detection events")
	httpAddr := flag.String("http", "", "serve the registers over a websocket on this address, e.g. :8081")
	flag.Parse()
	if flag.NArg() != 0 {
		return fmt.Errorf("unexpected argument: %s", strings.Join(flag.Args(), " "))
	}

	if _, err := host.Init(); err != nil {
		return err
	}
	dev, err := sths34pf80.Open(*bus, uint16(*addr))
	if err != nil {
		return err
	}
	defer dev.Close()

	if *dump {
		return printRegisters(dev)
	}

	cfg, err := dev.GetConfiguration()
	if err != nil {
		return err
	}
	cfg.BlockDataUpdate = *bdu
	if freq != 0 {
		if cfg.OutputDataRate, err = sths34pf80.ODRForFrequency(freq); err != nil {
			return err
		}
	}
	if *intPin != "" {
		cfg.IntSignal = sths34pf80.IntOr
		cfg.IntMask = sths34pf80.IntAll
		cfg.IntLatched = true
	}
	if err := dev.SetConfiguration(cfg); err != nil {
		return err
	}
	log.Printf("%s: %+v", dev, cfg)

	switch {
	case *httpAddr != "":
		http.Handle("/ws", regserver.New(dev))
		log.Printf("serving registers on ws://%s/ws", *httpAddr)
		return http.ListenAndServe(*httpAddr, nil)
	case *intPin != "":
		return waitEvents(dev, *intPin, *n)
	case *watch != 0:
		return poll(dev, *watch, *n)
	default:
		out, err := dev.ReadOutputs()
		if err != nil {
			return err
		}
		log.Print(out)
		return nil
	}
}

func printRegisters(dev *sths34pf80.Dev) error {
	values, err := dev.Dump()
	if err != nil {
		return err
	}
	fd := os.Stdout.Fd()
	v := regview.New(&regview.Opts{Plain: !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)})
	return v.Render(toRows(values))
}

func toRows(values []sths34pf80.RegisterValue) []regview.Row {
	rows := make([]regview.Row, 0, len(values))
	for _, r := range values {
		fields := make([]string, 0, len(r.Fields))
		for _, f := range r.Fields {
			fields = append(fields, fmt.Sprintf("%s[%s]=%d", f.Name, f.Bits(), f.Extract(r.Value)))
		}
		rows = append(rows, regview.Row{
			Address: r.Address,
			Name:    r.Name,
			Value:   r.Value,
			Note:    strings.Join(fields, " "),
		})
	}
	return rows
}

func poll(dev *sths34pf80.Dev, interval time.Duration, n int) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for i := 0; n == 0 || i < n; {
		<-t.C
		ready, err := dev.DataReady()
		if err != nil {
			return err
		}
		if !ready {
			continue
		}
		out, err := dev.ReadOutputs()
		if err != nil {
			return err
		}
		log.Print(out)
		i++
	}
	return nil
}

func waitEvents(dev *sths34pf80.Dev, name string, n int) error {
	p := gpioreg.ByName(name)
	if p == nil {
		return errors.New("invalid GPIO pin " + name)
	}
	for i := 0; n == 0 || i < n; i++ {
		flags, err := dev.WaitForInterrupt(p, -1)
		if err != nil {
			return err
		}
		presence, err := dev.PresenceRaw()
		if err != nil {
			return err
		}
		motion, err := dev.MotionRaw()
		if err != nil {
			return err
		}
		log.Printf("%s presence=%d motion=%d", flags, presence, motion)
	}
	return nil
}

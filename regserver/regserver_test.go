// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package regserver

import (
	"errors"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/GermanBionicSystems/irdevices/sths34pf80"
)

type fakeDevice struct {
	mu   sync.Mutex
	regs [256]byte
}

func (f *fakeDevice) Dump() ([]sths34pf80.RegisterValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sths34pf80.RegisterValue
	for _, info := range sths34pf80.RegisterMap() {
		out = append(out, sths34pf80.RegisterValue{RegisterInfo: info, Value: f.regs[info.Address]})
	}
	return out, nil
}

func (f *fakeDevice) ReadRegister(address byte) (byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.regs[address], nil
}

func (f *fakeDevice) WriteRegister(address, value byte) error {
	if address == 0x0f {
		return errors.New("read only")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regs[address] = value
	return nil
}

func (f *fakeDevice) ReadOutputs() (*sths34pf80.Outputs, error) {
	return &sths34pf80.Outputs{Object: 5, Presence: -3}, nil
}

func (f *fakeDevice) get(address byte) byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.regs[address]
}

func dial(t *testing.T, dev Device) *websocket.Conn {
	h := New(dev)
	h.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req *Request) *Response {
	if err := conn.WriteJSON(req); err != nil {
		t.Fatal(err)
	}
	resp := &Response{}
	if err := conn.ReadJSON(resp); err != nil {
		t.Fatal(err)
	}
	return resp
}

func TestRegisterMapOnConnect(t *testing.T) {
	conn := dial(t, &fakeDevice{})
	resp := &Response{}
	if err := conn.ReadJSON(resp); err != nil {
		t.Fatal(err)
	}
	if resp.Type != "register_map" {
		t.Fatalf("Type=%q", resp.Type)
	}
	if len(resp.RegisterMap) != len(sths34pf80.RegisterMap()) {
		t.Fatalf("got %d registers", len(resp.RegisterMap))
	}
	found := false
	for _, r := range resp.RegisterMap {
		if r.Name != "CTRL1" {
			continue
		}
		found = true
		if r.Address != "0x20" || r.Access != "RW" {
			t.Errorf("unexpected CTRL1 %+v", r)
		}
		if len(r.Fields) != 2 || r.Fields[1] != (Field{Name: "ODR", Bits: "3:0"}) {
			t.Errorf("unexpected CTRL1 fields %+v", r.Fields)
		}
	}
	if !found {
		t.Error("CTRL1 missing")
	}
}

func TestReadWrite(t *testing.T) {
	dev := &fakeDevice{}
	conn := dial(t, dev)
	if err := conn.ReadJSON(&Response{}); err != nil {
		t.Fatal(err)
	}

	resp := roundTrip(t, conn, &Request{Action: "write", Address: "0x20", Value: "0x17"})
	if resp.Type != "register_data" || resp.Value != "0x17" || resp.Message != "write successful" {
		t.Errorf("write: %+v", resp)
	}
	if resp.Timestamp != "2026-01-02T03:04:05Z" {
		t.Errorf("Timestamp=%q", resp.Timestamp)
	}
	if dev.get(0x20) != 0x17 {
		t.Errorf("register 0x20=0x%02x", dev.get(0x20))
	}

	resp = roundTrip(t, conn, &Request{Action: "read", Address: "32"})
	if resp.Address != "0x20" || resp.Value != "0x17" {
		t.Errorf("read: %+v", resp)
	}

	resp = roundTrip(t, conn, &Request{Action: "read_all"})
	if resp.Registers["0x20"] != "0x17" || resp.Registers["0x0F"] != "0x00" {
		t.Errorf("read_all: %v", resp.Registers)
	}

	resp = roundTrip(t, conn, &Request{Action: "outputs"})
	if resp.Type != "outputs" || resp.Outputs == nil || resp.Outputs.Object != 5 || resp.Outputs.Presence != -3 {
		t.Errorf("outputs: %+v", resp)
	}
}

func TestErrors(t *testing.T) {
	conn := dial(t, &fakeDevice{})
	if err := conn.ReadJSON(&Response{}); err != nil {
		t.Fatal(err)
	}
	for _, req := range []Request{
		{Action: "bogus"},
		{Action: "read", Address: "zz"},
		{Action: "read", Address: "0x100"},
		{Action: "write", Address: "0x20", Value: ""},
		{Action: "write", Address: "0x0f", Value: "1"},
	} {
		resp := roundTrip(t, conn, &req)
		if resp.Type != "error" || resp.Message == "" {
			t.Errorf("%+v: expected an error, got %+v", req, resp)
		}
	}
}

// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package regserver exposes the registers of an STHS34PF80 over a
// websocket, so they can be inspected and poked from a browser or a script
// while bringing up a board.
//
// Messages are JSON. A client sends a Request and receives a Response. The
// register map is sent once when the connection opens.
package regserver

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/GermanBionicSystems/irdevices/sths34pf80"
)

// Device is the subset of *sths34pf80.Dev used by Handler.
type Device interface {
	Dump() ([]sths34pf80.RegisterValue, error)
	ReadRegister(address byte) (byte, error)
	WriteRegister(address, value byte) error
	ReadOutputs() (*sths34pf80.Outputs, error)
}

// Request is a client message.
type Request struct {
	Action  string `json:"action"` // "get_map", "read", "read_all", "write", "outputs"
	Address string `json:"addr,omitempty"`
	Value   string `json:"value,omitempty"`
}

// Response is a server message.
type Response struct {
	Type        string              `json:"type"` // "register_map", "register_data", "outputs", "error"
	Address     string              `json:"addr,omitempty"`
	Value       string              `json:"value,omitempty"`
	Registers   map[string]string   `json:"registers,omitempty"`
	RegisterMap []Register          `json:"register_map,omitempty"`
	Outputs     *sths34pf80.Outputs `json:"outputs,omitempty"`
	Message     string              `json:"message,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

// Register describes a register in the map sent to clients.
type Register struct {
	Address     string  `json:"address"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Access      string  `json:"access"`
	Fields      []Field `json:"bit_fields,omitempty"`
}

// Field is a named bit range, in datasheet notation.
type Field struct {
	Name string `json:"name"`
	Bits string `json:"bits"`
}

// Handler serves one websocket session per request.
type Handler struct {
	dev      Device
	upgrader websocket.Upgrader
	now      func() time.Time
}

// New returns a Handler for dev. Any origin is accepted.
func New(dev Device) *Handler {
	return &Handler{
		dev: dev,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		now: time.Now,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("regserver: upgrade: %v", err)
		return
	}
	defer conn.Close()
	if err := conn.WriteJSON(registerMap()); err != nil {
		return
	}
	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("regserver: %v", err)
			}
			return
		}
		if err := conn.WriteJSON(h.handle(&req)); err != nil {
			return
		}
	}
}

func (h *Handler) handle(req *Request) *Response {
	switch req.Action {
	case "get_map":
		return registerMap()
	case "read":
		a, err := parseByte(req.Address)
		if err != nil {
			return errorResponse("invalid address %q", req.Address)
		}
		v, err := h.dev.ReadRegister(a)
		if err != nil {
			return errorResponse("read error: %v", err)
		}
		return h.data(&Response{Address: hex(a), Value: hex(v)})
	case "read_all":
		values, err := h.dev.Dump()
		if err != nil {
			return errorResponse("read all error: %v", err)
		}
		regs := make(map[string]string, len(values))
		for _, v := range values {
			regs[hex(v.Address)] = hex(v.Value)
		}
		return h.data(&Response{Registers: regs})
	case "write":
		a, err := parseByte(req.Address)
		if err != nil {
			return errorResponse("invalid address %q", req.Address)
		}
		v, err := parseByte(req.Value)
		if err != nil {
			return errorResponse("invalid value %q", req.Value)
		}
		if err := h.dev.WriteRegister(a, v); err != nil {
			return errorResponse("write error: %v", err)
		}
		return h.data(&Response{Address: hex(a), Value: hex(v), Message: "write successful"})
	case "outputs":
		o, err := h.dev.ReadOutputs()
		if err != nil {
			return errorResponse("read error: %v", err)
		}
		return &Response{Type: "outputs", Outputs: o, Timestamp: h.now().Format(time.RFC3339)}
	default:
		return errorResponse("unknown action %q", req.Action)
	}
}

func (h *Handler) data(r *Response) *Response {
	r.Type = "register_data"
	r.Timestamp = h.now().Format(time.RFC3339)
	return r
}

func registerMap() *Response {
	infos := sths34pf80.RegisterMap()
	regs := make([]Register, 0, len(infos))
	for _, info := range infos {
		r := Register{
			Address:     hex(info.Address),
			Name:        info.Name,
			Description: info.Description,
			Access:      info.Access,
		}
		for _, f := range info.Fields {
			r.Fields = append(r.Fields, Field{Name: f.Name, Bits: f.Bits()})
		}
		regs = append(regs, r)
	}
	return &Response{Type: "register_map", RegisterMap: regs}
}

func errorResponse(format string, a ...interface{}) *Response {
	return &Response{Type: "error", Message: fmt.Sprintf(format, a...)}
}

// parseByte accepts decimal and 0x prefixed hexadecimal.
func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	return byte(v), err
}

func hex(b byte) string {
	return fmt.Sprintf("0x%02X", b)
}

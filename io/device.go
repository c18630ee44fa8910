// Package io provides the I/O bus and peripheral devices of the 8080 machine.
//
// Every peripheral implements the two-method Device capability. Devices are
// registered once on a Bus and bound by index to one or more of the 256 port
// numbers. The package also holds the interval Timer that the CPU embeds, the
// console with its host terminal adapter, the 24-bit linear storage device
// with its file mount service, and the legacy 16-bit disk.
package io

import (
	"fmt"
	"iter"
	"maps"
)

// Device is the capability implemented by every peripheral on the bus.
type Device interface {
	// Read returns the value presented on port.
	Read(port uint8) uint8
	// Write delivers value to port.
	Write(port uint8, value uint8)
}

// Port adapts a pair of functions to a Device.
type Port struct {
	In  func(port uint8) uint8
	Out func(port uint8, value uint8)
}

var _ Device = Port{}

func (p Port) Read(port uint8) uint8 {
	if p.In == nil {
		return FLOATING_BUS
	}
	return p.In(port)
}

func (p Port) Write(port uint8, value uint8) {
	if p.Out != nil {
		p.Out(port, value)
	}
}

// Null is a device that floats on read and discards writes.
type Null struct{}

var _ Device = Null{}

func (Null) Read(port uint8) uint8 {
	return FLOATING_BUS
}

func (Null) Write(port uint8, value uint8) {
}

// portDefines renders a map of port constants as defines.
func portDefines(ports map[string]uint8) iter.Seq2[string, string] {
	defines := make(map[string]string, len(ports))
	for name, port := range ports {
		defines[name] = fmt.Sprintf("0x%02x", port)
	}
	return maps.All(defines)
}

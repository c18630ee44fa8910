package io

import (
	"log"
)

// FLOATING_BUS is the value read from a port with nothing bound.
const FLOATING_BUS = 0xff

// Handle identifies a device registered on a Bus.
type Handle int

// Bus routes IN and OUT instructions to devices.
//
// Devices live in a single registry; the port table holds registry indices,
// so one device may answer any number of ports.
type Bus struct {
	Verbose bool // If set, logs device binding.

	devices []Device
	ports   [256]int // Registry index + 1, or 0 when unbound.
}

// Attach registers a device, and binds it to each of the given ports.
func (bus *Bus) Attach(dev Device, ports ...uint8) (handle Handle) {
	bus.devices = append(bus.devices, dev)
	handle = Handle(len(bus.devices) - 1)

	for _, port := range ports {
		bus.ports[port] = int(handle) + 1
	}

	if bus.Verbose {
		log.Printf("bus: attach %T as %d on %v", dev, handle, ports)
	}

	return
}

// Bind binds an already registered device to a port.
func (bus *Bus) Bind(port uint8, handle Handle) (err error) {
	if _, ok := bus.Device(handle); !ok {
		err = ErrHandleInvalid
		return
	}

	bus.ports[port] = int(handle) + 1
	return
}

// Unbind leaves the port floating.
func (bus *Bus) Unbind(port uint8) {
	bus.ports[port] = 0
}

// Device returns the registered device for a handle.
func (bus *Bus) Device(handle Handle) (dev Device, ok bool) {
	if handle < 0 || int(handle) >= len(bus.devices) {
		return
	}

	return bus.devices[handle], true
}

// Lookup returns the handle bound to a port.
func (bus *Bus) Lookup(port uint8) (handle Handle, ok bool) {
	index := bus.ports[port]
	if index == 0 {
		return
	}

	return Handle(index - 1), true
}

// Read performs an IN from the port.
func (bus *Bus) Read(port uint8) uint8 {
	index := bus.ports[port]
	if index == 0 {
		return FLOATING_BUS
	}

	return bus.devices[index-1].Read(port)
}

// Write performs an OUT to the port.
func (bus *Bus) Write(port uint8, value uint8) {
	index := bus.ports[port]
	if index == 0 {
		return
	}

	bus.devices[index-1].Write(port, value)
}

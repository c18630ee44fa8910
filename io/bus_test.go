package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type latch struct {
	value  uint8
	writes map[uint8]uint8
}

func (l *latch) Read(port uint8) uint8 {
	return l.value + port
}

func (l *latch) Write(port uint8, value uint8) {
	if l.writes == nil {
		l.writes = map[uint8]uint8{}
	}
	l.writes[port] = value
}

func TestBus(t *testing.T) {
	assert := assert.New(t)

	bus := &Bus{}

	// Unbound ports float, and drop writes.
	assert.Equal(uint8(FLOATING_BUS), bus.Read(0x42))
	bus.Write(0x42, 0x99)

	dev := &latch{value: 0x10}
	handle := bus.Attach(dev, 0x40, 0x41)
	assert.Equal(Handle(0), handle)

	// One device answers both ports.
	assert.Equal(uint8(0x50), bus.Read(0x40))
	assert.Equal(uint8(0x51), bus.Read(0x41))
	bus.Write(0x40, 0x01)
	bus.Write(0x41, 0x02)
	assert.Equal(map[uint8]uint8{0x40: 0x01, 0x41: 0x02}, dev.writes)

	got, ok := bus.Lookup(0x41)
	assert.True(ok)
	assert.Equal(handle, got)

	_, ok = bus.Lookup(0x42)
	assert.False(ok)

	// Binding a third port to the same device.
	assert.NoError(bus.Bind(0x42, handle))
	assert.Equal(uint8(0x52), bus.Read(0x42))

	assert.ErrorIs(bus.Bind(0x43, Handle(5)), ErrHandleInvalid)
	assert.ErrorIs(bus.Bind(0x43, Handle(-1)), ErrHandleInvalid)

	bus.Unbind(0x40)
	assert.Equal(uint8(FLOATING_BUS), bus.Read(0x40))
	assert.Equal(uint8(0x51), bus.Read(0x41))

	found, ok := bus.Device(handle)
	assert.True(ok)
	assert.Same(dev, found)
}

func TestPortAndNull(t *testing.T) {
	assert := assert.New(t)

	bus := &Bus{}

	var last uint8
	bus.Attach(Port{
		In:  func(port uint8) uint8 { return 0x5a },
		Out: func(port uint8, value uint8) { last = value },
	}, 0x10)
	bus.Attach(Port{}, 0x11)
	bus.Attach(Null{}, 0x12)

	assert.Equal(uint8(0x5a), bus.Read(0x10))
	bus.Write(0x10, 0x33)
	assert.Equal(uint8(0x33), last)

	assert.Equal(uint8(FLOATING_BUS), bus.Read(0x11))
	bus.Write(0x11, 0x44)
	assert.Equal(uint8(FLOATING_BUS), bus.Read(0x12))
	bus.Write(0x12, 0x44)
	assert.Equal(uint8(0x33), last)
}

package io

import (
	"maps"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimer(t *testing.T) {
	assert := assert.New(t)

	tm := &Timer{}

	// Idle timer never fires.
	tm.Tick(1000)
	assert.False(tm.Pending)

	tm.Write(PORT_TIMER_LO, 0x10)
	tm.Write(PORT_TIMER_HI, 0x00)
	assert.Equal(uint16(0x10), tm.Reload)
	assert.Equal(uint16(0x10), tm.Counter)

	// Disabled timer does not count.
	tm.Tick(4)
	assert.Equal(uint16(0x10), tm.Counter)

	tm.Write(PORT_TIMER_STATUS, TIMER_ENABLE)
	assert.Equal(uint8(TIMER_ENABLE), tm.Read(PORT_TIMER_STATUS))

	tm.Tick(4)
	assert.Equal(uint16(12), tm.Counter)
	assert.Equal(uint8(12), tm.Read(PORT_TIMER_LO))
	assert.Equal(uint8(0), tm.Read(PORT_TIMER_HI))
	assert.False(tm.Pending)

	// Expiry reloads, and drops the excess.
	tm.Tick(15)
	assert.Equal(uint16(0x10), tm.Counter)
	assert.True(tm.Pending)
	assert.Equal(uint8(TIMER_ENABLE|TIMER_PENDING), tm.Read(PORT_TIMER_STATUS))

	// Acknowledge, staying enabled.
	tm.Write(PORT_TIMER_STATUS, TIMER_ENABLE|TIMER_PENDING)
	assert.False(tm.Pending)
	assert.True(tm.Enabled)

	tm.Reset()
	assert.Equal(Timer{}, *tm)
}

func TestTimerZeroReload(t *testing.T) {
	assert := assert.New(t)

	tm := &Timer{Enabled: true}
	tm.Tick(100)
	assert.False(tm.Pending)
	assert.Equal(uint16(0), tm.Counter)
}

func TestTimerOwns(t *testing.T) {
	assert := assert.New(t)

	tm := &Timer{}
	assert.False(tm.Owns(0x2f))
	assert.True(tm.Owns(PORT_TIMER_LO))
	assert.True(tm.Owns(PORT_TIMER_HI))
	assert.True(tm.Owns(PORT_TIMER_STATUS))
	assert.False(tm.Owns(0x33))

	defines := maps.Collect(tm.Defines())
	assert.Equal("0x30", defines["PORT_TIMER_LO"])
	assert.Equal("0x32", defines["PORT_TIMER_STATUS"])
}

package io

import (
	"iter"
)

// Timer port assignments.
const (
	PORT_TIMER_LO     = 0x30 // Read: counter low. Write: reload low.
	PORT_TIMER_HI     = 0x31 // Read: counter high. Write: reload high, and arm.
	PORT_TIMER_STATUS = 0x32 // Read: status. Write: control.
)

// Timer status and control bits.
const (
	TIMER_ENABLE  = 0x01 // Status: enabled. Control: enable.
	TIMER_PENDING = 0x02 // Status: interrupt pending. Control: acknowledge.
)

// Timer is an interval timer counting down CPU cycles.
//
// When the counter expires it is reloaded and the interrupt becomes pending.
// Cycles in excess of the counter are dropped rather than carried into the
// next period.
type Timer struct {
	Counter uint16 // Live counter.
	Reload  uint16 // Reload value.
	Enabled bool   // Set when counting.
	Pending bool   // Set when an interrupt is pending.
}

var _ Device = (*Timer)(nil)

// Defines returns the port defines of the timer.
func (tm *Timer) Defines() iter.Seq2[string, string] {
	return portDefines(map[string]uint8{
		"PORT_TIMER_LO":     PORT_TIMER_LO,
		"PORT_TIMER_HI":     PORT_TIMER_HI,
		"PORT_TIMER_STATUS": PORT_TIMER_STATUS,
	})
}

// Reset idles the timer.
func (tm *Timer) Reset() {
	*tm = Timer{}
}

// Owns returns true if the port is one of the timer ports.
func (tm *Timer) Owns(port uint8) bool {
	return port >= PORT_TIMER_LO && port <= PORT_TIMER_STATUS
}

// Tick advances the timer by the elapsed cycles.
func (tm *Timer) Tick(cycles int) {
	if !tm.Enabled || tm.Reload == 0 {
		return
	}

	if cycles < int(tm.Counter) {
		tm.Counter -= uint16(cycles)
		return
	}

	tm.Counter = tm.Reload
	tm.Pending = true
}

func (tm *Timer) Read(port uint8) (value uint8) {
	switch port {
	case PORT_TIMER_LO:
		value = uint8(tm.Counter)
	case PORT_TIMER_HI:
		value = uint8(tm.Counter >> 8)
	case PORT_TIMER_STATUS:
		if tm.Enabled {
			value |= TIMER_ENABLE
		}
		if tm.Pending {
			value |= TIMER_PENDING
		}
	default:
		value = FLOATING_BUS
	}

	return
}

func (tm *Timer) Write(port uint8, value uint8) {
	switch port {
	case PORT_TIMER_LO:
		tm.Reload = (tm.Reload & 0xff00) | uint16(value)
	case PORT_TIMER_HI:
		tm.Reload = (tm.Reload & 0x00ff) | (uint16(value) << 8)
		tm.Counter = tm.Reload
	case PORT_TIMER_STATUS:
		tm.Enabled = (value & TIMER_ENABLE) != 0
		if (value & TIMER_PENDING) != 0 {
			tm.Pending = false
		}
	}
}

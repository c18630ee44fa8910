package io

import (
	"io"
	"iter"
	"sync"
)

// Console port assignments.
const (
	PORT_CONSOLE_DATA   = 0x00 // Write: character out.
	PORT_CONSOLE_INPUT  = 0x01 // Read: character in.
	PORT_CONSOLE_STATUS = 0x02 // Read: status.
)

// Console status bits.
const (
	CONSOLE_RX_READY = 0x01
	CONSOLE_TX_READY = 0x02
)

// Console is a character terminal.
//
// Output characters are written to Output. Input characters are queued by
// the host (or a test script) and consumed by the firmware; reads never
// block the CPU.
type Console struct {
	Output io.Writer // Character output. Discarded if nil.

	mutex sync.Mutex
	input []uint8
}

var _ Device = (*Console)(nil)

// Defines returns the port defines of the console.
func (con *Console) Defines() iter.Seq2[string, string] {
	return portDefines(map[string]uint8{
		"PORT_CONSOLE_DATA":   PORT_CONSOLE_DATA,
		"PORT_CONSOLE_INPUT":  PORT_CONSOLE_INPUT,
		"PORT_CONSOLE_STATUS": PORT_CONSOLE_STATUS,
	})
}

// Queue appends characters to the input queue.
func (con *Console) Queue(data ...uint8) {
	con.mutex.Lock()
	defer con.mutex.Unlock()

	con.input = append(con.input, data...)
}

// QueueString appends a string to the input queue.
func (con *Console) QueueString(text string) {
	con.Queue([]uint8(text)...)
}

// Pending returns the number of queued input characters.
func (con *Console) Pending() int {
	con.mutex.Lock()
	defer con.mutex.Unlock()

	return len(con.input)
}

func (con *Console) Read(port uint8) (value uint8) {
	con.mutex.Lock()
	defer con.mutex.Unlock()

	switch port {
	case PORT_CONSOLE_INPUT:
		if len(con.input) > 0 {
			value = con.input[0]
			con.input = con.input[1:]
		}
	case PORT_CONSOLE_STATUS:
		value = CONSOLE_TX_READY
		if len(con.input) > 0 {
			value |= CONSOLE_RX_READY
		}
	default:
		value = FLOATING_BUS
	}

	return
}

func (con *Console) Write(port uint8, value uint8) {
	if port != PORT_CONSOLE_DATA || con.Output == nil {
		return
	}

	con.Output.Write([]uint8{value})
}

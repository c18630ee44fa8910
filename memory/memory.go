// Package memory provides the 64 KiB address space seen by the 8080 core.
//
// The engine reads and writes only through the Memory capability, so ROM
// overlays and banked variants stay invisible to it.
package memory

// SIZE is the size of the 8080 address space.
const SIZE = 1 << 16

// Memory is the byte-addressable capability the CPU executes from.
type Memory interface {
	// Read returns the byte at addr.
	Read(addr uint16) uint8
	// Write stores value at addr.
	Write(addr uint16, value uint8)
}

// Flat is a plain 64 KiB RAM.
type Flat struct {
	Data [SIZE]uint8
}

var _ Memory = (*Flat)(nil)

// NewFlat returns a zeroed RAM.
func NewFlat() *Flat {
	return &Flat{}
}

func (ram *Flat) Read(addr uint16) uint8 {
	return ram.Data[addr]
}

func (ram *Flat) Write(addr uint16, value uint8) {
	ram.Data[addr] = value
}

// Reset zeroes the RAM.
func (ram *Flat) Reset() {
	clear(ram.Data[:])
}

package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlat(t *testing.T) {
	assert := assert.New(t)

	ram := NewFlat()
	assert.Equal(uint8(0), ram.Read(0x1234))

	ram.Write(0x1234, 0x56)
	ram.Write(0xffff, 0x78)
	assert.Equal(uint8(0x56), ram.Read(0x1234))
	assert.Equal(uint8(0x78), ram.Read(0xffff))

	ram.Reset()
	assert.Equal(uint8(0), ram.Read(0x1234))
	assert.Equal(uint8(0), ram.Read(0xffff))
}

func TestOverlay(t *testing.T) {
	assert := assert.New(t)

	ov := NewOverlay(nil)

	// No ROM: plain RAM.
	ov.Write(0x0000, 0x11)
	assert.Equal(uint8(0x11), ov.Read(0x0000))
	assert.False(ov.Enabled)

	ov.Install([]uint8{0x31, 0x00, 0xf0}, 0xf000)
	assert.True(ov.Enabled)
	assert.Equal(uint8(OVERLAY_STATUS_ENABLED), ov.ReadPort(0xfe))

	// Low memory mirrors the ROM.
	assert.Equal(uint8(0x31), ov.Read(0x0000))
	assert.Equal(uint8(0xf0), ov.Read(0x0002))
	// Past the image, RAM shows through.
	assert.Equal(uint8(0x00), ov.Read(0x0003))

	// ROM window.
	assert.Equal(uint8(0x31), ov.Read(0xf000))
	assert.Equal(uint8(0xf0), ov.Read(0xf002))

	// Writes under the overlay land in RAM.
	ov.Write(0x0000, 0x42)
	assert.Equal(uint8(0x31), ov.Read(0x0000))

	// The ROM window is read-only.
	ov.Write(0xf001, 0x99)
	assert.Equal(uint8(0x00), ov.Read(0xf001))

	ov.WritePort(0xfe, 0x00)
	assert.False(ov.Enabled)
	assert.Equal(uint8(0), ov.ReadPort(0xfe))
	assert.Equal(uint8(0x42), ov.Read(0x0000))
	assert.Equal(uint8(0x31), ov.Read(0xf000))
}

func TestOverlayWrapsWindow(t *testing.T) {
	assert := assert.New(t)

	ov := NewOverlay(NewFlat())
	ov.Install([]uint8{0xaa, 0xbb, 0xcc}, 0xffff)

	assert.Equal(uint8(0xaa), ov.Read(0xffff))
	assert.Equal(uint8(0xbb), ov.Read(0x0000))
	assert.Equal(uint8(0xcc), ov.Read(0x0001))
}

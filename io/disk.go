package io

import (
	"iter"
	"os"
)

// Legacy disk port assignments.
const (
	PORT_DISK_DATA    = 0x20 // Data, with address auto-increment.
	PORT_DISK_ADDR_LO = 0x21
	PORT_DISK_ADDR_HI = 0x22
)

// Disk is the legacy 16-bit addressed disk image device.
type Disk struct {
	File    File
	address uint16
}

var _ Device = (*Disk)(nil)

// OpenDisk opens, or creates, a disk image file.
func OpenDisk(path string) (disk *Disk, err error) {
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return
	}

	disk = &Disk{File: file}
	return
}

// Defines returns the port defines of the disk device.
func (dk *Disk) Defines() iter.Seq2[string, string] {
	return portDefines(map[string]uint8{
		"PORT_DISK_DATA":    PORT_DISK_DATA,
		"PORT_DISK_ADDR_LO": PORT_DISK_ADDR_LO,
		"PORT_DISK_ADDR_HI": PORT_DISK_ADDR_HI,
	})
}

// Address returns the current disk address.
func (dk *Disk) Address() uint16 {
	return dk.address
}

// Close closes the disk image.
func (dk *Disk) Close() (err error) {
	if dk.File != nil {
		err = dk.File.Close()
		dk.File = nil
	}
	return
}

func (dk *Disk) Read(port uint8) (value uint8) {
	switch port {
	case PORT_DISK_DATA:
		if dk.File == nil {
			return 0
		}
		var one [1]uint8
		_, err := dk.File.ReadAt(one[:], int64(dk.address))
		if err != nil {
			return 0
		}
		dk.address++
		value = one[0]
	case PORT_DISK_ADDR_LO:
		value = uint8(dk.address)
	case PORT_DISK_ADDR_HI:
		value = uint8(dk.address >> 8)
	default:
		value = FLOATING_BUS
	}

	return
}

func (dk *Disk) Write(port uint8, value uint8) {
	switch port {
	case PORT_DISK_DATA:
		if dk.File != nil {
			_, _ = dk.File.WriteAt([]uint8{value}, int64(dk.address))
		}
		dk.address++
	case PORT_DISK_ADDR_LO:
		dk.address = (dk.address & 0xff00) | uint16(value)
	case PORT_DISK_ADDR_HI:
		dk.address = (dk.address & 0x00ff) | (uint16(value) << 8)
	}
}

package io

import (
	"errors"
	"iter"
	"log"
)

// Storage port assignments.
const (
	PORT_STORAGE_ADDR_LO  = 0x08 // Address bits 0-7.
	PORT_STORAGE_ADDR_MID = 0x09 // Address bits 8-15.
	PORT_STORAGE_ADDR_HI  = 0x0a // Address bits 16-23.
	PORT_STORAGE_DATA     = 0x0b // Data, with address auto-increment.
	PORT_STORAGE_STATUS   = 0x0c // Read: status. Write: control.
)

// Storage status bits.
const (
	STORAGE_MOUNTED = 0x01
	STORAGE_READY   = 0x02
	STORAGE_EOF     = 0x80
)

// Storage control commands.
const (
	STORAGE_CMD_RESET     = 0x00 // Reset the address to zero.
	STORAGE_CMD_DECREMENT = 0x01 // Decrement the address.
	STORAGE_CMD_FLUSH     = 0x02 // Flush written data.
)

// STORAGE_ADDR_MASK masks the 24-bit storage address.
const STORAGE_ADDR_MASK = 0x00ff_ffff

// Storage is a linear byte-addressed storage device with a 24-bit address.
type Storage struct {
	Verbose bool    // If set, logs mount activity.
	FS      MountFS // File system that files are mounted from.

	file    File
	address uint32
	size    uint32
}

var _ Device = (*Storage)(nil)

// Defines returns the port defines of the storage device.
func (st *Storage) Defines() iter.Seq2[string, string] {
	return portDefines(map[string]uint8{
		"PORT_STORAGE_ADDR_LO":  PORT_STORAGE_ADDR_LO,
		"PORT_STORAGE_ADDR_MID": PORT_STORAGE_ADDR_MID,
		"PORT_STORAGE_ADDR_HI":  PORT_STORAGE_ADDR_HI,
		"PORT_STORAGE_DATA":     PORT_STORAGE_DATA,
		"PORT_STORAGE_STATUS":   PORT_STORAGE_STATUS,
	})
}

// Mount opens a file from the mount filesystem, replacing any mounted file.
func (st *Storage) Mount(name string) (err error) {
	defer func() {
		if err != nil {
			err = &ErrMount{Name: name, Err: err}
		}
	}()

	if st.FS == nil {
		err = ErrNoFS
		return
	}

	file, err := st.FS.OpenFile(name)
	if err != nil {
		return
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return
	}

	st.Unmount()

	st.file = file
	st.size = uint32(info.Size())
	st.address = 0

	if st.Verbose {
		log.Printf("storage: mount %v (%v bytes)", name, st.size)
	}

	return
}

// Unmount flushes and closes the mounted file.
func (st *Storage) Unmount() {
	if st.file != nil {
		err := errors.Join(st.file.Sync(), st.file.Close())
		if err != nil && st.Verbose {
			log.Printf("storage: unmount: %v", err)
		}
	}

	st.file = nil
	st.size = 0
	st.address = 0
}

// Mounted returns true if a file is mounted.
func (st *Storage) Mounted() bool {
	return st.file != nil
}

// Address returns the current 24-bit address.
func (st *Storage) Address() uint32 {
	return st.address
}

func (st *Storage) readData() uint8 {
	if st.file == nil {
		return FLOATING_BUS
	}

	var one [1]uint8
	_, err := st.file.ReadAt(one[:], int64(st.address))
	if err != nil {
		return FLOATING_BUS
	}

	st.address = (st.address + 1) & STORAGE_ADDR_MASK
	return one[0]
}

func (st *Storage) writeData(value uint8) {
	if st.file == nil {
		return
	}

	_, err := st.file.WriteAt([]uint8{value}, int64(st.address))
	if err != nil {
		if st.Verbose {
			log.Printf("storage: write 0x%06x: %v", st.address, err)
		}
		return
	}

	if st.address >= st.size {
		st.size = st.address + 1
	}
	st.address = (st.address + 1) & STORAGE_ADDR_MASK
}

func (st *Storage) Read(port uint8) (value uint8) {
	switch port {
	case PORT_STORAGE_ADDR_LO:
		value = uint8(st.address)
	case PORT_STORAGE_ADDR_MID:
		value = uint8(st.address >> 8)
	case PORT_STORAGE_ADDR_HI:
		value = uint8(st.address >> 16)
	case PORT_STORAGE_DATA:
		value = st.readData()
	case PORT_STORAGE_STATUS:
		value = STORAGE_READY
		if st.Mounted() {
			value |= STORAGE_MOUNTED
		}
		if st.address >= st.size {
			value |= STORAGE_EOF
		}
	default:
		value = FLOATING_BUS
	}

	return
}

func (st *Storage) Write(port uint8, value uint8) {
	switch port {
	case PORT_STORAGE_ADDR_LO:
		st.address = (st.address & 0xffff00) | uint32(value)
	case PORT_STORAGE_ADDR_MID:
		st.address = (st.address & 0xff00ff) | (uint32(value) << 8)
	case PORT_STORAGE_ADDR_HI:
		st.address = (st.address & 0x00ffff) | (uint32(value) << 16)
	case PORT_STORAGE_DATA:
		st.writeData(value)
	case PORT_STORAGE_STATUS:
		switch value {
		case STORAGE_CMD_RESET:
			st.address = 0
		case STORAGE_CMD_DECREMENT:
			st.address = (st.address - 1) & STORAGE_ADDR_MASK
		case STORAGE_CMD_FLUSH:
			if st.file != nil {
				st.file.Sync()
			}
		}
	}
}

package io

import (
	"iter"
	"log"
)

// Mount service port assignments.
const (
	PORT_MOUNT_NAME    = 0x0d // Write: filename character.
	PORT_MOUNT_CONTROL = 0x0e // Write: command.
	PORT_MOUNT_STATUS  = 0x0f // Read: status of the last command.
)

// Mount service commands.
const (
	MOUNT_CMD_MOUNT   = 0x01
	MOUNT_CMD_UNMOUNT = 0x02
	MOUNT_CMD_QUERY   = 0x03
)

// Mount service status codes.
const (
	MOUNT_STATUS_OK        = 0x00
	MOUNT_STATUS_NOT_FOUND = 0x01
	MOUNT_STATUS_INVALID   = 0x02
)

// MOUNT_NAME_MAX is the longest accepted filename (8.3 format).
const MOUNT_NAME_MAX = 12

// Mount lets a program select the file backing a Storage device by name.
type Mount struct {
	Verbose bool
	Storage *Storage

	name   []uint8
	status uint8
}

var _ Device = (*Mount)(nil)

// Defines returns the port defines of the mount service.
func (mt *Mount) Defines() iter.Seq2[string, string] {
	return portDefines(map[string]uint8{
		"PORT_MOUNT_NAME":    PORT_MOUNT_NAME,
		"PORT_MOUNT_CONTROL": PORT_MOUNT_CONTROL,
		"PORT_MOUNT_STATUS":  PORT_MOUNT_STATUS,
	})
}

// ValidName returns true if the name is 1 to 12 characters of
// letters, digits, '.', '-' or '_'.
func ValidName(name string) bool {
	if len(name) == 0 || len(name) > MOUNT_NAME_MAX {
		return false
	}

	for _, c := range []byte(name) {
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '-' || c == '_':
		default:
			return false
		}
	}

	return true
}

// Name returns the filename accumulated so far.
func (mt *Mount) Name() string {
	return string(mt.name)
}

// Status returns the status of the last command.
func (mt *Mount) Status() uint8 {
	return mt.status
}

func (mt *Mount) mount() {
	name := string(mt.name)

	if !ValidName(name) {
		mt.status = MOUNT_STATUS_INVALID
		if mt.Verbose {
			log.Printf("mount: %v", &ErrMount{Name: name, Err: ErrNameInvalid})
		}
		return
	}

	if mt.Storage == nil {
		mt.status = MOUNT_STATUS_NOT_FOUND
		return
	}

	err := mt.Storage.Mount(name)
	if err != nil {
		mt.status = MOUNT_STATUS_NOT_FOUND
		if mt.Verbose {
			log.Printf("mount: %v", err)
		}
		return
	}

	mt.status = MOUNT_STATUS_OK
}

func (mt *Mount) Read(port uint8) uint8 {
	if port == PORT_MOUNT_STATUS {
		return mt.status
	}

	return FLOATING_BUS
}

func (mt *Mount) Write(port uint8, value uint8) {
	switch port {
	case PORT_MOUNT_NAME:
		if value != 0 && len(mt.name) < MOUNT_NAME_MAX {
			mt.name = append(mt.name, value)
		}
	case PORT_MOUNT_CONTROL:
		switch value {
		case MOUNT_CMD_MOUNT:
			mt.mount()
			mt.name = mt.name[:0]
		case MOUNT_CMD_UNMOUNT:
			if mt.Storage != nil {
				mt.Storage.Unmount()
			}
			mt.status = MOUNT_STATUS_OK
		case MOUNT_CMD_QUERY:
			if mt.Storage != nil && mt.Storage.Mounted() {
				mt.status = MOUNT_STATUS_OK
			} else {
				mt.status = MOUNT_STATUS_NOT_FOUND
			}
		}
	}
}

package io

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// File is a random-access file backing a storage device.
type File interface {
	io.ReaderAt
	io.WriterAt
	io.Closer
	// Stat returns the file information, used for the file size.
	Stat() (fs.FileInfo, error)
	// Sync commits written data to the backing store.
	Sync() error
}

var _ File = (*os.File)(nil)

// MountFS defines a file system that storage devices mount files from.
// Files are created on open if they do not yet exist.
type MountFS interface {
	// OpenFile opens, or creates, the named file for reading and writing.
	OpenFile(name string) (file File, err error)
}

// DirFS is a MountFS rooted at a host directory.
type DirFS string

var _ MountFS = DirFS("")

// OpenFile opens the named file below the directory.
func (dir DirFS) OpenFile(name string) (file File, err error) {
	if !fs.ValidPath(name) {
		err = &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
		return
	}

	osfile, err := os.OpenFile(filepath.Join(string(dir), filepath.FromSlash(name)), os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return
	}

	file = osfile
	return
}

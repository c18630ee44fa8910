package io

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sendName(mt *Mount, name string) {
	for _, c := range []byte(name) {
		mt.Write(PORT_MOUNT_NAME, c)
	}
}

func TestValidName(t *testing.T) {
	assert := assert.New(t)

	table := map[string]bool{
		"":              false,
		"A":             true,
		"TEST.BIN":      true,
		"my_file-1.txt": false, // Too long.
		"my_file-1.tx":  true,
		"A B":           false,
		"../etc":        false,
		"dir/file":      false,
	}

	for name, valid := range table {
		assert.Equal(valid, ValidName(name), name)
	}
}

func TestMount(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "TEST.BIN"), []byte{0xde, 0xad}, 0644)
	assert.NoError(err)

	st := &Storage{FS: DirFS(dir)}
	mt := &Mount{Storage: st}
	defer st.Unmount()

	// Query with nothing mounted.
	mt.Write(PORT_MOUNT_CONTROL, MOUNT_CMD_QUERY)
	assert.Equal(uint8(MOUNT_STATUS_NOT_FOUND), mt.Read(PORT_MOUNT_STATUS))

	sendName(mt, "TEST.BIN")
	mt.Write(PORT_MOUNT_NAME, 0) // Terminator is ignored.
	assert.Equal("TEST.BIN", mt.Name())

	mt.Write(PORT_MOUNT_CONTROL, MOUNT_CMD_MOUNT)
	assert.Equal(uint8(MOUNT_STATUS_OK), mt.Read(PORT_MOUNT_STATUS))
	assert.Equal("", mt.Name())
	assert.True(st.Mounted())
	assert.Equal(uint8(0xde), st.Read(PORT_STORAGE_DATA))

	mt.Write(PORT_MOUNT_CONTROL, MOUNT_CMD_QUERY)
	assert.Equal(uint8(MOUNT_STATUS_OK), mt.Read(PORT_MOUNT_STATUS))

	mt.Write(PORT_MOUNT_CONTROL, MOUNT_CMD_UNMOUNT)
	assert.Equal(uint8(MOUNT_STATUS_OK), mt.Read(PORT_MOUNT_STATUS))
	assert.False(st.Mounted())

	mt.Write(PORT_MOUNT_CONTROL, MOUNT_CMD_QUERY)
	assert.Equal(uint8(MOUNT_STATUS_NOT_FOUND), mt.Read(PORT_MOUNT_STATUS))

	// Other ports float.
	assert.Equal(uint8(FLOATING_BUS), mt.Read(PORT_MOUNT_NAME))
}

func TestMountInvalid(t *testing.T) {
	assert := assert.New(t)

	st := &Storage{FS: DirFS(t.TempDir())}
	mt := &Mount{Storage: st}

	table := []string{
		"",
		"A B",
		"../etc/passwd",
	}

	for _, name := range table {
		sendName(mt, name)
		mt.Write(PORT_MOUNT_CONTROL, MOUNT_CMD_MOUNT)
		assert.Equal(uint8(MOUNT_STATUS_INVALID), mt.Read(PORT_MOUNT_STATUS), name)
		assert.False(st.Mounted(), name)
		assert.Equal("", mt.Name(), name)
	}
}

func TestMountTruncates(t *testing.T) {
	assert := assert.New(t)

	mt := &Mount{}
	sendName(mt, "ABCDEFGHIJKLMNOP")
	assert.Equal("ABCDEFGHIJKL", mt.Name())

	// No storage attached.
	mt.Write(PORT_MOUNT_CONTROL, MOUNT_CMD_MOUNT)
	assert.Equal(uint8(MOUNT_STATUS_NOT_FOUND), mt.Read(PORT_MOUNT_STATUS))
}

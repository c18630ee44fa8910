package emulator

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	assert := assert.New(t)

	src := strings.Join([]string{
		`rom = "boot.rom"`,
		`rom_base = 0xE000`,
		`program = "prog.bin"`,
		`origin = 0x100`,
		`storage_dir = "disks"`,
		`disk = "legacy.img"`,
		`max_cycles = 10 * 1000`,
		`verbose = True`,
		`console = PORT_CONSOLE_DATA + PORT_MEMORY_CONTROL`,
	}, "\n")

	cfg, err := LoadConfig("test.star", src)
	assert.NoError(err)
	assert.Equal(&Config{
		Rom:        "boot.rom",
		RomBase:    0xe000,
		Program:    "prog.bin",
		Origin:     0x100,
		StorageDir: "disks",
		Disk:       "legacy.img",
		MaxCycles:  10000,
		Verbose:    true,
	}, cfg)
}

func TestLoadConfigDefaults(t *testing.T) {
	assert := assert.New(t)

	cfg, err := LoadConfig("empty.star", "")
	assert.NoError(err)
	assert.Equal(DefaultConfig(), cfg)
	assert.Equal(uint16(ROM_BASE), cfg.RomBase)
	assert.Equal(".", cfg.StorageDir)
}

func TestLoadConfigErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		src string
		key string
		err error
	}){
		{`rom = 5`, "rom", ErrConfigType},
		{`origin = "0x100"`, "origin", ErrConfigType},
		{`origin = 0x10000`, "origin", ErrConfigRange},
		{`rom_base = -1`, "rom_base", ErrConfigRange},
		{`verbose = 1`, "verbose", ErrConfigType},
	}

	for _, entry := range table {
		cfg, err := LoadConfig("bad.star", entry.src)
		assert.Nil(cfg, entry.src)
		assert.ErrorIs(err, entry.err, entry.src)

		var ec *ErrConfig
		if assert.ErrorAs(err, &ec, entry.src) {
			assert.Equal("bad.star", ec.Name)
			assert.Equal(entry.key, ec.Key)
		}
	}

	// Syntax and evaluation errors.
	for _, src := range []string{"rom = ", "x = UNDEFINED_NAME"} {
		_, err := LoadConfig("bad.star", src)
		var ec *ErrConfig
		assert.ErrorAs(err, &ec, src)
	}
}

func TestConfigApply(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	rom := filepath.Join(dir, "boot.rom")
	program := filepath.Join(dir, "prog.bin")

	// ROM: JMP 0xf003; OUT PORT_MEMORY_CONTROL; JMP 0x0100
	assert.NoError(os.WriteFile(rom, []byte{0xc3, 0x03, 0xf0, 0xd3, 0xfe, 0xc3, 0x00, 0x01}, 0644))
	// Program: MVI A,'!'; OUT PORT_CONSOLE_DATA; HLT
	assert.NoError(os.WriteFile(program, []byte{0x3e, '!', 0xd3, 0x00, 0x76}, 0644))

	src := strings.Join([]string{
		`rom = "` + filepath.ToSlash(rom) + `"`,
		`program = "` + filepath.ToSlash(program) + `"`,
		`origin = 0x0100`,
		`storage_dir = "` + filepath.ToSlash(dir) + `"`,
		`max_cycles = 1000`,
	}, "\n")

	cfg, err := LoadConfig("machine.star", bytes.NewReader([]byte(src)))
	assert.NoError(err)

	emu := NewEmulator()
	defer emu.Close()

	output := &bytes.Buffer{}
	emu.Console.Output = output

	assert.NoError(cfg.Apply(emu))
	assert.Equal(uint16(0x0000), emu.Cpu.Pc)
	assert.True(emu.Overlay.Enabled)

	assert.NoError(emu.Run(cfg.MaxCycles))
	assert.Equal("!", output.String())
	assert.False(emu.Overlay.Enabled)

	// Missing files fail to apply.
	cfg.Program = filepath.Join(dir, "missing.bin")
	assert.ErrorIs(cfg.Apply(NewEmulator()), os.ErrNotExist)
}

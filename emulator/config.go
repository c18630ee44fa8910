package emulator

import (
	"log"
	"math"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/i8080/io"
)

// Config is a machine description.
//
// Machine descriptions are Starlark files. Every emulator define, such as
// PORT_CONSOLE_DATA, is predeclared. The recognised globals are:
//
//	rom         = "monitor.rom"   # ROM image file
//	rom_base    = 0xF000          # ROM window address
//	program     = "hello.bin"     # Program image file
//	origin      = 0x0100          # Program load address
//	storage_dir = "disks"         # Directory storage files mount from
//	disk        = "legacy.img"    # Legacy disk image
//	max_cycles  = 10 * 1000000    # Cycle limit, 0 for none
//	verbose     = False
//
// Other globals are free for the file's own use.
type Config struct {
	Rom        string
	RomBase    uint16
	Program    string
	Origin     uint16
	StorageDir string
	Disk       string
	MaxCycles  uint64
	Verbose    bool
}

// DefaultConfig returns the configuration of an unconfigured machine.
func DefaultConfig() *Config {
	return &Config{
		RomBase:    ROM_BASE,
		StorageDir: ".",
	}
}

// configDefines returns the emulator defines as Starlark integers.
func configDefines() (pred starlark.StringDict) {
	pred = starlark.StringDict{}

	emu := NewEmulator()
	for key, str := range emu.Defines() {
		value, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			continue
		}
		pred[key] = starlark.MakeInt64(value)
	}

	return
}

// LoadConfig executes a Starlark machine description. src may be nil to
// read the named file, or a string, []byte, or io.Reader.
func LoadConfig(name string, src any) (cfg *Config, err error) {
	cfg = DefaultConfig()

	var key string
	defer func() {
		if err != nil {
			cfg = nil
			err = &ErrConfig{Name: name, Key: key, Err: err}
		}
	}()

	thread := starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			log.Printf("%v: %v", name, msg)
		},
	}
	opts := syntax.FileOptions{}

	globals, err := starlark.ExecFileOptions(&opts, &thread, name, src, configDefines())
	if err != nil {
		return
	}

	var value starlark.Value
	var ok bool

	for _, key = range []string{"rom", "program", "storage_dir", "disk"} {
		if value, ok = globals[key]; !ok {
			continue
		}
		var str string
		str, err = configString(value)
		if err != nil {
			return
		}
		switch key {
		case "rom":
			cfg.Rom = str
		case "program":
			cfg.Program = str
		case "storage_dir":
			cfg.StorageDir = str
		case "disk":
			cfg.Disk = str
		}
	}

	for _, key = range []string{"rom_base", "origin", "max_cycles"} {
		if value, ok = globals[key]; !ok {
			continue
		}
		limit := uint64(math.MaxUint16)
		if key == "max_cycles" {
			limit = math.MaxUint64
		}
		var num uint64
		num, err = configUint(value, limit)
		if err != nil {
			return
		}
		switch key {
		case "rom_base":
			cfg.RomBase = uint16(num)
		case "origin":
			cfg.Origin = uint16(num)
		case "max_cycles":
			cfg.MaxCycles = num
		}
	}

	key = "verbose"
	if value, ok = globals[key]; ok {
		cfg.Verbose, err = configBool(value)
		if err != nil {
			return
		}
	}

	key = ""
	return
}

func configString(value starlark.Value) (str string, err error) {
	st_str, ok := value.(starlark.String)
	if !ok {
		err = ErrConfigType
		return
	}

	str = st_str.GoString()
	return
}

func configUint(value starlark.Value, limit uint64) (num uint64, err error) {
	st_int, ok := value.(starlark.Int)
	if !ok {
		err = ErrConfigType
		return
	}

	num, ok = st_int.Uint64()
	if !ok || num > limit {
		err = ErrConfigRange
		return
	}

	return
}

func configBool(value starlark.Value) (flag bool, err error) {
	st_bool, ok := value.(starlark.Bool)
	if !ok {
		err = ErrConfigType
		return
	}

	flag = bool(st_bool)
	return
}

// Apply configures an emulator. Any program is loaded first. When a ROM is
// configured the CPU is then reset to boot through the overlay, leaving the
// program in RAM for the firmware.
func (cfg *Config) Apply(emu *Emulator) (err error) {
	emu.SetVerbose(cfg.Verbose)

	emu.Storage.FS = io.DirFS(cfg.StorageDir)

	if len(cfg.Disk) != 0 {
		err = emu.OpenDisk(cfg.Disk)
		if err != nil {
			return
		}
	}

	if len(cfg.Program) != 0 {
		_, err = emu.LoadProgramFromFile(cfg.Program, cfg.Origin)
		if err != nil {
			return
		}
	}

	if len(cfg.Rom) != 0 {
		err = emu.LoadRomFile(cfg.Rom, cfg.RomBase)
		if err != nil {
			return
		}
		emu.Reset()
	}

	return
}

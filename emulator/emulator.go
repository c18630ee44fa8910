// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	goio "io"
	"iter"
	"log"
	"maps"
	"os"

	"github.com/ezrec/i8080/cpu"
	"github.com/ezrec/i8080/internal"
	"github.com/ezrec/i8080/io"
	"github.com/ezrec/i8080/memory"
)

const (
	PORT_MEMORY_CONTROL = 0xfe   // Read: overlay status. Write: drop overlay.
	ROM_BASE            = 0xf000 // Default ROM window address.
)

var _emulator_defines = map[string]string{
	"PORT_MEMORY_CONTROL": fmt.Sprintf("0x%02x", PORT_MEMORY_CONTROL),
	"ROM_BASE":            fmt.Sprintf("0x%04x", ROM_BASE),
}

// Emulator state. CPU + boot overlay + peripherals on their conventional
// ports.
type Emulator struct {
	Verbose  bool // If set, enables verbose logging.
	*cpu.Cpu      // Reference to the CPU simulation.

	Overlay *memory.Overlay // Boot ROM overlay over RAM.

	Console io.Console // Console on ports 0x00-0x02.
	Storage io.Storage // Linear storage on ports 0x08-0x0C.
	Mount   io.Mount   // Storage mount service on ports 0x0D-0x0F.
	Disk    *io.Disk   // Legacy disk on ports 0x20-0x22, if opened.

	// Interrupt, if set, is polled by Run to stop early.
	Interrupt func() bool

	// TraceOutput, if set, receives a trace line before every step.
	TraceOutput goio.Writer
}

// NewEmulator creates a new emulator, with storage files mounted from the
// current directory.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Overlay: memory.NewOverlay(nil),
	}

	emu.Cpu = cpu.NewCpu(emu.Overlay)

	emu.Storage.FS = io.DirFS(".")
	emu.Mount.Storage = &emu.Storage

	bus := emu.Cpu.Bus()
	bus.Attach(&emu.Console,
		io.PORT_CONSOLE_DATA, io.PORT_CONSOLE_INPUT, io.PORT_CONSOLE_STATUS)
	bus.Attach(&emu.Storage,
		io.PORT_STORAGE_ADDR_LO, io.PORT_STORAGE_ADDR_MID, io.PORT_STORAGE_ADDR_HI,
		io.PORT_STORAGE_DATA, io.PORT_STORAGE_STATUS)
	bus.Attach(&emu.Mount,
		io.PORT_MOUNT_NAME, io.PORT_MOUNT_CONTROL, io.PORT_MOUNT_STATUS)
	bus.Attach(io.Port{In: emu.Overlay.ReadPort, Out: emu.Overlay.WritePort},
		PORT_MEMORY_CONTROL)

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	disk := emu.Disk
	if disk == nil {
		disk = &io.Disk{}
	}

	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Console.Defines(),
		emu.Storage.Defines(),
		emu.Mount.Defines(),
		disk.Defines(),
	)
}

// SetVerbose sets the logging of the emulator and its devices.
func (emu *Emulator) SetVerbose(verbose bool) {
	emu.Verbose = verbose
	emu.Cpu.Verbose = verbose
	emu.Cpu.Bus().Verbose = verbose
	emu.Storage.Verbose = verbose
	emu.Mount.Verbose = verbose
}

// Close unmounts storage, and closes the disk.
func (emu *Emulator) Close() (err error) {
	emu.Storage.Unmount()

	if emu.Disk != nil {
		err = emu.Disk.Close()
		emu.Disk = nil
	}

	return
}

// OpenDisk opens a legacy disk image, and binds it to its ports.
func (emu *Emulator) OpenDisk(path string) (err error) {
	disk, err := io.OpenDisk(path)
	if err != nil {
		return
	}

	if emu.Disk != nil {
		emu.Disk.Close()
	}
	emu.Disk = disk

	emu.Cpu.Bus().Attach(emu.Disk,
		io.PORT_DISK_DATA, io.PORT_DISK_ADDR_LO, io.PORT_DISK_ADDR_HI)

	if emu.Verbose {
		log.Printf("emulator: disk %v", path)
	}

	return
}

// LoadRom installs a ROM image at base, and enables the boot overlay.
func (emu *Emulator) LoadRom(rom []byte, base uint16) {
	emu.Overlay.Install(rom, base)

	if emu.Verbose {
		log.Printf("emulator: rom %v bytes at 0x%04x", len(rom), base)
	}
}

// LoadRomFile installs a ROM image file at base.
func (emu *Emulator) LoadRomFile(path string, base uint16) (err error) {
	rom, err := os.ReadFile(path)
	if err != nil {
		err = &cpu.ErrLoad{Path: path, Err: err}
		return
	}

	emu.LoadRom(rom, base)
	return
}

// Reset the CPU, and re-enable the boot overlay if a ROM is installed, so
// execution starts at the ROM entry.
func (emu *Emulator) Reset() {
	emu.Cpu.Reset()
	emu.Overlay.Enabled = len(emu.Overlay.Rom) > 0
}

// Tick performs a single instruction of the emulator.
// Returns done as true once the CPU has halted with no way to wake.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, Err: err}
		}
	}()

	if emu.halted() {
		done = true
		return
	}

	if emu.TraceOutput != nil {
		fmt.Fprintln(emu.TraceOutput, emu.Cpu.Trace())
	}

	_, err = emu.Cpu.Step()
	if err != nil {
		return
	}

	done = emu.halted()
	return
}

// halted returns true if the CPU is halted, and the timer can never wake it.
func (emu *Emulator) halted() bool {
	c := emu.Cpu
	if !c.Halted {
		return false
	}

	// A timer with no reload value never expires.
	armed := c.Timer.Enabled && c.Timer.Reload != 0

	return !c.Interrupts || !(c.Timer.Pending || armed)
}

// Run executes until the CPU halts, an error occurs, or maxCycles have
// elapsed since reset. A zero maxCycles runs without limit.
func (emu *Emulator) Run(maxCycles uint64) (err error) {
	for {
		if emu.Interrupt != nil && emu.Interrupt() {
			err = ErrInterrupted
			return
		}

		if maxCycles != 0 && emu.Cpu.Cycles >= maxCycles {
			err = ErrCycleLimit
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}

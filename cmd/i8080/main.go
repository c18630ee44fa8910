// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/ezrec/i8080/emulator"
	"github.com/ezrec/i8080/io"
)

func main() {
	var config string
	var rom string
	var romBase uint
	var program string
	var origin uint
	var storage string
	var disk string
	var maxCycles uint64
	var verbose bool
	var trace bool

	flag.StringVar(&config, "c", "", "Machine description (.star) file")
	flag.StringVar(&rom, "r", "", "ROM image to boot from")
	flag.UintVar(&romBase, "b", emulator.ROM_BASE, "ROM window address")
	flag.StringVar(&program, "p", "", "Program image to load")
	flag.UintVar(&origin, "o", 0, "Program load address")
	flag.StringVar(&storage, "s", ".", "Directory storage files mount from")
	flag.StringVar(&disk, "d", "", "Legacy disk image")
	flag.Uint64Var(&maxCycles, "n", 0, "Cycle limit, 0 for none")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&trace, "t", false, "Trace every instruction to stderr")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	cfg := emulator.DefaultConfig()
	if len(config) != 0 {
		var err error
		cfg, err = emulator.LoadConfig(config, nil)
		if err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}
	}

	// Flags given on the command line override the machine description.
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "r":
			cfg.Rom = rom
		case "b":
			if romBase > 0xffff {
				log.Fatalf("%v: -b 0x%x out of range", os.Args[0], romBase)
			}
			cfg.RomBase = uint16(romBase)
		case "p":
			cfg.Program = program
		case "o":
			if origin > 0xffff {
				log.Fatalf("%v: -o 0x%x out of range", os.Args[0], origin)
			}
			cfg.Origin = uint16(origin)
		case "s":
			cfg.StorageDir = storage
		case "d":
			cfg.Disk = disk
		case "n":
			cfg.MaxCycles = maxCycles
		case "v":
			cfg.Verbose = verbose
		}
	})

	if len(cfg.Rom) == 0 && len(cfg.Program) == 0 {
		log.Fatalf("%v: No ROM or program to run", os.Args[0])
	}

	emu := emulator.NewEmulator()
	emu.Console.Output = os.Stdout
	if trace {
		emu.TraceOutput = os.Stderr
	}

	err := cfg.Apply(emu)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	host := io.NewHost(&emu.Console, os.Stdin)
	err = host.Start()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}
	emu.Interrupt = host.Interrupted

	err = emu.Run(cfg.MaxCycles)

	host.Stop()
	emu.Close()

	switch {
	case err == nil:
	case errors.Is(err, emulator.ErrInterrupted):
		if cfg.Verbose {
			log.Printf("%v: %v", os.Args[0], err)
		}
	default:
		log.Printf("%v", emu.Cpu)
		log.Fatalf("%v: %v", os.Args[0], err)
	}
}

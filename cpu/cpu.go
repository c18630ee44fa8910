package cpu

import (
	"fmt"
	goio "io"
	"iter"
	"log"
	"maps"
	"os"

	"github.com/ezrec/i8080/internal"
	"github.com/ezrec/i8080/io"
	"github.com/ezrec/i8080/memory"
)

// Reset and interrupt constants.
const (
	RESET_SP         = uint16(0xf000) // Stack pointer after reset.
	INTERRUPT_VECTOR = uint16(0x0038) // Timer interrupts execute an RST 7.
)

// Cycle costs of the steps that do not execute an instruction.
const (
	CYCLES_INTERRUPT = 11 // Same as RST.
	CYCLES_IDLE      = 4  // Halted, waiting for an interrupt.
)

var _cpu_defines = map[string]string{
	"RESET_SP":         fmt.Sprintf("0x%04x", RESET_SP),
	"INTERRUPT_VECTOR": fmt.Sprintf("0x%04x", INTERRUPT_VECTOR),
}

// Cpu is the simulation context of the 8080 processor.
type Cpu struct {
	Verbose bool // Set to log every executed instruction.

	A, B, C, D, E, H, L uint8 // General registers.

	F  uint8  // Flags.
	Sp uint16 // Stack pointer.
	Pc uint16 // Program counter.

	Halted     bool   // Set by HLT; cleared by an interrupt.
	Interrupts bool   // Interrupt enable, set by EI and cleared by DI.
	Cycles     uint64 // Total cycles executed.

	Timer io.Timer // Interval timer, hard-wired to ports 0x30-0x32.

	bus io.Bus
	mem memory.Memory
}

// NewCpu creates a CPU executing from mem. If mem is nil, a flat 64 KiB
// RAM is used.
func NewCpu(mem memory.Memory) (cpu *Cpu) {
	if mem == nil {
		mem = memory.NewFlat()
	}

	cpu = &Cpu{
		mem: mem,
	}

	cpu.Reset()

	return
}

// Defines for the cpu, including the timer ports.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_cpu_defines), cpu.Timer.Defines())
}

// Reset restores the register, flag, and timer state of construction.
// Memory contents and bus bindings are preserved.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.A, cpu.B, cpu.C, cpu.D, cpu.E, cpu.H, cpu.L = 0, 0, 0, 0, 0, 0, 0
	cpu.F = FLAG_1
	cpu.Sp = RESET_SP
	cpu.Pc = 0
	cpu.Halted = false
	cpu.Interrupts = false
	cpu.Cycles = 0
	cpu.Timer.Reset()
}

// Bus returns the I/O bus, for binding devices.
func (cpu *Cpu) Bus() *io.Bus {
	return &cpu.bus
}

// Memory returns the memory the CPU executes from.
func (cpu *Cpu) Memory() memory.Memory {
	return cpu.mem
}

// BC returns the B:C pair.
func (cpu *Cpu) BC() uint16 {
	return uint16(cpu.B)<<8 | uint16(cpu.C)
}

// DE returns the D:E pair.
func (cpu *Cpu) DE() uint16 {
	return uint16(cpu.D)<<8 | uint16(cpu.E)
}

// HL returns the H:L pair.
func (cpu *Cpu) HL() uint16 {
	return uint16(cpu.H)<<8 | uint16(cpu.L)
}

// SetBC sets the B:C pair.
func (cpu *Cpu) SetBC(value uint16) {
	cpu.B, cpu.C = uint8(value>>8), uint8(value)
}

// SetDE sets the D:E pair.
func (cpu *Cpu) SetDE(value uint16) {
	cpu.D, cpu.E = uint8(value>>8), uint8(value)
}

// SetHL sets the H:L pair.
func (cpu *Cpu) SetHL(value uint16) {
	cpu.H, cpu.L = uint8(value>>8), uint8(value)
}

// PSW returns the program status word, A:F.
func (cpu *Cpu) PSW() uint16 {
	return uint16(cpu.A)<<8 | uint16(cpu.F)
}

// SetPSW sets A:F, forcing the constant flag bits.
func (cpu *Cpu) SetPSW(value uint16) {
	cpu.A = uint8(value >> 8)
	cpu.F = fixFlags(uint8(value))
}

// Register returns an 8-bit register. REG_M reads memory at H:L.
func (cpu *Cpu) Register(reg Register) uint8 {
	switch reg & 0x7 {
	case REG_B:
		return cpu.B
	case REG_C:
		return cpu.C
	case REG_D:
		return cpu.D
	case REG_E:
		return cpu.E
	case REG_H:
		return cpu.H
	case REG_L:
		return cpu.L
	case REG_M:
		return cpu.mem.Read(cpu.HL())
	default:
		return cpu.A
	}
}

// SetRegister sets an 8-bit register. REG_M writes memory at H:L.
func (cpu *Cpu) SetRegister(reg Register, value uint8) {
	switch reg & 0x7 {
	case REG_B:
		cpu.B = value
	case REG_C:
		cpu.C = value
	case REG_D:
		cpu.D = value
	case REG_E:
		cpu.E = value
	case REG_H:
		cpu.H = value
	case REG_L:
		cpu.L = value
	case REG_M:
		cpu.mem.Write(cpu.HL(), value)
	default:
		cpu.A = value
	}
}

// Pair returns a 16-bit register pair.
func (cpu *Cpu) Pair(rp RegisterPair) uint16 {
	switch rp & 0x3 {
	case PAIR_BC:
		return cpu.BC()
	case PAIR_DE:
		return cpu.DE()
	case PAIR_HL:
		return cpu.HL()
	default:
		return cpu.Sp
	}
}

// SetPair sets a 16-bit register pair.
func (cpu *Cpu) SetPair(rp RegisterPair, value uint16) {
	switch rp & 0x3 {
	case PAIR_BC:
		cpu.SetBC(value)
	case PAIR_DE:
		cpu.SetDE(value)
	case PAIR_HL:
		cpu.SetHL(value)
	default:
		cpu.Sp = value
	}
}

// PushPop returns a PUSH/POP register pair.
func (cpu *Cpu) PushPop(pp PushPopPair) uint16 {
	if pp&0x3 == PUSH_PSW {
		return cpu.PSW()
	}
	return cpu.Pair(RegisterPair(pp & 0x3))
}

// SetPushPop sets a PUSH/POP register pair.
func (cpu *Cpu) SetPushPop(pp PushPopPair, value uint16) {
	if pp&0x3 == PUSH_PSW {
		cpu.SetPSW(value)
		return
	}
	cpu.SetPair(RegisterPair(pp&0x3), value)
}

// Test returns true if the condition holds.
func (cpu *Cpu) Test(cond Condition) bool {
	return cpu.Flag(cond.Flag()) == cond.WhenSet()
}

func (cpu *Cpu) read16(addr uint16) uint16 {
	return uint16(cpu.mem.Read(addr)) | uint16(cpu.mem.Read(addr+1))<<8
}

func (cpu *Cpu) write16(addr uint16, value uint16) {
	cpu.mem.Write(addr, uint8(value))
	cpu.mem.Write(addr+1, uint8(value>>8))
}

func (cpu *Cpu) fetch() (value uint8) {
	value = cpu.mem.Read(cpu.Pc)
	cpu.Pc++
	return
}

func (cpu *Cpu) fetch16() (value uint16) {
	lo := cpu.fetch()
	hi := cpu.fetch()
	value = uint16(hi)<<8 | uint16(lo)
	return
}

func (cpu *Cpu) push(value uint16) {
	cpu.Sp--
	cpu.mem.Write(cpu.Sp, uint8(value>>8))
	cpu.Sp--
	cpu.mem.Write(cpu.Sp, uint8(value))
}

func (cpu *Cpu) pop() (value uint16) {
	lo := cpu.mem.Read(cpu.Sp)
	cpu.Sp++
	hi := cpu.mem.Read(cpu.Sp)
	cpu.Sp++
	value = uint16(hi)<<8 | uint16(lo)
	return
}

// In performs an IN from a port. Timer ports never reach the bus.
func (cpu *Cpu) In(port uint8) uint8 {
	if cpu.Timer.Owns(port) {
		return cpu.Timer.Read(port)
	}
	return cpu.bus.Read(port)
}

// Out performs an OUT to a port. Timer ports never reach the bus.
func (cpu *Cpu) Out(port uint8, value uint8) {
	if cpu.Timer.Owns(port) {
		cpu.Timer.Write(port, value)
		return
	}
	cpu.bus.Write(port, value)
}

// interrupt delivers the timer interrupt as an RST 7.
func (cpu *Cpu) interrupt() (cycles int) {
	if cpu.Verbose {
		log.Printf("cpu: interrupt at 0x%04x", cpu.Pc)
	}

	cpu.Interrupts = false
	cpu.Halted = false
	cpu.Timer.Pending = false
	cpu.push(cpu.Pc)
	cpu.Pc = INTERRUPT_VECTOR

	return CYCLES_INTERRUPT
}

// Step executes a single instruction, or delivers a pending interrupt in its
// place, and returns the cycles it took.
//
// On an unknown opcode, the PC is left at the opcode and ErrOpcode is
// returned.
func (cpu *Cpu) Step() (cycles int, err error) {
	switch {
	case cpu.Interrupts && cpu.Timer.Pending:
		cycles = cpu.interrupt()
	case cpu.Halted:
		cycles = CYCLES_IDLE
	default:
		pc := cpu.Pc
		if cpu.Verbose {
			log.Printf("cpu: %v", cpu.Trace())
		}
		op := cpu.fetch()
		exec := _dispatch[op]
		if exec == nil {
			cpu.Pc = pc
			err = ErrOpcode{Opcode: op, Pc: pc}
			return
		}
		cycles = exec(cpu, op)
	}

	cpu.Cycles += uint64(cycles)
	cpu.Timer.Tick(cycles)

	return
}

// Run executes until the CPU halts, or an error occurs.
func (cpu *Cpu) Run() (err error) {
	for !cpu.Halted {
		_, err = cpu.Step()
		if err != nil {
			return
		}
	}

	return
}

// RunCycles executes until the CPU halts, an error occurs, or at least limit
// cycles have elapsed. A zero limit runs until halted.
// Returns done as true if the CPU halted.
func (cpu *Cpu) RunCycles(limit uint64) (done bool, err error) {
	start := cpu.Cycles
	for !cpu.Halted {
		if limit != 0 && cpu.Cycles-start >= limit {
			return
		}
		_, err = cpu.Step()
		if err != nil {
			return
		}
	}

	done = true
	return
}

// LoadProgram writes a program to memory at origin, wrapping at the top of
// the address space, and sets the PC to origin.
func (cpu *Cpu) LoadProgram(program []byte, origin uint16) {
	for n, value := range program {
		cpu.mem.Write(origin+uint16(n), value)
	}
	cpu.Pc = origin

	if cpu.Verbose {
		log.Printf("cpu: loaded %v bytes at 0x%04x", len(program), origin)
	}
}

// LoadProgramFrom reads a whole program image, then loads it at origin.
// Memory is untouched if the read fails.
func (cpu *Cpu) LoadProgramFrom(r goio.Reader, origin uint16) (n int, err error) {
	program, err := goio.ReadAll(r)
	if err != nil {
		return
	}

	cpu.LoadProgram(program, origin)
	n = len(program)
	return
}

// LoadProgramFromFile loads a raw binary file at origin.
func (cpu *Cpu) LoadProgramFromFile(path string, origin uint16) (n int, err error) {
	defer func() {
		if err != nil {
			err = &ErrLoad{Path: path, Err: err}
		}
	}()

	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	return cpu.LoadProgramFrom(file, origin)
}

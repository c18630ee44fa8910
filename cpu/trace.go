package cpu

import (
	"fmt"
	"strings"
)

var _flag_names = []struct {
	flag uint8
	name byte
}{
	{FLAG_S, 'S'},
	{FLAG_Z, 'Z'},
	{FLAG_AC, 'A'},
	{FLAG_P, 'P'},
	{FLAG_C, 'C'},
}

// FlagString renders a flags byte as "SZAPC", with '-' for clear flags.
func FlagString(flags uint8) string {
	var text strings.Builder
	for _, fn := range _flag_names {
		if (flags & fn.flag) != 0 {
			text.WriteByte(fn.name)
		} else {
			text.WriteByte('-')
		}
	}
	return text.String()
}

// Trace returns a one-line trace of the instruction at the PC, and the
// registers before it executes.
func (cpu *Cpu) Trace() string {
	text, _ := cpu.Disassemble(cpu.Pc)
	return fmt.Sprintf("%04x: %-16s A=%02x BC=%04x DE=%04x HL=%04x SP=%04x F=%v",
		cpu.Pc, text,
		cpu.A, cpu.BC(), cpu.DE(), cpu.HL(), cpu.Sp,
		FlagString(cpu.F))
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"pc", "sp",
		"a", "bc", "de", "hl",
		"flags",
		"ie", "halt",
		"timer",
		"cycle",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%04X", cpu.Pc)
		case "sp":
			strval = fmt.Sprintf("%04X", cpu.Sp)
		case "a":
			strval = fmt.Sprintf("%02X", cpu.A)
		case "bc":
			strval = fmt.Sprintf("%04X", cpu.BC())
		case "de":
			strval = fmt.Sprintf("%04X", cpu.DE())
		case "hl":
			strval = fmt.Sprintf("%04X", cpu.HL())
		case "flags":
			strval = fmt.Sprintf("%02X %v", cpu.F, FlagString(cpu.F))
		case "ie":
			strval = fmt.Sprintf("%v", cpu.Interrupts)
		case "halt":
			strval = fmt.Sprintf("%v", cpu.Halted)
		case "timer":
			strval = fmt.Sprintf("%04X/%04X %v %v",
				cpu.Timer.Counter, cpu.Timer.Reload,
				cpu.Timer.Enabled, cpu.Timer.Pending)
		case "cycle":
			strval = fmt.Sprintf("%d", cpu.Cycles)
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

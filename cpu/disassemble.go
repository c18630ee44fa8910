package cpu

import (
	"fmt"
)

var _accumulator_names = map[uint8]string{
	0x07: "RLC",
	0x0f: "RRC",
	0x17: "RAL",
	0x1f: "RAR",
	0x27: "DAA",
	0x2f: "CMA",
	0x37: "STC",
	0x3f: "CMC",
}

var _single_names = map[uint8]string{
	0x76: "HLT",
	0xc9: "RET",
	0xe3: "XTHL",
	0xe9: "PCHL",
	0xeb: "XCHG",
	0xf3: "DI",
	0xf9: "SPHL",
	0xfb: "EI",
}

var _addr_names = map[uint8]string{
	0x22: "SHLD",
	0x2a: "LHLD",
	0x32: "STA",
	0x3a: "LDA",
	0xc3: "JMP",
	0xcd: "CALL",
}

// Disassemble returns the mnemonic of the instruction at addr, and its
// length in bytes. Opcodes the 8080 does not define disassemble as a
// one-byte DB directive.
func (cpu *Cpu) Disassemble(addr uint16) (text string, length int) {
	code := [3]uint8{
		cpu.mem.Read(addr),
		cpu.mem.Read(addr + 1),
		cpu.mem.Read(addr + 2),
	}
	return Disassemble(code)
}

// Disassemble decodes an instruction from its opcode and the two bytes
// following it.
func Disassemble(code [3]uint8) (text string, length int) {
	op := code[0]
	d8 := code[1]
	d16 := uint16(code[2])<<8 | uint16(code[1])

	if name, ok := _single_names[op]; ok {
		return name, 1
	}
	if name, ok := _accumulator_names[op]; ok {
		return name, 1
	}
	if name, ok := _addr_names[op]; ok {
		return fmt.Sprintf("%v 0x%04x", name, d16), 3
	}

	if _dispatch[op] == nil {
		return fmt.Sprintf("DB 0x%02x", op), 1
	}

	switch {
	case op&0xc7 == 0x00:
		text, length = "NOP", 1
	case op == 0x02 || op == 0x12:
		text, length = fmt.Sprintf("STAX %v", opPair(op)), 1
	case op == 0x0a || op == 0x1a:
		text, length = fmt.Sprintf("LDAX %v", opPair(op)), 1
	case op&0xcf == 0x01:
		text, length = fmt.Sprintf("LXI %v,0x%04x", opPair(op), d16), 3
	case op&0xcf == 0x03:
		text, length = fmt.Sprintf("INX %v", opPair(op)), 1
	case op&0xcf == 0x09:
		text, length = fmt.Sprintf("DAD %v", opPair(op)), 1
	case op&0xcf == 0x0b:
		text, length = fmt.Sprintf("DCX %v", opPair(op)), 1
	case op&0xc7 == 0x04:
		text, length = fmt.Sprintf("INR %v", opDst(op)), 1
	case op&0xc7 == 0x05:
		text, length = fmt.Sprintf("DCR %v", opDst(op)), 1
	case op&0xc7 == 0x06:
		text, length = fmt.Sprintf("MVI %v,0x%02x", opDst(op), d8), 2
	case op&0xc0 == 0x40:
		text, length = fmt.Sprintf("MOV %v,%v", opDst(op), opSrc(op)), 1
	case op&0xc0 == 0x80:
		text, length = fmt.Sprintf("%v %v", _alu_names[opAlu(op)], opSrc(op)), 1
	case op&0xc7 == 0xc0:
		text, length = fmt.Sprintf("R%v", opCond(op)), 1
	case op&0xcf == 0xc1:
		text, length = fmt.Sprintf("POP %v", opPushPop(op)), 1
	case op&0xc7 == 0xc2:
		text, length = fmt.Sprintf("J%v 0x%04x", opCond(op), d16), 3
	case op&0xc7 == 0xc4:
		text, length = fmt.Sprintf("C%v 0x%04x", opCond(op), d16), 3
	case op&0xcf == 0xc5:
		text, length = fmt.Sprintf("PUSH %v", opPushPop(op)), 1
	case op&0xc7 == 0xc6:
		text, length = fmt.Sprintf("%v 0x%02x", _alu_imm_names[opAlu(op)], d8), 2
	case op&0xc7 == 0xc7:
		text, length = fmt.Sprintf("RST %d", (op>>3)&0x7), 1
	case op == 0xd3:
		text, length = fmt.Sprintf("OUT 0x%02x", d8), 2
	case op == 0xdb:
		text, length = fmt.Sprintf("IN 0x%02x", d8), 2
	}

	return
}

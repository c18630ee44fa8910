package cpu

import (
	"math/bits"
)

// Flag bits of the F register.
const (
	FLAG_C  = uint8(0x01) // Carry.
	FLAG_1  = uint8(0x02) // Always set.
	FLAG_P  = uint8(0x04) // Even parity.
	FLAG_AC = uint8(0x10) // Auxiliary (nibble) carry.
	FLAG_Z  = uint8(0x40) // Zero.
	FLAG_S  = uint8(0x80) // Sign.

	// FLAG_ZERO_MASK holds the bits that always read as zero.
	FLAG_ZERO_MASK = uint8(0x28)
)

// fixFlags forces the constant bits of a flags byte.
func fixFlags(flags uint8) uint8 {
	return (flags | FLAG_1) &^ FLAG_ZERO_MASK
}

// Flag returns true if the flag bit is set.
func (cpu *Cpu) Flag(flag uint8) bool {
	return (cpu.F & flag) != 0
}

// SetFlag sets or clears a flag bit.
func (cpu *Cpu) SetFlag(flag uint8, on bool) {
	if on {
		cpu.F |= flag
	} else {
		cpu.F &^= flag
	}
	cpu.F = fixFlags(cpu.F)
}

// flagsArith sets all flags from an arithmetic result.
func (cpu *Cpu) flagsArith(result uint8, carry bool, aux bool) {
	flags := FLAG_1
	if result == 0 {
		flags |= FLAG_Z
	}
	if (result & 0x80) != 0 {
		flags |= FLAG_S
	}
	if bits.OnesCount8(result)%2 == 0 {
		flags |= FLAG_P
	}
	if carry {
		flags |= FLAG_C
	}
	if aux {
		flags |= FLAG_AC
	}
	cpu.F = flags
}

// flagsLogic sets all flags from a logical result, clearing carries.
func (cpu *Cpu) flagsLogic(result uint8) {
	cpu.flagsArith(result, false, false)
}

func (cpu *Cpu) carryIn() uint8 {
	return cpu.F & FLAG_C
}

// add adds to the accumulator, with carry in.
func (cpu *Cpu) add(value uint8, cin uint8) {
	sum := uint16(cpu.A) + uint16(value) + uint16(cin)
	aux := (cpu.A&0xf)+(value&0xf)+cin > 0xf
	cpu.A = uint8(sum)
	cpu.flagsArith(cpu.A, sum > 0xff, aux)
}

// sub subtracts from the accumulator, with borrow in, returning the result
// without storing it.
func (cpu *Cpu) sub(value uint8, cin uint8) (result uint8) {
	diff := int(cpu.A) - int(value) - int(cin)
	aux := int(cpu.A&0xf)-int(value&0xf)-int(cin) < 0
	result = uint8(diff)
	cpu.flagsArith(result, diff < 0, aux)
	return
}

// ALU operations, as encoded in bits 3-5 of the ALU opcodes.
const (
	ALU_ADD = 0
	ALU_ADC = 1
	ALU_SUB = 2
	ALU_SBB = 3
	ALU_ANA = 4
	ALU_XRA = 5
	ALU_ORA = 6
	ALU_CMP = 7
)

var _alu_names = [8]string{"ADD", "ADC", "SUB", "SBB", "ANA", "XRA", "ORA", "CMP"}
var _alu_imm_names = [8]string{"ADI", "ACI", "SUI", "SBI", "ANI", "XRI", "ORI", "CPI"}

// alu performs an accumulator operation.
func (cpu *Cpu) alu(op uint8, value uint8) {
	switch op & 0x7 {
	case ALU_ADD:
		cpu.add(value, 0)
	case ALU_ADC:
		cpu.add(value, cpu.carryIn())
	case ALU_SUB:
		cpu.A = cpu.sub(value, 0)
	case ALU_SBB:
		cpu.A = cpu.sub(value, cpu.carryIn())
	case ALU_ANA:
		cpu.A &= value
		cpu.flagsLogic(cpu.A)
	case ALU_XRA:
		cpu.A ^= value
		cpu.flagsLogic(cpu.A)
	case ALU_ORA:
		cpu.A |= value
		cpu.flagsLogic(cpu.A)
	case ALU_CMP:
		cpu.sub(value, 0)
	}
}

// inr increments a value, preserving carry.
func (cpu *Cpu) inr(value uint8) (result uint8) {
	result = value + 1
	cpu.flagsArith(result, cpu.Flag(FLAG_C), (value&0xf) == 0xf)
	return
}

// dcr decrements a value, preserving carry.
func (cpu *Cpu) dcr(value uint8) (result uint8) {
	result = value - 1
	cpu.flagsArith(result, cpu.Flag(FLAG_C), (value&0xf) == 0)
	return
}

// dad adds a pair to H:L, changing only carry.
func (cpu *Cpu) dad(value uint16) {
	sum := uint32(cpu.HL()) + uint32(value)
	cpu.SetHL(uint16(sum))
	cpu.SetFlag(FLAG_C, sum > 0xffff)
}

// daa adjusts the accumulator to binary-coded decimal.
// The corrections are judged on the accumulator before any adjustment, and
// the auxiliary carry is left clear.
func (cpu *Cpu) daa() {
	lo := cpu.A & 0xf
	hi := cpu.A >> 4
	carry := cpu.Flag(FLAG_C)

	var correction uint8
	if lo > 9 || cpu.Flag(FLAG_AC) {
		correction |= 0x06
	}
	if hi > 9 || carry || (lo > 9 && hi >= 9) {
		correction |= 0x60
		carry = true
	}

	cpu.A += correction
	cpu.flagsArith(cpu.A, carry, false)
}

// rlc rotates the accumulator left, through bit 0.
func (cpu *Cpu) rlc() {
	carry := cpu.A >> 7
	cpu.A = (cpu.A << 1) | carry
	cpu.SetFlag(FLAG_C, carry != 0)
}

func (cpu *Cpu) rrc() {
	carry := cpu.A & 1
	cpu.A = (cpu.A >> 1) | (carry << 7)
	cpu.SetFlag(FLAG_C, carry != 0)
}

func (cpu *Cpu) ral() {
	carry := cpu.A >> 7
	cpu.A = (cpu.A << 1) | cpu.carryIn()
	cpu.SetFlag(FLAG_C, carry != 0)
}

func (cpu *Cpu) rar() {
	carry := cpu.A & 1
	cpu.A = (cpu.A >> 1) | (cpu.carryIn() << 7)
	cpu.SetFlag(FLAG_C, carry != 0)
}

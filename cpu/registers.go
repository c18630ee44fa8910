package cpu

// Register is an 8-bit register operand, as encoded in a 3-bit opcode field.
// REG_M addresses memory at H:L.
type Register uint8

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_B = Register(0) // B
	REG_C = Register(1) // C
	REG_D = Register(2) // D
	REG_E = Register(3) // E
	REG_H = Register(4) // H
	REG_L = Register(5) // L
	REG_M = Register(6) // M
	REG_A = Register(7) // A
)

// DecodeRegister decodes a register from the low 3 bits of a field.
func DecodeRegister(bits uint8) Register {
	return Register(bits & 0x7)
}

// RegisterPair is a 16-bit register pair operand, as encoded in a 2-bit
// opcode field. Pairs are named by their high register.
type RegisterPair uint8

//go:generate go tool stringer -linecomment -type=RegisterPair
const (
	PAIR_BC = RegisterPair(0) // B
	PAIR_DE = RegisterPair(1) // D
	PAIR_HL = RegisterPair(2) // H
	PAIR_SP = RegisterPair(3) // SP
)

// DecodeRegisterPair decodes a register pair from the low 2 bits of a field.
func DecodeRegisterPair(bits uint8) RegisterPair {
	return RegisterPair(bits & 0x3)
}

// PushPopPair is the register pair operand of PUSH and POP, where code 3
// selects the program status word rather than the stack pointer.
type PushPopPair uint8

//go:generate go tool stringer -linecomment -type=PushPopPair
const (
	PUSH_BC  = PushPopPair(0) // B
	PUSH_DE  = PushPopPair(1) // D
	PUSH_HL  = PushPopPair(2) // H
	PUSH_PSW = PushPopPair(3) // PSW
)

// DecodePushPopPair decodes a PUSH/POP pair from the low 2 bits of a field.
func DecodePushPopPair(bits uint8) PushPopPair {
	return PushPopPair(bits & 0x3)
}

// Condition is a branch condition, as encoded in a 3-bit opcode field.
// Even codes require the flag clear, odd codes require it set.
type Condition uint8

//go:generate go tool stringer -linecomment -type=Condition
const (
	COND_NZ = Condition(0) // NZ
	COND_Z  = Condition(1) // Z
	COND_NC = Condition(2) // NC
	COND_C  = Condition(3) // C
	COND_PO = Condition(4) // PO
	COND_PE = Condition(5) // PE
	COND_P  = Condition(6) // P
	COND_M  = Condition(7) // M
)

var _condition_flags = [8]uint8{
	FLAG_Z, FLAG_Z,
	FLAG_C, FLAG_C,
	FLAG_P, FLAG_P,
	FLAG_S, FLAG_S,
}

// DecodeCondition decodes a condition from the low 3 bits of a field.
func DecodeCondition(bits uint8) Condition {
	return Condition(bits & 0x7)
}

// Flag returns the flag bit tested by the condition.
func (cc Condition) Flag() uint8 {
	return _condition_flags[cc&0x7]
}

// WhenSet returns true if the condition holds when its flag is set.
func (cc Condition) WhenSet() bool {
	return (cc & 1) == 1
}

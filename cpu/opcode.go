package cpu

// executor executes a decoded opcode, returning its cycle cost.
type executor func(cpu *Cpu, op uint8) (cycles int)

// _dispatch maps every opcode to its executor. Opcodes the 8080 does not
// define are nil.
var _dispatch [256]executor

func init() {
	for n := range len(_dispatch) {
		_dispatch[n] = decode(uint8(n))
	}
}

func opDst(op uint8) Register {
	return DecodeRegister(op >> 3)
}

func opSrc(op uint8) Register {
	return DecodeRegister(op)
}

func opPair(op uint8) RegisterPair {
	return DecodeRegisterPair(op >> 4)
}

func opPushPop(op uint8) PushPopPair {
	return DecodePushPopPair(op >> 4)
}

func opCond(op uint8) Condition {
	return DecodeCondition(op >> 3)
}

func opAlu(op uint8) uint8 {
	return (op >> 3) & 0x7
}

// memCost returns the register cost, or the memory cost for REG_M.
func memCost(reg Register, regCycles int, memCycles int) int {
	if reg == REG_M {
		return memCycles
	}
	return regCycles
}

// decode selects the executor for an opcode from its family bits.
func decode(op uint8) executor {
	switch op {
	case 0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38:
		return execNop
	case 0x02, 0x12:
		return execStax
	case 0x0a, 0x1a:
		return execLdax
	case 0x22:
		return execShld
	case 0x2a:
		return execLhld
	case 0x32:
		return execSta
	case 0x3a:
		return execLda
	case 0x07, 0x0f, 0x17, 0x1f, 0x27, 0x2f, 0x37, 0x3f:
		return execAccumulator
	case 0x76:
		return execHlt
	case 0xc3:
		return execJmp
	case 0xc9:
		return execRet
	case 0xcd:
		return execCall
	case 0xd3:
		return execOut
	case 0xdb:
		return execIn
	case 0xe3:
		return execXthl
	case 0xe9:
		return execPchl
	case 0xeb:
		return execXchg
	case 0xf3:
		return execDi
	case 0xfb:
		return execEi
	case 0xf9:
		return execSphl
	case 0xcb, 0xd9, 0xdd, 0xed, 0xfd:
		return nil
	}

	switch {
	case op&0xcf == 0x01:
		return execLxi
	case op&0xcf == 0x03:
		return execInx
	case op&0xcf == 0x09:
		return execDad
	case op&0xcf == 0x0b:
		return execDcx
	case op&0xc7 == 0x04:
		return execInr
	case op&0xc7 == 0x05:
		return execDcr
	case op&0xc7 == 0x06:
		return execMvi
	case op&0xc0 == 0x40:
		return execMov
	case op&0xc0 == 0x80:
		return execAlu
	case op&0xc7 == 0xc0:
		return execRcc
	case op&0xcf == 0xc1:
		return execPop
	case op&0xc7 == 0xc2:
		return execJcc
	case op&0xc7 == 0xc4:
		return execCcc
	case op&0xcf == 0xc5:
		return execPush
	case op&0xc7 == 0xc6:
		return execAluImm
	case op&0xc7 == 0xc7:
		return execRst
	}

	return nil
}

func execNop(cpu *Cpu, op uint8) int {
	return 4
}

func execHlt(cpu *Cpu, op uint8) int {
	cpu.Halted = true
	return 7
}

func execMov(cpu *Cpu, op uint8) int {
	dst, src := opDst(op), opSrc(op)
	cpu.SetRegister(dst, cpu.Register(src))
	if dst == REG_M || src == REG_M {
		return 7
	}
	return 5
}

func execMvi(cpu *Cpu, op uint8) int {
	dst := opDst(op)
	cpu.SetRegister(dst, cpu.fetch())
	return memCost(dst, 7, 10)
}

func execInr(cpu *Cpu, op uint8) int {
	reg := opDst(op)
	cpu.SetRegister(reg, cpu.inr(cpu.Register(reg)))
	return memCost(reg, 5, 10)
}

func execDcr(cpu *Cpu, op uint8) int {
	reg := opDst(op)
	cpu.SetRegister(reg, cpu.dcr(cpu.Register(reg)))
	return memCost(reg, 5, 10)
}

func execAlu(cpu *Cpu, op uint8) int {
	src := opSrc(op)
	cpu.alu(opAlu(op), cpu.Register(src))
	return memCost(src, 4, 7)
}

func execAluImm(cpu *Cpu, op uint8) int {
	cpu.alu(opAlu(op), cpu.fetch())
	return 7
}

func execLxi(cpu *Cpu, op uint8) int {
	cpu.SetPair(opPair(op), cpu.fetch16())
	return 10
}

func execDad(cpu *Cpu, op uint8) int {
	cpu.dad(cpu.Pair(opPair(op)))
	return 10
}

func execInx(cpu *Cpu, op uint8) int {
	rp := opPair(op)
	cpu.SetPair(rp, cpu.Pair(rp)+1)
	return 5
}

func execDcx(cpu *Cpu, op uint8) int {
	rp := opPair(op)
	cpu.SetPair(rp, cpu.Pair(rp)-1)
	return 5
}

func execStax(cpu *Cpu, op uint8) int {
	cpu.mem.Write(cpu.Pair(opPair(op)), cpu.A)
	return 7
}

func execLdax(cpu *Cpu, op uint8) int {
	cpu.A = cpu.mem.Read(cpu.Pair(opPair(op)))
	return 7
}

func execSta(cpu *Cpu, op uint8) int {
	cpu.mem.Write(cpu.fetch16(), cpu.A)
	return 13
}

func execLda(cpu *Cpu, op uint8) int {
	cpu.A = cpu.mem.Read(cpu.fetch16())
	return 13
}

func execShld(cpu *Cpu, op uint8) int {
	cpu.write16(cpu.fetch16(), cpu.HL())
	return 16
}

func execLhld(cpu *Cpu, op uint8) int {
	cpu.SetHL(cpu.read16(cpu.fetch16()))
	return 16
}

// execAccumulator executes the rotates, DAA, CMA, STC, and CMC.
func execAccumulator(cpu *Cpu, op uint8) int {
	switch op {
	case 0x07:
		cpu.rlc()
	case 0x0f:
		cpu.rrc()
	case 0x17:
		cpu.ral()
	case 0x1f:
		cpu.rar()
	case 0x27:
		cpu.daa()
	case 0x2f:
		cpu.A = ^cpu.A
	case 0x37:
		cpu.SetFlag(FLAG_C, true)
	case 0x3f:
		cpu.SetFlag(FLAG_C, !cpu.Flag(FLAG_C))
	}
	return 4
}

func execPush(cpu *Cpu, op uint8) int {
	cpu.push(cpu.PushPop(opPushPop(op)))
	return 11
}

func execPop(cpu *Cpu, op uint8) int {
	cpu.SetPushPop(opPushPop(op), cpu.pop())
	return 10
}

func execJmp(cpu *Cpu, op uint8) int {
	cpu.Pc = cpu.fetch16()
	return 10
}

func execJcc(cpu *Cpu, op uint8) int {
	addr := cpu.fetch16()
	if cpu.Test(opCond(op)) {
		cpu.Pc = addr
	}
	return 10
}

func execCall(cpu *Cpu, op uint8) int {
	addr := cpu.fetch16()
	cpu.push(cpu.Pc)
	cpu.Pc = addr
	return 17
}

func execCcc(cpu *Cpu, op uint8) int {
	addr := cpu.fetch16()
	if !cpu.Test(opCond(op)) {
		return 11
	}
	cpu.push(cpu.Pc)
	cpu.Pc = addr
	return 17
}

func execRet(cpu *Cpu, op uint8) int {
	cpu.Pc = cpu.pop()
	return 10
}

func execRcc(cpu *Cpu, op uint8) int {
	if !cpu.Test(opCond(op)) {
		return 5
	}
	cpu.Pc = cpu.pop()
	return 11
}

func execRst(cpu *Cpu, op uint8) int {
	cpu.push(cpu.Pc)
	cpu.Pc = uint16(op & 0x38)
	return 11
}

func execXthl(cpu *Cpu, op uint8) int {
	value := cpu.read16(cpu.Sp)
	cpu.write16(cpu.Sp, cpu.HL())
	cpu.SetHL(value)
	return 18
}

func execPchl(cpu *Cpu, op uint8) int {
	cpu.Pc = cpu.HL()
	return 5
}

func execSphl(cpu *Cpu, op uint8) int {
	cpu.Sp = cpu.HL()
	return 5
}

func execXchg(cpu *Cpu, op uint8) int {
	de, hl := cpu.DE(), cpu.HL()
	cpu.SetDE(hl)
	cpu.SetHL(de)
	return 4
}

func execDi(cpu *Cpu, op uint8) int {
	cpu.Interrupts = false
	return 4
}

func execEi(cpu *Cpu, op uint8) int {
	cpu.Interrupts = true
	return 4
}

func execIn(cpu *Cpu, op uint8) int {
	cpu.A = cpu.In(cpu.fetch())
	return 10
}

func execOut(cpu *Cpu, op uint8) int {
	cpu.Out(cpu.fetch(), cpu.A)
	return 10
}

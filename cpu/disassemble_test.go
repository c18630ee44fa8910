package cpu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisassemble(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		code   [3]uint8
		text   string
		length int
	}){
		{[3]uint8{0x00}, "NOP", 1},
		{[3]uint8{0x08}, "NOP", 1},
		{[3]uint8{0x01, 0x34, 0x12}, "LXI B,0x1234", 3},
		{[3]uint8{0x31, 0x00, 0xf0}, "LXI SP,0xf000", 3},
		{[3]uint8{0x02}, "STAX B", 1},
		{[3]uint8{0x1a}, "LDAX D", 1},
		{[3]uint8{0x23}, "INX H", 1},
		{[3]uint8{0x39}, "DAD SP", 1},
		{[3]uint8{0x3b}, "DCX SP", 1},
		{[3]uint8{0x34}, "INR M", 1},
		{[3]uint8{0x0d}, "DCR C", 1},
		{[3]uint8{0x3e, 0x42}, "MVI A,0x42", 2},
		{[3]uint8{0x07}, "RLC", 1},
		{[3]uint8{0x27}, "DAA", 1},
		{[3]uint8{0x22, 0x00, 0x20}, "SHLD 0x2000", 3},
		{[3]uint8{0x3a, 0xcd, 0xab}, "LDA 0xabcd", 3},
		{[3]uint8{0x76}, "HLT", 1},
		{[3]uint8{0x7e}, "MOV A,M", 1},
		{[3]uint8{0x41}, "MOV B,C", 1},
		{[3]uint8{0x86}, "ADD M", 1},
		{[3]uint8{0xbf}, "CMP A", 1},
		{[3]uint8{0xc0}, "RNZ", 1},
		{[3]uint8{0xf1}, "POP PSW", 1},
		{[3]uint8{0xc5}, "PUSH B", 1},
		{[3]uint8{0xda, 0x00, 0x01}, "JC 0x0100", 3},
		{[3]uint8{0xec, 0x00, 0x01}, "CPE 0x0100", 3},
		{[3]uint8{0xc3, 0x00, 0x01}, "JMP 0x0100", 3},
		{[3]uint8{0xcd, 0x00, 0x01}, "CALL 0x0100", 3},
		{[3]uint8{0xc9}, "RET", 1},
		{[3]uint8{0xfe, 0x0d}, "CPI 0x0d", 2},
		{[3]uint8{0xe6, 0x7f}, "ANI 0x7f", 2},
		{[3]uint8{0xff}, "RST 7", 1},
		{[3]uint8{0xd3, 0x00}, "OUT 0x00", 2},
		{[3]uint8{0xdb, 0x02}, "IN 0x02", 2},
		{[3]uint8{0xe3}, "XTHL", 1},
		{[3]uint8{0xeb}, "XCHG", 1},
		{[3]uint8{0xfb}, "EI", 1},
		{[3]uint8{0xcb}, "DB 0xcb", 1},
		{[3]uint8{0xfd}, "DB 0xfd", 1},
	}

	for _, entry := range table {
		text, length := Disassemble(entry.code)
		assert.Equal(entry.text, text, "0x%02x", entry.code[0])
		assert.Equal(entry.length, length, "0x%02x", entry.code[0])
	}
}

func TestDisassembleCoversAll(t *testing.T) {
	assert := assert.New(t)

	for n := range 256 {
		text, length := Disassemble([3]uint8{uint8(n), 0x34, 0x12})
		assert.NotEmpty(text, "0x%02x", n)
		assert.Contains([]int{1, 2, 3}, length, "0x%02x", n)
		if _dispatch[n] == nil {
			assert.True(strings.HasPrefix(text, "DB "), "0x%02x", n)
		}
	}
}

func TestDisassembleAt(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpu(0x100, 0x3e, 0x42, 0x76)

	text, length := cpu.Disassemble(0x100)
	assert.Equal("MVI A,0x42", text)
	assert.Equal(2, length)

	text, length = cpu.Disassemble(0x102)
	assert.Equal("HLT", text)
	assert.Equal(1, length)
}

func TestTrace(t *testing.T) {
	assert := assert.New(t)

	cpu := newCpu(0x100, 0x3e, 0x42, 0x76)
	cpu.SetFlag(FLAG_Z, true)
	cpu.SetFlag(FLAG_C, true)

	assert.Equal("-Z--C", FlagString(cpu.F))
	assert.Equal("SZAPC", FlagString(0xff))

	trace := cpu.Trace()
	assert.True(strings.HasPrefix(trace, "0100: MVI A,0x42"), trace)
	assert.Contains(trace, "SP=f000")
	assert.Contains(trace, "F=-Z--C")

	state := cpu.String()
	assert.Contains(state, "   pc: 0100\n")
	assert.Contains(state, "   sp: F000\n")
	assert.Contains(state, "flags: 43 -Z--C\n")
}

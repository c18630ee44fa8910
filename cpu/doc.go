// Package cpu implements the Intel 8080 processor core.
//
// The Cpu holds the register file (A, B, C, D, E, H, L, the flags byte F, the
// stack pointer and program counter), an interval Timer hard-wired to ports
// 0x30-0x32, and an I/O Bus for every other port. Memory is reached only
// through the memory.Memory capability.
//
// Each call to Step either delivers a pending timer interrupt, as an RST 7, or
// fetches and executes one instruction through a 256-entry dispatch table,
// returning the instruction's cycle cost. The cost is also fed to the Timer.
//
// The package also provides a disassembler covering the full opcode space, and
// a one-line trace and multi-line state dump for diagnostics.
package cpu

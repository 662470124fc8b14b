// Package cpu implements the processor and assembler for the sim16 system.
//
// The CPU consists of a program counter into an instruction ROM, sixteen
// 16-bit general-purpose registers, an ALU with zero/sign/carry flags, and
// a word addressed data RAM reached through the ld and st instructions.
// Debugging is supported with breakpoints, single steps, and direct
// program counter changes.
//
// The assembler translates mnemonic source into a Program image in two
// passes: lines are recognized into raw instructions and label
// definitions, then every raw instruction is resolved against the
// completed label table and encoded into a 16-bit Code.
package cpu

package cpu

import (
	"fmt"
)

// CodeClass is the type of opcode class.
type CodeClass int

//go:generate go tool stringer -linecomment -type=CodeClass
const (
	OP_JUMP = CodeClass(0) // jump
	OP_REG2 = CodeClass(1) // reg2
	OP_REG3 = CodeClass(2) // reg3
	OP_NONE = CodeClass(3) // none
)

// CodeCond is a jump condition.
type CodeCond int

//go:generate go tool stringer -linecomment -type=CodeCond
const (
	COND_ALWAYS    = CodeCond(0) // jmp
	COND_ZERO      = CodeCond(1) // jmpz
	COND_SIGN      = CodeCond(2) // jmps
	COND_CARRY     = CodeCond(3) // jmpc
	COND_NOT_ZERO  = CodeCond(4) // jmpnz
	COND_NOT_SIGN  = CodeCond(5) // jmpns
	COND_NOT_CARRY = CodeCond(6) // jmpnc
)

// CodeReg2Op is a two register operation type.
type CodeReg2Op int

//go:generate go tool stringer -linecomment -type=CodeReg2Op
const (
	REG2_OP_MOV  = CodeReg2Op(0) // mov
	REG2_OP_INC  = CodeReg2Op(1) // inc
	REG2_OP_DEC  = CodeReg2Op(2) // dec
	REG2_OP_SHL  = CodeReg2Op(3) // shl
	REG2_OP_SHR  = CodeReg2Op(4) // shr
	REG2_OP_ASHL = CodeReg2Op(5) // ashl
	REG2_OP_ASHR = CodeReg2Op(6) // ashr
	REG2_OP_LD   = CodeReg2Op(7) // ld
	REG2_OP_ST   = CodeReg2Op(8) // st
)

// CodeReg3Op is a three register operation type.
type CodeReg3Op int

//go:generate go tool stringer -linecomment -type=CodeReg3Op
const (
	REG3_OP_ADD = CodeReg3Op(0) // add
	REG3_OP_SUB = CodeReg3Op(1) // sub
	REG3_OP_AND = CodeReg3Op(2) // and
	REG3_OP_OR  = CodeReg3Op(3) // or
)

// Code is a single encoded instruction word.
//
//	jump: 00 ccc ttttttttttt
//	reg2: 01 00 oooo dddd ssss
//	reg3: 10 oo dddd aaaa bbbb
type Code uint16

// MakeCodeJump creates a jump instruction.
func MakeCodeJump(cond CodeCond, target uint16) Code {
	return Code((uint16(OP_JUMP) << 14) | ((uint16(cond) & 0x7) << 11) | (target & 0x7ff))
}

// MakeCodeReg2 creates a two register instruction.
func MakeCodeReg2(op CodeReg2Op, dest, src uint8) Code {
	return Code((uint16(OP_REG2) << 14) | ((uint16(op) & 0xf) << 8) | ((uint16(dest) & 0xf) << 4) | (uint16(src) & 0xf))
}

// MakeCodeReg3 creates a three register instruction.
func MakeCodeReg3(op CodeReg3Op, dest, src_a, src_b uint8) Code {
	return Code((uint16(OP_REG3) << 14) | ((uint16(op) & 0x3) << 12) | ((uint16(dest) & 0xf) << 8) | ((uint16(src_a) & 0xf) << 4) | (uint16(src_b) & 0xf))
}

// Class returns the operation class from the instruction word.
func (code Code) Class() CodeClass {
	return CodeClass((code >> 14) & 0x3)
}

// JumpDecode decodes and returns the jump condition and target line.
func (code Code) JumpDecode() (cond CodeCond, target uint16) {
	word := uint16(code)
	cond = CodeCond((word >> 11) & 0x7)
	target = word & 0x7ff
	return
}

// Reg2Decode decodes and returns the operation, destination and source registers.
func (code Code) Reg2Decode() (op CodeReg2Op, dest, src uint8) {
	word := uint16(code)
	op = CodeReg2Op((word >> 8) & 0xf)
	dest = uint8((word >> 4) & 0xf)
	src = uint8(word & 0xf)
	return
}

// Reg3Decode decodes and returns the operation, destination and both source registers.
func (code Code) Reg3Decode() (op CodeReg3Op, dest, src_a, src_b uint8) {
	word := uint16(code)
	op = CodeReg3Op((word >> 12) & 0x3)
	dest = uint8((word >> 8) & 0xf)
	src_a = uint8((word >> 4) & 0xf)
	src_b = uint8(word & 0xf)
	return
}

// Valid returns true if the word is one of the recognized instructions.
func (code Code) Valid() bool {
	switch code.Class() {
	case OP_JUMP:
		cond, target := code.JumpDecode()
		return cond <= COND_NOT_CARRY && int(target) < ROM_SIZE
	case OP_REG2:
		op, _, _ := code.Reg2Decode()
		return (code>>12)&0x3 == 0 && op <= REG2_OP_ST
	case OP_REG3:
		return true
	}

	return false
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	if !code.Valid() {
		return fmt.Sprintf(".word 0x%04x", uint16(code))
	}

	switch code.Class() {
	case OP_JUMP:
		cond, target := code.JumpDecode()
		out = fmt.Sprintf("%v %v", cond, target)
	case OP_REG2:
		op, dest, src := code.Reg2Decode()
		out = fmt.Sprintf("%v %v, %v", op, dest, src)
	case OP_REG3:
		op, dest, a, b := code.Reg3Decode()
		out = fmt.Sprintf("%v %v, %v, %v", op, dest, a, b)
	}

	return
}

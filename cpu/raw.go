package cpu

import (
	"strconv"
)

// Shape is the form of a recognized instruction line.
type Shape int

const (
	SHAPE_LABEL = Shape(1) // mnemonic label
	SHAPE_REG2  = Shape(2) // mnemonic dest, src
	SHAPE_REG3  = Shape(3) // mnemonic dest, src_a, src_b
)

// RawInstruction is an instruction whose operands have not been validated.
type RawInstruction interface {
	Mnemonic() string
}

// RawLabel is a jump to a label.
type RawLabel struct {
	Op    string
	Label string
}

// RawReg2 is a two register operation.
type RawReg2 struct {
	Op   string
	Dest string
	Src  string
}

// RawReg3 is a three register operation.
type RawReg3 struct {
	Op   string
	Dest string
	SrcA string
	SrcB string
}

func (raw RawLabel) Mnemonic() string { return raw.Op }
func (raw RawReg2) Mnemonic() string  { return raw.Op }
func (raw RawReg3) Mnemonic() string  { return raw.Op }

// NewRawInstruction builds a raw instruction from the mnemonic and
// operand tokens of a line already recognized as the given shape.
func NewRawInstruction(shape Shape, tokens []string) (raw RawInstruction, err error) {
	if len(tokens) != int(shape)+1 {
		err = ErrUnexpectedToken
		return
	}
	for _, token := range tokens {
		if len(token) == 0 {
			err = ErrUnexpectedToken
			return
		}
	}

	switch shape {
	case SHAPE_LABEL:
		raw = RawLabel{Op: tokens[0], Label: tokens[1]}
	case SHAPE_REG2:
		raw = RawReg2{Op: tokens[0], Dest: tokens[1], Src: tokens[2]}
	case SHAPE_REG3:
		raw = RawReg3{Op: tokens[0], Dest: tokens[1], SrcA: tokens[2], SrcB: tokens[3]}
	default:
		err = ErrUnexpectedToken
	}

	return
}

// LabelDef is a label definition found by the grammar.
type LabelDef struct {
	Name   string // Label name.
	Index  int    // Index of the instruction that follows the label.
	LineNo int    // Source line of the definition.
}

// LabelTable maps label names to ROM line indexes.
type LabelTable map[string]int

// BuildLabelTable records every label definition. A label defined
// twice is an ErrLabelDuplicate, wrapped in ErrSyntax for its line.
func BuildLabelTable(defs []LabelDef) (table LabelTable, err error) {
	table = make(LabelTable, len(defs))
	for _, def := range defs {
		_, ok := table[def.Name]
		if ok {
			err = &ErrSyntax{LineNo: def.LineNo, Line: def.Name + ":", Err: ErrLabelDuplicate}
			return
		}
		table[def.Name] = def.Index
	}

	return
}

// jumpMap maps jump mnemonics.
var jumpMap = map[string]CodeCond{
	"jmp":   COND_ALWAYS,
	"jmpz":  COND_ZERO,
	"jmps":  COND_SIGN,
	"jmpc":  COND_CARRY,
	"jmpnz": COND_NOT_ZERO,
	"jmpns": COND_NOT_SIGN,
	"jmpnc": COND_NOT_CARRY,
}

// reg2Map maps two register mnemonics.
var reg2Map = map[string]CodeReg2Op{
	"mov":  REG2_OP_MOV,
	"inc":  REG2_OP_INC,
	"dec":  REG2_OP_DEC,
	"shl":  REG2_OP_SHL,
	"shr":  REG2_OP_SHR,
	"ashl": REG2_OP_ASHL,
	"ashr": REG2_OP_ASHR,
	"ld":   REG2_OP_LD,
	"st":   REG2_OP_ST,
}

// reg3Map maps three register mnemonics.
var reg3Map = map[string]CodeReg3Op{
	"add": REG3_OP_ADD,
	"sub": REG3_OP_SUB,
	"and": REG3_OP_AND,
	"or":  REG3_OP_OR,
}

// parseRegister parses a register index.
func parseRegister(word string) (reg uint8, err error) {
	v64, err := strconv.ParseUint(word, 0, 8)
	if err != nil || v64 >= REGISTER_COUNT {
		err = ErrParseRegister(word)
		return
	}

	reg = uint8(v64)
	return
}

// parseRegisters parses a list of register indexes.
func parseRegisters(words ...string) (regs []uint8, err error) {
	regs = make([]uint8, len(words))
	for n, word := range words {
		regs[n], err = parseRegister(word)
		if err != nil {
			return
		}
	}

	return
}

// Encode resolves and encodes a raw instruction.
func (table LabelTable) Encode(raw RawInstruction) (code Code, err error) {
	switch raw := raw.(type) {
	case RawLabel:
		line, ok := table[raw.Label]
		if !ok {
			err = ErrLabelMissing(raw.Label)
			return
		}
		if line >= ROM_SIZE {
			err = ErrMalformedFile
			return
		}
		cond, ok := jumpMap[raw.Op]
		if !ok {
			err = ErrMnemonic(raw.Op)
			return
		}
		code = MakeCodeJump(cond, uint16(line))
	case RawReg2:
		op, ok := reg2Map[raw.Op]
		if !ok {
			err = ErrMnemonic(raw.Op)
			return
		}
		var regs []uint8
		regs, err = parseRegisters(raw.Dest, raw.Src)
		if err != nil {
			return
		}
		code = MakeCodeReg2(op, regs[0], regs[1])
	case RawReg3:
		op, ok := reg3Map[raw.Op]
		if !ok {
			err = ErrMnemonic(raw.Op)
			return
		}
		var regs []uint8
		regs, err = parseRegisters(raw.Dest, raw.SrcA, raw.SrcB)
		if err != nil {
			return
		}
		code = MakeCodeReg3(op, regs[0], regs[1], regs[2])
	default:
		err = ErrInstructionInvalid
	}

	return
}

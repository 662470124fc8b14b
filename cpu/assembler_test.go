package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assemble(t *testing.T, program []string) (prog *Program) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	return
}

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.ErrorIs(err, ErrMalformedFile)
	assert.Nil(prog)

	prog, err = asm.Parse(strings.NewReader("; only a comment\n\nlabel:\n"))
	assert.ErrorIs(err, ErrMalformedFile)
	assert.Nil(prog)

	assert.Equal("3", asm.Equate["LINENO"])
	assert.Equal("16", asm.Equate["REGISTER_COUNT"])
	assert.Equal("1024", asm.Equate["ROM_SIZE"])
	assert.Equal("4096", asm.Equate["RAM_SIZE"])
}

func TestAssemblerRegisters(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"top: mov 0, 1",
		"add 2, 0, 1",
		"jmpz top",
		"ld 3, 0x4  ; hex register index",
		"st 15,0",
		"ashr 0b11, 7",
	}

	prog := assemble(t, program)

	assert.Equal([]Code{0x4001, 0x8201, 0x0800, 0x4734, 0x48f0, 0x4637}, prog.Codes)
	assert.Equal([]int{1, 2, 3, 4, 5, 6}, prog.Lines)
	assert.Equal(map[string]int{"top": 0}, prog.Labels)
	assert.Empty(prog.Data)
}

func TestAssemblerMnemonics(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"l: jmp l", "jmpz l", "jmps l", "jmpc l", "jmpnz l", "jmpns l", "jmpnc l",
		"mov 1, 2", "inc 1, 2", "dec 1, 2", "shl 1, 2", "shr 1, 2",
		"ashl 1, 2", "ashr 1, 2", "ld 1, 2", "st 1, 2",
		"add 1, 2, 3", "sub 1, 2, 3", "and 1, 2, 3", "or 1, 2, 3",
	}

	prog := assemble(t, program)

	expected := []Code{
		MakeCodeJump(COND_ALWAYS, 0),
		MakeCodeJump(COND_ZERO, 0),
		MakeCodeJump(COND_SIGN, 0),
		MakeCodeJump(COND_CARRY, 0),
		MakeCodeJump(COND_NOT_ZERO, 0),
		MakeCodeJump(COND_NOT_SIGN, 0),
		MakeCodeJump(COND_NOT_CARRY, 0),
		MakeCodeReg2(REG2_OP_MOV, 1, 2),
		MakeCodeReg2(REG2_OP_INC, 1, 2),
		MakeCodeReg2(REG2_OP_DEC, 1, 2),
		MakeCodeReg2(REG2_OP_SHL, 1, 2),
		MakeCodeReg2(REG2_OP_SHR, 1, 2),
		MakeCodeReg2(REG2_OP_ASHL, 1, 2),
		MakeCodeReg2(REG2_OP_ASHR, 1, 2),
		MakeCodeReg2(REG2_OP_LD, 1, 2),
		MakeCodeReg2(REG2_OP_ST, 1, 2),
		MakeCodeReg3(REG3_OP_ADD, 1, 2, 3),
		MakeCodeReg3(REG3_OP_SUB, 1, 2, 3),
		MakeCodeReg3(REG3_OP_AND, 1, 2, 3),
		MakeCodeReg3(REG3_OP_OR, 1, 2, 3),
	}

	assert.Equal(expected, prog.Codes)

	// Disassembly reproduces the source, modulo labels.
	for n, code := range prog.Codes {
		if code.Class() == OP_JUMP {
			continue
		}
		assert.Equal(program[n], code.String())
	}
}

func TestAssemblerLabel(t *testing.T) {
	assert := assert.New(t)

	forward := assemble(t, []string{
		"top: inc 0, 0",
		"jmp skip",
		"dec 1, 1",
		"skip: jmpnz top",
		"jmps end",
		"end:",
	})

	backward := assemble(t, []string{
		"top:",
		"inc 0, 0",
		"skip_back: jmp top",
		"dec 1, 1",
		"jmpnz skip_back",
		"jmps top",
	})

	expected := []Code{
		MakeCodeReg2(REG2_OP_INC, 0, 0),
		MakeCodeJump(COND_ALWAYS, 3),
		MakeCodeReg2(REG2_OP_DEC, 1, 1),
		MakeCodeJump(COND_NOT_ZERO, 0),
		MakeCodeJump(COND_SIGN, 5),
	}
	assert.Equal(expected, forward.Codes)
	assert.Equal(map[string]int{"top": 0, "skip": 3, "end": 5}, forward.Labels)

	// Same encodings, apart from the jump targets.
	assert.Equal(len(forward.Codes), len(backward.Codes))
	for n := range forward.Codes {
		f, b := forward.Codes[n], backward.Codes[n]
		assert.Equal(f.Class(), b.Class())
		if f.Class() == OP_JUMP {
			f_cond, _ := f.JumpDecode()
			b_cond, _ := b.JumpDecode()
			assert.Equal(f_cond, b_cond)
		} else {
			assert.Equal(f, b)
		}
	}
}

func TestAssemblerStackedLabels(t *testing.T) {
	assert := assert.New(t)

	prog := assemble(t, []string{
		"inc 0, 0",
		"one: two:",
		"three: dec 0, 0",
	})

	assert.Equal(map[string]int{"one": 1, "two": 1, "three": 1}, prog.Labels)
	assert.Equal([]string{"one", "three", "two"}, prog.LabelsAt(1))
	assert.Nil(prog.LabelsAt(0))
}

func TestAssemblerData(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", "0x10")

	program := []string{
		".equ COUNTER 3",
		".equ LIMIT $(RAM_SIZE - 1)",
		".data 1, -1, 'A', $(LIMIT), ~0",
		".data $(BASE + 1)",
		"mov COUNTER, 0",
		"add 1, COUNTER, $(COUNTER - 1)",
		"mov $(LINENO), 0",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal([]uint16{1, 0xffff, 'A', 4095, 0xffff, 0x11}, prog.Data)
	assert.Equal([]Code{0x4030, 0x8132, 0x4070}, prog.Codes)
	assert.Equal("3", asm.Equate["COUNTER"])
	assert.Equal("4095", asm.Equate["LIMIT"])
}

func TestAssemblerMalformed(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	full := strings.Repeat("inc 0, 0\n", ROM_SIZE)
	prog, err := asm.Parse(strings.NewReader(full))
	assert.NoError(err)
	assert.Equal(ROM_SIZE, len(prog.Codes))

	_, err = asm.Parse(strings.NewReader(full + "inc 0, 0\n"))
	assert.ErrorIs(err, ErrMalformedFile)

	// A label past the end of a full ROM can not be encoded.
	past := "jmp end\n" + strings.Repeat("inc 0, 0\n", ROM_SIZE-1) + "end:\n"
	_, err = asm.Parse(strings.NewReader(past))
	assert.ErrorIs(err, ErrMalformedFile)

	data := ".data " + strings.Repeat("0, ", RAM_SIZE) + "0\ninc 0, 0\n"
	_, err = asm.Parse(strings.NewReader(data))
	assert.ErrorIs(err, ErrMalformedFile)
}

func TestAssemblerErrSyntax(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	// Various syntax errors
	table := [](struct {
		prog string
		line int
		kind error
	}){
		{"dup:\ndup:\ninc 0, 0\n", 2, ErrLabelDuplicate},
		{"inc 0, 0\njmp nowhere\n", 2, ErrLabelUndefined},
		{"inc 0, 99", 1, ErrInstructionInvalid},
		{"inc 0, 16", 1, ErrInstructionInvalid},
		{"inc r0, 1", 1, ErrInstructionInvalid},
		{"inc -1, 1", 1, ErrInstructionInvalid},
		{"add 0, 1, 0x10", 1, ErrInstructionInvalid},
		{"nop 0, 1", 1, ErrInstructionInvalid},
		{"mul 0, 1, 2", 1, ErrInstructionInvalid},
		{"l: jmpq l", 1, ErrInstructionInvalid},
		{"mov 0,", 1, ErrUnexpectedToken},
		{"add 0, , 1", 1, ErrUnexpectedToken},
		{"halt", 1, ErrSyntaxInvalid},
		{"add 0, 1, 2, 3", 1, ErrSyntaxInvalid},
		{"jmp far away", 1, ErrSyntaxInvalid},
		{"1bad: inc 0, 0", 1, ErrSyntaxInvalid},
		{".bogus 1", 1, ErrSyntaxInvalid},
		{".equ", 1, ErrEquateSyntax},
		{".equ A", 1, ErrEquateSyntax},
		{".equ A 1\n.equ A 2\n", 2, ErrEquateDuplicate},
		{".data 0x10000\ninc 0, 0\n", 1, ErrDataInvalid},
		{".data -0x8001\ninc 0, 0\n", 1, ErrDataInvalid},
		{".data\n", 1, ErrDataInvalid},
		{"inc 0, 0\n.data one\n", 2, ErrDataInvalid},
		{"mov 0, $(\"aaa\")", 1, ErrSyntaxInvalid},
		{"mov 0, $(more(\"aaa\"))", 1, ErrSyntaxInvalid},
		{"mov 0, $(1 +)", 1, ErrSyntaxInvalid},
	}

	for _, entry := range table {
		_, err := asm.Parse(strings.NewReader(entry.prog))
		var se *ErrSyntax
		assert.NotNil(err, entry.prog)
		if err != nil {
			assert.True(errors.As(err, &se), entry.prog)
			if se != nil {
				assert.Equal(entry.line, se.LineNo, entry.prog)
			}
			assert.ErrorIs(err, entry.kind, entry.prog)
		}
	}
}

func TestNewRawInstruction(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		shape  Shape
		tokens []string
		raw    RawInstruction
		err    error
	}){
		{SHAPE_LABEL, []string{"jmp", "top"}, RawLabel{Op: "jmp", Label: "top"}, nil},
		{SHAPE_REG2, []string{"mov", "1", "2"}, RawReg2{Op: "mov", Dest: "1", Src: "2"}, nil},
		{SHAPE_REG3, []string{"add", "1", "2", "3"}, RawReg3{Op: "add", Dest: "1", SrcA: "2", SrcB: "3"}, nil},
		{SHAPE_LABEL, []string{"jmp"}, nil, ErrUnexpectedToken},
		{SHAPE_REG2, []string{"mov", "1"}, nil, ErrUnexpectedToken},
		{SHAPE_REG3, []string{"add", "1", "2"}, nil, ErrUnexpectedToken},
		{SHAPE_REG3, []string{"add", "1", "", "3"}, nil, ErrUnexpectedToken},
		{Shape(0), []string{"nop"}, nil, ErrUnexpectedToken},
	}

	for _, entry := range table {
		raw, err := NewRawInstruction(entry.shape, entry.tokens)
		assert.Equal(entry.err, err, entry.tokens)
		assert.Equal(entry.raw, raw, entry.tokens)
		if raw != nil {
			assert.Equal(entry.tokens[0], raw.Mnemonic())
		}
	}
}

func TestBuildLabelTable(t *testing.T) {
	assert := assert.New(t)

	defs := []LabelDef{
		{Name: "a", Index: 0, LineNo: 1},
		{Name: "b", Index: 4, LineNo: 7},
		{Name: "c", Index: 2, LineNo: 3},
	}
	reversed := []LabelDef{defs[2], defs[1], defs[0]}

	table, err := BuildLabelTable(defs)
	assert.NoError(err)
	other, err := BuildLabelTable(reversed)
	assert.NoError(err)
	assert.Equal(table, other)
	assert.Equal(LabelTable{"a": 0, "b": 4, "c": 2}, table)

	_, err = BuildLabelTable(append(defs, LabelDef{Name: "b", Index: 5, LineNo: 9}))
	assert.ErrorIs(err, ErrLabelDuplicate)
	var se *ErrSyntax
	if assert.ErrorAs(err, &se) {
		assert.Equal(9, se.LineNo)
	}
}

func TestLabelTableEncode(t *testing.T) {
	assert := assert.New(t)

	table := LabelTable{"here": 7, "far": ROM_SIZE}

	code, err := table.Encode(RawLabel{Op: "jmpc", Label: "here"})
	assert.NoError(err)
	assert.Equal(MakeCodeJump(COND_CARRY, 7), code)

	_, err = table.Encode(RawLabel{Op: "jmpc", Label: "there"})
	assert.ErrorIs(err, ErrLabelUndefined)
	assert.Equal(ErrLabelMissing("there"), err)

	_, err = table.Encode(RawLabel{Op: "jmp", Label: "far"})
	assert.ErrorIs(err, ErrMalformedFile)

	_, err = table.Encode(RawLabel{Op: "mov", Label: "here"})
	assert.ErrorIs(err, ErrInstructionInvalid)

	_, err = table.Encode(RawReg2{Op: "add", Dest: "1", Src: "2"})
	assert.ErrorIs(err, ErrInstructionInvalid)

	_, err = table.Encode(RawReg3{Op: "mov", Dest: "1", SrcA: "2", SrcB: "3"})
	assert.ErrorIs(err, ErrInstructionInvalid)

	_, err = table.Encode(nil)
	assert.ErrorIs(err, ErrInstructionInvalid)
}

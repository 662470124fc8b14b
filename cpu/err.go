package cpu

import (
	"errors"

	"github.com/ezrec/sim16/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrIpEmpty      = errors.New(f("ip empty"))
	ErrMemoryBounds = errors.New(f("memory address out of bounds"))
	ErrRomFull      = errors.New(f("rom full"))
	ErrRamFull      = errors.New(f("ram full"))
	ErrTickLimit    = errors.New(f("tick limit reached"))

	// Instruction decode errors
	ErrOpcodeDecode = errors.New(f("decode"))
	ErrOpcodeJump   = errors.New(f("jump"))
	ErrOpcodeReg2   = errors.New(f("reg2"))
	ErrOpcodeReg3   = errors.New(f("reg3"))
	ErrOpcodeOp     = errors.New(f("op"))
	ErrOpcodeArg1   = errors.New(f("arg1"))

	// Assembler errors
	ErrSyntaxInvalid      = errors.New(f("syntax invalid"))
	ErrUnexpectedToken    = errors.New(f("unexpected token"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
	ErrLabelUndefined     = errors.New(f("label undefined"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMalformedFile      = errors.New(f("malformed file"))
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrDataInvalid        = errors.New(f(".data invalid"))
)

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

func (el ErrLabelMissing) Unwrap() error {
	return ErrLabelUndefined
}

type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%04x %v", uint16(eo), Code(eo).String())
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrMnemonic string

func (err ErrMnemonic) Error() string {
	return f("'%v' is not a known mnemonic", string(err))
}

func (err ErrMnemonic) Unwrap() error {
	return ErrInstructionInvalid
}

type ErrParseRegister string

func (err ErrParseRegister) Error() string {
	return f("'%v' is not a register", string(err))
}

func (err ErrParseRegister) Unwrap() error {
	return ErrInstructionInvalid
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

func (err ErrParseNumber) Unwrap() error {
	return ErrDataInvalid
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

func (err ErrParseExpression) Unwrap() error {
	return ErrSyntaxInvalid
}

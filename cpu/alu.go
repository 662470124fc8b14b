package cpu

// Flags are the condition bits consumed by conditional jumps.
type Flags struct {
	Zero  bool // Result was zero.
	Sign  bool // Result had bit 15 set.
	Carry bool // Carry out, or borrow for subtraction.
}

// String returns the flags as 'ZSC', with '-' for a clear flag.
func (fl Flags) String() string {
	out := []byte("---")
	if fl.Zero {
		out[0] = 'Z'
	}
	if fl.Sign {
		out[1] = 'S'
	}
	if fl.Carry {
		out[2] = 'C'
	}
	return string(out)
}

// Test returns true if the jump condition holds for the flags.
func (fl Flags) Test(cond CodeCond) (taken bool, ok bool) {
	ok = true
	switch cond {
	case COND_ALWAYS:
		taken = true
	case COND_ZERO:
		taken = fl.Zero
	case COND_SIGN:
		taken = fl.Sign
	case COND_CARRY:
		taken = fl.Carry
	case COND_NOT_ZERO:
		taken = !fl.Zero
	case COND_NOT_SIGN:
		taken = !fl.Sign
	case COND_NOT_CARRY:
		taken = !fl.Carry
	default:
		ok = false
	}
	return
}

// makeFlags computes the flags of an ALU result.
func makeFlags(output uint16, carry bool) Flags {
	return Flags{
		Zero:  output == 0,
		Sign:  (output & 0x8000) != 0,
		Carry: carry,
	}
}

// doAlu performs a three register ALU action. All arithmetic wraps modulo 2^16.
func doAlu(op CodeReg3Op, a uint16, b uint16) (output uint16, flags Flags, ok bool) {
	var carry bool

	ok = true
	switch op {
	case REG3_OP_ADD:
		sum := uint32(a) + uint32(b)
		output = uint16(sum)
		carry = sum > 0xffff
	case REG3_OP_SUB:
		output = a + ((^b) + 1)
		carry = a < b
	case REG3_OP_AND:
		output = a & b
	case REG3_OP_OR:
		output = a | b
	default:
		ok = false
		return
	}

	flags = makeFlags(output, carry)
	return
}

// doUnary performs the flag setting two register actions.
func doUnary(op CodeReg2Op, input uint16) (output uint16, flags Flags, ok bool) {
	var carry bool

	ok = true
	switch op {
	case REG2_OP_INC:
		output = input + 1
		carry = input == 0xffff
	case REG2_OP_DEC:
		output = input - 1
		carry = input == 0
	case REG2_OP_SHL:
		output = input << 1
		carry = (input & 0x8000) != 0
	case REG2_OP_SHR:
		output = input >> 1
		carry = (input & 1) != 0
	case REG2_OP_ASHL:
		// Carry flags a change of sign.
		output = input << 1
		carry = ((input ^ output) & 0x8000) != 0
	case REG2_OP_ASHR:
		output = uint16(int16(input) >> 1)
		carry = (input & 1) != 0
	default:
		ok = false
		return
	}

	flags = makeFlags(output, carry)
	return
}

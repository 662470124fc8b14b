// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"
	"strings"
)

const (
	REGISTER_COUNT = 16   // Number of general purpose registers.
	ROM_SIZE       = 1024 // Instruction memory, in instructions.
	RAM_SIZE       = 4096 // Data memory, in 16-bit words.
)

var _cpu_defines = map[string]string{
	"REGISTER_COUNT": fmt.Sprintf("%v", REGISTER_COUNT),
	"ROM_SIZE":       fmt.Sprintf("%v", ROM_SIZE),
	"RAM_SIZE":       fmt.Sprintf("%v", RAM_SIZE),
}

// Cpu is the simulation context for the 16-bit processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Pc       uint32                 // Program counter, an index into Rom.
	Register [REGISTER_COUNT]uint16 // Register bank.
	Flags    Flags                  // Condition flags.

	Rom []Code          // Loaded program, at most ROM_SIZE codes.
	Ram [RAM_SIZE]uint16 // Data memory.

	Radix DisplayRadix // Display radix for String().

	Ticks uint64 // Instructions executed since reset.

	breakpoint map[uint32]bool
}

// NewCpu creates a new CPU with an empty ROM.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{
		breakpoint: map[uint32]bool{},
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears the registers and flags.
// - Sets the program counter to the first ROM line.
// - Zeros the tick counter.
// ROM, RAM and breakpoints are kept.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	cpu.Flags = Flags{}
	cpu.Pc = 0
	cpu.Ticks = 0
}

// LoadRom replaces the ROM contents, and resets the CPU.
func (cpu *Cpu) LoadRom(codes []Code) (err error) {
	if len(codes) > ROM_SIZE {
		err = ErrRomFull
		return
	}

	cpu.Rom = slices.Clone(codes)
	cpu.Reset()

	return
}

// LoadRam replaces the RAM contents, zero filling past the end of data,
// and resets the CPU.
func (cpu *Cpu) LoadRam(data []uint16) (err error) {
	if len(data) > RAM_SIZE {
		err = ErrRamFull
		return
	}

	clear(cpu.Ram[:])
	copy(cpu.Ram[:], data)
	cpu.Reset()

	return
}

// LoadProgram loads both the ROM and RAM from a program image.
func (cpu *Cpu) LoadProgram(prog *Program) (err error) {
	err = cpu.LoadRom(prog.Codes)
	if err != nil {
		return
	}

	err = cpu.LoadRam(prog.Data)
	return
}

// ToggleBreakpoint flips the breakpoint on a ROM line.
// Lines outside of the ROM are accepted, and never trigger.
func (cpu *Cpu) ToggleBreakpoint(line uint32) {
	if cpu.breakpoint == nil {
		cpu.breakpoint = map[uint32]bool{}
	}

	if cpu.breakpoint[line] {
		delete(cpu.breakpoint, line)
	} else {
		cpu.breakpoint[line] = true
	}
}

// ClearBreakpoints removes all breakpoints.
func (cpu *Cpu) ClearBreakpoints() {
	clear(cpu.breakpoint)
}

// HasBreakpoint returns true if the line has a breakpoint.
func (cpu *Cpu) HasBreakpoint(line uint32) bool {
	return cpu.breakpoint[line]
}

// Breakpoints returns the breakpoint lines in ascending order.
func (cpu *Cpu) Breakpoints() iter.Seq[uint32] {
	return slices.Values(slices.Sorted(maps.Keys(cpu.breakpoint)))
}

// JumpPc sets the program counter, without validation.
func (cpu *Cpu) JumpPc(line uint32) {
	cpu.Pc = line
}

// SetRadix sets the display radix.
func (cpu *Cpu) SetRadix(radix DisplayRadix) {
	cpu.Radix = radix
}

// Format renders a value in the current display radix.
func (cpu *Cpu) Format(value uint16) string {
	return cpu.Radix.Format(value)
}

// formatLine renders a ROM line index in the current display radix.
func (cpu *Cpu) formatLine(line uint32) string {
	if line > 0xffff {
		return fmt.Sprintf("%v", line)
	}
	return cpu.Format(uint16(line))
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "% 5s: %v\n", "pc", cpu.formatLine(cpu.Pc))
	for n, val := range cpu.Register {
		fmt.Fprintf(&sb, "% 5s: %v\n", fmt.Sprintf("r%d", n), cpu.Format(val))
	}
	fmt.Fprintf(&sb, "% 5s: %v\n", "flags", cpu.Flags)

	var lines []string
	for line := range cpu.Breakpoints() {
		lines = append(lines, cpu.formatLine(line))
	}
	if len(lines) == 0 {
		lines = append(lines, "-")
	}
	fmt.Fprintf(&sb, "% 5s: %v\n", "break", strings.Join(lines, " "))

	sb.WriteString(cpu.Listing(int(cpu.Pc)-4, int(cpu.Pc)+5))

	return sb.String()
}

// Listing renders the ROM lines in [from, to), marking the program
// counter with '>' and breakpoints with '*'.
func (cpu *Cpu) Listing(from, to int) string {
	var sb strings.Builder

	from = max(from, 0)
	to = min(to, len(cpu.Rom))
	for line := from; line < to; line++ {
		mark := []byte("  ")
		if uint32(line) == cpu.Pc {
			mark[0] = '>'
		}
		if cpu.HasBreakpoint(uint32(line)) {
			mark[1] = '*'
		}
		fmt.Fprintf(&sb, "%s%5s %v\n", mark, cpu.formatLine(uint32(line)), cpu.Rom[line])
	}

	return sb.String()
}

// FetchCode fetches the instruction at the program counter.
// ErrIpEmpty is returned once the program counter leaves the ROM.
func (cpu *Cpu) FetchCode() (code Code, err error) {
	if cpu.Pc >= uint32(len(cpu.Rom)) {
		err = ErrIpEmpty
		return
	}

	code = cpu.Rom[cpu.Pc]
	return
}

// Tick executes a single CPU instruction cycle.
func (cpu *Cpu) Tick() (err error) {
	code, err := cpu.FetchCode()
	if err != nil {
		return
	}

	err = cpu.Execute(code)
	return
}

// Run executes instructions until the end of the program or a fault.
// If breakpoints is set, it also stops before a line with a breakpoint,
// after at least one instruction. The count of executed instructions
// is returned.
func (cpu *Cpu) Run(breakpoints bool) (ticks uint64, err error) {
	return cpu.RunLimit(breakpoints, 0)
}

// RunLimit is Run, stopping with ErrTickLimit after limit instructions
// if limit is not zero. A program that ends at the limit is a normal stop.
func (cpu *Cpu) RunLimit(breakpoints bool, limit uint64) (ticks uint64, err error) {
	for {
		if ticks > 0 && breakpoints && cpu.breakpoint[cpu.Pc] {
			return
		}
		if limit != 0 && ticks == limit {
			_, err = cpu.FetchCode()
			if err == nil {
				err = ErrTickLimit
			} else if err == ErrIpEmpty {
				err = nil
			}
			return
		}
		err = cpu.Tick()
		if err == ErrIpEmpty {
			err = nil
			return
		}
		if err != nil {
			return
		}
		ticks++
	}
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcode(code), err)
		}
	}()
	if cpu.Verbose {
		log.Printf("%03x: %v", cpu.Pc, code)
	}

	next_pc := cpu.Pc + 1

	switch code.Class() {
	case OP_JUMP:
		cond, target := code.JumpDecode()
		if int(target) >= ROM_SIZE {
			err = errors.Join(ErrOpcodeDecode, ErrOpcodeJump, ErrOpcodeArg1)
			return
		}
		taken, ok := cpu.Flags.Test(cond)
		if !ok {
			err = errors.Join(ErrOpcodeDecode, ErrOpcodeJump, ErrOpcodeOp)
			return
		}
		if taken {
			next_pc = uint32(target)
		}
	case OP_REG2:
		if (code>>12)&0x3 != 0 {
			err = errors.Join(ErrOpcodeDecode, ErrOpcodeReg2)
			return
		}
		op, dst, src := code.Reg2Decode()
		input := cpu.Register[src]
		switch op {
		case REG2_OP_MOV:
			cpu.Register[dst] = input
		case REG2_OP_LD:
			if int(input) >= RAM_SIZE {
				err = errors.Join(ErrOpcodeReg2, ErrMemoryBounds)
				return
			}
			cpu.Register[dst] = cpu.Ram[input]
		case REG2_OP_ST:
			// dst names the value, src the address.
			if int(input) >= RAM_SIZE {
				err = errors.Join(ErrOpcodeReg2, ErrMemoryBounds)
				return
			}
			cpu.Ram[input] = cpu.Register[dst]
		default:
			output, flags, ok := doUnary(op, input)
			if !ok {
				err = errors.Join(ErrOpcodeDecode, ErrOpcodeReg2, ErrOpcodeOp)
				return
			}
			cpu.Register[dst] = output
			cpu.Flags = flags
		}
	case OP_REG3:
		op, dst, a, b := code.Reg3Decode()
		output, flags, ok := doAlu(op, cpu.Register[a], cpu.Register[b])
		if !ok {
			err = errors.Join(ErrOpcodeDecode, ErrOpcodeReg3, ErrOpcodeOp)
			return
		}
		cpu.Register[dst] = output
		cpu.Flags = flags
	default:
		err = ErrOpcodeDecode
		return
	}

	cpu.Pc = next_pc
	cpu.Ticks += 1

	return
}

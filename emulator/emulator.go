// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"maps"

	"github.com/ezrec/sim16/cpu"
	"github.com/ezrec/sim16/internal"
)

const (
	DEFAULT_TICK_LIMIT = 1 << 24 // Default instruction limit for Run.
)

var _emulator_defines = map[string]string{
	"TICK_LIMIT": fmt.Sprintf("%v", DEFAULT_TICK_LIMIT),
}

// Emulator state. CPU plus the program image it was loaded from.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program image.

	TickLimit uint64 // Instruction limit for Run, zero for none.
}

// NewEmulator creates a new emulator, with an empty program.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:       cpu.NewCpu(),
		Program:   &cpu.Program{},
		TickLimit: DEFAULT_TICK_LIMIT,
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Load validates a program image, and resets the emulator with it.
func (emu *Emulator) Load(prog *cpu.Program) (err error) {
	err = prog.Validate()
	if err != nil {
		return
	}

	emu.Program = prog
	err = emu.Reset()
	return
}

// Reset reloads the ROM and RAM from the program image, and resets the CPU.
// Breakpoints are kept.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.LoadProgram(emu.Program)
	return
}

// LineNo returns the source line number of the instruction at the program counter.
func (emu *Emulator) LineNo() int {
	return emu.Program.LineNo(emu.Cpu.Pc)
}

// Tick performs a single tick of the emulator.
// done is set once the program counter has left the program.
func (emu *Emulator) Tick() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrIpEmpty) {
		err = nil
		done = true
	}

	return
}

// Run executes until the end of the program, a fault, the tick limit,
// or (if breakpoints is set) a breakpoint.
func (emu *Emulator) Run(breakpoints bool) (ticks uint64, err error) {
	emu.Cpu.Verbose = emu.Verbose

	ticks, err = emu.Cpu.RunLimit(breakpoints, emu.TickLimit)
	if err != nil {
		err = &ErrRuntime{LineNo: emu.LineNo(), Err: err}
	}

	return
}

// Done returns true if the program counter has left the program.
func (emu *Emulator) Done() bool {
	_, err := emu.Cpu.FetchCode()
	return err != nil
}

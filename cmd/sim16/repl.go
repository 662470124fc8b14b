package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ezrec/sim16/cpu"
	"github.com/ezrec/sim16/emulator"
	"github.com/ezrec/sim16/translate"
)

var f = translate.From

const helpText = `Usage:
  p  | print             Print current state
  pa | print auto        Toggle state auto-printing
  d  | radix <u/s/x/b>   Select the display radix
  r  | run               Run until next breakpoint
  ra | run all           Run to the end
  s  | step              Execute one instruction
  b  | breakpoint <line> Toggle breakpoint on line
  bc | breakpoint clear  Remove all breakpoints
  j  | jump <line>       Set program counter to line
  x  | reset             Reset processor
  e  | benchmark         Emulation speed benchmark
  h  | help              Print help
  q  | quit              Exit
`

// Repl is the interactive command loop around an emulator.
type Repl struct {
	Emulator  *emulator.Emulator
	Output    io.Writer
	Prompt    string
	AutoPrint bool
	Instances int // Parallel benchmark instances.
}

func (repl *Repl) show() {
	if repl.AutoPrint {
		fmt.Fprintln(repl.Output, repl.Emulator.Cpu)
	}
}

func (repl *Repl) fail(err error) {
	fmt.Fprintln(repl.Output, f("Emulation error: %v", err))
}

func (repl *Repl) line(arg string) (line uint32, ok bool) {
	v64, err := strconv.ParseUint(arg, 0, 32)
	if err != nil {
		fmt.Fprintln(repl.Output, f("Argument error"))
		return
	}

	return uint32(v64), true
}

func (repl *Repl) benchmark() {
	prog, err := emulator.BenchmarkProgram()
	if err != nil {
		repl.fail(err)
		return
	}

	bench := emulator.NewEmulator()
	bench.Verbose = repl.Emulator.Verbose
	err = bench.Load(prog)
	if err != nil {
		repl.fail(err)
		return
	}

	ticks, elapsed, err := bench.Benchmark(context.Background(), repl.Instances)
	if err != nil {
		repl.fail(err)
		return
	}

	fmt.Fprintln(repl.Output, f("Emulation speed: %.2f MHz", float64(ticks)/elapsed.Seconds()/1e6))
}

// Execute runs a single command line. quit is set on a request to exit.
func (repl *Repl) Execute(text string) (quit bool) {
	emu := repl.Emulator

	words := strings.Fields(text)
	if len(words) == 0 {
		words = []string{"s"}
	}

	switch words[0] {
	case "p", "print":
		fmt.Fprintln(repl.Output, emu.Cpu)
	case "pa":
		repl.AutoPrint = !repl.AutoPrint
		fmt.Fprintln(repl.Output, f("Auto-print: %v", repl.AutoPrint))
	case "d", "radix":
		if len(words) != 2 {
			fmt.Fprintln(repl.Output, f("Argument error"))
			break
		}
		radix, ok := cpu.ParseRadix(words[1])
		if !ok {
			fmt.Fprintln(repl.Output, f("Argument error"))
			break
		}
		emu.Cpu.SetRadix(radix)
		repl.show()
	case "r", "run", "ra":
		_, err := emu.Run(words[0] != "ra")
		if err != nil {
			repl.fail(err)
			break
		}
		repl.show()
	case "s", "step":
		_, err := emu.Tick()
		if err != nil {
			repl.fail(err)
			break
		}
		repl.show()
	case "b", "breakpoint":
		if len(words) == 2 && words[1] == "clear" {
			emu.Cpu.ClearBreakpoints()
			repl.show()
			break
		}
		if len(words) != 2 {
			fmt.Fprintln(repl.Output, f("Argument error"))
			break
		}
		line, ok := repl.line(words[1])
		if !ok {
			break
		}
		emu.Cpu.ToggleBreakpoint(line)
		repl.show()
	case "bc":
		emu.Cpu.ClearBreakpoints()
		repl.show()
	case "j", "jump":
		if len(words) != 2 {
			fmt.Fprintln(repl.Output, f("Argument error"))
			break
		}
		line, ok := repl.line(words[1])
		if !ok {
			break
		}
		emu.Cpu.JumpPc(line)
		repl.show()
	case "x", "reset":
		err := emu.Reset()
		if err != nil {
			repl.fail(err)
			break
		}
		repl.show()
	case "e", "benchmark":
		repl.benchmark()
	case "h", "help":
		fmt.Fprint(repl.Output, helpText)
	case "q", "quit":
		quit = true
	default:
		fmt.Fprintln(repl.Output, f("Command error"))
	}

	return
}

// Loop reads commands until end of input, or a quit command.
func (repl *Repl) Loop(input io.Reader) (err error) {
	scanner := bufio.NewScanner(input)

	repl.show()
	for {
		fmt.Fprintf(repl.Output, "%v >> ", repl.Prompt)
		if !scanner.Scan() {
			break
		}
		if repl.Execute(scanner.Text()) {
			break
		}
	}

	err = scanner.Err()
	return
}

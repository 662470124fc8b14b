// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/ezrec/sim16/cpu"
	"github.com/ezrec/sim16/emulator"
	"github.com/ezrec/sim16/translate"
)

func main() {
	var compile string
	var binary string
	var output string
	var run bool
	var bench bool
	var instances int
	var limit uint64
	var lang string
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s16 file to assemble")
	flag.StringVar(&binary, "b", "", "Binary image to load")
	flag.StringVar(&output, "o", "", "Write the binary image, do not execute")
	flag.BoolVar(&run, "run", false, "Run to completion, and print the state")
	flag.BoolVar(&bench, "e", false, "Run the emulation speed benchmark")
	flag.IntVar(&instances, "j", runtime.NumCPU(), "Benchmark parallelism")
	flag.Uint64Var(&limit, "limit", emulator.DEFAULT_TICK_LIMIT, "Instruction limit for a run, 0 for none")
	flag.StringVar(&lang, "lang", "", "Message language, as a locale name")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if len(lang) != 0 {
		translate.SetLanguage(lang)
	}

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(binary) != 0 {
		log.Fatalf("%v: -c and -b are exclusive", os.Args[0])
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.TickLimit = limit

	var prog *cpu.Program
	var err error

	switch {
	case len(compile) != 0:
		// Assemble a source file.
		var inf *os.File
		inf, err = os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		prog, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	case len(binary) != 0:
		// Load a binary image.
		var data []byte
		data, err = os.ReadFile(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		prog = &cpu.Program{}
		err = prog.UnmarshalBinary(data)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
	default:
		prog, err = emulator.BenchmarkProgram()
		if err != nil {
			log.Fatal(err)
		}
	}

	if len(output) != 0 {
		var data []byte
		data, err = prog.MarshalBinary()
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		err = os.WriteFile(output, data, 0o644)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	err = emu.Load(prog)
	if err != nil {
		log.Fatal(err)
	}

	switch {
	case bench:
		var ticks uint64
		var elapsed time.Duration
		ticks, elapsed, err = emu.Benchmark(context.Background(), instances)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(f("Emulation speed: %.2f MHz", float64(ticks)/elapsed.Seconds()/1e6))
	case run:
		_, err = emu.Run(false)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(emu.Cpu)
	default:
		repl := &Repl{
			Emulator:  emu,
			Output:    os.Stdout,
			Prompt:    filepath.Base(os.Args[0]),
			AutoPrint: true,
			Instances: instances,
		}
		err = repl.Loop(os.Stdin)
		if err != nil {
			log.Fatal(err)
		}
	}
}

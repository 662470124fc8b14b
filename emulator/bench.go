package emulator

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ezrec/sim16/cpu"
)

// BenchmarkSource counts a register down from 0x4000.
const BenchmarkSource = `; benchmark
.data 0x4000
    ld 1, 0
loop:
    dec 1, 1
    jmpnz loop
`

// benchmarkSlice is the number of ticks between context checks.
const benchmarkSlice = 1 << 16

// BenchmarkProgram assembles BenchmarkSource.
func BenchmarkProgram() (prog *cpu.Program, err error) {
	asm := &cpu.Assembler{}
	prog, err = asm.Parse(strings.NewReader(BenchmarkSource))
	return
}

// Benchmark runs the loaded program to completion on instances independent
// emulators in parallel, ignoring breakpoints and the tick limit.
// It returns the total instructions executed, and the wall clock elapsed.
func (emu *Emulator) Benchmark(ctx context.Context, instances int) (ticks uint64, elapsed time.Duration, err error) {
	if instances < 1 {
		instances = 1
	}

	counts := make([]uint64, instances)

	eg, ctx := errgroup.WithContext(ctx)

	start := time.Now()
	for n := range instances {
		eg.Go(func() error {
			runner := NewEmulator()
			err := runner.Load(emu.Program)
			if err != nil {
				return err
			}
			for {
				err = ctx.Err()
				if err != nil {
					return err
				}
				var count uint64
				count, err = runner.Cpu.RunLimit(false, benchmarkSlice)
				counts[n] += count
				if errors.Is(err, cpu.ErrTickLimit) {
					continue
				}
				if err != nil {
					return &ErrRuntime{LineNo: runner.LineNo(), Err: err}
				}
				return nil
			}
		})
	}

	err = eg.Wait()
	elapsed = time.Since(start)

	for _, count := range counts {
		ticks += count
	}

	if emu.Verbose {
		log.Printf("benchmark: %v instances, %v ticks, %v", instances, ticks, elapsed)
	}

	return
}

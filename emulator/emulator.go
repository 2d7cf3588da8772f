// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"fmt"
	"io"
	"iter"
	"maps"
	"time"

	"github.com/ezrec/sap8/asm"
	"github.com/ezrec/sap8/clock"
	"github.com/ezrec/sap8/cpu"
	"github.com/ezrec/sap8/internal"
	"github.com/ezrec/sap8/microcode"
)

const (
	MEM_SIZE = 16 // Bytes of RAM, shared by program and data.
)

var _emulator_defines = map[string]string{
	"ROM_WORDS": fmt.Sprintf("%v", microcode.ROM_WORDS),
}

// Emulator state. CPU + clock + program listing.
type Emulator struct {
	Verbose  bool        // If set, enables verbose logging.
	*cpu.Cpu             // Reference to the CPU simulation.
	Clock    clock.Clock // Clock source driving the CPU.

	Program *asm.Program // Currently loaded program listing.
}

// New creates an emulator around the default instruction set, with a
// clock of the given backend kind and full-cycle period.
func New(kind clock.Kind, period time.Duration) (emu *Emulator, err error) {
	table, err := microcode.NewTable(microcode.DefaultSet())
	if err != nil {
		return
	}

	c, err := cpu.New(table, MEM_SIZE)
	if err != nil {
		return
	}

	clk, err := clock.NewWithPeriod(kind, period)
	if err != nil {
		return
	}
	c.Attach(clk)

	emu = &Emulator{
		Cpu:   c,
		Clock: clk,
	}
	emu.Cpu.Reset()

	return
}

// Defines returns an iterator over all of the assembler predefines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
		emu.Cpu.Table.Defines(),
	)
}

// Assemble parses a source stream, loads the resulting program, and
// resets the CPU ready to run it.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	a := &asm.Assembler{
		Verbose: emu.Verbose,
		Table:   emu.Cpu.Table,
	}
	for key, value := range emu.Defines() {
		a.Predefine(key, value)
	}

	prog, err := a.Parse(input)
	if err != nil {
		return
	}

	emu.Program = prog
	err = emu.Reset()
	return
}

// Reset the emulator state and reload the program image.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()

	if emu.Program != nil {
		err = emu.Cpu.LoadProgram(emu.Program.Bytes(), uint8(emu.Program.Origin))
	}
	return
}

// LineNo returns the source line number for the current program
// counter, or 0 when no program line maps there.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	line, ok := emu.Program.LineAt(int(emu.Path.PC.Value()))
	if !ok {
		return 0
	}
	return line.LineNo
}

// Run drives the clock until the CPU halts, faults, or the context is
// cancelled. Faults are annotated with the source line of the program
// counter at the time of the fault.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	err = emu.Cpu.Run(ctx)
	if err != nil {
		err = &ErrRuntime{LineNo: emu.LineNo(), Err: err}
	}
	return
}

// Step executes a single instruction. Done reports that the CPU has
// halted.
func (emu *Emulator) Step() (done bool, err error) {
	done, err = emu.Cpu.StepInstruction()
	if err != nil {
		err = &ErrRuntime{LineNo: emu.LineNo(), Err: err}
	}
	return
}

package cpu

import (
	"context"
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"

	"github.com/ezrec/sap8/clock"
	"github.com/ezrec/sap8/microcode"
)

// Cpu composes the sequencer, microcode table and datapath into a
// fetch-decode-execute machine driven by an externally supplied clock.
type Cpu struct {
	Verbose bool

	Table *microcode.Table
	Path  *Datapath
	Seq   *Sequencer

	clk   clock.Clock
	edges uint64
	fault error
}

// New creates a CPU over a built microcode table and a memory of the
// given size.
func New(table *microcode.Table, memSize int) (c *Cpu, err error) {
	dp, err := NewDatapath(memSize)
	if err != nil {
		return
	}

	c = &Cpu{
		Table: table,
		Path:  dp,
		Seq:   NewSequencer(table, dp),
	}
	return
}

// Attach subscribes the CPU to a clock source. The CPU does not own its
// timing source; it only reacts to the edges the clock emits.
func (c *Cpu) Attach(clk clock.Clock) {
	c.clk = clk
	clk.OnRisingEdge(c.onRising)
	clk.OnFallingEdge(c.onFalling)
}

func (c *Cpu) onRising() {
	if c.fault != nil || c.Seq.Halted() {
		return
	}

	err := c.Seq.Rise()
	if err != nil {
		c.fail(err)
		return
	}
	c.edges += 1
}

func (c *Cpu) onFalling() {
	if c.fault != nil || c.Seq.Halted() {
		return
	}

	err := c.Seq.Fall()
	if err != nil {
		c.fail(err)
		return
	}
	c.edges += 1
}

// fail freezes the CPU state for inspection and stops the clock.
func (c *Cpu) fail(err error) {
	c.fault = &Fault{Err: err, Snap: c.Snapshot()}
	if c.Verbose {
		log.Printf("cpu: fault: %v", c.fault)
	}
	if c.clk != nil {
		c.clk.Stop()
	}
}

// Reset returns the CPU to the power-on state: PC and all registers
// zero, flags clear, not halted, sequencer at the universal fetch.
// Memory contents survive, so a loaded program can be re-run.
func (c *Cpu) Reset() {
	if c.Verbose {
		log.Printf("cpu: reset")
	}

	c.Path.Verbose = c.Verbose
	c.Seq.Verbose = c.Verbose

	c.Path.Reset()
	c.Seq.Reset()
	c.edges = 0
	c.fault = nil
}

// LoadProgram copies program bytes into memory at the origin address.
func (c *Cpu) LoadProgram(data []byte, origin uint8) (err error) {
	if int(origin)+len(data) > len(c.Path.Ram) {
		err = ErrProgramSize
		return
	}

	copy(c.Path.Ram[origin:], data)

	if c.Verbose {
		log.Printf("cpu: loaded %d bytes at 0x%02x", len(data), origin)
	}
	return
}

// Run drives the attached clock until the CPU halts, a runtime fault
// freezes it, or the context is cancelled. Cancellation is cooperative:
// it takes effect at a cycle boundary, never mid-cycle.
func (c *Cpu) Run(ctx context.Context) (err error) {
	if c.clk == nil {
		err = ErrNoClock
		return
	}

	c.clk.Start()
	defer c.clk.Stop()

	for !c.Seq.Halted() {
		if c.fault != nil {
			err = c.fault
			return
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			return
		default:
		}
		c.clk.Tick()
	}
	return
}

// StepInstruction executes exactly one full instruction: it steps the
// clock until the sequencer returns to an instruction boundary. Done
// reports that the CPU has halted.
func (c *Cpu) StepInstruction() (done bool, err error) {
	if c.clk == nil {
		err = ErrNoClock
		return
	}
	if c.Seq.Halted() {
		done = true
		return
	}

	for {
		c.clk.Step()
		if c.fault != nil {
			err = c.fault
			return
		}
		if c.Seq.Halted() {
			done = true
			return
		}
		if c.Seq.Boundary() {
			return
		}
	}
}

// Snapshot is a read-only copy of the CPU state after an edge.
type Snapshot struct {
	PC  uint8
	MAR uint8
	IR  uint8
	A   uint8
	B   uint8
	Out uint8

	Flags  Flags
	State  State
	Opcode uint8
	Step   uint8
	Halted bool

	Edges  uint64
	Memory []byte
	Output []byte
}

// Snapshot returns a read-only copy of the full CPU state.
func (c *Cpu) Snapshot() (snap Snapshot) {
	snap = Snapshot{
		PC:  c.Path.PC.Value(),
		MAR: c.Path.MAR.Value(),
		IR:  c.Path.IR.Value(),
		A:   c.Path.A.Value(),
		B:   c.Path.B.Value(),
		Out: c.Path.Out.Value(),

		Flags:  c.Path.Flags,
		State:  c.Seq.State(),
		Opcode: c.Seq.Opcode(),
		Step:   c.Seq.MicroStep(),
		Halted: c.Seq.Halted(),

		Edges:  c.edges,
		Memory: slices.Clone(c.Path.Ram),
		Output: c.Path.Output(),
	}
	return
}

// OutputStream returns the bytes produced so far by OUT-class signals.
func (c *Cpu) OutputStream() []byte {
	return c.Path.Output()
}

// Halted reports whether the CPU reached the HALT terminal state. A
// halt is a normal completion, distinct from Err().
func (c *Cpu) Halted() bool {
	return c.Seq.Halted()
}

// Edges returns the count of clock edges the CPU has consumed.
func (c *Cpu) Edges() uint64 {
	return c.edges
}

// Err returns the fault that froze the CPU, or nil.
func (c *Cpu) Err() error {
	return c.fault
}

// Defines yields assembler predefines describing this CPU.
func (c *Cpu) Defines() iter.Seq2[string, string] {
	defines := map[string]string{
		"RAM_SIZE": fmt.Sprintf("%d", len(c.Path.Ram)),
	}
	return maps.All(defines)
}

// String returns the current CPU state as a string.
func (c *Cpu) String() (text string) {
	snap := c.Snapshot()

	text = fmt.Sprintf("pc=0x%02x mar=0x%02x ir=0x%02x a=0x%02x b=0x%02x out=0x%02x flags=%v %v T%d",
		snap.PC, snap.MAR, snap.IR, snap.A, snap.B, snap.Out,
		snap.Flags, snap.State, snap.Step)
	return
}

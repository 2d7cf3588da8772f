package cpu

import (
	"log"

	"github.com/ezrec/sap8/microcode"
)

// State is the sequencer execution state.
type State int

//go:generate go tool stringer -linecomment -type=State
const (
	STATE_FETCH   = State(0) // fetch
	STATE_EXECUTE = State(1) // execute
	STATE_HALTED  = State(2) // halted
)

// Sequencer selects a control word for every edge pair and advances the
// micro-step counter. In STATE_FETCH the universal fetch pair runs; in
// STATE_EXECUTE the table entry for the current opcode runs; in
// STATE_HALTED edges are ignored until a reset.
type Sequencer struct {
	Verbose bool

	table *microcode.Table
	dp    *Datapath

	state  State
	opcode uint8
	cycles int
	step   uint8

	word    microcode.ControlWord
	pending bool
}

// NewSequencer creates a sequencer over a table and a datapath.
func NewSequencer(table *microcode.Table, dp *Datapath) *Sequencer {
	return &Sequencer{table: table, dp: dp}
}

// Reset returns the sequencer to the cold-reset state: opcode unknown,
// step zero, forcing the universal fetch as the first micro-step.
func (seq *Sequencer) Reset() {
	seq.state = STATE_FETCH
	seq.opcode = 0
	seq.cycles = 0
	seq.step = 0
	seq.pending = false
}

func (seq *Sequencer) State() State {
	return seq.state
}

// Opcode returns the active opcode; valid only in STATE_EXECUTE.
func (seq *Sequencer) Opcode() uint8 {
	return seq.opcode
}

func (seq *Sequencer) MicroStep() uint8 {
	return seq.step
}

func (seq *Sequencer) Halted() bool {
	return seq.state == STATE_HALTED
}

// Boundary reports whether the sequencer sits at an instruction
// boundary, about to begin a fetch.
func (seq *Sequencer) Boundary() bool {
	return seq.state == STATE_FETCH && seq.step == 0 && !seq.pending
}

// precheck decodes the opcode about to be fetched before any state
// changes, so an undefined opcode leaves the CPU exactly as it was
// before the failing fetch.
func (seq *Sequencer) precheck() (err error) {
	addr := seq.dp.PC.Value()
	if int(addr) >= len(seq.dp.Ram) {
		err = &ErrMemoryBounds{Addr: addr, Size: len(seq.dp.Ram)}
		return
	}

	opcode := seq.dp.Ram[addr]
	if !seq.table.Defined(opcode) {
		err = &microcode.ErrDecode{Opcode: opcode}
		return
	}
	return
}

// Rise selects the control word for the current micro-step and applies
// its rising-edge half. A word asserting HALT transitions to
// STATE_HALTED without touching the datapath.
func (seq *Sequencer) Rise() (err error) {
	if seq.state == STATE_HALTED {
		return
	}

	var word microcode.ControlWord
	switch seq.state {
	case STATE_FETCH:
		if seq.step == 0 {
			err = seq.precheck()
			if err != nil {
				return
			}
		}
		word = microcode.FetchSteps[seq.step]
	case STATE_EXECUTE:
		word, err = seq.table.Lookup(seq.opcode, seq.step)
		if err != nil {
			return
		}
	}

	if seq.Verbose {
		log.Printf("seq: %v T%d: %v", seq.state, seq.step, word)
	}

	if word.Has(microcode.HALT) {
		seq.state = STATE_HALTED
		return
	}

	err = seq.dp.Rise(word)
	if err != nil {
		return
	}

	seq.word = word
	seq.pending = true
	return
}

// Fall applies the falling-edge half of the pending control word and
// advances the micro-step counter. At the fetch/execute boundary the
// freshly latched IR becomes the active opcode.
func (seq *Sequencer) Fall() (err error) {
	if seq.state == STATE_HALTED || !seq.pending {
		return
	}
	seq.pending = false

	err = seq.dp.Fall(seq.word)
	if err != nil {
		return
	}

	seq.step += 1
	switch seq.state {
	case STATE_FETCH:
		if int(seq.step) == len(microcode.FetchSteps) {
			seq.opcode = seq.dp.IR.Value()
			desc, _ := seq.table.Descriptor(seq.opcode)
			seq.cycles = desc.Cycles
			seq.state = STATE_EXECUTE
			seq.step = 0
			if seq.Verbose {
				log.Printf("seq: decode %v (0x%02x)", desc.Name, seq.opcode)
			}
		}
	case STATE_EXECUTE:
		if int(seq.step) == seq.cycles {
			seq.state = STATE_FETCH
			seq.step = 0
		}
	}
	return
}

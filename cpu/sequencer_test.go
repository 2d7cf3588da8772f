package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/sap8/microcode"
)

func newSequencer(t *testing.T) (seq *Sequencer, dp *Datapath) {
	t.Helper()

	table, err := microcode.NewTable(microcode.DefaultSet())
	assert.NoError(t, err)

	dp, err = NewDatapath(16)
	assert.NoError(t, err)

	seq = NewSequencer(table, dp)
	seq.Reset()
	return
}

func TestSequencerReset(t *testing.T) {
	assert := assert.New(t)

	seq, _ := newSequencer(t)

	assert.Equal(STATE_FETCH, seq.State())
	assert.Equal(uint8(0), seq.MicroStep())
	assert.False(seq.Halted())
	assert.True(seq.Boundary())
}

// Every instruction consumes the universal fetch plus its declared
// execute cycles before returning to an instruction boundary.
func TestSequencerCycles(t *testing.T) {
	assert := assert.New(t)

	table, err := microcode.NewTable(microcode.DefaultSet())
	assert.NoError(err)

	for _, desc := range table.Descriptors() {
		if desc.Name == "HLT" {
			continue
		}

		dp, err := NewDatapath(16)
		assert.NoError(err)

		seq := NewSequencer(table, dp)
		seq.Reset()
		dp.Ram[0] = desc.Opcode

		steps := 0
		for {
			assert.NoError(seq.Rise(), desc.Name)
			assert.NoError(seq.Fall(), desc.Name)
			steps += 1
			if seq.Boundary() {
				break
			}
		}

		assert.Equal(len(microcode.FetchSteps)+desc.Cycles, steps, desc.Name)
		assert.Equal(desc.Opcode, seq.Opcode(), desc.Name)
	}
}

func TestSequencerHalt(t *testing.T) {
	assert := assert.New(t)

	seq, dp := newSequencer(t)
	dp.Ram[0] = 0x01 // HLT

	steps := 0
	for !seq.Halted() {
		assert.NoError(seq.Rise())
		assert.NoError(seq.Fall())
		steps += 1
	}

	// Fetch pair plus the halting execute step.
	assert.Equal(3, steps)
	assert.False(seq.Boundary())

	// Further edges are ignored.
	assert.NoError(seq.Rise())
	assert.NoError(seq.Fall())
	assert.True(seq.Halted())
	assert.Equal(uint8(0x01), dp.PC.Value())
}

func TestSequencerPrecheck(t *testing.T) {
	assert := assert.New(t)

	seq, dp := newSequencer(t)
	dp.Ram[0] = 0x0d // no microcode entry

	err := seq.Rise()
	var derr *microcode.ErrDecode
	assert.ErrorAs(err, &derr)
	assert.Equal(uint8(0x0d), derr.Opcode)

	// The failed fetch left no trace.
	assert.True(seq.Boundary())
	assert.Equal(STATE_FETCH, seq.State())
	assert.Equal(uint8(0), dp.PC.Value())
	assert.Equal(uint8(0), dp.MAR.Value())
	assert.Equal(uint8(0), dp.IR.Value())
}

func TestSequencerFetch(t *testing.T) {
	assert := assert.New(t)

	seq, dp := newSequencer(t)
	dp.Ram[0] = 0x0a // MOV_AB
	dp.A.Load(0x42)

	// Fetch pair.
	assert.NoError(seq.Rise())
	assert.NoError(seq.Fall())
	assert.Equal(uint8(0x00), dp.MAR.Value())

	assert.NoError(seq.Rise())
	assert.NoError(seq.Fall())
	assert.Equal(uint8(0x0a), dp.IR.Value())
	assert.Equal(uint8(0x01), dp.PC.Value())
	assert.Equal(STATE_EXECUTE, seq.State())
	assert.Equal(uint8(0x0a), seq.Opcode())

	// Execute.
	assert.NoError(seq.Rise())
	assert.NoError(seq.Fall())
	assert.Equal(uint8(0x42), dp.B.Value())
	assert.True(seq.Boundary())
}

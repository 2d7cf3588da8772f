package microcode

import (
	"maps"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestControlWord(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("NOP", Word().String())
	assert.Equal("PC_OUT|MAR_IN", Word(PC_OUT, MAR_IN).String())
	assert.Equal("RAM_OUT|IR_IN|PC_INC", Word(RAM_OUT, IR_IN, PC_INC).String())

	word := Word(RAM_OUT, IR_IN, PC_INC)
	assert.True(word.Has(RAM_OUT))
	assert.True(word.Has(PC_INC))
	assert.False(word.Has(HALT))
	assert.Equal([]Signal{RAM_OUT}, word.Sources())

	assert.Empty(Word(PC_INC, MAR_IN).Sources())
	assert.Len(Word(PC_OUT, A_OUT).Sources(), 2)
}

func TestDefaultSet(t *testing.T) {
	assert := assert.New(t)

	table, err := NewTable(DefaultSet())
	assert.NoError(err)

	assert.True(table.Defined(0x00))
	assert.True(table.Defined(0x0f))
	assert.False(table.Defined(0x0d))
	assert.False(table.Defined(0x10))

	word, err := table.Lookup(0x08, 0)
	assert.NoError(err)
	assert.Equal(Word(ALU_OUT, A_IN, FLAGS_IN), word)

	// Step past the instruction's cycle count.
	_, err = table.Lookup(0x02, 2)
	var derr *ErrDecode
	assert.ErrorAs(err, &derr)
	assert.Equal(uint8(0x02), derr.Opcode)

	_, err = table.Lookup(0x0d, 0)
	assert.ErrorAs(err, &derr)

	desc, ok := table.Descriptor(0x06)
	assert.True(ok)
	assert.Equal("STA", desc.Name)
	assert.Equal(1, desc.Operands)
	assert.Equal(3, desc.Cycles)

	_, ok = table.Descriptor(0x0d)
	assert.False(ok)

	descs := table.Descriptors()
	assert.Len(descs, 15)
	for n := 1; n < len(descs); n++ {
		assert.Less(descs[n-1].Opcode, descs[n].Opcode)
	}
}

func TestSingleBusSource(t *testing.T) {
	assert := assert.New(t)

	table, err := NewTable(DefaultSet())
	assert.NoError(err)

	for _, word := range FetchSteps {
		assert.LessOrEqual(len(word.Sources()), 1, word.String())
	}
	for addr, word := range table.Words() {
		assert.LessOrEqual(len(word.Sources()), 1, "addr 0x%03x %v", addr, word)
	}
}

func TestBuildErrors(t *testing.T) {
	assert := assert.New(t)

	one := func(inst Instruction) error {
		_, err := NewTable([]Instruction{inst})
		return err
	}

	err := one(Instruction{Name: "BAD", Opcode: 0x00, Cycles: 0})
	assert.ErrorIs(err, ErrNoSteps)

	err = one(Instruction{Name: "BAD", Opcode: 0x00, Cycles: 2,
		Steps: []ControlWord{Word()}})
	assert.ErrorIs(err, ErrCycleCount)

	err = one(Instruction{Name: "BAD", Opcode: 0x00, Operands: 2, Cycles: 1,
		Steps: []ControlWord{Word()}})
	assert.ErrorIs(err, ErrOperands)

	err = one(Instruction{Name: "BAD", Opcode: MAX_OPCODE + 1, Cycles: 1,
		Steps: []ControlWord{Word()}})
	assert.ErrorIs(err, ErrRomCapacity)

	steps := make([]ControlWord, MAX_STEPS+1)
	err = one(Instruction{Name: "BAD", Opcode: 0x00, Cycles: len(steps), Steps: steps})
	assert.ErrorIs(err, ErrRomCapacity)

	err = one(Instruction{Name: "BAD", Opcode: 0x00, Cycles: 1,
		Steps: []ControlWord{Word(PC_OUT, A_OUT)}})
	assert.ErrorIs(err, ErrBusConflict)

	_, err = NewTable([]Instruction{
		{Name: "ONE", Opcode: 0x00, Cycles: 1, Steps: []ControlWord{Word()}},
		{Name: "TWO", Opcode: 0x00, Cycles: 1, Steps: []ControlWord{Word()}},
	})
	assert.ErrorIs(err, ErrOpcodeDuplicate)

	var berr *ErrBuild
	assert.ErrorAs(err, &berr)
	assert.Equal("TWO", berr.Name)
	assert.Equal(uint8(0x00), berr.Opcode)
}

func TestWords(t *testing.T) {
	assert := assert.New(t)

	table, err := NewTable(DefaultSet())
	assert.NoError(err)

	words := maps.Collect(table.Words())

	// LDI_A execute step 1, at (0x02 << 3) | 1.
	assert.Equal(Word(RAM_OUT, A_IN, PC_INC), words[0x11])

	// Undefined opcodes contribute no words.
	for step := uint16(0); step < MAX_STEPS; step++ {
		_, ok := words[0x0d<<3|step]
		assert.False(ok)
	}
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	table, err := NewTable(DefaultSet())
	assert.NoError(err)

	defines := maps.Collect(table.Defines())
	assert.Len(defines, 15)

	for _, desc := range table.Descriptors() {
		value, ok := defines["OP_"+desc.Name]
		assert.True(ok, desc.Name)

		opcode, err := strconv.ParseInt(value, 0, 16)
		assert.NoError(err, desc.Name)
		assert.Equal(int64(desc.Opcode), opcode, desc.Name)
	}
}

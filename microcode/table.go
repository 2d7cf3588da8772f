// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package microcode

import (
	"fmt"
	"iter"
	"slices"
)

const (
	MAX_STEPS  = 8                       // micro-steps per opcode in the ROM address layout
	ROM_WORDS  = 256                     // 16-bit control words in the ROM
	MAX_OPCODE = ROM_WORDS/MAX_STEPS - 1 // highest opcode the ROM can address
)

// FetchSteps is the universal two-phase instruction fetch shared by
// every opcode: PC drives MAR on the first cycle, then RAM[MAR] is
// latched into IR while PC increments on the second.
var FetchSteps = [2]ControlWord{
	Word(PC_OUT, MAR_IN),
	Word(RAM_OUT, IR_IN, PC_INC),
}

// Instruction declares one opcode of a microcode specification.
type Instruction struct {
	Name     string
	Opcode   uint8
	Operands int           // trailing immediate/address bytes (0 or 1)
	Cycles   int           // declared execute cycle count
	Steps    []ControlWord // execute micro-steps, one per cycle
}

// Descriptor describes a built opcode for assemblers and tracing.
type Descriptor struct {
	Name     string
	Opcode   uint8
	Operands int
	Cycles   int
}

// Table is an immutable mapping from (opcode, micro-step) to a control
// word. Built once, read many times.
type Table struct {
	ops         map[uint8]Instruction
	descriptors []Descriptor
}

// NewTable builds and validates a microcode table. Any specification
// defect is reported as an *ErrBuild naming the offending opcode and
// step.
func NewTable(set []Instruction) (t *Table, err error) {
	t = &Table{
		ops: make(map[uint8]Instruction, len(set)),
	}

	for _, inst := range set {
		fail := func(step int, cause error) error {
			return &ErrBuild{Name: inst.Name, Opcode: inst.Opcode, Step: step, Err: cause}
		}

		if _, ok := t.ops[inst.Opcode]; ok {
			err = fail(0, ErrOpcodeDuplicate)
			return
		}
		if len(inst.Steps) == 0 {
			err = fail(0, ErrNoSteps)
			return
		}
		if inst.Cycles != len(inst.Steps) {
			err = fail(len(inst.Steps), ErrCycleCount)
			return
		}
		if inst.Operands < 0 || inst.Operands > 1 {
			err = fail(0, ErrOperands)
			return
		}
		if int(inst.Opcode) > MAX_OPCODE || len(inst.Steps) > MAX_STEPS {
			err = fail(len(inst.Steps), ErrRomCapacity)
			return
		}

		// The single most important property of the table: no two bus
		// sources asserted in the same cycle.
		for step, word := range inst.Steps {
			if len(word.Sources()) > 1 {
				err = fail(step, ErrBusConflict)
				return
			}
		}

		inst.Steps = slices.Clone(inst.Steps)
		t.ops[inst.Opcode] = inst
		t.descriptors = append(t.descriptors, Descriptor{
			Name:     inst.Name,
			Opcode:   inst.Opcode,
			Operands: inst.Operands,
			Cycles:   inst.Cycles,
		})
	}

	slices.SortFunc(t.descriptors, func(a, b Descriptor) int {
		return int(a.Opcode) - int(b.Opcode)
	})

	return
}

// Lookup returns the control word for (opcode, step).
func (t *Table) Lookup(opcode uint8, step uint8) (word ControlWord, err error) {
	inst, ok := t.ops[opcode]
	if !ok || int(step) >= len(inst.Steps) {
		err = &ErrDecode{Opcode: opcode, Step: step}
		return
	}

	word = inst.Steps[step]
	return
}

// Defined reports whether the opcode has any table entry.
func (t *Table) Defined(opcode uint8) bool {
	_, ok := t.ops[opcode]
	return ok
}

// Descriptor returns the descriptor for an opcode.
func (t *Table) Descriptor(opcode uint8) (desc Descriptor, ok bool) {
	inst, ok := t.ops[opcode]
	if !ok {
		return
	}

	desc = Descriptor{
		Name:     inst.Name,
		Opcode:   inst.Opcode,
		Operands: inst.Operands,
		Cycles:   inst.Cycles,
	}
	return
}

// Descriptors returns all descriptors in opcode order.
func (t *Table) Descriptors() []Descriptor {
	return slices.Clone(t.descriptors)
}

// Words yields every populated ROM address and its control word, in
// address order. The address layout is (opcode << 3) | step.
func (t *Table) Words() iter.Seq2[uint16, ControlWord] {
	return func(yield func(addr uint16, word ControlWord) bool) {
		for _, desc := range t.descriptors {
			inst := t.ops[desc.Opcode]
			for step, word := range inst.Steps {
				addr := uint16(inst.Opcode)<<3 | uint16(step)
				if !yield(addr, word) {
					return
				}
			}
		}
	}
}

// Defines yields assembler predefines for every opcode, as OP_<name>.
func (t *Table) Defines() iter.Seq2[string, string] {
	return func(yield func(key, value string) bool) {
		for _, desc := range t.descriptors {
			if !yield("OP_"+desc.Name, fmt.Sprintf("%#02x", desc.Opcode)) {
				return
			}
		}
	}
}

package microcode

import (
	"strings"
)

// Signal is a single named control line in the 16-bit control word.
// The bit layout matches the control ROM wiring.
type Signal uint16

const (
	PC_OUT   = Signal(0x0001) // program counter drives the bus
	PC_INC   = Signal(0x0002) // increment the program counter
	MAR_IN   = Signal(0x0004) // memory address register latches the bus
	RAM_OUT  = Signal(0x0008) // RAM[MAR] drives the bus
	RAM_IN   = Signal(0x0010) // RAM[MAR] latches the bus
	IR_IN    = Signal(0x0020) // instruction register latches the bus
	IR_OUT   = Signal(0x0040) // instruction register drives the bus
	A_IN     = Signal(0x0080) // register A latches the bus
	A_OUT    = Signal(0x0100) // register A drives the bus
	B_IN     = Signal(0x0200) // register B latches the bus
	B_OUT    = Signal(0x0400) // register B drives the bus
	ALU_OUT  = Signal(0x0800) // ALU result drives the bus
	ALU_SUB  = Signal(0x1000) // ALU computes A-B instead of A+B
	HALT     = Signal(0x2000) // stop the sequencer
	FLAGS_IN = Signal(0x4000) // flags latch the ALU carry/zero outcome
	OUT_IN   = Signal(0x8000) // output port latches the bus
)

// signalNames lists every signal in bit order.
var signalNames = []struct {
	Signal Signal
	Name   string
}{
	{PC_OUT, "PC_OUT"},
	{PC_INC, "PC_INC"},
	{MAR_IN, "MAR_IN"},
	{RAM_OUT, "RAM_OUT"},
	{RAM_IN, "RAM_IN"},
	{IR_IN, "IR_IN"},
	{IR_OUT, "IR_OUT"},
	{A_IN, "A_IN"},
	{A_OUT, "A_OUT"},
	{B_IN, "B_IN"},
	{B_OUT, "B_OUT"},
	{ALU_OUT, "ALU_OUT"},
	{ALU_SUB, "ALU_SUB"},
	{HALT, "HALT"},
	{FLAGS_IN, "FLAGS_IN"},
	{OUT_IN, "OUT_IN"},
}

func (s Signal) String() string {
	for _, entry := range signalNames {
		if entry.Signal == s {
			return entry.Name
		}
	}
	return "Signal(0)"
}

// BusSources lists every signal that can drive the shared bus. At most
// one of these may be asserted in a control word.
var BusSources = []Signal{PC_OUT, RAM_OUT, IR_OUT, A_OUT, B_OUT, ALU_OUT}

// ControlWord is an order-independent set of control signals fully
// determining one cycle's datapath behavior.
type ControlWord uint16

// Word builds a control word from a set of signals.
func Word(signals ...Signal) (word ControlWord) {
	for _, s := range signals {
		word |= ControlWord(s)
	}
	return
}

// Has reports whether the signal is asserted.
func (word ControlWord) Has(s Signal) bool {
	return uint16(word)&uint16(s) != 0
}

// Sources returns the asserted bus-source signals.
func (word ControlWord) Sources() (sources []Signal) {
	for _, s := range BusSources {
		if word.Has(s) {
			sources = append(sources, s)
		}
	}
	return
}

// String returns the asserted signals as "PC_OUT|MAR_IN", or "NOP" for
// an empty word.
func (word ControlWord) String() string {
	var active []string
	for _, entry := range signalNames {
		if word.Has(entry.Signal) {
			active = append(active, entry.Name)
		}
	}
	if len(active) == 0 {
		return "NOP"
	}
	return strings.Join(active, "|")
}

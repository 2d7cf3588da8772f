package cpu

import (
	"log"
	"math/bits"
	"slices"

	"github.com/ezrec/sap8/microcode"
)

const (
	MEM_MIN = 16  // Smallest supported memory, 4-bit addressing
	MEM_MAX = 256 // Largest supported memory, 8-bit addressing
)

// Datapath owns the registers, memory, shared bus, output port and ALU,
// and interprets control words against them. A micro-step is split
// across the two clock edges: bus sources drive and the ALU evaluates
// on the rising edge (Rise), destinations latch on the falling edge
// (Fall).
type Datapath struct {
	Verbose bool

	PC  Register
	MAR Register
	IR  Register
	A   Register
	B   Register
	Out Register

	Flags Flags
	Ram   []byte

	bus    uint8
	alu    AluResult
	output []byte
}

// NewDatapath creates a datapath with the given memory size. PC and MAR
// widths derive from the memory size.
func NewDatapath(memSize int) (dp *Datapath, err error) {
	if memSize < MEM_MIN || memSize > MEM_MAX {
		err = ErrMemorySize
		return
	}

	addrBits := uint(bits.Len(uint(memSize - 1)))
	dp = &Datapath{
		PC:  NewRegister("PC", addrBits),
		MAR: NewRegister("MAR", addrBits),
		IR:  NewRegister("IR", 8),
		A:   NewRegister("A", 8),
		B:   NewRegister("B", 8),
		Out: NewRegister("OUT", 8),
		Ram: make([]byte, memSize),
	}
	return
}

// Reset returns every register, the flags, the bus and the output
// stream to the power-on state. Memory contents are preserved so a
// loaded program can be re-run.
func (dp *Datapath) Reset() {
	for _, reg := range []*Register{&dp.PC, &dp.MAR, &dp.IR, &dp.A, &dp.B, &dp.Out} {
		reg.Load(0)
	}
	dp.Flags = 0
	dp.bus = 0
	dp.alu = AluResult{}
	dp.output = nil
}

// read returns the memory byte addressed by MAR.
func (dp *Datapath) read() (value uint8, err error) {
	addr := dp.MAR.Value()
	if int(addr) >= len(dp.Ram) {
		err = &ErrMemoryBounds{Addr: addr, Size: len(dp.Ram)}
		return
	}

	value = dp.Ram[addr]
	return
}

// Rise resolves the single bus source for this micro-step. The ALU
// evaluates before bus resolution so its result and flag outcome are
// available within the same cycle.
func (dp *Datapath) Rise(word microcode.ControlWord) (err error) {
	if word.Has(microcode.ALU_OUT) || word.Has(microcode.FLAGS_IN) {
		dp.alu = EvalAlu(dp.A.Value(), dp.B.Value(), word.Has(microcode.ALU_SUB))
	}

	sources := word.Sources()
	if len(sources) > 1 {
		err = &ErrBusContention{Word: word}
		return
	}

	dp.bus = 0
	if len(sources) == 0 {
		return
	}

	switch sources[0] {
	case microcode.PC_OUT:
		dp.bus = dp.PC.Value()
	case microcode.RAM_OUT:
		dp.bus, err = dp.read()
		if err != nil {
			return
		}
	case microcode.IR_OUT:
		dp.bus = dp.IR.Value()
	case microcode.A_OUT:
		dp.bus = dp.A.Value()
	case microcode.B_OUT:
		dp.bus = dp.B.Value()
	case microcode.ALU_OUT:
		dp.bus = dp.alu.Value
	}

	if dp.Verbose {
		log.Printf("bus: %v -> 0x%02x", sources[0], dp.bus)
	}
	return
}

// Fall latches every asserted destination from the resolved bus value
// (multiple destinations may latch the same value), then applies the
// bus-independent side effects.
func (dp *Datapath) Fall(word microcode.ControlWord) (err error) {
	if word.Has(microcode.MAR_IN) {
		dp.MAR.Load(dp.bus)
	}
	if word.Has(microcode.RAM_IN) {
		addr := dp.MAR.Value()
		if int(addr) >= len(dp.Ram) {
			err = &ErrMemoryBounds{Addr: addr, Size: len(dp.Ram)}
			return
		}
		dp.Ram[addr] = dp.bus
	}
	if word.Has(microcode.IR_IN) {
		dp.IR.Load(dp.bus)
	}
	if word.Has(microcode.A_IN) {
		dp.A.Load(dp.bus)
	}
	if word.Has(microcode.B_IN) {
		dp.B.Load(dp.bus)
	}
	if word.Has(microcode.OUT_IN) {
		dp.Out.Load(dp.bus)
		dp.output = append(dp.output, dp.bus)
		if dp.Verbose {
			log.Printf("out: 0x%02x", dp.bus)
		}
	}
	if word.Has(microcode.FLAGS_IN) {
		dp.Flags = 0
		if dp.alu.Carry {
			dp.Flags |= FLAG_CARRY
		}
		if dp.alu.Zero {
			dp.Flags |= FLAG_ZERO
		}
	}
	if word.Has(microcode.PC_INC) {
		dp.PC.Increment()
	}
	return
}

// Output returns a copy of the bytes produced by the output port.
func (dp *Datapath) Output() []byte {
	return slices.Clone(dp.output)
}

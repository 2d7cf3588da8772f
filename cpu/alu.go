package cpu

// Flags is the CPU status register.
type Flags uint8

const (
	FLAG_CARRY = Flags(1 << 0) // carry out on add, borrow on subtract
	FLAG_ZERO  = Flags(1 << 1) // last ALU result was zero
)

func (fl Flags) Carry() bool {
	return fl&FLAG_CARRY != 0
}

func (fl Flags) Zero() bool {
	return fl&FLAG_ZERO != 0
}

func (fl Flags) String() (text string) {
	text = "--"
	if fl.Carry() {
		text = "C" + text[1:]
	}
	if fl.Zero() {
		text = text[:1] + "Z"
	}
	return
}

// AluResult is the combinational output of the ALU for one cycle.
type AluResult struct {
	Value uint8
	Carry bool
	Zero  bool
}

// EvalAlu computes a+b, or a-b when subtract is set. Carry reports a
// carry out of bit 7 on add, and a borrow (a < b) on subtract.
func EvalAlu(a, b uint8, subtract bool) (res AluResult) {
	if subtract {
		res.Value = a - b
		res.Carry = a < b
	} else {
		sum := uint16(a) + uint16(b)
		res.Value = uint8(sum)
		res.Carry = sum > 0xff
	}
	res.Zero = res.Value == 0

	return
}

package microcode

import (
	"errors"

	"github.com/ezrec/sap8/translate"
)

var f = translate.From

var (
	// Table build errors
	ErrBusConflict     = errors.New(f("bus source conflict"))
	ErrCycleCount      = errors.New(f("cycle count mismatch"))
	ErrNoSteps         = errors.New(f("no micro-steps"))
	ErrOperands        = errors.New(f("operand arity invalid"))
	ErrRomCapacity     = errors.New(f("rom capacity exceeded"))
	ErrOpcodeDuplicate = errors.New(f("opcode duplicated"))
)

// ErrBuild reports a microcode specification defect found at table
// construction time. It prevents CPU construction entirely.
type ErrBuild struct {
	Name   string
	Opcode uint8
	Step   int
	Err    error
}

func (err *ErrBuild) Error() string {
	return f("%v (opcode 0x%02x) step %d: %v", err.Name, err.Opcode, err.Step, err.Err)
}

func (err *ErrBuild) Unwrap() error {
	return err.Err
}

// ErrDecode reports a lookup of an opcode or step with no table entry.
type ErrDecode struct {
	Opcode uint8
	Step   uint8
}

func (err *ErrDecode) Error() string {
	return f("no microcode for opcode 0x%02x step %d", err.Opcode, err.Step)
}

package cpu

import (
	"errors"

	"github.com/ezrec/sap8/microcode"
	"github.com/ezrec/sap8/translate"
)

var f = translate.From

var (
	ErrMemorySize  = errors.New(f("memory size out of range"))
	ErrProgramSize = errors.New(f("program does not fit in memory"))
	ErrNoClock     = errors.New(f("no clock attached"))
)

// ErrBusContention reports two or more sources driving the bus in one
// cycle. Table validation should have rejected the word; hitting this
// at runtime is a programming-logic fault, not a recoverable condition.
type ErrBusContention struct {
	Word microcode.ControlWord
}

func (err *ErrBusContention) Error() string {
	return f("bus contention: %v", err.Word)
}

// ErrMemoryBounds reports an address outside the configured memory.
type ErrMemoryBounds struct {
	Addr uint8
	Size int
}

func (err *ErrMemoryBounds) Error() string {
	return f("address 0x%02x outside %d byte memory", err.Addr, err.Size)
}

// Fault wraps a runtime error with the CPU state frozen at the moment
// of failure.
type Fault struct {
	Err  error
	Snap Snapshot
}

func (err *Fault) Error() string {
	return f("%v (pc=0x%02x ir=0x%02x step=%d)", err.Err, err.Snap.PC, err.Snap.IR, err.Snap.Step)
}

func (err *Fault) Unwrap() error {
	return err.Err
}

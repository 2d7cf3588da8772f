package cpu

// Register is a fixed-width storage element. Values are masked to the
// register's bit width on every load.
type Register struct {
	Name string
	Bits uint

	value uint8
}

// NewRegister creates a named register of the given width (1..8 bits).
func NewRegister(name string, bits uint) Register {
	return Register{Name: name, Bits: bits}
}

func (r *Register) mask() uint8 {
	return uint8((uint16(1) << r.Bits) - 1)
}

// Load latches a value, masked to the register width.
func (r *Register) Load(value uint8) {
	r.value = value & r.mask()
}

// Value returns the current register contents.
func (r *Register) Value() uint8 {
	return r.value
}

// Increment adds one, wrapping at the register width.
func (r *Register) Increment() {
	r.Load(r.value + 1)
}

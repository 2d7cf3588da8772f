package clock

import (
	"errors"
	"strings"
	"time"

	"github.com/ezrec/sap8/translate"
)

var f = translate.From

var (
	ErrClockKind   = errors.New(f("unknown clock kind"))
	ErrClockPreset = errors.New(f("unknown clock preset"))
)

// Edge is one of the two half-cycles of a clock period.
type Edge int

//go:generate go tool stringer -linecomment -type=Edge
const (
	EDGE_RISING  = Edge(0) // rising
	EDGE_FALLING = Edge(1) // falling
)

// Listener is an edge callback. Listeners run synchronously and to
// completion before the next edge is considered.
type Listener func()

// Kind selects a clock backend.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_SOFTWARE = Kind(0) // software
	KIND_TIMER    = Kind(1) // timer
	KIND_RC       = Kind(2) // rc
)

// Preset is a named clock speed.
type Preset int

//go:generate go tool stringer -linecomment -type=Preset
const (
	PRESET_TURBO      = Preset(0) // turbo
	PRESET_FAST       = Preset(1) // fast
	PRESET_NORMAL     = Preset(2) // normal
	PRESET_SLOW       = Preset(3) // slow
	PRESET_BREADBOARD = Preset(4) // breadboard
	PRESET_GLACIAL    = Preset(5) // glacial
)

var presetPeriods = [...]time.Duration{
	PRESET_TURBO:      time.Millisecond,
	PRESET_FAST:       10 * time.Millisecond,
	PRESET_NORMAL:     100 * time.Millisecond,
	PRESET_SLOW:       time.Second,
	PRESET_BREADBOARD: 2 * time.Second,
	PRESET_GLACIAL:    10 * time.Second,
}

// Period returns the full-cycle period for the preset.
func (p Preset) Period() time.Duration {
	if p < 0 || int(p) >= len(presetPeriods) {
		return presetPeriods[PRESET_NORMAL]
	}
	return presetPeriods[p]
}

// Clock is the contract shared by all backends.
//
// Guarantees:
//   - every rising listener completes before any falling listener of the
//     same edge pair fires,
//   - listeners of the same edge fire in registration order,
//   - Stop() takes effect at a cycle boundary, never mid-cycle,
//   - Stop() followed by Start() resumes without replaying missed edges.
type Clock interface {
	OnRisingEdge(Listener)
	OnFallingEdge(Listener)

	Start()
	Stop()
	Running() bool

	// Tick advances logical time by one unit, firing at most one full
	// rising/falling cycle. It reports whether a cycle fired.
	Tick() bool

	// Step executes exactly one full rising/falling cycle synchronously,
	// regardless of Running(). Used for manual/debug stepping.
	Step()

	Period() time.Duration
	Cycles() uint64
}

// edgeSet is the listener registry and cycle counter shared by all
// clock backends.
type edgeSet struct {
	rising  []Listener
	falling []Listener
	cycles  uint64
}

func (es *edgeSet) OnRisingEdge(listener Listener) {
	es.rising = append(es.rising, listener)
}

func (es *edgeSet) OnFallingEdge(listener Listener) {
	es.falling = append(es.falling, listener)
}

func (es *edgeSet) Step() {
	for _, listener := range es.rising {
		listener()
	}
	for _, listener := range es.falling {
		listener()
	}
	es.cycles += 1
}

func (es *edgeSet) Cycles() uint64 {
	return es.cycles
}

// New creates a clock backend running at a preset speed.
func New(kind Kind, preset Preset) (clk Clock, err error) {
	return NewWithPeriod(kind, preset.Period())
}

// NewWithPeriod creates a clock backend with an explicit full-cycle period.
func NewWithPeriod(kind Kind, period time.Duration) (clk Clock, err error) {
	switch kind {
	case KIND_SOFTWARE:
		clk = NewSoftware(period)
	case KIND_TIMER:
		clk = NewTimer(period)
	case KIND_RC:
		clk = NewRCWithPeriod(period)
	default:
		err = ErrClockKind
	}
	return
}

// ParseKind maps a backend name to its Kind.
func ParseKind(name string) (kind Kind, err error) {
	for k := KIND_SOFTWARE; k <= KIND_RC; k++ {
		if strings.EqualFold(name, k.String()) {
			kind = k
			return
		}
	}
	err = ErrClockKind
	return
}

// ParsePreset maps a speed name to its Preset.
func ParsePreset(name string) (preset Preset, err error) {
	for p := PRESET_TURBO; p <= PRESET_GLACIAL; p++ {
		if strings.EqualFold(name, p.String()) {
			preset = p
			return
		}
	}
	err = ErrClockPreset
	return
}

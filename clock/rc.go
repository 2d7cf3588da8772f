package clock

import (
	"time"
)

// RC is the fixed-frequency RC oscillator backend, modeling an astable
// 555 circuit. The frequency is set by the passive components and
// cannot change at runtime:
//
//	f = 1.44 / ((R1 + 2*R2) * C)
type RC struct {
	edgeSet

	r1, r2    float64 // ohms
	capacitor float64 // farads

	frequency float64
	period    time.Duration
	running   bool
	next      time.Time
}

var _ Clock = (*RC)(nil)

// NewRC creates an RC oscillator clock from its component values
// (resistors in ohms, capacitor in farads).
func NewRC(r1, r2, capacitor float64) *RC {
	c := &RC{r1: r1, r2: r2, capacitor: capacitor}

	c.frequency = 1.44 / ((r1 + 2*r2) * capacitor)
	if c.frequency > 0 {
		c.period = time.Duration(float64(time.Second) / c.frequency)
	}

	return c
}

// NewRCWithPeriod designs an RC oscillator for the given full-cycle
// period, using equal resistors and a 1 µF capacitor.
func NewRCWithPeriod(period time.Duration) *RC {
	const capacitor = 1e-6

	hz := 0.0
	if period > 0 {
		hz = float64(time.Second) / float64(period)
	}
	r1, r2 := DesignRC(hz, capacitor)

	return NewRC(r1, r2, capacitor)
}

// DesignRC returns resistor values for a target frequency and capacitor
// choice. Equal resistors give a near-50% duty cycle:
//
//	R1 = R2 = 1.44 / (3 * f * C)
func DesignRC(hz float64, capacitor float64) (r1, r2 float64) {
	if hz <= 0 || capacitor <= 0 {
		return
	}
	r1 = 1.44 / (3 * hz * capacitor)
	r2 = r1
	return
}

// Frequency returns the oscillator frequency in Hz.
func (c *RC) Frequency() float64 {
	return c.frequency
}

func (c *RC) Start() {
	if c.running {
		return
	}
	c.running = true
	c.next = time.Now().Add(c.period)
}

func (c *RC) Stop() {
	c.running = false
}

func (c *RC) Running() bool {
	return c.running
}

func (c *RC) Period() time.Duration {
	return c.period
}

func (c *RC) Tick() bool {
	if !c.running {
		return false
	}

	if wait := time.Until(c.next); wait > 0 {
		time.Sleep(wait)
	}
	c.next = c.next.Add(c.period)
	if now := time.Now(); now.After(c.next) {
		c.next = now.Add(c.period)
	}

	c.Step()
	return true
}

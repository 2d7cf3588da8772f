package clock

import (
	"time"
)

// Software is the pure software clock backend. Tick sleeps as needed to
// hit the configured period, then fires one full cycle.
type Software struct {
	edgeSet

	period  time.Duration
	running bool
	next    time.Time
}

var _ Clock = (*Software)(nil)

// NewSoftware creates a software clock with the given full-cycle period.
// A zero period free-runs as fast as the host allows.
func NewSoftware(period time.Duration) *Software {
	return &Software{period: period}
}

func (c *Software) Start() {
	if c.running {
		return
	}
	c.running = true
	c.next = time.Now().Add(c.period)
}

func (c *Software) Stop() {
	c.running = false
}

func (c *Software) Running() bool {
	return c.running
}

func (c *Software) Period() time.Duration {
	return c.period
}

func (c *Software) Tick() bool {
	if !c.running {
		return false
	}

	if wait := time.Until(c.next); wait > 0 {
		time.Sleep(wait)
	}
	c.next = c.next.Add(c.period)
	if now := time.Now(); now.After(c.next) {
		// Fell behind; missed cycles are not replayed.
		c.next = now.Add(c.period)
	}

	c.Step()
	return true
}

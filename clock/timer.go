package clock

import (
	"time"
)

// Timer simulates a hardware-timer interrupt source: a free-running
// counter with a compare register that raises at most one pending
// interrupt. Tick polls the pending state and returns immediately when
// no interrupt is due, so a driving loop can interleave other work.
type Timer struct {
	edgeSet

	period   time.Duration
	running  bool
	deadline time.Time
}

var _ Clock = (*Timer)(nil)

// NewTimer creates a hardware-timer clock with the given full-cycle period.
func NewTimer(period time.Duration) *Timer {
	return &Timer{period: period}
}

func (c *Timer) Start() {
	if c.running {
		return
	}
	c.running = true
	// Arm relative to now; periods missed while stopped are not replayed.
	c.deadline = time.Now().Add(c.period)
}

func (c *Timer) Stop() {
	c.running = false
}

func (c *Timer) Running() bool {
	return c.running
}

func (c *Timer) Period() time.Duration {
	return c.period
}

func (c *Timer) Tick() bool {
	if !c.running {
		return false
	}

	now := time.Now()
	if now.Before(c.deadline) {
		// Interrupt not pending.
		return false
	}
	// Re-arm from now: a cycle that ran long does not cause a burst.
	c.deadline = now.Add(c.period)

	c.Step()
	return true
}

// pkg/engine/clock.go
package engine

import "time"

// MaxFrameDelta is the largest frame delta Tick reports, in milliseconds
const MaxFrameDelta = 100

// Clock turns wall-clock time into frame deltas in whole milliseconds
type Clock struct {
	last time.Time
	now  func() time.Time
}

// NewClock creates a clock starting now
func NewClock() *Clock {
	return newClockWith(time.Now)
}

func newClockWith(now func() time.Time) *Clock {
	return &Clock{last: now(), now: now}
}

// Tick returns the milliseconds since the previous Tick, capped at MaxFrameDelta.
// Sub-millisecond remainders carry over to the next frame.
func (c *Clock) Tick() int {
	now := c.now()
	elapsed := now.Sub(c.last)
	if elapsed < 0 {
		c.last = now
		return 0
	}

	ms := elapsed.Milliseconds()
	if ms > MaxFrameDelta {
		c.last = now
		return MaxFrameDelta
	}
	c.last = c.last.Add(time.Duration(ms) * time.Millisecond)
	return int(ms)
}

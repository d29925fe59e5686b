package core

import "time"

// Clock is the timing source that drives simulation frames.
// Tick returns the time elapsed since the previous Tick.
type Clock interface {
	Tick() time.Duration
}

// WallClock measures real elapsed time between ticks.
// The first Tick after creation or Reset returns zero.
type WallClock struct {
	now  func() time.Time
	last time.Time
}

// NewWallClock creates a clock backed by time.Now.
func NewWallClock() *WallClock {
	return &WallClock{now: time.Now}
}

// Tick returns the time since the previous tick.
func (c *WallClock) Tick() time.Duration {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last)
	c.last = now
	if dt < 0 {
		return 0
	}
	return dt
}

// Reset forgets the previous tick so the next one returns zero.
func (c *WallClock) Reset() {
	c.last = time.Time{}
}

// FixedClock returns the same step on every tick.
// Used by tests and headless simulation for deterministic runs.
type FixedClock struct {
	Step time.Duration
}

// NewFixedClock creates a clock that advances by step each tick.
func NewFixedClock(step time.Duration) *FixedClock {
	return &FixedClock{Step: step}
}

// Tick returns the fixed step.
func (c *FixedClock) Tick() time.Duration {
	return c.Step
}

// Resettable is implemented by clocks that can restart their measurement.
type Resettable interface {
	Reset()
}

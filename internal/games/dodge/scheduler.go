package dodge

// Accumulator converts a continuous interval into discrete spawn events.
// Elapsed time is added each step and the interval is subtracted once per
// event, so fractional overrun carries into the next step instead of being lost.
type Accumulator struct {
	ms float64
}

// Drain adds dtMs and calls fire once for every full interval accumulated.
// It returns the number of events fired. A non-positive interval fires nothing.
func (a *Accumulator) Drain(dtMs, interval float64, fire func()) int {
	a.ms += dtMs
	if interval <= 0 {
		return 0
	}
	n := 0
	for a.ms >= interval {
		fire()
		a.ms -= interval
		n++
	}
	return n
}

// Value returns the accumulated milliseconds not yet spent on an event.
func (a Accumulator) Value() float64 {
	return a.ms
}

// Reset clears the accumulated time.
func (a *Accumulator) Reset() {
	a.ms = 0
}

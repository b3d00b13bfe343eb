package button

import "time"

// debouncer holds the filtering state for one pin.
// The stable value only follows the raw level once the raw level has been
// unchanged for longer than delay.
type debouncer struct {
	delay      time.Duration
	polarity   Polarity
	raw        bool      // raw level at the previous sample
	stable     bool      // debounced raw level
	lastChange time.Time // when raw last changed
	lastSeen   bool      // logical pressed state at the previous edge check
}

func newDebouncer(delay time.Duration, polarity Polarity, now time.Time) debouncer {
	idle := polarity.IdleLevel()
	return debouncer{
		delay:      delay,
		polarity:   polarity,
		raw:        idle,
		stable:     idle,
		lastChange: now,
	}
}

// sample records one raw reading taken at now and returns the debounced
// logical pressed state.
func (d *debouncer) sample(level bool, now time.Time) bool {
	if level != d.raw {
		d.lastChange = now
	}
	d.raw = level
	if now.Sub(d.lastChange) > d.delay {
		d.stable = level
	}
	return d.polarity.Pressed(d.stable)
}

// edge compares pressed with the state passed on the previous call and
// reports a rising edge.
func (d *debouncer) edge(pressed bool) bool {
	started := pressed && !d.lastSeen
	d.lastSeen = pressed
	return started
}

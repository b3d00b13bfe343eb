// Package button turns a noisy digital input into a debounced pressed state
// and detects the start of each press.
// The debounce arithmetic is pure: time is always passed in, so it can be
// driven by synthetic instants in tests.
package button

import (
	"fmt"
	"time"
)

// Polarity says which electrical level means "pressed".
type Polarity int

const (
	// PullUp wiring: the pin idles HIGH and reads LOW while pressed.
	PullUp Polarity = iota
	// PullDown wiring: the pin idles LOW and reads HIGH while pressed.
	PullDown
)

// String returns "up" or "down".
func (p Polarity) String() string {
	switch p {
	case PullUp:
		return "up"
	case PullDown:
		return "down"
	}
	return fmt.Sprintf("Polarity(%d)", int(p))
}

// IdleLevel returns the raw level of an unpressed button.
func (p Polarity) IdleLevel() bool {
	return p == PullUp
}

// Pressed converts a raw level into the logical pressed state.
func (p Polarity) Pressed(level bool) bool {
	if p == PullUp {
		return !level
	}
	return level
}

// ParsePolarity accepts "up"/"pullup" and "down"/"pulldown".
func ParsePolarity(s string) (Polarity, error) {
	switch s {
	case "up", "pullup", "pull-up":
		return PullUp, nil
	case "down", "pulldown", "pull-down":
		return PullDown, nil
	}
	return 0, fmt.Errorf("unknown polarity %q (want up or down)", s)
}

// Input reads the raw electrical level of one pin. true = HIGH.
// Pin mode and bias are configured by whoever provides the Input.
type Input interface {
	Level() (bool, error)
}

// Reading is the result of one poll cycle.
type Reading struct {
	// Pressed is the debounced logical state.
	Pressed bool
	// PushStarted is true on the poll where Pressed went from false to true.
	PushStarted bool
}

// EventType represents a button event.
type EventType string

// EventPushStarted is emitted once per press, when the debounced state
// becomes pressed.
const EventPushStarted EventType = "PUSH_STARTED"

// Event represents a button event to be published.
type Event struct {
	Timestamp time.Time
	Button    string
	Type      EventType
}

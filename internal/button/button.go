package button

import (
	"fmt"
	"time"
)

// Button is a debounced reader for one physical pin.
// Not safe for concurrent use; it is owned by the polling loop.
type Button struct {
	name string
	pin  Input
	now  func() time.Time
	db   debouncer
}

// New creates a Button. The stable value starts at the idle level implied by
// polarity and the debounce timer starts at construction. A nil now uses
// time.Now.
func New(name string, pin Input, delay time.Duration, polarity Polarity, now func() time.Time) *Button {
	if now == nil {
		now = time.Now
	}
	return &Button{
		name: name,
		pin:  pin,
		now:  now,
		db:   newDebouncer(delay, polarity, now()),
	}
}

// Name returns the name given at construction.
func (b *Button) Name() string { return b.name }

// Polarity returns the configured wiring.
func (b *Button) Polarity() Polarity { return b.db.polarity }

// Delay returns the debounce window.
func (b *Button) Delay() time.Duration { return b.db.delay }

// Pressed returns the current debounced state without sampling the pin.
func (b *Button) Pressed() bool {
	return b.db.polarity.Pressed(b.db.stable)
}

// ReadDebounced samples the pin once and returns the debounced pressed state.
// It must be called repeatedly for the state to settle.
func (b *Button) ReadDebounced() (bool, error) {
	level, err := b.read()
	if err != nil {
		return false, err
	}
	return b.db.sample(level, b.now()), nil
}

// ReadPushStarted samples the pin once and reports whether the debounced
// state went from not pressed to pressed since the previous call.
func (b *Button) ReadPushStarted() (bool, error) {
	r, err := b.Poll()
	if err != nil {
		return false, err
	}
	return r.PushStarted, nil
}

// Poll samples the pin once and feeds that single sample to both the
// debounce filter and the edge detector. Use it when a loop needs both
// values in the same cycle.
// On a read error the button state is left unchanged.
func (b *Button) Poll() (Reading, error) {
	level, err := b.read()
	if err != nil {
		return Reading{}, err
	}
	pressed := b.db.sample(level, b.now())
	return Reading{
		Pressed:     pressed,
		PushStarted: b.db.edge(pressed),
	}, nil
}

func (b *Button) read() (bool, error) {
	level, err := b.pin.Level()
	if err != nil {
		return false, fmt.Errorf("button %s: read pin: %w", b.name, err)
	}
	return level, nil
}

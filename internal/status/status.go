// Package status provides a thread-safe status tracker for the bcd-clock daemon.
// The main loop writes it; HTTP handlers and MQTT heartbeats read it.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/bcd-clock/internal/bcdtime"
)

// NetworkInfo contains network state as reported by the host.
type NetworkInfo struct {
	Type       string
	IP         string
	Status     string
	Gateway    string
	WifiStatus string
	SSID       string
}

// Config contains daemon configuration for display.
type Config struct {
	PollMs     int64
	DebounceMs int64
	Pins       string
	Pull       string
	Heartbeat  string
	Resync     string
	Broker     string
	HTTPAddr   string
}

// ClockState is the counter as last seen by the main loop.
type ClockState struct {
	Time   string
	Digits [bcdtime.NumDigits]int
	Valid  bool
	Ticks  uint64
}

// ButtonState is one button as last seen by the main loop.
type ButtonState struct {
	Name    string
	Pressed bool
	Pushes  int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Clock         ClockState
	Buttons       []ButtonState
	Adjustments   int
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Network       *NetworkInfo
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
	}
}

// UpdateClock copies the counter state. ticks is the number of Tick calls
// since startup.
func (t *Tracker) UpdateClock(c *bcdtime.Clock, ticks uint64) {
	cs := ClockState{
		Time:   c.String(),
		Digits: c.Digits(),
		Valid:  c.Valid(),
		Ticks:  ticks,
	}
	t.mu.Lock()
	t.snap.Clock = cs
	t.mu.Unlock()
}

// UpdateButtons replaces the button states.
func (t *Tracker) UpdateButtons(buttons []ButtonState) {
	cp := append([]ButtonState(nil), buttons...)
	t.mu.Lock()
	t.snap.Buttons = cp
	t.mu.Unlock()
}

// AddAdjustment counts one applied clock adjustment.
func (t *Tracker) AddAdjustment() {
	t.mu.Lock()
	t.snap.Adjustments++
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// SetNetwork sets the network info.
func (t *Tracker) SetNetwork(info *NetworkInfo) {
	t.mu.Lock()
	t.snap.Network = info
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	s.Buttons = append([]ButtonState(nil), t.snap.Buttons...)
	if t.snap.Network != nil {
		n := *t.snap.Network
		s.Network = &n
	}
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}

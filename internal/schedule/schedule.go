// Package schedule turns cron expressions into trigger channels that a
// select loop can wait on. Jobs never run loop code themselves; they only
// signal, so whatever owns the loop stays the single mutating context.
package schedule

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

// Trigger fires on a cron schedule.
// A Trigger built from an empty spec never fires.
type Trigger struct {
	spec  string
	sched cron.Schedule
	cron  *cron.Cron
	c     chan time.Time
}

// New parses spec ("@every 15m", "0 3 * * *", ...). An empty spec yields a
// disabled Trigger.
func New(spec string) (*Trigger, error) {
	if spec == "" {
		return &Trigger{}, nil
	}

	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	t := &Trigger{
		spec:  spec,
		sched: sched,
		cron:  cron.New(),
		c:     make(chan time.Time, 1),
	}
	t.cron.Schedule(sched, cron.FuncJob(t.fire))
	return t, nil
}

// fire delivers the current time, dropping it if the previous one has not
// been consumed yet.
func (t *Trigger) fire() {
	select {
	case t.c <- time.Now():
	default:
	}
}

// C returns the channel fire instants are delivered on. It is nil for a
// disabled Trigger, so a select case on it blocks forever.
func (t *Trigger) C() <-chan time.Time {
	if t.c == nil {
		return nil
	}
	return t.c
}

// Enabled reports whether the Trigger has a schedule.
func (t *Trigger) Enabled() bool {
	return t.sched != nil
}

// Spec returns the expression the Trigger was built from.
func (t *Trigger) Spec() string {
	return t.spec
}

// Next returns the first fire time after from, or the zero time when disabled.
func (t *Trigger) Next(from time.Time) time.Time {
	if t.sched == nil {
		return time.Time{}
	}
	return t.sched.Next(from)
}

// Start begins firing in the background.
func (t *Trigger) Start() {
	if t.cron != nil {
		t.cron.Start()
	}
}

// Stop stops firing. A job already in flight may still deliver.
func (t *Trigger) Stop() {
	if t.cron != nil {
		<-t.cron.Stop().Done()
	}
}

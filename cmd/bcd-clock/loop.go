package main

import (
	"os"
	"syscall"
	"time"

	"github.com/sweeney/bcd-clock/internal/adjust"
	"github.com/sweeney/bcd-clock/internal/bcdtime"
	"github.com/sweeney/bcd-clock/internal/button"
	"github.com/sweeney/bcd-clock/internal/logger"
	"github.com/sweeney/bcd-clock/internal/metrics"
	"github.com/sweeney/bcd-clock/internal/mqtt"
	"github.com/sweeney/bcd-clock/internal/status"
)

// daemon is the state owned by runLoop. Nothing else touches the clock or
// the buttons. publisher must not block: run wraps the broker connection in
// an mqtt.AsyncPublisher so a slow broker cannot stall the one-second tick.
type daemon struct {
	clock   bcdtime.Clock
	ticks   uint64
	buttons []*button.Button
	states  []status.ButtonState

	publisher  mqtt.Publisher
	mqttStatus mqtt.ConnectionStatus
	tracker    *status.Tracker
	metrics    *metrics.Metrics
	now        func() time.Time
}

// loopInputs are the event sources runLoop selects over. A nil channel
// never fires.
type loopInputs struct {
	second    <-chan time.Time
	poll      <-chan time.Time
	heartbeat <-chan time.Time
	resync    <-chan time.Time
	adjust    <-chan adjust.Request
	sig       <-chan os.Signal
}

// newDaemon seeds the clock from now(). mqttStatus and m may be nil.
func newDaemon(buttons []*button.Button, publisher mqtt.Publisher, mqttStatus mqtt.ConnectionStatus, tracker *status.Tracker, m *metrics.Metrics, now func() time.Time) *daemon {
	d := &daemon{
		clock:      bcdtime.FromTime(now()),
		buttons:    buttons,
		states:     make([]status.ButtonState, len(buttons)),
		publisher:  publisher,
		mqttStatus: mqttStatus,
		tracker:    tracker,
		metrics:    m,
		now:        now,
	}
	for i, b := range buttons {
		d.states[i].Name = b.Name()
	}
	d.tracker.UpdateClock(&d.clock, 0)
	d.tracker.UpdateButtons(d.states)
	if d.metrics != nil {
		d.metrics.SetSecondOfDay(d.clock.SecondOfDay())
	}
	return d
}

func runLoop(d *daemon, in loopInputs) error {
	for {
		select {
		case s := <-in.sig:
			logger.Infof("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			d.publishStatus("SHUTDOWN", signalName, true)
			return nil

		case <-in.second:
			d.tick()

		case <-in.poll:
			d.pollButtons()

		case <-in.heartbeat:
			if net := readNetworkInfo(); net != nil {
				d.tracker.SetNetwork(net)
			}
			logger.Debugf("heartbeat: clock=%s ticks=%d", d.clock.String(), d.ticks)
			d.publishStatus("HEARTBEAT", "", false)

		case <-in.resync:
			before := d.clock.String()
			cmd := adjust.Command{Op: adjust.OpSync}
			if d.apply(cmd) == nil {
				logger.Infof("resync: %s -> %s", before, d.clock.String())
				d.publishStatus("ADJUSTED", cmd.String(), false)
			}

		case req := <-in.adjust:
			// Answer before publishing so the caller never waits on the broker.
			err := d.apply(req.Command)
			req.Reply <- err
			if err == nil {
				d.publishStatus("ADJUSTED", req.Command.String(), false)
			}
		}
	}
}

// tick advances the clock by one second.
func (d *daemon) tick() {
	d.clock.Tick()
	d.ticks++
	d.tracker.UpdateClock(&d.clock, d.ticks)
	if d.metrics != nil {
		d.metrics.Tick(d.clock.SecondOfDay())
	}
}

// pollButtons samples every button exactly once and publishes push starts.
func (d *daemon) pollButtons() {
	start := time.Now()
	for i, b := range d.buttons {
		r, err := b.Poll()
		if err != nil {
			logger.Warnf("gpio read error: %v", err)
			if d.metrics != nil {
				d.metrics.GPIOError(b.Name())
			}
			continue
		}

		d.states[i].Pressed = r.Pressed
		if !r.PushStarted {
			continue
		}

		d.states[i].Pushes++
		event := button.Event{Timestamp: d.now(), Button: b.Name(), Type: button.EventPushStarted}
		logger.Infof("event: %s %s", event.Type, event.Button)
		if d.metrics != nil {
			d.metrics.Push(b.Name())
		}
		if err := d.publisher.Publish(event); err != nil {
			// Don't crash on publish failure
			logger.Warnf("publish error: %v", err)
			if d.metrics != nil {
				d.metrics.PublishError(mqtt.KindButton)
			}
		}
	}
	d.tracker.UpdateButtons(d.states)
	if d.metrics != nil {
		d.metrics.ObservePoll(time.Since(start))
	}
}

// apply runs one adjustment against the clock and records it. The caller
// publishes the ADJUSTED event.
func (d *daemon) apply(cmd adjust.Command) error {
	err := adjust.Apply(&d.clock, cmd, d.now())
	if d.metrics != nil {
		d.metrics.Adjustment(string(cmd.Op), err == nil)
	}
	if err != nil {
		logger.Warnf("adjustment %s rejected: %v", cmd, err)
		return err
	}

	d.tracker.UpdateClock(&d.clock, d.ticks)
	d.tracker.AddAdjustment()
	if d.metrics != nil {
		d.metrics.SetSecondOfDay(d.clock.SecondOfDay())
	}
	if !d.clock.Valid() {
		logger.Warnf("clock set out of range: %s", d.clock.String())
	}
	return nil
}

// publishStatus sends a system event carrying a full status snapshot.
func (d *daemon) publishStatus(event, reason string, retained bool) {
	if d.mqttStatus != nil {
		connected := d.mqttStatus.IsConnected()
		d.tracker.SetMQTTConnected(connected)
		if d.metrics != nil {
			d.metrics.SetMQTTConnected(connected)
		}
	}
	snap := d.tracker.Snapshot()
	ev := mqtt.SystemEvent{
		Timestamp:  d.now(),
		Event:      event,
		Reason:     reason,
		Retained:   retained,
		RawPayload: status.FormatStatusEvent(snap, event, reason),
	}
	if err := d.publisher.PublishSystem(ev); err != nil {
		logger.Warnf("failed to publish %s event: %v", event, err)
		if d.metrics != nil {
			d.metrics.PublishError(mqtt.KindSystem)
		}
		return
	}
	logger.Debugf("published %s event", event)
}

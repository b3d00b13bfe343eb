package internal

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweeney/bcd-clock/internal/bcdtime"
	"github.com/sweeney/bcd-clock/internal/button"
	"github.com/sweeney/bcd-clock/internal/gpio"
	"github.com/sweeney/bcd-clock/internal/mqtt"
	"github.com/sweeney/bcd-clock/internal/status"
)

var epoch = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func stepClock(step time.Duration) func() time.Time {
	n := 0
	return func() time.Time {
		t := epoch.Add(time.Duration(n) * step)
		n++
		return t
	}
}

func repeat(level bool, n int) []bool {
	out := make([]bool, n)
	for i := range out {
		out[i] = level
	}
	return out
}

// TestIntegrationPinToPayload drives a pull-down button from scripted pin
// levels through to the MQTT payload.
func TestIntegrationPinToPayload(t *testing.T) {
	levels := append(repeat(false, 3), repeat(true, 10)...)
	pin := gpio.NewFakePin(levels...)
	now := stepClock(10 * time.Millisecond)
	b := button.New("hour", pin, 50*time.Millisecond, button.PullDown, now)
	pub := mqtt.NewFakePublisher()

	for range levels {
		r, err := b.Poll()
		require.NoError(t, err)
		if r.PushStarted {
			require.NoError(t, pub.Publish(button.Event{Timestamp: epoch, Button: b.Name(), Type: button.EventPushStarted}))
		}
	}

	require.Len(t, pub.Payloads, 1)
	var p mqtt.Payload
	require.NoError(t, json.Unmarshal(pub.Payloads[0], &p))
	assert.Equal(t, "hour", p.Button.Name)
	assert.Equal(t, "PUSH_STARTED", p.Button.Event)
	assert.Equal(t, "2026-01-01T12:00:00Z", p.Button.Timestamp)
	assert.Equal(t, len(levels), pin.Reads, "one pin read per poll")
}

// TestIntegrationClockStatusEvent ticks a clock past midnight and checks the
// status event published for it.
func TestIntegrationClockStatusEvent(t *testing.T) {
	c := bcdtime.FromTime(time.Date(2026, 1, 1, 23, 59, 55, 0, time.UTC))
	tr := status.NewTracker(epoch, status.Config{Pull: "up"})
	for i := 0; i < 10; i++ {
		c.Tick()
	}
	tr.UpdateClock(&c, 10)
	tr.UpdateButtons([]status.ButtonState{{Name: "set", Pushes: 1}})

	pub := mqtt.NewFakePublisher()
	snap := tr.Snapshot()
	require.NoError(t, pub.PublishSystem(mqtt.SystemEvent{
		Timestamp:  epoch,
		Event:      "HEARTBEAT",
		RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
	}))

	var sj status.StatusJSON
	require.NoError(t, json.Unmarshal(pub.SystemPayloads[0], &sj))
	assert.Equal(t, "HEARTBEAT", sj.Status.Event)
	assert.Equal(t, "00:00:05", sj.Status.Clock.Time)
	assert.Equal(t, [bcdtime.NumDigits]int{0, 0, 0, 0, 0, 5}, sj.Status.Clock.Digits)
	assert.True(t, sj.Status.Clock.Valid)
	assert.Equal(t, uint64(10), sj.Status.Clock.Ticks)
	require.Len(t, sj.Status.Buttons, 1)
	assert.Equal(t, 1, sj.Status.Buttons[0].Pushes)
}

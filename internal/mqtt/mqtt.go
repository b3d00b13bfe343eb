// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/bcd-clock/internal/button"
)

// Topic is the MQTT topic for button events.
const Topic = "clock/bcd/buttons/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "clock/bcd/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a button event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event button.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT", "ADJUSTED"
	Reason     string // e.g., "SIGTERM", "inc-hour"
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload for a button event.
type Payload struct {
	Button ButtonPayload `json:"button"`
}

// ButtonPayload contains the button event details.
type ButtonPayload struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Name      string `json:"name"`
}

// FormatPayload creates the JSON payload for a button event.
func FormatPayload(event button.Event) ([]byte, error) {
	payload := Payload{
		Button: ButtonPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			Name:      event.Button,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events (LWT, RECONNECTED) that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}

// willPayload is the retained last-will message the broker publishes on
// TopicSystem if the connection drops without a clean disconnect.
func willPayload() []byte {
	data, _ := json.Marshal(SystemPayload{System: SystemPayloadInner{Event: "OFFLINE", Reason: "connection lost"}})
	return data
}

package mqtt

import (
	"github.com/sweeney/bcd-clock/internal/button"
)

// FakePublisher records published events for test assertions.
type FakePublisher struct {
	// Events contains all button events that were published.
	Events []button.Event

	// Payloads contains the JSON payloads that were published.
	Payloads [][]byte

	// SystemEvents contains all system events that were published.
	SystemEvents []SystemEvent

	// SystemPayloads contains the JSON payloads for system events.
	SystemPayloads [][]byte

	// PublishError, if set, will be returned by Publish.
	PublishError error

	// PublishSystemError, if set, will be returned by PublishSystem.
	PublishSystemError error

	// Closed tracks if Close was called.
	Closed bool

	// Connected controls the return value of IsConnected.
	Connected bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// Publish records the button event.
func (f *FakePublisher) Publish(event button.Event) error {
	if f.PublishError != nil {
		return f.PublishError
	}

	payload, err := FormatPayload(event)
	if err != nil {
		return err
	}
	f.Events = append(f.Events, event)
	f.Payloads = append(f.Payloads, payload)

	return nil
}

// PublishSystem records the system event.
func (f *FakePublisher) PublishSystem(event SystemEvent) error {
	if f.PublishSystemError != nil {
		return f.PublishSystemError
	}

	payload, err := FormatSystemPayload(event)
	if err != nil {
		return err
	}
	f.SystemEvents = append(f.SystemEvents, event)
	f.SystemPayloads = append(f.SystemPayloads, payload)

	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}

// IsConnected reports whether the fake publisher is "connected".
func (f *FakePublisher) IsConnected() bool {
	return f.Connected
}

// SystemEventNames returns the Event field of every recorded system event.
func (f *FakePublisher) SystemEventNames() []string {
	names := make([]string, len(f.SystemEvents))
	for i, e := range f.SystemEvents {
		names[i] = e.Event
	}
	return names
}

// Reset clears recorded events.
func (f *FakePublisher) Reset() {
	f.Events = nil
	f.Payloads = nil
	f.SystemEvents = nil
	f.SystemPayloads = nil
	f.Closed = false
	f.PublishError = nil
	f.PublishSystemError = nil
	f.Connected = false
}

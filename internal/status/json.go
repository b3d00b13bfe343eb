package status

import (
	"encoding/json"
	"time"

	"github.com/sweeney/bcd-clock/internal/bcdtime"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string       `json:"event,omitempty"`
	Reason        string       `json:"reason,omitempty"`
	Clock         ClockJSON    `json:"clock"`
	Buttons       []ButtonJSON `json:"buttons"`
	Adjustments   int          `json:"adjustments"`
	UptimeSeconds int64        `json:"uptime_seconds"`
	StartTime     string       `json:"start_time"`
	Timestamp     string       `json:"timestamp"`
	MQTT          MQTTStatus   `json:"mqtt"`
	Network       *NetworkJSON `json:"network,omitempty"`
	Config        ConfigJSON   `json:"config"`
}

// ClockJSON is the JSON representation of the counter.
type ClockJSON struct {
	Time   string                 `json:"time"`
	Digits [bcdtime.NumDigits]int `json:"digits"`
	Valid  bool                   `json:"valid"`
	Ticks  uint64                 `json:"ticks"`
}

// ButtonJSON is the JSON representation of one button.
type ButtonJSON struct {
	Name    string `json:"name"`
	Pressed bool   `json:"pressed"`
	Pushes  int    `json:"pushes"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// NetworkJSON is the JSON representation of network info.
type NetworkJSON struct {
	Type       string `json:"type"`
	IP         string `json:"ip"`
	Status     string `json:"status"`
	Gateway    string `json:"gateway"`
	WifiStatus string `json:"wifi_status"`
	SSID       string `json:"ssid"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs     int64  `json:"poll_ms"`
	DebounceMs int64  `json:"debounce_ms"`
	Pins       string `json:"pins"`
	Pull       string `json:"pull"`
	Heartbeat  string `json:"heartbeat,omitempty"`
	Resync     string `json:"resync,omitempty"`
	Broker     string `json:"broker"`
	HTTPAddr   string `json:"http_addr"`
}

func buildInner(snap Snapshot) StatusInner {
	clockTime := snap.Clock.Time
	if clockTime == "" {
		clockTime = "UNKNOWN"
	}

	buttons := make([]ButtonJSON, len(snap.Buttons))
	for i, b := range snap.Buttons {
		buttons[i] = ButtonJSON{Name: b.Name, Pressed: b.Pressed, Pushes: b.Pushes}
	}

	inner := StatusInner{
		Clock: ClockJSON{
			Time:   clockTime,
			Digits: snap.Clock.Digits,
			Valid:  snap.Clock.Valid,
			Ticks:  snap.Clock.Ticks,
		},
		Buttons:       buttons,
		Adjustments:   snap.Adjustments,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Config: ConfigJSON{
			PollMs:     snap.Config.PollMs,
			DebounceMs: snap.Config.DebounceMs,
			Pins:       snap.Config.Pins,
			Pull:       snap.Config.Pull,
			Heartbeat:  snap.Config.Heartbeat,
			Resync:     snap.Config.Resync,
			Broker:     snap.Config.Broker,
			HTTPAddr:   snap.Config.HTTPAddr,
		},
	}

	if snap.Network != nil {
		inner.Network = &NetworkJSON{
			Type:       snap.Network.Type,
			IP:         snap.Network.IP,
			Status:     snap.Network.Status,
			Gateway:    snap.Network.Gateway,
			WifiStatus: snap.Network.WifiStatus,
			SSID:       snap.Network.SSID,
		}
	}
	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}

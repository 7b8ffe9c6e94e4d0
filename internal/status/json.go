package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string      `json:"event,omitempty"`
	Reason        string      `json:"reason,omitempty"`
	Program       string      `json:"program"`
	Stage         string      `json:"stage"`
	Active        bool        `json:"active"`
	Lights        []LightJSON `json:"lights"`
	UptimeSeconds int64       `json:"uptime_seconds"`
	StartTime     string      `json:"start_time"`
	Timestamp     string      `json:"timestamp"`
	Counts        CountsJSON  `json:"counts"`
	Config        ConfigJSON  `json:"config"`
}

// LightJSON is the JSON representation of one output.
type LightJSON struct {
	Name  string `json:"name"`
	Pin   int    `json:"pin"`
	State string `json:"state"`
}

// CountsJSON is the JSON representation of handler counts.
type CountsJSON struct {
	Ticks     int `json:"ticks"`
	Presses   int `json:"presses"`
	Ignored   int `json:"ignored"`
	Sequences int `json:"sequences"`
}

// ConfigJSON is the JSON representation of program config.
type ConfigJSON struct {
	Chip        string `json:"chip"`
	IntervalMs  int64  `json:"interval_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms,omitempty"`
	ButtonPin   *int   `json:"button_pin,omitempty"`
}

func buildInner(snap Snapshot) StatusInner {
	stage := snap.Stage
	if stage == "" {
		stage = "UNKNOWN"
	}

	lights := make([]LightJSON, 0, len(snap.Lights))
	for _, l := range snap.Lights {
		state := "OFF"
		if l.On {
			state = "ON"
		}
		lights = append(lights, LightJSON{Name: l.Name, Pin: l.Pin, State: state})
	}

	inner := StatusInner{
		Program:       snap.Program,
		Stage:         stage,
		Active:        snap.Active,
		Lights:        lights,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		Counts: CountsJSON{
			Ticks:     snap.Counts.Ticks,
			Presses:   snap.Counts.Presses,
			Ignored:   snap.Counts.Ignored,
			Sequences: snap.Counts.Sequences,
		},
		Config: ConfigJSON{
			Chip:        snap.Config.Chip,
			IntervalMs:  snap.Config.IntervalMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
		},
	}
	if snap.Config.ButtonPin >= 0 {
		pin := snap.Config.ButtonPin
		inner.Config.ButtonPin = &pin
	}
	return inner
}

// FormatJSON returns the indented JSON status (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns single-line JSON status tagged with a lifecycle event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}

package models

import "time"

// Event types stored in the control log.
const (
	EventToggle       = "TOGGLE"
	EventToggleFailed = "TOGGLE_FAILED"
	EventStatus       = "STATUS"
	EventStatusFailed = "STATUS_FAILED"
)

// EventTypes lists every type the control log accepts.
var EventTypes = []string{EventToggle, EventToggleFailed, EventStatus, EventStatusFailed}

// IsEventType reports whether t is one of EventTypes.
func IsEventType(t string) bool {
	for _, et := range EventTypes {
		if t == et {
			return true
		}
	}
	return false
}

// ControlEvent is a single log entry.
type ControlEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`               // one of EventTypes
	Actuator    string    `json:"actuator,omitempty"` // empty for status events
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}

package service

import "time"

// LogFilter selects control events. Zero values disable a filter.
type LogFilter struct {
	From     time.Time // inclusive
	To       time.Time // inclusive
	Type     string    // one of models.EventTypes, case-insensitive
	Actuator string
	Limit    int // 0 means the repository default
}

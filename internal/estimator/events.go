package estimator

import "time"

// EventType defines the type of estimator event.
type EventType string

const (
	// EventSnapshot is published when a new attendance snapshot is applied.
	EventSnapshot EventType = "snapshot"
	// EventEstimate is published on each tick of a live estimate.
	EventEstimate EventType = "estimate"
)

// Event represents an estimator update for observers.
type Event struct {
	Type      EventType
	Displayed *time.Time
	Live      bool
	At        time.Time
}

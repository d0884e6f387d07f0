package storage

import "time"

// Event is one prompt exchange as seen by the audit log. Unlike the per-user
// history it is append-only and spans all users, which makes it the input
// for usage reports.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
	Prompt    string    `json:"prompt"`
	Response  string    `json:"response"`
}

// Recorder persists interaction events.
// LoadInteractions returns events in the order they were appended.
// Implementations must be safe for concurrent use.
type Recorder interface {
	AppendInteraction(event Event) error
	LoadInteractions() ([]Event, error)
}

package history

import (
	"context"
	"errors"
	"time"
)

// TimestampLayout is UTC ISO-8601 with second precision and no zone suffix.
const TimestampLayout = "2006-01-02T15:04:05"

// ErrCorrupt is returned by a Repository whose persisted data cannot be decoded.
// The accompanying Snapshot is empty and usable.
var ErrCorrupt = errors.New("history data is corrupt")

// Entry is one recorded prompt exchange.
type Entry struct {
	Timestamp string `json:"timestamp"`
	Prompt    string `json:"prompt"`
	Response  string `json:"response"`
}

func NewEntry(at time.Time, prompt, response string) Entry {
	return Entry{
		Timestamp: at.UTC().Format(TimestampLayout),
		Prompt:    prompt,
		Response:  response,
	}
}

// Snapshot maps a username to its entries, oldest first.
type Snapshot map[string][]Entry

func (s Snapshot) clone() Snapshot {
	out := make(Snapshot, len(s))
	for user, entries := range s {
		out[user] = append([]Entry(nil), entries...)
	}
	return out
}

// Repository persists the full history mapping. Save always replaces
// everything previously stored.
type Repository interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snapshot Snapshot) error
}

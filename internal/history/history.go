package history

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Store is the in-memory history, mirrored in full to a Repository on every append.
type Store struct {
	mu      sync.RWMutex
	repo    Repository
	entries Snapshot
}

// NewStore loads the persisted history once. Corrupt data is logged and
// replaced by an empty history; any other load error is returned.
func NewStore(ctx context.Context, repo Repository, log zerolog.Logger) (*Store, error) {
	snap, err := repo.Load(ctx)
	switch {
	case errors.Is(err, ErrCorrupt):
		log.Warn().Err(err).Msg("history data unreadable, starting with empty history")
		snap = Snapshot{}
	case err != nil:
		return nil, fmt.Errorf("load history: %w", err)
	}
	if snap == nil {
		snap = Snapshot{}
	}
	return &Store{repo: repo, entries: snap}, nil
}

// Append records entry for username and persists the whole history. The lock
// is held across both steps; on a failed save the entry is dropped again.
func (s *Store) Append(ctx context.Context, username string, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.entries[username]
	s.entries[username] = append(prev[:len(prev):len(prev)], entry)
	if err := s.repo.Save(ctx, s.entries); err != nil {
		if existed {
			s.entries[username] = prev
		} else {
			delete(s.entries, username)
		}
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// Get returns a copy of username's entries, oldest first. Never nil.
func (s *Store) Get(username string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	es := s.entries[username]
	out := make([]Entry, len(es))
	copy(out, es)
	return out
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries.clone()
}

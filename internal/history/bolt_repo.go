package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var historyBucket = []byte("history")

// BoltRepository stores one JSON array per user in a bbolt bucket.
// The database is opened per call so no handle outlives a request.
type BoltRepository struct {
	path    string
	timeout time.Duration
}

func NewBoltRepository(path string) (*BoltRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	return &BoltRepository{path: path, timeout: 2 * time.Second}, nil
}

func (r *BoltRepository) open() (*bolt.DB, error) {
	db, err := bolt.Open(r.path, 0o600, &bolt.Options{Timeout: r.timeout})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", r.path, err)
	}
	return db, nil
}

func (r *BoltRepository) Load(_ context.Context) (Snapshot, error) {
	db, err := r.open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	out := Snapshot{}
	corrupt := false
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(historyBucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var entries []Entry
			if err := json.Unmarshal(v, &entries); err != nil {
				corrupt = true
				return nil
			}
			out[string(k)] = entries
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("read bolt: %w", err)
	}
	if corrupt {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrCorrupt, r.path)
	}
	return out, nil
}

// Save recreates the bucket so the database reflects snapshot exactly.
func (r *BoltRepository) Save(_ context.Context, snapshot Snapshot) error {
	db, err := r.open()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(historyBucket) != nil {
			if err := tx.DeleteBucket(historyBucket); err != nil {
				return err
			}
		}
		b, err := tx.CreateBucket(historyBucket)
		if err != nil {
			return err
		}
		for user, entries := range snapshot {
			data, err := json.Marshal(entries)
			if err != nil {
				return fmt.Errorf("encode %s: %w", user, err)
			}
			if err := b.Put([]byte(user), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Package bbolt persists session records in a bbolt file so sessions survive
// process restarts.
package bbolt

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/todos/internal/sessions"
	bolt "go.etcd.io/bbolt"
)

const bucketSessions = "sessions"

// Registry stores encoded session records in one bucket keyed by id.
type Registry struct {
	db  *bolt.DB
	now func() time.Time
}

// Open opens or creates the registry file at path.
func Open(path string, now func() time.Time) (*Registry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("session path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketSessions))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sessions bucket: %w", err)
	}
	if now == nil {
		now = time.Now
	}
	return &Registry{db: db, now: now}, nil
}

// Close closes the underlying file.
func (r *Registry) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Get loads the record for id, removing it when expired.
func (r *Registry) Get(_ context.Context, id string) (*sessions.Session, error) {
	key := []byte(strings.TrimSpace(id))
	var data []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketSessions)).Get(key)
		if v == nil {
			return sessions.ErrNotFound
		}
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s, err := sessions.Decode(data)
	if err != nil {
		return nil, err
	}
	if s.Expired(r.now()) {
		if err := r.deleteIfUnchanged(key, data); err != nil {
			return nil, err
		}
		return nil, sessions.ErrNotFound
	}
	return s, nil
}

// deleteIfUnchanged drops an expired record unless a writer replaced it.
func (r *Registry) deleteIfUnchanged(key, data []byte) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSessions))
		if current := bucket.Get(key); current != nil && !bytes.Equal(current, data) {
			return nil
		}
		return bucket.Delete(key)
	})
}

// Save writes the record for s.
func (r *Registry) Save(_ context.Context, s *sessions.Session) error {
	if s == nil || strings.TrimSpace(s.ID) == "" {
		return errors.New("session id is required")
	}
	data, err := sessions.Encode(s)
	if err != nil {
		return err
	}
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSessions)).Put([]byte(s.ID), data)
	})
}

// Delete removes the record for id.
func (r *Registry) Delete(_ context.Context, id string) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSessions)).Delete([]byte(strings.TrimSpace(id)))
	})
}

// Prune removes every record expired at now. Undecodable records go too.
func (r *Registry) Prune(_ context.Context, now time.Time) (int, error) {
	removed := 0
	err := r.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketSessions))
		var stale [][]byte
		if err := bucket.ForEach(func(k, v []byte) error {
			if s, err := sessions.Decode(v); err != nil || s.Expired(now) {
				stale = append(stale, append([]byte(nil), k...))
			}
			return nil
		}); err != nil {
			return err
		}
		for _, k := range stale {
			if err := bucket.Delete(k); err != nil {
				return err
			}
		}
		removed = len(stale)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("prune sessions: %w", err)
	}
	return removed, nil
}

var _ sessions.Registry = (*Registry)(nil)

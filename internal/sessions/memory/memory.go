// Package memory keeps session records in process memory.
package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/todos/internal/sessions"
)

// Registry is a map of encoded session records guarded by a RWMutex.
type Registry struct {
	mu      sync.RWMutex
	records map[string][]byte
	now     func() time.Time
}

// New returns an empty registry. now defaults to time.Now.
func New(now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{records: map[string][]byte{}, now: now}
}

// Get returns a decoded copy of the record for id.
func (r *Registry) Get(_ context.Context, id string) (*sessions.Session, error) {
	id = strings.TrimSpace(id)
	r.mu.RLock()
	data, ok := r.records[id]
	r.mu.RUnlock()
	if !ok {
		return nil, sessions.ErrNotFound
	}
	s, err := sessions.Decode(data)
	if err != nil {
		return nil, err
	}
	if s.Expired(r.now()) {
		r.mu.Lock()
		delete(r.records, id)
		r.mu.Unlock()
		return nil, sessions.ErrNotFound
	}
	return s, nil
}

// Save stores an encoded copy of s.
func (r *Registry) Save(_ context.Context, s *sessions.Session) error {
	if s == nil || strings.TrimSpace(s.ID) == "" {
		return errors.New("session id is required")
	}
	data, err := sessions.Encode(s)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.records[s.ID] = data
	r.mu.Unlock()
	return nil
}

// Delete removes the record for id.
func (r *Registry) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	delete(r.records, strings.TrimSpace(id))
	r.mu.Unlock()
	return nil
}

// Prune removes every record expired at now.
func (r *Registry) Prune(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, data := range r.records {
		s, err := sessions.Decode(data)
		if err != nil || s.Expired(now) {
			delete(r.records, id)
			removed++
		}
	}
	return removed, nil
}

// Close drops every record.
func (r *Registry) Close() error {
	r.mu.Lock()
	r.records = map[string][]byte{}
	r.mu.Unlock()
	return nil
}

var _ sessions.Registry = (*Registry)(nil)

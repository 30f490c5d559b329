package sessions

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound indicates the registry holds no live record for an id.
var ErrNotFound = errors.New("session not found")

// ErrInvalidRecord indicates a stored record that no longer decodes.
var ErrInvalidRecord = errors.New("invalid session record")

// Session is one browser session record.
type Session struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time
	Values    map[string]json.RawMessage

	fresh    bool
	modified bool
}

// New starts an empty session valid for ttl from now.
func New(now time.Time, ttl time.Duration) (*Session, error) {
	id, err := NewID()
	if err != nil {
		return nil, err
	}
	now = now.UTC()
	return &Session{
		ID:        id,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		Values:    map[string]json.RawMessage{},
		fresh:     true,
	}, nil
}

// NewID returns a time-ordered session identifier.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return id.String(), nil
}

// ValidID reports whether value is a well-formed session identifier.
func ValidID(value string) bool {
	id, err := uuid.Parse(strings.TrimSpace(value))
	return err == nil && id.Version() == 7
}

// Load decodes the value stored under key into dst.
func (s *Session) Load(key string, dst any) (bool, error) {
	if s == nil {
		return false, errors.New("session is required")
	}
	raw, ok := s.Values[key]
	if !ok || len(raw) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return true, fmt.Errorf("decode session value %q: %w", key, err)
	}
	return true, nil
}

// Store encodes value under key.
func (s *Session) Store(key string, value any) error {
	if s == nil {
		return errors.New("session is required")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode session value %q: %w", key, err)
	}
	if s.Values == nil {
		s.Values = map[string]json.RawMessage{}
	}
	s.Values[key] = raw
	s.modified = true
	return nil
}

// Delete removes key.
func (s *Session) Delete(key string) {
	if s == nil {
		return
	}
	if _, ok := s.Values[key]; !ok {
		return
	}
	delete(s.Values, key)
	s.modified = true
}

// Expired reports whether the session is past its expiry at now.
func (s *Session) Expired(now time.Time) bool {
	return s == nil || !now.Before(s.ExpiresAt)
}

// Fresh reports whether the session was created during this request.
func (s *Session) Fresh() bool {
	return s != nil && s.fresh
}

// Modified reports whether any value changed since the session was loaded.
func (s *Session) Modified() bool {
	return s != nil && s.modified
}

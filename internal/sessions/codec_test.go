package sessions

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestEncodeDecodeKeepsValues(t *testing.T) {
	t.Parallel()

	s, _ := New(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), time.Hour)
	lists := []map[string]any{{
		"id":    1,
		"name":  "Groceries",
		"todos": []map[string]any{{"id": 1, "name": "milk", "completed": false}},
	}}
	if err := s.Store("lists", lists); err != nil {
		t.Fatalf("Store() error = %v", err)
	}

	data, err := Encode(s)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if decoded.ID != s.ID {
		t.Fatalf("decoded id = %q, want %q", decoded.ID, s.ID)
	}
	if !decoded.ExpiresAt.Equal(s.ExpiresAt) {
		t.Fatalf("decoded expiry = %v, want %v", decoded.ExpiresAt, s.ExpiresAt)
	}
	if string(decoded.Values["lists"]) != string(s.Values["lists"]) {
		t.Fatalf("decoded lists = %s, want %s", decoded.Values["lists"], s.Values["lists"])
	}
	if decoded.Fresh() || decoded.Modified() {
		t.Fatal("decoded session should carry no change tracking")
	}
}

func TestDecodeRejectsInvalidRecords(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"not json":         `{`,
		"missing id":       `{"created_at":"2026-01-01T00:00:00Z","expires_at":"2026-01-02T00:00:00Z","values":{}}`,
		"bad timestamp":    `{"id":"a","created_at":"yesterday","expires_at":"2026-01-02T00:00:00Z","values":{}}`,
		"unknown field":    `{"id":"a","created_at":"2026-01-01T00:00:00Z","expires_at":"2026-01-02T00:00:00Z","values":{},"extra":1}`,
		"list id zero":     `{"id":"a","created_at":"2026-01-01T00:00:00Z","expires_at":"2026-01-02T00:00:00Z","values":{"lists":[{"id":0,"name":"x","todos":[]}]}}`,
		"todo not boolean": `{"id":"a","created_at":"2026-01-01T00:00:00Z","expires_at":"2026-01-02T00:00:00Z","values":{"lists":[{"id":1,"name":"x","todos":[{"id":1,"name":"t","completed":"yes"}]}]}}`,
		"flash bad kind":   `{"id":"a","created_at":"2026-01-01T00:00:00Z","expires_at":"2026-01-02T00:00:00Z","values":{"flash":{"kind":"loud","key":"k"}}}`,
	}
	for name, raw := range tests {
		if _, err := Decode([]byte(raw)); !errors.Is(err, ErrInvalidRecord) {
			t.Fatalf("%s: Decode() error = %v, want %v", name, err, ErrInvalidRecord)
		}
	}
}

func TestEncodeRejectsInvalidValues(t *testing.T) {
	t.Parallel()

	s, _ := New(time.Now(), time.Hour)
	s.Values["lists"] = json.RawMessage(`"not a list"`)
	_, err := Encode(s)
	if err == nil || !strings.Contains(err.Error(), "invalid session record") {
		t.Fatalf("Encode() error = %v, want invalid session record", err)
	}
}

func TestDecodeAcceptsNullTodos(t *testing.T) {
	t.Parallel()

	raw := `{"id":"a","created_at":"2026-01-01T00:00:00Z","expires_at":"2026-01-02T00:00:00Z","values":{"lists":[{"id":1,"name":"x","todos":null}]}}`
	if _, err := Decode([]byte(raw)); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
}

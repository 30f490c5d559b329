// Package sessionstest runs shared behavior checks against session registries.
package sessionstest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/todos/internal/sessions"
)

// Clock is a settable time source handed to registries under test.
type Clock struct {
	Now time.Time
}

// Func returns the clock reading as a time.Now replacement.
func (c *Clock) Func() func() time.Time {
	return func() time.Time { return c.Now }
}

// Factory builds a registry reading time from clock.
type Factory func(t *testing.T, clock *Clock) sessions.Registry

// RunContract checks behavior every registry must share.
func RunContract(t *testing.T, newRegistry Factory) {
	t.Helper()

	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

	t.Run("save then get", func(t *testing.T) {
		clock := &Clock{Now: start}
		registry := newRegistry(t, clock)
		s := mustSession(t, start, time.Hour)
		if err := s.Store("lists", []any{}); err != nil {
			t.Fatalf("Store() error = %v", err)
		}
		if err := registry.Save(context.Background(), s); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, err := registry.Get(context.Background(), s.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.ID != s.ID {
			t.Fatalf("Get() id = %q, want %q", got.ID, s.ID)
		}
		if _, ok := got.Values["lists"]; !ok {
			t.Fatal("Get() lost stored values")
		}
	})

	t.Run("get missing", func(t *testing.T) {
		registry := newRegistry(t, &Clock{Now: start})
		if _, err := registry.Get(context.Background(), "missing"); !errors.Is(err, sessions.ErrNotFound) {
			t.Fatalf("Get() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("returned sessions are copies", func(t *testing.T) {
		registry := newRegistry(t, &Clock{Now: start})
		s := mustSession(t, start, time.Hour)
		mustSave(t, registry, s)
		got, _ := registry.Get(context.Background(), s.ID)
		_ = got.Store("flash", map[string]string{"kind": "success", "key": "k"})
		again, _ := registry.Get(context.Background(), s.ID)
		if _, ok := again.Values["flash"]; ok {
			t.Fatal("mutating a loaded session changed the registry")
		}
	})

	t.Run("expired records are not returned", func(t *testing.T) {
		clock := &Clock{Now: start}
		registry := newRegistry(t, clock)
		s := mustSession(t, start, time.Minute)
		mustSave(t, registry, s)
		clock.Now = start.Add(2 * time.Minute)
		if _, err := registry.Get(context.Background(), s.ID); !errors.Is(err, sessions.ErrNotFound) {
			t.Fatalf("Get() error = %v, want ErrNotFound", err)
		}
		clock.Now = start
		if _, err := registry.Get(context.Background(), s.ID); !errors.Is(err, sessions.ErrNotFound) {
			t.Fatalf("expired record survived load: %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		registry := newRegistry(t, &Clock{Now: start})
		s := mustSession(t, start, time.Hour)
		mustSave(t, registry, s)
		if err := registry.Delete(context.Background(), s.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := registry.Get(context.Background(), s.ID); !errors.Is(err, sessions.ErrNotFound) {
			t.Fatalf("Get() error = %v, want ErrNotFound", err)
		}
		if err := registry.Delete(context.Background(), s.ID); err != nil {
			t.Fatalf("second Delete() error = %v", err)
		}
	})

	t.Run("prune removes only expired records", func(t *testing.T) {
		registry := newRegistry(t, &Clock{Now: start})
		short := mustSession(t, start, time.Minute)
		long := mustSession(t, start, time.Hour)
		mustSave(t, registry, short)
		mustSave(t, registry, long)
		removed, err := registry.Prune(context.Background(), start.Add(10*time.Minute))
		if err != nil {
			t.Fatalf("Prune() error = %v", err)
		}
		if removed != 1 {
			t.Fatalf("Prune() removed = %d, want 1", removed)
		}
		if _, err := registry.Get(context.Background(), long.ID); err != nil {
			t.Fatalf("Get(long) error = %v", err)
		}
	})
}

func mustSession(t *testing.T, now time.Time, ttl time.Duration) *sessions.Session {
	t.Helper()
	s, err := sessions.New(now, ttl)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func mustSave(t *testing.T, registry sessions.Registry, s *sessions.Session) {
	t.Helper()
	if err := registry.Save(context.Background(), s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
}

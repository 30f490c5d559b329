package bbolt

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/todos/internal/sessions"
	"github.com/louisbranch/todos/internal/sessions/sessionstest"
)

func TestRegistryContract(t *testing.T) {
	sessionstest.RunContract(t, func(t *testing.T, clock *sessionstest.Clock) sessions.Registry {
		registry, err := Open(filepath.Join(t.TempDir(), "sessions.db"), clock.Func())
		if err != nil {
			t.Fatalf("open registry: %v", err)
		}
		t.Cleanup(func() { _ = registry.Close() })
		return registry
	})
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(" ", nil); err == nil {
		t.Fatal("expected error for blank path")
	}
}

func TestRecordsSurviveReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sessions.db")
	registry, err := Open(path, nil)
	if err != nil {
		t.Fatalf("open registry: %v", err)
	}
	s, _ := sessions.New(time.Now(), time.Hour)
	if err := s.Store("lists", []any{}); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := registry.Save(context.Background(), s); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := registry.Close(); err != nil {
		t.Fatalf("close registry: %v", err)
	}

	reopened, err := Open(path, nil)
	if err != nil {
		t.Fatalf("reopen registry: %v", err)
	}
	defer reopened.Close()
	got, err := reopened.Get(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != s.ID {
		t.Fatalf("Get() id = %q, want %q", got.ID, s.ID)
	}
}

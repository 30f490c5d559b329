package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/louisbranch/todos/internal/storage"
	"github.com/louisbranch/todos/internal/todo"
)

// Provider binds session stores to the session state of each request.
type Provider struct{}

// NewProvider returns a session-scoped store provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Acquire decodes the lists held by state into a request-scoped store.
func (p *Provider) Acquire(_ context.Context, state storage.SessionState) (storage.Handle, error) {
	if state == nil {
		return nil, errors.New("session state is required")
	}
	var lists []todo.List
	if _, err := state.Load(ListsKey, &lists); err != nil {
		return nil, fmt.Errorf("load session lists: %w", err)
	}
	return &handle{Store: New(lists), state: state}, nil
}

// Close is a no-op; session stores hold no shared resources.
func (p *Provider) Close() error {
	return nil
}

type handle struct {
	*Store
	state    storage.SessionState
	released bool
}

// Release writes mutated lists back into the session state.
func (h *handle) Release() error {
	if h.released {
		return nil
	}
	h.released = true
	if !h.Dirty() {
		return nil
	}
	if err := h.state.Store(ListsKey, h.Lists()); err != nil {
		return fmt.Errorf("store session lists: %w", err)
	}
	return nil
}

var _ storage.Provider = (*Provider)(nil)

package storage

import (
	"context"
	"errors"

	"github.com/louisbranch/todos/internal/todo"
)

// ErrNotFound indicates a requested record is missing.
var ErrNotFound = errors.New("record not found")

// Store is the capability set shared by every todo backend.
//
// Store performs no validation; callers run the todo validators before any
// mutation.
type Store interface {
	FindList(ctx context.Context, listID int64) (todo.List, bool, error)
	AllLists(ctx context.Context) ([]todo.List, error)
	ListSummaries(ctx context.Context) ([]todo.Summary, error)
	AllTodosForList(ctx context.Context, listID int64) ([]todo.Todo, error)
	CreateList(ctx context.Context, name string) (todo.List, error)
	DeleteList(ctx context.Context, listID int64) error
	UpdateListName(ctx context.Context, listID int64, name string) error
	CreateTodo(ctx context.Context, listID int64, name string) (todo.Todo, error)
	DeleteTodo(ctx context.Context, listID, todoID int64) error
	UpdateTodoStatus(ctx context.Context, listID, todoID int64, completed bool) error
	MarkAllTodosCompleted(ctx context.Context, listID int64) error
}

// Handle is a Store scoped to one request.
//
// Release must be called exactly once when the request's work is complete,
// including on error paths.
type Handle interface {
	Store
	Release() error
}

// SessionState is the per-visitor state a request carries.
//
// Backends that keep data in the session read and write named values through
// it; backends with their own persistence ignore it.
type SessionState interface {
	Load(key string, dst any) (bool, error)
	Store(key string, value any) error
}

// Provider hands out request-scoped Store handles.
type Provider interface {
	Acquire(ctx context.Context, state SessionState) (Handle, error)
	Close() error
}

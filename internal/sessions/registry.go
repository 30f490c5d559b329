package sessions

import (
	"context"
	"time"
)

// Registry persists session records between requests.
//
// Get returns ErrNotFound for missing or expired records; expired records are
// removed as they are found.
type Registry interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
	Prune(ctx context.Context, now time.Time) (int, error)
	Close() error
}

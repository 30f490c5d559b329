package sessions

import (
	"context"
	"sync"
	"testing"
	"time"
)

type countingRegistry struct {
	Registry
	mu     sync.Mutex
	prunes int
	done   chan struct{}
}

func (r *countingRegistry) Prune(context.Context, time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prunes++
	if r.prunes == 2 {
		close(r.done)
	}
	return 0, nil
}

func TestSweepPrunesUntilCanceled(t *testing.T) {
	t.Parallel()

	registry := &countingRegistry{done: make(chan struct{})}
	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})
	go func() {
		Sweep(ctx, registry, time.Millisecond, nil)
		close(finished)
	}()

	select {
	case <-registry.done:
	case <-time.After(5 * time.Second):
		t.Fatal("sweep did not prune")
	}
	cancel()
	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("sweep did not stop")
	}
}

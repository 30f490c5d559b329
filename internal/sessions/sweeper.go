package sessions

import (
	"context"
	"time"
)

// SweepLogger receives sweep outcomes.
type SweepLogger interface {
	Debug(msg any, keyvals ...any)
	Error(msg any, keyvals ...any)
}

// Sweep prunes expired records from registry every interval until ctx ends.
func Sweep(ctx context.Context, registry Registry, interval time.Duration, logger SweepLogger) {
	if registry == nil || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := registry.Prune(ctx, now)
			if logger == nil {
				continue
			}
			if err != nil {
				logger.Error("prune sessions", "err", err)
				continue
			}
			logger.Debug("pruned sessions", "removed", removed)
		}
	}
}

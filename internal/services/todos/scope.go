package todos

import (
	"context"
	"net/http"

	"github.com/louisbranch/todos/internal/platform/timeouts"
	apperrors "github.com/louisbranch/todos/internal/services/todos/platform/errors"
	"github.com/louisbranch/todos/internal/services/todos/platform/httpx"
	"github.com/louisbranch/todos/internal/services/todos/platform/weberror"
	"github.com/louisbranch/todos/internal/sessions"
	"github.com/louisbranch/todos/internal/storage"
)

type storeContextKey struct{}

// withStorageScope acquires one store handle per request and releases it
// before the response header is written, so session-held lists are stored
// ahead of the session commit.
func withStorageScope(provider storage.Provider, logger Logger) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			s, ok := sessions.FromContext(ctx)
			if !ok {
				logger.Error("storage scope without session", "path", r.URL.Path)
				weberror.WriteAppError(w, r, http.StatusInternalServerError)
				return
			}

			acquireCtx, cancel := context.WithTimeout(ctx, timeouts.StorageAcquire)
			handle, err := provider.Acquire(acquireCtx, s)
			cancel()
			if err != nil {
				logger.Error("acquire storage", "path", r.URL.Path, "err", err)
				weberror.WriteError(w, r, apperrors.Wrap(apperrors.KindUnavailable, "", err))
				return
			}

			wrapped, flush := httpx.BeforeWrite(w, func() {
				if err := handle.Release(); err != nil {
					logger.Error("release storage", "path", r.URL.Path, "err", err)
				}
			})
			defer flush()
			next.ServeHTTP(wrapped, r.WithContext(context.WithValue(ctx, storeContextKey{}, storage.Store(handle))))
		})
	}
}

// storeFromRequest returns the request-scoped store.
func storeFromRequest(r *http.Request) (storage.Store, bool) {
	store, ok := httpx.RequestContext(r).Value(storeContextKey{}).(storage.Store)
	return store, ok && store != nil
}

// Package websession binds browser requests to session records.
package websession

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/louisbranch/todos/internal/services/todos/platform/httpx"
	"github.com/louisbranch/todos/internal/services/todos/platform/requestmeta"
	"github.com/louisbranch/todos/internal/services/todos/platform/sessioncookie"
	"github.com/louisbranch/todos/internal/sessions"
)

// Logger receives session lifecycle failures.
type Logger interface {
	Warn(msg any, keyvals ...any)
	Error(msg any, keyvals ...any)
}

// Config wires a Manager.
type Config struct {
	Registry sessions.Registry
	Signer   *sessions.Signer
	TTL      time.Duration
	Now      func() time.Time
	Policy   requestmeta.SchemePolicy
	Logger   Logger
}

// Manager loads the session named by the request cookie and commits changes
// before the response is written.
type Manager struct {
	registry sessions.Registry
	signer   *sessions.Signer
	ttl      time.Duration
	now      func() time.Time
	policy   requestmeta.SchemePolicy
	logger   Logger
}

// NewManager validates cfg and returns a Manager.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Registry == nil {
		return nil, errors.New("session registry is required")
	}
	if cfg.Signer == nil {
		return nil, errors.New("session signer is required")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", cfg.TTL)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		registry: cfg.Registry,
		signer:   cfg.Signer,
		ttl:      cfg.TTL,
		now:      now,
		policy:   cfg.Policy,
		logger:   cfg.Logger,
	}, nil
}

// Load returns the live session for r, or a fresh one when the cookie is
// missing, invalid or names an expired record.
func (m *Manager) Load(r *http.Request) (*sessions.Session, error) {
	s, _, err := m.load(r)
	return s, err
}

// load also reports whether r carried a cookie that no longer names a live
// session. Undecodable records are deleted so the visitor can start over.
func (m *Manager) load(r *http.Request) (*sessions.Session, bool, error) {
	ctx := httpx.RequestContext(r)
	token, ok := sessioncookie.Read(r)
	if !ok {
		s, err := m.start()
		return s, false, err
	}
	id, err := m.signer.Verify(token)
	if err != nil {
		m.warn("discard session cookie", "err", err)
	} else {
		s, err := m.registry.Get(ctx, id)
		switch {
		case err == nil:
			return s, false, nil
		case errors.Is(err, sessions.ErrInvalidRecord):
			m.warn("discard session record", "session_id", id, "err", err)
			if err := m.registry.Delete(ctx, id); err != nil {
				return nil, false, fmt.Errorf("delete session: %w", err)
			}
		case !errors.Is(err, sessions.ErrNotFound):
			return nil, false, fmt.Errorf("load session: %w", err)
		}
	}
	s, err := m.start()
	return s, true, err
}

func (m *Manager) start() (*sessions.Session, error) {
	s, err := sessions.New(m.now(), m.ttl)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	return s, nil
}

// Commit saves s and refreshes the cookie when s changed during the request
// or when less than half of its lifetime remains. A fresh session is only
// persisted once it holds a change.
func (m *Manager) Commit(ctx context.Context, w http.ResponseWriter, r *http.Request, s *sessions.Session) error {
	if !m.needsSave(s) {
		return nil
	}
	s.ExpiresAt = m.now().UTC().Add(m.ttl)
	if err := m.registry.Save(ctx, s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	token, err := m.signer.Sign(s.ID, s.ExpiresAt)
	if err != nil {
		return err
	}
	sessioncookie.Write(w, r, token, s.ExpiresAt, m.policy)
	return nil
}

func (m *Manager) needsSave(s *sessions.Session) bool {
	switch {
	case s == nil:
		return false
	case s.Modified():
		return true
	case s.Fresh():
		return false
	default:
		return s.ExpiresAt.Sub(m.now()) < m.ttl/2
	}
}

// Middleware attaches the request session to the context and commits it
// right before the first byte of the response. A stale cookie is cleared
// unless the response replaces it.
func (m *Manager) Middleware() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, stale, err := m.load(r)
			if err != nil {
				m.error("load session", "path", r.URL.Path, "err", err)
				http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
				return
			}
			ctx := sessions.WithSession(r.Context(), s)
			raw := w
			wrapped, flush := httpx.BeforeWrite(w, func() {
				if stale && !s.Modified() {
					sessioncookie.Clear(raw, r, m.policy)
					return
				}
				if err := m.Commit(ctx, raw, r, s); err != nil {
					m.error("commit session", "path", r.URL.Path, "err", err)
				}
			})
			defer flush()
			next.ServeHTTP(wrapped, r.WithContext(ctx))
		})
	}
}

func (m *Manager) warn(msg string, keyvals ...any) {
	if m.logger != nil {
		m.logger.Warn(msg, keyvals...)
	}
}

func (m *Manager) error(msg string, keyvals ...any) {
	if m.logger != nil {
		m.logger.Error(msg, keyvals...)
	}
}

// Package todos hosts the browser-facing todo list service.
package todos

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/louisbranch/todos/internal/platform/logging"
	"github.com/louisbranch/todos/internal/platform/timeouts"
	"github.com/louisbranch/todos/internal/services/todos/platform/httpx"
	"github.com/louisbranch/todos/internal/services/todos/platform/observability"
	"github.com/louisbranch/todos/internal/services/todos/platform/requestmeta"
	"github.com/louisbranch/todos/internal/services/todos/platform/websession"
	"github.com/louisbranch/todos/internal/services/todos/routepath"
	todostatic "github.com/louisbranch/todos/internal/services/todos/static"
	"github.com/louisbranch/todos/internal/sessions"
	"github.com/louisbranch/todos/internal/storage"
)

// Logger is the structured logger used by handlers and middleware.
type Logger interface {
	Warn(msg any, keyvals ...any)
	Error(msg any, keyvals ...any)
}

// Config defines startup inputs for the todo service.
type Config struct {
	HTTPAddr     string
	Provider     storage.Provider
	Registry     sessions.Registry
	Signer       *sessions.Signer
	SessionTTL   time.Duration
	SchemePolicy requestmeta.SchemePolicy
	Logger       *charmlog.Logger
	Now          func() time.Time
}

// Server hosts the todo HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds the root handler: static assets and health outside the
// session, every list route inside a session and storage scope.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.Provider == nil {
		return nil, errors.New("storage provider is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = charmlog.Default()
	}
	sessionManager, err := websession.NewManager(websession.Config{
		Registry: cfg.Registry,
		Signer:   cfg.Signer,
		TTL:      cfg.SessionTTL,
		Now:      cfg.Now,
		Policy:   cfg.SchemePolicy,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("compose session manager: %w", err)
	}

	appMux := http.NewServeMux()
	handlers{logger: logger}.registerRoutes(appMux)
	app := httpx.Chain(appMux,
		sessionManager.Middleware(),
		withStorageScope(cfg.Provider, logger),
	)

	stdLogger := logging.Standard(logger)
	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(todostatic.FS))))
	rootMux.HandleFunc(http.MethodGet+" "+routepath.Up, handleUp)
	rootMux.Handle("/", app)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(stdLogger),
		httpx.RequestID(),
		observability.Tracing(),
		observability.RequestLogger(stdLogger),
	), nil
}

func handleUp(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteText(w, http.StatusOK, "ok")
}

// NewServer validates config and constructs a todo server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose todos handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	if s == nil {
		return ""
	}
	return s.httpAddr
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("todos server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown todos http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve todos http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}

// Package todos parses todo service flags and launches the service.
package todos

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	charmlog "github.com/charmbracelet/log"
	entrypoint "github.com/louisbranch/todos/internal/platform/cmd"
	"github.com/louisbranch/todos/internal/platform/logging"
	"github.com/louisbranch/todos/internal/platform/timeouts"
	todosservice "github.com/louisbranch/todos/internal/services/todos"
	"github.com/louisbranch/todos/internal/services/todos/platform/requestmeta"
	"github.com/louisbranch/todos/internal/sessions"
	sessionsbbolt "github.com/louisbranch/todos/internal/sessions/bbolt"
	sessionsmemory "github.com/louisbranch/todos/internal/sessions/memory"
	"github.com/louisbranch/todos/internal/storage"
	"github.com/louisbranch/todos/internal/storage/session"
	"github.com/louisbranch/todos/internal/storage/sqlite"
)

const (
	StorageSession = "session"
	StorageSQLite  = "sqlite"

	SessionBackendMemory = "memory"
	SessionBackendBolt   = "bbolt"
)

// Config holds todo command configuration.
type Config struct {
	HTTPAddr            string        `env:"TODOS_HTTP_ADDR" envDefault:"localhost:4567"`
	Storage             string        `env:"TODOS_STORAGE" envDefault:"session"`
	DBPath              string        `env:"TODOS_DB_PATH" envDefault:"data/todos.db"`
	SessionBackend      string        `env:"TODOS_SESSION_BACKEND" envDefault:"memory"`
	SessionPath         string        `env:"TODOS_SESSION_PATH" envDefault:"data/sessions.db"`
	SessionSecret       string        `env:"TODOS_SESSION_SECRET"`
	SessionTTL          time.Duration `env:"TODOS_SESSION_TTL" envDefault:"720h"`
	TrustForwardedProto bool          `env:"TODOS_TRUST_FORWARDED_PROTO"`
	LogLevel            string        `env:"TODOS_LOG_LEVEL" envDefault:"info"`
	LogFormat           string        `env:"TODOS_LOG_FORMAT" envDefault:"text"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.Storage, "storage", cfg.Storage, "Storage backend: session or sqlite")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.SessionBackend, "session-backend", cfg.SessionBackend, "Session registry: memory or bbolt")
	fs.StringVar(&cfg.SessionPath, "session-path", cfg.SessionPath, "bbolt session registry path")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret used to sign session cookies")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Session lifetime")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Honor X-Forwarded-Proto for secure cookies")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text, json or logfmt")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Storage {
	case StorageSession, StorageSQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage)
	}
	switch c.SessionBackend {
	case SessionBackendMemory, SessionBackendBolt:
	default:
		return fmt.Errorf("unknown session backend %q", c.SessionBackend)
	}
	if secret := strings.TrimSpace(c.SessionSecret); secret != "" && len(secret) < sessions.MinSecretLength {
		return fmt.Errorf("session secret must be at least %d bytes", sessions.MinSecretLength)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", c.SessionTTL)
	}
	return nil
}

// Run starts the todo HTTP service.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(os.Stderr, logging.Options{
		Level:           cfg.LogLevel,
		Format:          cfg.LogFormat,
		Prefix:          "todos",
		ReportTimestamp: true,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	return entrypoint.RunWithTelemetryAndOptions(ctx, entrypoint.ServiceTodos, entrypoint.RunOptions{Logger: logger}, func(ctx context.Context) error {
		return serve(ctx, cfg, logger)
	})
}

func serve(ctx context.Context, cfg Config, logger *charmlog.Logger) error {
	provider, err := openProvider(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeLogged(logger, "storage", provider.Close)

	registry, err := openRegistry(cfg)
	if err != nil {
		return err
	}
	defer closeLogged(logger, "session registry", registry.Close)

	secret, err := sessionSecret(cfg, logger)
	if err != nil {
		return err
	}
	signer, err := sessions.NewSigner(secret, time.Now)
	if err != nil {
		return fmt.Errorf("init session signer: %w", err)
	}

	server, err := todosservice.NewServer(ctx, todosservice.Config{
		HTTPAddr:     cfg.HTTPAddr,
		Provider:     provider,
		Registry:     registry,
		Signer:       signer,
		SessionTTL:   cfg.SessionTTL,
		SchemePolicy: requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("init todos server: %w", err)
	}
	defer server.Close()

	go sessions.Sweep(ctx, registry, timeouts.SessionSweep, logger)

	logger.Info("listening", "addr", server.Addr(), "storage", cfg.Storage, "sessions", cfg.SessionBackend)
	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve todos: %w", err)
	}
	return nil
}

// sessionSecret returns the configured secret, or a random one when none is
// set. Cookies signed with a random secret stop verifying after a restart.
func sessionSecret(cfg Config, logger *charmlog.Logger) (string, error) {
	if secret := strings.TrimSpace(cfg.SessionSecret); secret != "" {
		return secret, nil
	}
	secret, err := sessions.GenerateSecret(nil, sessions.MinSecretLength)
	if err != nil {
		return "", fmt.Errorf("generate session secret: %w", err)
	}
	logger.Warn("session secret not set, using a random secret", "env", "TODOS_SESSION_SECRET")
	return secret, nil
}

func openProvider(ctx context.Context, cfg Config, logger *charmlog.Logger) (storage.Provider, error) {
	switch cfg.Storage {
	case StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.DBPath, sqlite.WithQueryLogger(logger.WithPrefix("sql")))
		if err != nil {
			return nil, fmt.Errorf("open todo database: %w", err)
		}
		return db, nil
	case StorageSession:
		return session.NewProvider(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}

func openRegistry(cfg Config) (sessions.Registry, error) {
	switch cfg.SessionBackend {
	case SessionBackendBolt:
		registry, err := sessionsbbolt.Open(cfg.SessionPath, time.Now)
		if err != nil {
			return nil, fmt.Errorf("open session registry: %w", err)
		}
		return registry, nil
	case SessionBackendMemory:
		return sessionsmemory.New(time.Now), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}

func closeLogged(logger *charmlog.Logger, name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logger.Error("close "+name, "err", err)
	}
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sqlitemigrate "github.com/louisbranch/todos/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/todos/internal/storage"
	"github.com/louisbranch/todos/internal/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

const dsnPragmas = "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

// QueryLogger receives every statement issued by a Store.
type QueryLogger interface {
	Debug(msg any, keyvals ...any)
}

// Option configures a DB.
type Option func(*DB)

// WithQueryLogger logs statements and their parameters.
func WithQueryLogger(logger QueryLogger) Option {
	return func(db *DB) {
		db.logger = logger
	}
}

// DB is the SQLite connection pool shared by request-scoped stores.
type DB struct {
	sqlDB  *sql.DB
	logger QueryLogger
}

// Open opens and migrates a todo database at path.
func Open(ctx context.Context, path string, opts ...Option) (*DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}

	sqlDB, err := sql.Open("sqlite", filepath.Clean(path)+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(ctx, sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	db := &DB{sqlDB: sqlDB}
	for _, opt := range opts {
		if opt != nil {
			opt(db)
		}
	}
	return db, nil
}

// Close releases the connection pool.
func (db *DB) Close() error {
	if db == nil || db.sqlDB == nil {
		return nil
	}
	return db.sqlDB.Close()
}

// Acquire checks out one connection for the duration of a request.
// The session state is ignored; lists live in the database.
func (db *DB) Acquire(ctx context.Context, _ storage.SessionState) (storage.Handle, error) {
	if db == nil || db.sqlDB == nil {
		return nil, errors.New("storage is not configured")
	}
	conn, err := db.sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire sqlite connection: %w", err)
	}
	return &Store{conn: conn, logger: db.logger}, nil
}

var _ storage.Provider = (*DB)(nil)

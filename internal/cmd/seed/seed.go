// Package seed parses seed command flags and loads fixture lists into the
// todo database.
package seed

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	entrypoint "github.com/louisbranch/todos/internal/platform/cmd"
	"github.com/louisbranch/todos/internal/storage/sqlite"
	"github.com/louisbranch/todos/internal/tools/seed"
)

const defaultFixture = "demo"

// Config holds seed command configuration.
type Config struct {
	DBPath  string `env:"TODOS_DB_PATH" envDefault:"data/todos.db"`
	File    string
	Fixture string
	List    bool
	Verbose bool
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.File, "file", "", "TOML fixture file (overrides -fixture)")
	fs.StringVar(&cfg.Fixture, "fixture", defaultFixture, "bundled fixture name")
	fs.BoolVar(&cfg.List, "list", false, "list bundled fixtures")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the seed command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	if cfg.List {
		names, err := seed.BundledFixtures()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Available fixtures:")
		for _, name := range names {
			fmt.Fprintf(out, "  %s\n", name)
		}
		return nil
	}

	fixture, err := loadFixture(cfg)
	if err != nil {
		return err
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		db, err := sqlite.Open(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open todo database: %w", err)
		}
		defer db.Close()

		handle, err := db.Acquire(ctx, nil)
		if err != nil {
			return err
		}
		defer handle.Release()

		progress := io.Discard
		if cfg.Verbose {
			progress = out
		}
		result, err := seed.Apply(ctx, handle, fixture, progress)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Seeded %d lists (%d skipped) and %d todos into %s\n",
			result.ListsCreated, result.ListsSkipped, result.TodosCreated, cfg.DBPath)
		return nil
	})
}

func loadFixture(cfg Config) (seed.Fixture, error) {
	if file := strings.TrimSpace(cfg.File); file != "" {
		return seed.LoadFixtureFile(file)
	}
	name := strings.TrimSpace(cfg.Fixture)
	if name == "" {
		name = defaultFixture
	}
	return seed.LoadBundledFixture(name)
}

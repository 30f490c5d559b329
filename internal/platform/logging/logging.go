// Package logging builds the leveled process logger shared by commands.
package logging

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Options configures a process logger.
type Options struct {
	Level           string
	Format          string
	Prefix          string
	ReportTimestamp bool
}

// New builds a logger writing to w, or stderr when w is nil.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	formatter, err := ParseFormatter(opts.Format)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Formatter:       formatter,
		Prefix:          strings.TrimSpace(opts.Prefix),
		ReportTimestamp: opts.ReportTimestamp,
	}), nil
}

// ParseLevel maps a level name to a log level. Empty means info.
func ParseLevel(value string) (log.Level, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(value)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("parse log level %q: %w", value, err)
	}
	return level, nil
}

// ParseFormatter maps a format name to a formatter. Empty means text.
func ParseFormatter(value string) (log.Formatter, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return log.TextFormatter, fmt.Errorf("unsupported log format %q", value)
	}
}

// Standard bridges logger into a stdlib logger for middleware that expects one.
// Lines are forwarded at info level.
func Standard(logger *log.Logger) *stdlog.Logger {
	if logger == nil {
		return stdlog.New(io.Discard, "", 0)
	}
	return logger.StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel})
}

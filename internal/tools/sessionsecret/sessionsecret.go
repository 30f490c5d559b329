// Package sessionsecret generates secrets for signing session cookies.
package sessionsecret

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/louisbranch/todos/internal/sessions"
)

// EnvName is the variable the todo service reads its session secret from.
const EnvName = "TODOS_SESSION_SECRET"

// MinBytes is the fewest random bytes accepted for HS256 signing.
const MinBytes = sessions.MinSecretLength

// Config holds configuration for secret generation.
type Config struct {
	Bytes int
	Raw   bool
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{Bytes: MinBytes}
	fs.IntVar(&cfg.Bytes, "bytes", cfg.Bytes, "number of random bytes")
	fs.BoolVar(&cfg.Raw, "raw", false, "print only the secret, without the env assignment")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run generates a secret and writes it to out.
func Run(cfg Config, out io.Writer, reader io.Reader) error {
	if out == nil {
		return fmt.Errorf("output is required")
	}
	secret, err := sessions.GenerateSecret(reader, cfg.Bytes)
	if err != nil {
		return err
	}
	if _, err := sessions.NewSigner(secret, time.Now); err != nil {
		return fmt.Errorf("check secret: %w", err)
	}
	if cfg.Raw {
		_, err := fmt.Fprintln(out, secret)
		return err
	}
	_, err = fmt.Fprintf(out, "%s=%s\n", EnvName, secret)
	return err
}

// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"io"
	"log/slog"
	"time"

	"github.com/venvshell/venvshell/internal/logging"
)

type (
	// Config holds the environment cache settings.
	Config struct {
		// StrictLayout rejects an existing marker that has neither a stamp nor
		// the layout of a virtual environment. When false, any existing
		// directory is activated as-is.
		StrictLayout bool

		// LockDir is where creation lock files are kept.
		// Default: $XDG_RUNTIME_DIR, falling back to os.TempDir().
		LockDir string

		// Progress receives creator output while an environment is created.
		// Nil discards it.
		Progress io.Writer

		// Logger receives provisioning events. Nil discards them.
		Logger *slog.Logger

		// Now returns the creation time recorded in stamps.
		Now func() time.Time
	}

	// Option is a functional option for configuring a Config.
	Option func(*Config)
)

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		StrictLayout: true,
		Logger:       logging.Discard(),
		Now:          time.Now,
	}
}

// NewConfig returns DefaultConfig with opts applied.
func NewConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithStrictLayout sets StrictLayout.
func WithStrictLayout(strict bool) Option {
	return func(c *Config) {
		c.StrictLayout = strict
	}
}

// WithLockDir sets the lock file directory.
func WithLockDir(dir string) Option {
	return func(c *Config) {
		c.LockDir = dir
	}
}

// WithProgress sets the writer receiving creator output.
func WithProgress(w io.Writer) Option {
	return func(c *Config) {
		c.Progress = w
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.Logger = logger
		}
	}
}

// WithClock sets the time source used for stamps.
func WithClock(now func() time.Time) Option {
	return func(c *Config) {
		if now != nil {
			c.Now = now
		}
	}
}

package store

import (
	"log/slog"
	"time"
)

// Config holds configuration for the Store.
type Config struct {
	// SpreadsheetTitle is the well-known document name searched for (and
	// created) during resolution.
	// Default: "sheetstore-data"
	SpreadsheetTitle string

	// MaxAttempts is the total number of attempts for a rate-limited remote
	// call, including the first.
	// Default: 3
	MaxAttempts int

	// RetryBaseDelay is the backoff before the first retry; it doubles on
	// every subsequent retry.
	// Default: 1s
	RetryBaseDelay time.Duration

	// RetryMaxDelay caps the backoff growth.
	// Default: 5s
	RetryMaxDelay time.Duration

	// Logger receives best-effort failure reports (table repair, tenant
	// switch validation). Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		SpreadsheetTitle: "sheetstore-data",
		MaxAttempts:      3,
		RetryBaseDelay:   time.Second,
		RetryMaxDelay:    5 * time.Second,
	}
}

// validate ensures config values are within acceptable bounds.
func (c *Config) validate() {
	if c.SpreadsheetTitle == "" {
		c.SpreadsheetTitle = "sheetstore-data"
	}
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 3
	}
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = time.Second
	}
	if c.RetryMaxDelay < c.RetryBaseDelay {
		c.RetryMaxDelay = 5 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

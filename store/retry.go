package store

import (
	"context"
	"errors"
	"time"
)

// withRetry runs fn, retrying rate-limited failures with exponential
// backoff up to Config.MaxAttempts total attempts. Any other failure
// propagates immediately. The final rate-limit error is surfaced to the
// caller, which decides whether to degrade (reads) or fail (writes).
func (s *Store) withRetry(ctx context.Context, fn func() error) error {
	delay := s.config.RetryBaseDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !errors.Is(err, ErrRateLimited) || attempt >= s.config.MaxAttempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
		if delay > s.config.RetryMaxDelay {
			delay = s.config.RetryMaxDelay
		}
	}
}

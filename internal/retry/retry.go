// Package retry is a reusable bounded-attempt policy with exponential
// backoff, applicable uniformly to any outbound call.
package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/jpillora/backoff"

	"github.com/Yahelsm/stz-signal-tool/internal/logger"
)

type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}

// Do runs fn up to MaxAttempts times, sleeping BaseDelay*Multiplier^n
// between attempts. The sleep is cut short if ctx is cancelled. Returns the
// last error once attempts are exhausted.
func (p Policy) Do(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	b := &backoff.Backoff{
		Min:    p.BaseDelay,
		Max:    p.BaseDelay << 16,
		Factor: p.Multiplier,
		Jitter: false,
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == p.MaxAttempts {
			break
		}
		wait := b.Duration()
		logger.Warn(ctx, "Attempt failed, backing off", "op", op, "attempt", attempt, "wait", wait.String(), "error", lastErr)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fmt.Errorf("%s: %d attempts exhausted: %w", op, p.MaxAttempts, lastErr)
}

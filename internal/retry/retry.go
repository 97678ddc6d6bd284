// Package retry provides bounded exponential backoff for remote
// operations. The interval between attempts doubles until it reaches a
// cap, so repeated polling won't hammer the server for results.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy controls how an operation is retried.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// InitialInterval is the wait before the second attempt.
	InitialInterval time.Duration
	// MaxInterval caps the interval growth.
	MaxInterval time.Duration
	// Multiplier scales the interval after each attempt. Values below 1
	// are treated as 1 (constant interval).
	Multiplier float64
}

// DefaultPolicy returns the policy used for remote changelog fetches:
// three attempts starting at 500ms, doubling up to 4s.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts:     3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     4 * time.Second,
		Multiplier:      2,
	}
}

// Do runs op until it succeeds, the attempt budget is exhausted, or the
// context is cancelled. The last error is returned on exhaustion;
// context cancellation is returned as-is so callers can distinguish it.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	multiplier := p.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}

	interval := p.InitialInterval
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		if lastErr = op(ctx); lastErr == nil {
			return nil
		}

		if attempt == attempts {
			break
		}

		if err := sleep(ctx, interval); err != nil {
			return err
		}

		interval = time.Duration(float64(interval) * multiplier)
		if p.MaxInterval > 0 && interval > p.MaxInterval {
			interval = p.MaxInterval
		}
	}

	return fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

// sleep waits for d or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

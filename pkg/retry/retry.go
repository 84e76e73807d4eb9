// Package retry provides a bounded fixed-delay retry policy for
// operations that fail transiently.
package retry

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Policy bounds how often and how densely an operation is retried.
type Policy struct {
	// Attempts is the total number of tries, the first one included.
	Attempts int

	// Delay is the pause between consecutive tries.
	Delay time.Duration
}

// Do runs fn until it succeeds, the attempt budget is spent, or ctx is
// done. The last error is returned after the budget is exhausted. op
// names the operation in logs.
func (p Policy) Do(ctx context.Context, op string, fn func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 1; i <= attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}

		if i == attempts {
			break
		}

		slog.Warn("Retrying after failure",
			"operation", op, "attempt", i, "error", err)

		select {
		case <-time.After(p.Delay):
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", op, ctx.Err())
		}
	}
	return fmt.Errorf("%s failed after %d attempts: %w", op, attempts, err)
}

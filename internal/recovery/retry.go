// Package recovery implements bounded retry with backoff for recoverable
// operations. It never re-panics and never returns a raw error: callers
// get a Result either way.
package recovery

import (
	"context"
	"time"

	"github.com/quizdesk/quizdesk/internal/apperr"
)

// Result is the outcome of a retried operation.
type Result[T any] struct {
	Success bool
	Data    T
	Err     *apperr.Error
}

// Do executes op up to maxRetries+1 times. Between attempts it waits
// baseDelay, doubled per attempt when backoff is set. Only recoverable
// failures are retried; a context cancellation ends the loop early with
// the classified cause.
func Do[T any](ctx context.Context, op func() (T, error), maxRetries int, baseDelay time.Duration, backoff bool) Result[T] {
	if maxRetries < 0 {
		maxRetries = 0
	}

	var lastErr *apperr.Error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := baseDelay
			if backoff {
				delay = baseDelay << (attempt - 1)
			}
			select {
			case <-ctx.Done():
				return Result[T]{Err: apperr.Transform(ctx.Err())}
			case <-time.After(delay):
			}
		}

		value, err := op()
		if err == nil {
			return Result[T]{Success: true, Data: value}
		}

		lastErr = apperr.Transform(err)
		if !lastErr.Recoverable {
			lastErr.RetryCount = attempt
			return Result[T]{Err: lastErr}
		}
	}

	lastErr.RetryCount = maxRetries
	return Result[T]{Err: lastErr}
}

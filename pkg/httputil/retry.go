package httputil

import (
	"context"
	"errors"
	"time"
)

// Defaults for [RetryWithBackoff], tuned for the statistics backend.
const (
	BackendAttempts = 3
	BackendDelay    = time.Second
)

// RetryableError marks a transient failure (timeout, refused connection,
// 5xx) that [Retry] may attempt again.
type RetryableError struct{ Err error }

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable marks err as transient. A nil error stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err or anything it wraps is a [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Retry calls fn at most attempts times, doubling delay between calls.
// Non-retryable errors end the loop at once. When every attempt fails the
// last error is returned; cancellation between attempts returns ctx.Err().
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			break
		}

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		delay *= 2
	}
	return err
}

// RetryWithBackoff runs fn with [BackendAttempts] and [BackendDelay].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, BackendAttempts, BackendDelay, fn)
}

// Package retry provides retry functionality with exponential backoff and jitter.
// Used for startup connection attempts (PostgreSQL, Redis). The matching engine
// itself never retries a failed fetch - retry is a caller policy decision.
// No external dependencies - uses only standard library.
package retry

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// PermanentError indicates that an error should not be retried.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string {
	return e.Err.Error()
}

func (e *PermanentError) Unwrap() error {
	return e.Err
}

// Permanent wraps an error to indicate it should not be retried.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &PermanentError{Err: err}
}

// IsPermanent checks if an error is permanent.
func IsPermanent(err error) bool {
	var permanentErr *PermanentError
	return errors.As(err, &permanentErr)
}

// Config holds retry configuration.
type Config struct {
	// MaxAttempts is the total number of attempts (including the first).
	MaxAttempts int

	// BaseDelay is the delay before the second attempt.
	BaseDelay time.Duration

	// MaxDelay caps the exponential backoff.
	MaxDelay time.Duration

	// Jitter adds up to this fraction of the delay randomly (0.0-1.0).
	Jitter float64
}

// DefaultConfig returns sensible defaults for startup connections.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 5,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    10 * time.Second,
		Jitter:      0.2,
	}
}

// Do runs fn with exponential backoff until it succeeds, returns a permanent
// error, exhausts MaxAttempts, or the context is cancelled.
func Do(ctx context.Context, config Config, fn func(ctx context.Context) error) error {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}

	var lastErr error
	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(config.delay(attempt)):
			}
		}

		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if IsPermanent(lastErr) {
			return lastErr
		}
	}

	return lastErr
}

// delay computes the backoff delay for the given attempt (1-based wait).
func (c Config) delay(attempt int) time.Duration {
	backoff := float64(c.BaseDelay) * math.Pow(2, float64(attempt-1))
	if c.MaxDelay > 0 && backoff > float64(c.MaxDelay) {
		backoff = float64(c.MaxDelay)
	}
	if c.Jitter > 0 {
		backoff += backoff * c.Jitter * rand.Float64()
	}
	return time.Duration(backoff)
}

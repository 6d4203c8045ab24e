package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type config struct {
	attempts     int
	initialDelay time.Duration
	maxDelay     time.Duration
	multiplier   float64
}

// Option adjusts the retry policy.
type Option func(*config)

// Do runs the operation until it succeeds or the attempt budget is spent,
// sleeping with exponential backoff between tries. Context cancellation is
// respected during the backoff sleep. Errors wrapped with Permanent are
// returned immediately without further attempts.
func Do(ctx context.Context, operation func() error, opts ...Option) error {
	cfg := &config{
		attempts:     3,
		initialDelay: time.Second,
		maxDelay:     20 * time.Second,
		multiplier:   2.0,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	delay := cfg.initialDelay
	var lastErr error

	for attempt := 1; attempt <= cfg.attempts; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if IsPermanent(err) {
			return err
		}

		if attempt < cfg.attempts {
			select {
			case <-ctx.Done():
				return fmt.Errorf("canceled after %d attempt(s): %w", attempt, ctx.Err())
			case <-time.After(delay):
				delay = time.Duration(float64(delay) * cfg.multiplier)
				if delay > cfg.maxDelay {
					delay = cfg.maxDelay
				}
			}
		}
	}

	return fmt.Errorf("failed after %d attempt(s): %w", cfg.attempts, lastErr)
}

// WithAttempts sets the total number of tries, including the first.
func WithAttempts(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.attempts = n
		}
	}
}

// WithInitialDelay sets the delay before the first retry.
func WithInitialDelay(d time.Duration) Option {
	return func(c *config) {
		c.initialDelay = d
	}
}

// WithMaxDelay caps the backoff delay.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithMultiplier sets the backoff growth factor.
func WithMultiplier(m float64) Option {
	return func(c *config) {
		c.multiplier = m
	}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string {
	return e.err.Error()
}

func (e *permanentError) Unwrap() error {
	return e.err
}

// Permanent marks an error as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether the error was marked with Permanent.
func IsPermanent(err error) bool {
	var perm *permanentError
	return errors.As(err, &perm)
}

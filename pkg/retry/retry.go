// Package retry runs an operation with exponential backoff, used for
// connection establishment against dependencies that may still be starting.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Config holds retry configuration
type Config struct {
	MaxAttempts     int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	BackoffFactor   float64
	MaxTotalTimeout time.Duration
}

// DefaultConfig returns the backoff schedule used for startup connections:
// up to ten attempts within one minute, doubling from 100ms to 10s.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:     10,
		InitialDelay:    100 * time.Millisecond,
		MaxDelay:        10 * time.Second,
		BackoffFactor:   2.0,
		MaxTotalTimeout: 60 * time.Second,
	}
}

// NotifyFunc is called before each backoff sleep with the attempt that just
// failed and the delay until the next one.
type NotifyFunc func(attempt int, err error, nextDelay time.Duration)

// Do executes fn with exponential backoff until it succeeds, MaxAttempts is
// reached, or the context (bounded by MaxTotalTimeout) expires.
func Do(ctx context.Context, cfg Config, fn func() error) error {
	return retry(ctx, cfg, "retry", fn, nil)
}

// DoWithLog behaves like Do and reports every failed attempt to notify.
func DoWithLog(ctx context.Context, cfg Config, name string, fn func() error, notify NotifyFunc) error {
	return retry(ctx, cfg, name, fn, notify)
}

func retry(ctx context.Context, cfg Config, name string, fn func() error, notify NotifyFunc) error {
	if cfg.MaxTotalTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.MaxTotalTimeout)
		defer cancel()
	}

	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return abortErr(name, attempt-1, err, lastErr)
		}

		if lastErr = fn(); lastErr == nil {
			return nil
		}

		if attempt == cfg.MaxAttempts {
			break
		}

		if notify != nil {
			notify(attempt, lastErr, delay)
		}

		select {
		case <-ctx.Done():
			return abortErr(name, attempt, ctx.Err(), lastErr)
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * cfg.BackoffFactor)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return fmt.Errorf("%s: max retry attempts (%d) exceeded: %w", name, cfg.MaxAttempts, lastErr)
}

func abortErr(name string, attempts int, ctxErr, lastErr error) error {
	if lastErr != nil {
		return fmt.Errorf("%s: retry aborted after %d attempts: %w (last error: %v)", name, attempts, ctxErr, lastErr)
	}
	return fmt.Errorf("%s: retry aborted: %w", name, ctxErr)
}

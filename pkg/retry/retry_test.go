package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opentraining/coursecatalog/pkg/retry"
)

func fastConfig(attempts int) retry.Config {
	return retry.Config{
		MaxAttempts:   attempts,
		InitialDelay:  time.Millisecond,
		MaxDelay:      5 * time.Millisecond,
		BackoffFactor: 2.0,
	}
}

func TestDo_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), fastConfig(5), func() error {
		calls++
		if calls < 3 {
			return errors.New("not ready")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	cause := errors.New("still down")
	calls := 0
	err := retry.Do(context.Background(), fastConfig(3), func() error {
		calls++
		return cause
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 3, calls)
}

func TestDo_ContextCancellationStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := retry.Do(ctx, fastConfig(100), func() error {
		calls++
		cancel()
		return errors.New("failing")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, calls, 100)
}

func TestDoWithLog_NotifiesEachFailedAttempt(t *testing.T) {
	var attempts []int
	err := retry.DoWithLog(context.Background(), fastConfig(4), "test-dep", func() error {
		return errors.New("nope")
	}, func(attempt int, err error, nextDelay time.Duration) {
		attempts = append(attempts, attempt)
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "test-dep")
	// The final attempt is not followed by a sleep, so it is not notified.
	assert.Equal(t, []int{1, 2, 3}, attempts)
}

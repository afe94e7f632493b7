package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastOpts() RetryOptions {
	return RetryOptions{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestWithRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("succeeds first try", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			return nil
		}, fastOpts())
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			if calls < 3 {
				return errors.New("transient")
			}
			return nil
		}, fastOpts())
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			return errors.New("always fails")
		}, fastOpts())
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMaxRetries)
		assert.Equal(t, 3, calls)
	})

	t.Run("non-retryable error returns immediately", func(t *testing.T) {
		calls := 0
		cause := errors.New("bad request")
		err := WithRetry(ctx, func() error {
			calls++
			return &RetryableError{Err: cause, Retryable: false}
		}, fastOpts())
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, 1, calls)
	})

	t.Run("retryable wrapper is retried", func(t *testing.T) {
		calls := 0
		err := WithRetry(ctx, func() error {
			calls++
			return &RetryableError{Err: errors.New("flaky"), Retryable: true}
		}, fastOpts())
		require.Error(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("cancelled context stops retries", func(t *testing.T) {
		cancelCtx, cancel := context.WithCancel(context.Background())
		cancel()

		err := WithRetry(cancelCtx, func() error {
			return errors.New("fail")
		}, fastOpts())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestRetryableErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &RetryableError{Err: cause, Retryable: true}

	assert.Equal(t, "root cause", err.Error())
	assert.ErrorIs(t, err, cause)
}

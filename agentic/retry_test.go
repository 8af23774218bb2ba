package agentic

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flaky(failures int, err error) (Agent, *int) {
	calls := 0
	a := NewAgent("flaky", []string{"A"}, "B", func(context.Context, *Scope) (any, error) {
		calls++
		if calls <= failures {
			return nil, err
		}
		return "ok", nil
	})
	return a, &calls
}

func fastRetry(attempts int) *RetryConfig {
	return &RetryConfig{
		MaxAttempts:   attempts,
		InitialDelay:  time.Millisecond,
		MaxDelay:      2 * time.Millisecond,
		BackoffFactor: 2,
	}
}

func TestInvokeWithRetry_Succeeds(t *testing.T) {
	a, calls := flaky(2, errors.New("transient"))

	var retried []int
	v, attempts, err := invokeWithRetry(context.Background(), a, NewScope(nil), fastRetry(3), func(attempt int, _ error) {
		retried = append(retried, attempt)
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, *calls)
	assert.Equal(t, []int{1, 2}, retried)
}

func TestInvokeWithRetry_Exhausted(t *testing.T) {
	cause := errors.New("down")
	a, calls := flaky(5, cause)

	_, attempts, err := invokeWithRetry(context.Background(), a, NewScope(nil), fastRetry(3), nil)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 3, *calls)
}

func TestInvokeWithRetry_NotRetryable(t *testing.T) {
	fatal := errors.New("fatal")
	a, calls := flaky(5, fatal)

	cfg := fastRetry(3)
	cfg.RetryableErrors = func(err error) bool { return !errors.Is(err, fatal) }

	_, attempts, err := invokeWithRetry(context.Background(), a, NewScope(nil), cfg, nil)
	assert.ErrorIs(t, err, fatal)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, *calls)
}

func TestInvokeWithRetry_NoConfig(t *testing.T) {
	a, calls := flaky(1, errors.New("once"))

	_, attempts, err := invokeWithRetry(context.Background(), a, NewScope(nil), nil, nil)
	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, *calls)
}

func TestInvokeWithRetry_Cancelled(t *testing.T) {
	a, _ := flaky(5, errors.New("slow"))

	cfg := fastRetry(3)
	cfg.InitialDelay = time.Hour
	cfg.MaxDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, _, err := invokeWithRetry(ctx, a, NewScope(nil), cfg, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 2.0, cfg.BackoffFactor)
	assert.True(t, cfg.RetryableErrors(errors.New("any")))
}

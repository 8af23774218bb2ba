package agentic

import (
	"context"
	"fmt"
	"time"
)

// RetryConfig configures retry behavior for agent invocations
type RetryConfig struct {
	MaxAttempts     int
	InitialDelay    time.Duration
	MaxDelay        time.Duration
	BackoffFactor   float64
	RetryableErrors func(error) bool // Determines if an error should trigger retry
}

// DefaultRetryConfig returns a default retry configuration
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
		RetryableErrors: func(_ error) bool {
			return true
		},
	}
}

// invokeWithRetry runs agent until it succeeds, the error is not retryable,
// attempts run out or ctx is done. A nil config means a single attempt.
func invokeWithRetry(ctx context.Context, agent Agent, scope *Scope, config *RetryConfig, onRetry func(attempt int, err error)) (any, int, error) {
	if config == nil || config.MaxAttempts <= 1 {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		v, err := agent.Invoke(ctx, scope)
		return v, 1, err
	}

	var lastErr error
	delay := config.InitialDelay

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, attempt - 1, fmt.Errorf("retry cancelled: %w", ctx.Err())
		default:
		}

		result, err := agent.Invoke(ctx, scope)
		if err == nil {
			return result, attempt, nil
		}
		lastErr = err

		if config.RetryableErrors != nil && !config.RetryableErrors(err) {
			return nil, attempt, err
		}

		if attempt < config.MaxAttempts {
			if onRetry != nil {
				onRetry(attempt, err)
			}
			select {
			case <-time.After(delay):
				delay = time.Duration(float64(delay) * config.BackoffFactor)
				if config.MaxDelay > 0 {
					delay = min(delay, config.MaxDelay)
				}
			case <-ctx.Done():
				return nil, attempt, fmt.Errorf("retry cancelled during backoff: %w", ctx.Err())
			}
		}
	}

	return nil, config.MaxAttempts, fmt.Errorf("max retries (%d) exceeded: %w", config.MaxAttempts, lastErr)
}

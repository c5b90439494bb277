package routing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vietddude/namecheck/internal/core/domain"
	"github.com/vietddude/namecheck/internal/infra/rpc/provider"
)

// RetryConfig defines retry behavior.
type RetryConfig struct {
	// MaxAttempts is the total number of calls, including the first one.
	MaxAttempts int

	// Delay is the fixed wait between attempts.
	Delay time.Duration

	// HonorRetryAfter makes the wait follow the server's Retry-After hint
	// when one is present, capped at MaxDelay.
	HonorRetryAfter bool
	MaxDelay        time.Duration

	// Retryable selects the errors that are retried. Defaults to domain.IsRetryable.
	Retryable func(error) bool

	// OnRetry is called before each wait.
	OnRetry func(attempt int, err error, delay time.Duration)
}

// DefaultRetryConfig retries server errors ten times, three seconds apart.
var DefaultRetryConfig = RetryConfig{
	MaxAttempts: 10,
	Delay:       3 * time.Second,
	MaxDelay:    60 * time.Second,
}

// ErrorAction determines how to handle an error.
type ErrorAction int

const (
	ActionRetry ErrorAction = iota
	ActionFatal
)

func (a ErrorAction) String() string {
	if a == ActionRetry {
		return "retry"
	}
	return "fatal"
}

// ClassifyError determines the action for a given error under config.
func ClassifyError(err error, config RetryConfig) ErrorAction {
	retryable := config.Retryable
	if retryable == nil {
		retryable = domain.IsRetryable
	}
	if retryable(err) {
		return ActionRetry
	}
	return ActionFatal
}

// CallWithRetry runs fn until it succeeds, returns a fatal error, or the
// attempt budget runs out. Exhaustion returns the last error wrapped with
// the attempt count. The context is checked before every attempt and
// during every wait.
func CallWithRetry[T any](
	ctx context.Context,
	config RetryConfig,
	fn func(ctx context.Context) (T, error),
) (T, error) {
	var zero T
	var lastErr error

	attempts := config.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ClassifyError(err, config) == ActionFatal {
			return zero, err
		}

		if attempt == attempts {
			break
		}

		delay := retryDelay(err, config)
		if config.OnRetry != nil {
			config.OnRetry(attempt, err, delay)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}

// retryDelay is the fixed delay unless the config opts into server hints.
func retryDelay(err error, config RetryConfig) time.Duration {
	if !config.HonorRetryAfter {
		return config.Delay
	}

	var apiErr *domain.APIError
	if !errors.As(err, &apiErr) || apiErr.RetryAfter == "" {
		return config.Delay
	}

	hint, ok := provider.ParseRetryAfter(apiErr.RetryAfter, time.Now())
	if !ok {
		return config.Delay
	}
	if config.MaxDelay > 0 && hint > config.MaxDelay {
		return config.MaxDelay
	}
	return hint
}

package scan

import (
	"context"
	"time"

	"github.com/feluda-dev/feluda"
)

// LookupFunc is the signature for a registry lookup function.
type LookupFunc func(ctx context.Context, dep feluda.Dependency) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for lookup retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// LookupWithRetry attempts a registry lookup with exponential backoff.
// It retries up to 3 times (4 total attempts) with delays of 1s, 2s, 4s.
// The logger function, if provided, is called for each retry attempt.
func LookupWithRetry(ctx context.Context, dep feluda.Dependency, lookup LookupFunc, logger LogFunc) (string, error) {
	return LookupWithRetryDelays(ctx, dep, lookup, logger, DefaultRetryDelays())
}

// LookupWithRetryDelays is like LookupWithRetry but allows configurable
// delays. This is useful for testing without waiting for real delays.
// ENOTFOUND and EINVALID are terminal and never retried.
func LookupWithRetryDelays(ctx context.Context, dep feluda.Dependency, lookup LookupFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		expression, err := lookup(ctx, dep)
		if err == nil {
			return expression, nil
		}
		lastErr = err

		// A missing package or a bad request won't improve on retry.
		switch feluda.ErrorCode(err) {
		case feluda.ENOTFOUND, feluda.EINVALID:
			return "", err
		}

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		// Check context before sleeping
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if logger != nil {
			logger("  retry %s (attempt %d): %v", dep.Key(), attempt+2, err)
		}

		// Wait before next attempt
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

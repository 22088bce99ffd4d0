// Package store provides the durable key-value storage behind the theme
// preference.
//
// A [Store] maps string keys to opaque byte values with an optional TTL. The
// theme manager persists its value under a single fixed key; the web server
// gives every visitor its own namespace with [Scoped].
//
// # Backends
//
//   - [NullStore]: never stores anything; models "storage unavailable"
//   - [MemoryStore]: process-local map, for tests and ephemeral servers
//   - [FileStore]: one JSON entry per key under a directory, for the CLI
//   - [RedisStore]: shared storage for multi-instance web deployments
//
// Use [Open] to build a backend from [Options]; every backend it returns is
// wrapped with observability hooks.
package store

import (
	"context"
	"errors"
	"time"
)

// Store is the interface for key-value storage backends.
type Store interface {
	// Get retrieves the value for key. The boolean reports whether the key
	// exists and has not expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero keeps the value forever.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Sentinel errors for storage operations.
var (
	// ErrUnknownBackend is returned by Open for unrecognised backend names.
	ErrUnknownBackend = errors.New("unknown store backend")

	// ErrUnavailable is returned when a backend cannot be reached.
	ErrUnavailable = errors.New("store unavailable")
)

// RetryableError wraps an error to indicate it should trigger a retry.
type RetryableError struct{ Err error }

// Retryable wraps an error as a RetryableError.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error returns the error message of the wrapped error.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable checks if an error is wrapped with RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// retryDelay is the first backoff delay; tests shorten it.
var retryDelay = time.Second

// RetryWithBackoff retries fn up to 3 times with exponential backoff.
// Only errors wrapped with Retryable will trigger retries.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3
	delay := retryDelay
	var lastErr error

	for i := 0; i < attempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

package cache

import (
	"context"
	"errors"
	"time"

	"github.com/matzehuels/bandslicer/pkg/httputil"
)

// ErrUnavailable is returned when a remote backend cannot be reached.
var ErrUnavailable = errors.New("cache unavailable")

// Retryable marks err as transient for [RetryWithBackoff].
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &httputil.RetryableError{Err: err}
}

// IsRetryable reports whether err was marked with [Retryable].
func IsRetryable(err error) bool {
	return httputil.IsRetryable(err)
}

// retryDelay is the first backoff interval of RetryWithBackoff.
var retryDelay = 200 * time.Millisecond

// RetryWithBackoff retries fn up to 3 times with exponential backoff.
// Only errors wrapped with Retryable trigger retries.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return httputil.Retry(ctx, 3, retryDelay, fn)
}

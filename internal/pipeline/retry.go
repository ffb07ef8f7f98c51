package pipeline

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/rijksuitgaven/roadmap/internal/roadmap"
	"github.com/rijksuitgaven/roadmap/internal/source"
)

// MaxLoadAttempts bounds how often a transiently failing load is tried.
const MaxLoadAttempts = 3

// IsRetryable checks if a load error is worth retrying.
func IsRetryable(err error) bool {
	var rerr *roadmap.Error
	return errors.As(err, &rerr) && rerr.Retryable()
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * 100 * time.Millisecond
	if base > 5*time.Second {
		base = 5 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

// loadWithRetry retries source-unavailable failures with backoff. Missing
// documents fail immediately.
func loadWithRetry(ctx context.Context, l source.Loader) (source.Documents, error) {
	var lastErr error
	for attempt := range MaxLoadAttempts {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return source.Documents{}, ctx.Err()
			case <-time.After(Backoff(attempt - 1)):
			}
		}
		docs, err := l.Load(ctx)
		if err == nil {
			return docs, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			break
		}
	}
	return source.Documents{}, lastErr
}

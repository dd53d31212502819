package cache

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable marks a remote backend that could not be reached. Only
// errors wrapping it are retried.
var ErrUnavailable = errors.New("cache unavailable")

// RetryDelay is the wait before the first retry. It doubles after each one.
var RetryDelay = time.Second

const retryAttempts = 3

// retry calls fn until it succeeds, fails with an error that does not wrap
// ErrUnavailable, runs out of attempts or ctx ends.
func retry(ctx context.Context, fn func() error) error {
	delay := RetryDelay
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !errors.Is(err, ErrUnavailable) || attempt == retryAttempts {
			return err
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		delay *= 2
	}
}

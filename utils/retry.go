package utils

import (
	"time"
)

// RetryPolicy - a bounded retry loop with a per-attempt backoff delay.
// Attempts counts the total number of calls, not the number of retries.
type RetryPolicy struct {
	Attempts int
	Backoff  func(attempt int) time.Duration
}

// LinearBackoff - delay grows as base*attempt (0.7s, 1.4s, 2.1s, ...)
func LinearBackoff(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return base * time.Duration(attempt)
	}
}

// ExponentialBackoff - delay doubles from base every attempt (1.5s, 3s, 6s, ...)
func ExponentialBackoff(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return base * time.Duration(1<<uint(attempt-1))
	}
}

// Do runs fn up to p.Attempts times, sleeping Backoff(attempt) between
// failures, and returns the last error when every attempt failed.
func (p RetryPolicy) Do(fn func() error) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if attempt < attempts && p.Backoff != nil {
			time.Sleep(p.Backoff(attempt))
		}
	}
	return lastErr
}

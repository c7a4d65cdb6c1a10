package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetrySucceedsFirstAttempt(t *testing.T) {
	calls := 0
	p := RetryPolicy{Attempts: 5, Backoff: LinearBackoff(time.Millisecond)}

	err := p.Do(func() error {
		calls++
		return nil
	})

	assert.Nil(t, err)
	assert.Equal(t, 1, calls, "should not retry after success")
}

func TestRetryStopsAfterSuccess(t *testing.T) {
	calls := 0
	p := RetryPolicy{Attempts: 5, Backoff: LinearBackoff(time.Millisecond)}

	err := p.Do(func() error {
		calls++
		if calls < 3 {
			return fmt.Errorf("transient")
		}
		return nil
	})

	assert.Nil(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	p := RetryPolicy{Attempts: 4, Backoff: LinearBackoff(time.Millisecond)}

	err := p.Do(func() error {
		calls++
		return fmt.Errorf("attempt %d", calls)
	})

	assert.EqualError(t, err, "attempt 4", "last error wins")
	assert.Equal(t, 4, calls)
}

func TestLinearBackoff(t *testing.T) {
	b := LinearBackoff(700 * time.Millisecond)
	assert.Equal(t, 700*time.Millisecond, b(1))
	assert.Equal(t, 1400*time.Millisecond, b(2))
	assert.Equal(t, 2100*time.Millisecond, b(3))
}

func TestExponentialBackoff(t *testing.T) {
	b := ExponentialBackoff(1500 * time.Millisecond)
	assert.Equal(t, 1500*time.Millisecond, b(1))
	assert.Equal(t, 3*time.Second, b(2))
	assert.Equal(t, 6*time.Second, b(3))
}

func TestRetryZeroAttempts(t *testing.T) {
	calls := 0
	p := RetryPolicy{}

	err := p.Do(func() error {
		calls++
		return fmt.Errorf("failed")
	})

	assert.NotNil(t, err)
	assert.Equal(t, 1, calls, "at least one attempt is always made")
}

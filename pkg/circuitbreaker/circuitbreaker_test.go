package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func failing() error { return errBoom }
func succeeding() error { return nil }

func TestOpensAfterConsecutiveFailures(t *testing.T) {
	cb := NewCircuitBreaker(Config{
		FailureThreshold:    3,
		SuccessThreshold:    1,
		Timeout:             time.Minute,
		HalfOpenMaxRequests: 1,
	})

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(failing), errBoom)
	}
	assert.Equal(t, StateOpen, cb.CurrentState())

	// Open breaker rejects without running fn.
	ran := false
	err := cb.Execute(func() error {
		ran = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitBreakerOpen)
	assert.False(t, ran)
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker(Config{
		FailureThreshold:    2,
		SuccessThreshold:    1,
		Timeout:             time.Minute,
		HalfOpenMaxRequests: 1,
	})

	require.Error(t, cb.Execute(failing))
	require.NoError(t, cb.Execute(succeeding))
	require.Error(t, cb.Execute(failing))

	// One failure after a success is below the threshold of two.
	assert.Equal(t, StateClosed, cb.CurrentState())
}

func TestHalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker(Config{
		FailureThreshold:    1,
		SuccessThreshold:    2,
		Timeout:             10 * time.Millisecond,
		HalfOpenMaxRequests: 3,
	})

	require.Error(t, cb.Execute(failing))
	require.Equal(t, StateOpen, cb.CurrentState())

	time.Sleep(20 * time.Millisecond)

	// Probes pass through and two successes close the breaker.
	require.NoError(t, cb.Execute(succeeding))
	require.NoError(t, cb.Execute(succeeding))
	assert.Equal(t, StateClosed, cb.CurrentState())
	assert.NoError(t, cb.Execute(succeeding))
}

func TestHalfOpenFailureReopens(t *testing.T) {
	cb := NewCircuitBreaker(Config{
		FailureThreshold:    1,
		SuccessThreshold:    2,
		Timeout:             10 * time.Millisecond,
		HalfOpenMaxRequests: 3,
	})

	require.Error(t, cb.Execute(failing))
	time.Sleep(20 * time.Millisecond)

	require.Error(t, cb.Execute(failing))
	assert.Equal(t, StateOpen, cb.CurrentState())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half_open", StateHalfOpen.String())
}

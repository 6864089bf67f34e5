package resilience

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failFetch(context.Context) (string, error) {
	return "", NewTransientError(eris.New("status 503"), 503)
}

func okFetch(context.Context) (string, error) {
	return "<html>ok</html>", nil
}

func TestCircuitBreaker_ClosedPassesThrough(t *testing.T) {
	t.Parallel()

	cb := newCircuitBreaker(DefaultCircuitBreakerConfig())
	html, err := ExecuteVal(context.Background(), cb, okFetch)
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", html)
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	cb := newCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, ResetTimeout: time.Minute})
	for i := 0; i < 3; i++ {
		_, _ = ExecuteVal(context.Background(), cb, failFetch)
	}
	require.Equal(t, CircuitOpen, cb.State())

	var called bool
	_, err := ExecuteVal(context.Background(), cb, func(context.Context) (string, error) {
		called = true
		return "", nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called, "open circuit must not touch the host")
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	t.Parallel()

	cb := newCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 3, ResetTimeout: time.Minute})
	_, _ = ExecuteVal(context.Background(), cb, failFetch)
	_, _ = ExecuteVal(context.Background(), cb, failFetch)
	_, _ = ExecuteVal(context.Background(), cb, okFetch)
	_, _ = ExecuteVal(context.Background(), cb, failFetch)
	_, _ = ExecuteVal(context.Background(), cb, failFetch)

	// Never three in a row, so the circuit stays closed.
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenProbeCloses(t *testing.T) {
	t.Parallel()

	now := time.Now()
	cb := newCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, ResetTimeout: 100 * time.Millisecond})
	cb.now = func() time.Time { return now }

	_, _ = ExecuteVal(context.Background(), cb, failFetch)
	_, _ = ExecuteVal(context.Background(), cb, failFetch)
	require.Equal(t, CircuitOpen, cb.State())

	cb.now = func() time.Time { return now.Add(200 * time.Millisecond) }
	require.Equal(t, CircuitHalfOpen, cb.State())

	html, err := ExecuteVal(context.Background(), cb, okFetch)
	require.NoError(t, err)
	assert.Equal(t, "<html>ok</html>", html)
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	t.Parallel()

	now := time.Now()
	cb := newCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 2, ResetTimeout: 100 * time.Millisecond})
	cb.now = func() time.Time { return now }

	_, _ = ExecuteVal(context.Background(), cb, failFetch)
	_, _ = ExecuteVal(context.Background(), cb, failFetch)

	cb.now = func() time.Time { return now.Add(200 * time.Millisecond) }
	_, _ = ExecuteVal(context.Background(), cb, failFetch)

	_, err := ExecuteVal(context.Background(), cb, okFetch)
	assert.ErrorIs(t, err, ErrCircuitOpen)
}

func TestCircuitBreaker_ShouldTripFilters(t *testing.T) {
	t.Parallel()

	cb := newCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 2,
		ResetTimeout:     time.Minute,
		ShouldTrip:       IsTransient,
	})

	// Plain HTTP errors like 404 never count toward the threshold.
	for i := 0; i < 5; i++ {
		_, _ = ExecuteVal(context.Background(), cb, func(context.Context) (string, error) {
			return "", eris.New("http: status 404")
		})
	}
	assert.Equal(t, CircuitClosed, cb.State())

	_, _ = ExecuteVal(context.Background(), cb, failFetch)
	_, _ = ExecuteVal(context.Background(), cb, failFetch)
	assert.Equal(t, CircuitOpen, cb.State())
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	t.Parallel()

	var transitions []string
	cb := newCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 2,
		ResetTimeout:     time.Minute,
		OnStateChange: func(from, to CircuitState) {
			transitions = append(transitions, from.String()+">"+to.String())
		},
	})

	_, _ = ExecuteVal(context.Background(), cb, failFetch)
	_, _ = ExecuteVal(context.Background(), cb, failFetch)
	assert.Equal(t, []string{"closed>open"}, transitions)
}

func TestCircuitBreaker_ConcurrentFetches(t *testing.T) {
	t.Parallel()

	cb := newCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 100, ResetTimeout: time.Minute})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				_, _ = ExecuteVal(context.Background(), cb, failFetch)
			} else {
				_, _ = ExecuteVal(context.Background(), cb, okFetch)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestServiceBreakers_PerHost(t *testing.T) {
	t.Parallel()

	sb := NewServiceBreakers(CircuitBreakerConfig{FailureThreshold: 1, ResetTimeout: time.Minute})
	assert.Same(t, sb.Get("hotelacme.fr"), sb.Get("hotelacme.fr"))

	// Trip one host; another stays closed.
	_, _ = ExecuteVal(context.Background(), sb.Get("hotelacme.fr"), failFetch)
	assert.Equal(t, CircuitOpen, sb.Get("hotelacme.fr").State())
	assert.Equal(t, CircuitClosed, sb.Get("hotelbeau.fr").State())
}

func TestCircuitState_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "closed", CircuitClosed.String())
	assert.Equal(t, "open", CircuitOpen.String())
	assert.Equal(t, "half-open", CircuitHalfOpen.String())
	assert.Equal(t, "unknown", CircuitState(99).String())
}

package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instantPolicy(opts ...Option) (Policy, *[]time.Duration) {
	var waits []time.Duration
	p := DefaultPolicy(opts...)
	p.sleep = func(_ context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}
	return p, &waits
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	p, waits := instantPolicy()

	calls := 0
	result, err := Do(context.Background(), p, func(context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, 1, calls)
	assert.Empty(t, *waits)
}

func TestDo_RetriesWithExponentialBackoff(t *testing.T) {
	p, waits := instantPolicy()

	calls := 0
	result, err := Do(context.Background(), p, func(context.Context) (int, error) {
		calls++
		if calls < 4 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, result)
	assert.Equal(t, 4, calls)
	assert.Equal(t, []time.Duration{
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
	}, *waits)
}

func TestDo_ExhaustsAttemptsAndReturnsLastError(t *testing.T) {
	p, waits := instantPolicy()

	calls := 0
	lastErr := errors.New("attempt 5")
	_, err := Do(context.Background(), p, func(context.Context) (struct{}, error) {
		calls++
		if calls == DefaultMaxAttempts {
			return struct{}{}, lastErr
		}
		return struct{}{}, errors.New("earlier")
	})

	assert.ErrorIs(t, err, lastErr)
	assert.Equal(t, DefaultMaxAttempts, calls)
	assert.Len(t, *waits, DefaultMaxAttempts-1)
}

func TestDo_ContextCancellationAbortsWait(t *testing.T) {
	p := DefaultPolicy(WithBaseDelay(time.Hour))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := Do(ctx, p, func(context.Context) (struct{}, error) {
		calls++
		return struct{}{}, errors.New("fail")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestDo_Options(t *testing.T) {
	p, waits := instantPolicy(WithMaxAttempts(2), WithBaseDelay(10*time.Millisecond))

	calls := 0
	_, err := Do(context.Background(), p, func(context.Context) (struct{}, error) {
		calls++
		return struct{}{}, errors.New("always")
	})

	require.Error(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, []time.Duration{10 * time.Millisecond}, *waits)
}

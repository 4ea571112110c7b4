// Package retry provides the exponential-backoff policy shared by every
// remote call that may transiently fail.
package retry

import (
	"context"
	"math/rand/v2"
	"time"
)

const (
	// DefaultMaxAttempts is the default number of attempts before giving up.
	DefaultMaxAttempts = 5
	// DefaultBaseDelay is the default delay before the first retry; each
	// subsequent retry doubles it.
	DefaultBaseDelay = 2 * time.Second
)

// Policy configures backoff behaviour. The zero value is not usable;
// construct with DefaultPolicy and apply options.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration

	// Jitter adds up to one second of random delay to each wait. Off by
	// default; the snippet collaborator opts in to match its rate-limit
	// handling.
	Jitter bool

	// rng drives jitter. Injectable for deterministic tests.
	rng *rand.Rand

	// sleep is swapped out in tests to avoid real waits.
	sleep func(ctx context.Context, d time.Duration) error
}

// Option mutates a Policy.
type Option func(*Policy)

// WithMaxAttempts overrides the attempt limit.
func WithMaxAttempts(n int) Option {
	return func(p *Policy) { p.MaxAttempts = n }
}

// WithBaseDelay overrides the initial backoff delay.
func WithBaseDelay(d time.Duration) Option {
	return func(p *Policy) { p.BaseDelay = d }
}

// WithJitter enables randomized jitter on each wait.
func WithJitter(rng *rand.Rand) Option {
	return func(p *Policy) {
		p.Jitter = true
		p.rng = rng
	}
}

// DefaultPolicy returns the standard policy: five attempts, two second
// base delay, no jitter.
func DefaultPolicy(opts ...Option) Policy {
	p := Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		sleep:       sleepContext,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// Do runs op under the policy, retrying on error with delay
// base * 2^(attempt-1). The last error is returned once attempts are
// exhausted. Context cancellation aborts the wait between attempts.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == p.MaxAttempts {
			break
		}

		delay := p.BaseDelay << (attempt - 1)
		if p.Jitter {
			delay += p.jitterDelay()
		}
		if err := p.sleep(ctx, delay); err != nil {
			return zero, err
		}
	}

	return zero, lastErr
}

func (p Policy) jitterDelay() time.Duration {
	if p.rng != nil {
		return time.Duration(p.rng.Int64N(int64(time.Second)))
	}
	return time.Duration(rand.Int64N(int64(time.Second)))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrExhausted marks a failure that persisted through every allowed attempt.
// The last underlying error is wrapped and reachable via errors.Unwrap chains.
var ErrExhausted = errors.New("retry exhausted")

// Policy bounds a retried operation.
type Policy struct {
	// Attempts is the total number of tries, including the first. Values
	// below 1 behave as a single attempt.
	Attempts int
	// BaseDelay is the pause before the second attempt; each subsequent
	// pause doubles (BaseDelay * 2^i).
	BaseDelay time.Duration
	// MaxDelay caps the backoff when positive.
	MaxDelay time.Duration
	// Fixed disables exponential growth so every pause equals BaseDelay.
	Fixed bool
}

func (p Policy) attempts() int {
	if p.Attempts < 1 {
		return 1
	}
	return p.Attempts
}

func (p Policy) delay(attempt int) time.Duration {
	if p.BaseDelay <= 0 {
		return 0
	}
	if p.Fixed {
		return p.BaseDelay
	}
	delay := p.BaseDelay
	for i := 1; i < attempt; i++ {
		if p.MaxDelay > 0 && delay > p.MaxDelay/2 {
			return p.MaxDelay
		}
		delay *= 2
	}
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		return p.MaxDelay
	}
	return delay
}

// Do runs op until it succeeds, the policy is exhausted, or ctx ends.
// Only the parent context ending is terminal. An op error that merely wraps
// a deadline, such as a per-request HTTP timeout, is an ordinary transient
// failure and is retried like any other.
func Do[T any](ctx context.Context, policy Policy, op func(context.Context) (T, error)) (T, error) {
	var zero T
	attempts := policy.attempts()
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		value, err := op(ctx)
		if err == nil {
			return value, nil
		}
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		lastErr = err
		if attempt == attempts {
			break
		}
		if err := sleep(ctx, policy.delay(attempt)); err != nil {
			return zero, err
		}
	}

	return zero, fmt.Errorf("%w: %d attempts: %w", ErrExhausted, attempts, lastErr)
}

// Run is the value-free form of Do.
func Run(ctx context.Context, policy Policy, op func(context.Context) error) error {
	_, err := Do(ctx, policy, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

func sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

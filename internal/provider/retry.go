package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/muhammadolammi/pivot/internal/plan"
)

// retry calls fn up to attempts times, waiting backoff(i) between tries.
func retry[T any](ctx context.Context, attempts int, backoff func(int) time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for i := 0; i < attempts; i++ {
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(backoff(i)):
		}
	}
	if attempts == 1 {
		return zero, lastErr
	}
	return zero, fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}

func linearBackoff(i int) time.Duration {
	return time.Duration(500*(i+1)) * time.Millisecond
}

// Policy bounds a provider call. The zero value makes a single attempt
// without a deadline.
type Policy struct {
	Attempts int
	Timeout  time.Duration
}

type bounded struct {
	next    plan.Generator
	policy  Policy
	backoff func(int) time.Duration
}

// WithPolicy wraps gen so that each attempt honours p.Timeout and failed
// attempts are retried up to p.Attempts in total.
func WithPolicy(gen plan.Generator, p Policy) plan.Generator {
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	if p.Attempts == 1 && p.Timeout <= 0 {
		return gen
	}
	return &bounded{next: gen, policy: p, backoff: linearBackoff}
}

func (b *bounded) Generate(ctx context.Context, prompt string) (string, error) {
	return retry(ctx, b.policy.Attempts, b.backoff, func(ctx context.Context) (string, error) {
		if b.policy.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, b.policy.Timeout)
			defer cancel()
		}
		return b.next.Generate(ctx, prompt)
	})
}

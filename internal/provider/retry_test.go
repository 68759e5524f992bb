package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedGenerator struct {
	errs     []error
	calls    int
	deadline bool
}

func (s *scriptedGenerator) Generate(ctx context.Context, _ string) (string, error) {
	s.calls++
	_, s.deadline = ctx.Deadline()
	if len(s.errs) >= s.calls && s.errs[s.calls-1] != nil {
		return "", s.errs[s.calls-1]
	}
	return "ok", nil
}

func noWait(int) time.Duration { return 0 }

func TestWithPolicySingleAttemptIsPassThrough(t *testing.T) {
	gen := &scriptedGenerator{}
	assert.Same(t, gen, WithPolicy(gen, Policy{}))
	assert.Same(t, gen, WithPolicy(gen, Policy{Attempts: 1}))
}

func TestBoundedRetriesUntilSuccess(t *testing.T) {
	gen := &scriptedGenerator{errs: []error{errors.New("unavailable"), nil}}
	b := &bounded{next: gen, policy: Policy{Attempts: 3}, backoff: noWait}

	got, err := b.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 2, gen.calls)
}

func TestBoundedGivesUp(t *testing.T) {
	boom := errors.New("quota exceeded")
	gen := &scriptedGenerator{errs: []error{boom, boom}}
	b := &bounded{next: gen, policy: Policy{Attempts: 2}, backoff: noWait}

	_, err := b.Generate(context.Background(), "p")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "after 2 attempts")
	assert.Equal(t, 2, gen.calls)
}

func TestBoundedAppliesTimeout(t *testing.T) {
	gen := &scriptedGenerator{}
	b := WithPolicy(gen, Policy{Attempts: 1, Timeout: time.Minute})

	_, err := b.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.True(t, gen.deadline)
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	_, err := retry(ctx, 5, func(int) time.Duration { return time.Hour }, func(context.Context) (string, error) {
		calls++
		cancel()
		return "", errors.New("fail")
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetrySingleAttemptKeepsError(t *testing.T) {
	boom := errors.New("boom")
	_, err := retry(context.Background(), 1, noWait, func(context.Context) (int, error) {
		return 0, boom
	})
	assert.Equal(t, boom, err)
}

package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/barcraft/bardb/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSucceedsFirstTry(t *testing.T) {
	p := retry.Policy{Attempts: 3, Delay: time.Hour}

	calls := 0
	err := p.Do(context.Background(), "noop", func() error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoRecovers(t *testing.T) {
	p := retry.Policy{Attempts: 3, Delay: time.Millisecond}

	calls := 0
	err := p.Do(context.Background(), "flaky", func() error {
		calls++
		if calls < 3 {
			return errors.New("boom")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoExhaustsBudget(t *testing.T) {
	p := retry.Policy{Attempts: 2, Delay: time.Millisecond}

	boom := errors.New("boom")
	calls := 0
	err := p.Do(context.Background(), "doomed", func() error {
		calls++
		return boom
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestDoHonorsContext(t *testing.T) {
	p := retry.Policy{Attempts: 5, Delay: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Do(ctx, "cancelled", func() error {
		return errors.New("boom")
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDoZeroAttemptsRunsOnce(t *testing.T) {
	var p retry.Policy

	calls := 0
	err := p.Do(context.Background(), "once", func() error {
		calls++
		return errors.New("boom")
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

package async

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestResolveOnce(t *testing.T) {
	f := NewFuture[int]()
	assert.False(t, f.IsResolved())

	assert.True(t, f.Resolve(7, nil))
	assert.False(t, f.Resolve(8, errors.New("late")))

	assert.True(t, f.IsResolved())
	v, err := f.Wait(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.NoError(t, f.Err())
}

func TestFailureReplayed(t *testing.T) {
	boom := errors.New("boom")
	f := Resolved(0, boom)
	assert.Same(t, boom, f.Err())
	for i := 0; i < 3; i++ {
		_, err := f.Wait(context.Background())
		assert.Same(t, boom, err)
	}
}

func TestConcurrentWaiters(t *testing.T) {
	f := NewFuture[string]()
	var g errgroup.Group
	results := make([]string, 16)
	for i := range results {
		g.Go(func() error {
			v, err := f.Wait(context.Background())
			results[i] = v
			return err
		})
	}
	time.Sleep(10 * time.Millisecond)
	f.Resolve("ready", nil)
	require.NoError(t, g.Wait())
	for _, r := range results {
		assert.Equal(t, "ready", r)
	}
}

func TestWaitAbandoned(t *testing.T) {
	f := NewFuture[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := f.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// the future is still usable after a waiter gave up
	f.Resolve(1, nil)
	v, err := f.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestResolvedWinsOverCancelledContext(t *testing.T) {
	f := Resolved(3, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	v, err := f.Wait(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

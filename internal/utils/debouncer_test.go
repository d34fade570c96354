package utils_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/randrctl/randrctl/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer_CollapsesBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := utils.NewDebouncer()
	go func() { _ = d.Run(ctx) }()

	var calls atomic.Int32
	for i := 0; i < 5; i++ {
		d.Do(ctx, 20*time.Millisecond, func(context.Context) error {
			calls.Add(1)
			return nil
		})
	}

	require.Eventually(t, func() bool {
		return calls.Load() == 1
	}, time.Second, 5*time.Millisecond)

	// give a late duplicate a chance to fire before asserting it did not
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDebouncer_CancelDropsPending(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := utils.NewDebouncer()
	go func() { _ = d.Run(ctx) }()

	var calls atomic.Int32
	d.Do(ctx, 20*time.Millisecond, func(context.Context) error {
		calls.Add(1)
		return nil
	})
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestDebouncer_RunReturnsOnContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := utils.NewDebouncer()

	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

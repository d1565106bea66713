package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGate_AdmitsBurstImmediately(t *testing.T) {
	gate := NewGate(10, time.Minute, 0)

	start := time.Now()
	for i := 0; i < 10; i++ {
		require.NoError(t, gate.Acquire(context.Background()))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestGate_EleventhWaitsThenProceeds(t *testing.T) {
	// 10 per 200ms: one slot frees every 20ms
	gate := NewGate(10, 200*time.Millisecond, 0)
	for i := 0; i < 10; i++ {
		require.NoError(t, gate.Acquire(context.Background()))
	}

	start := time.Now()
	err := gate.Acquire(context.Background())

	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestGate_EleventhDoesNotFailWithinWindow(t *testing.T) {
	gate := NewGate(10, time.Minute, 0)
	for i := 0; i < 10; i++ {
		require.NoError(t, gate.Acquire(context.Background()))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- gate.Acquire(ctx) }()

	select {
	case err := <-done:
		t.Fatalf("acquire returned early: %v", err)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestGate_MaxWait(t *testing.T) {
	gate := NewGate(1, time.Minute, 10*time.Millisecond)
	require.NoError(t, gate.Acquire(context.Background()))

	assert.Error(t, gate.Acquire(context.Background()))
}

func TestGate_CancelledContext(t *testing.T) {
	gate := NewGate(1, time.Minute, 0)
	require.NoError(t, gate.Acquire(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, gate.Acquire(ctx))
}

// Package ratelimit provides the process-wide admission gate for extraction requests.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Gate is a token bucket holding n slots, refilled at n per window. An empty
// bucket makes callers wait for a slot instead of rejecting them.
type Gate struct {
	limiter *rate.Limiter
	maxWait time.Duration
}

// NewGate allows n admissions at once and refills them evenly over window.
// maxWait bounds how long Acquire suspends; zero means no bound.
func NewGate(n int, window time.Duration, maxWait time.Duration) *Gate {
	if n <= 0 {
		n = 1
	}
	return &Gate{
		limiter: rate.NewLimiter(rate.Every(window/time.Duration(n)), n),
		maxWait: maxWait,
	}
}

// Acquire blocks until a slot is available. It fails only when ctx is done
// or the wait would exceed the gate's max wait.
func (g *Gate) Acquire(ctx context.Context) error {
	if g.maxWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.maxWait)
		defer cancel()
	}
	return g.limiter.Wait(ctx)
}

// Package infra provides shared infrastructure for the WhatsOnChain client:
// response caching, request throttling and coalescing of identical requests.
package infra

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// RequestDeduplicator coalesces identical in-flight requests to reduce API load.
// When multiple goroutines request the same data simultaneously, only one request
// is made and all waiters receive the same result.
type RequestDeduplicator struct {
	group    singleflight.Group
	inflight atomic.Int64
}

// NewRequestDeduplicator creates a new request deduplicator
func NewRequestDeduplicator() *RequestDeduplicator {
	return &RequestDeduplicator{}
}

// Do executes fn only if no identical request (by key) is in flight.
// If a request with the same key is already running, waits for its result.
// Returns the result, whether it was shared with another caller, and any error.
func (d *RequestDeduplicator) Do(ctx context.Context, key string, fn func() (any, error)) (any, bool, error) {
	ch := d.group.DoChan(key, func() (any, error) {
		d.inflight.Add(1)
		defer d.inflight.Add(-1)
		return fn()
	})

	select {
	case res := <-ch:
		return res.Val, res.Shared, res.Err
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// Stats returns the current number of in-flight requests
func (d *RequestDeduplicator) Stats() int {
	return int(d.inflight.Load())
}

// Throttle enforces a minimum spacing between dispatched requests.
// A non-positive interval disables spacing entirely.
type Throttle struct {
	interval time.Duration
	limiter  *rate.Limiter
}

// NewThrottle creates a throttle that lets one request through per interval
func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		return &Throttle{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	return &Throttle{
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
	}
}

// Interval returns the configured spacing, zero when unthrottled
func (t *Throttle) Interval() time.Duration {
	return t.interval
}

// Enabled reports whether the throttle spaces requests
func (t *Throttle) Enabled() bool {
	return t.interval > 0
}

// Wait blocks until the next request may be dispatched or ctx is done.
// It returns how long the caller was held back.
func (t *Throttle) Wait(ctx context.Context) (time.Duration, error) {
	if !t.Enabled() {
		return 0, ctx.Err()
	}
	start := time.Now()
	if err := t.limiter.Wait(ctx); err != nil {
		return time.Since(start), err
	}
	return time.Since(start), nil
}

package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/semaphore"
)

// WindowLimiter enforces a single RateWindow with a pool of Count permits.
//
// A permit is held while the gated work runs and for the window's Duration
// after the work completes. Rate is therefore measured from completion:
// already started work runs concurrently, while replenishment of capacity is
// spaced out.
//
// # Algorithm
//
//  1. Wait for a permit (or return ctx.Err() if the caller gives up)
//  2. Run the work in the caller's goroutine
//  3. Schedule the permit's release Duration after the work returns
//  4. Return the work's result without waiting for the release
//
// Step 3 runs from a deferred call, so it happens whether the work succeeds,
// fails or panics.
//
// # Thread Safety
//
// WindowLimiter is safe for concurrent use. The permit pool is the only
// shared state and is owned by this limiter.
type WindowLimiter struct {
	window   RateWindow
	permits  *semaphore.Weighted
	clock    clockwork.Clock
	observer Observer

	// held counts permits taken from the pool, including those cooling down.
	held atomic.Int64

	mu      sync.Mutex
	pending int
	idle    chan struct{} // closed when pending drops to zero
}

// NewWindowLimiter creates a limiter for w. It fails if w is invalid.
//
// Example:
//
//	limiter, err := NewWindowLimiter(MustRateWindow(3, time.Second))
//	if err != nil {
//	    return err
//	}
//	err = limiter.Limit(ctx, func(ctx context.Context) error {
//	    return callAPI(ctx)
//	})
func NewWindowLimiter(w RateWindow, opts ...Option) (*WindowLimiter, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &WindowLimiter{
		window:   w,
		permits:  semaphore.NewWeighted(int64(w.Count)),
		clock:    o.clock,
		observer: o.observer,
	}, nil
}

// Limit implements Limiter.
func (l *WindowLimiter) Limit(ctx context.Context, work Work) error {
	// semaphore.Acquire may succeed on a done context if a permit is free.
	if err := ctx.Err(); err != nil {
		l.observer.OnCancel(l.window, err)
		return err
	}

	start := l.clock.Now()
	if err := l.permits.Acquire(ctx, 1); err != nil {
		l.observer.OnCancel(l.window, err)
		return err
	}
	l.held.Add(1)
	l.observer.OnAcquire(l.window, l.clock.Since(start))

	defer l.scheduleRelease()
	return work(ctx)
}

// scheduleRelease returns one permit to the pool after the cooldown.
func (l *WindowLimiter) scheduleRelease() {
	l.mu.Lock()
	if l.pending == 0 {
		l.idle = make(chan struct{})
	}
	l.pending++
	l.mu.Unlock()

	l.clock.AfterFunc(l.window.Duration, func() {
		l.held.Add(-1)
		l.permits.Release(1)
		l.observer.OnRelease(l.window)

		l.mu.Lock()
		l.pending--
		if l.pending == 0 {
			close(l.idle)
		}
		l.mu.Unlock()
	})
}

// Window returns the limiter's configuration.
func (l *WindowLimiter) Window() RateWindow {
	return l.window
}

// InUse returns the number of permits currently out of the pool,
// whether their work is running or cooling down.
func (l *WindowLimiter) InUse() int {
	return int(l.held.Load())
}

// Available returns the number of permits that can be acquired right now.
func (l *WindowLimiter) Available() int {
	available := l.window.Count - l.InUse()
	if available < 0 {
		return 0
	}
	return available
}

// Pending returns the number of scheduled releases that have not fired yet.
func (l *WindowLimiter) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

// Drain blocks until every scheduled release has fired or ctx is done.
// Shutdown does not require calling Drain; releases still pending when the
// process exits are dropped with it.
func (l *WindowLimiter) Drain(ctx context.Context) error {
	l.mu.Lock()
	if l.pending == 0 {
		l.mu.Unlock()
		return nil
	}
	idle := l.idle
	l.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

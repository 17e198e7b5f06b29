package ratelimit

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
)

// Work is a deferred unit of work gated by a Limiter. It is not started
// until every permit it needs is held.
type Work func(ctx context.Context) error

// Limiter gates execution of work units.
//
// Limit blocks until the work is admitted, runs it in the caller's goroutine
// and returns its error unchanged. The caller is never blocked for a
// cooldown; permits are returned to their pools in the background.
//
// If ctx is done before admission, Limit returns ctx.Err() without running
// the work and without holding any permit.
type Limiter interface {
	Limit(ctx context.Context, work Work) error
}

// Do runs fn through l and returns its typed result.
// A nil Limiter runs fn immediately.
//
// Example:
//
//	anime, err := ratelimit.Do(ctx, chain, func(ctx context.Context) (*models.Anime, error) {
//	    return fetch(ctx, id)
//	})
func Do[T any](ctx context.Context, l Limiter, fn func(ctx context.Context) (T, error)) (T, error) {
	if l == nil {
		return fn(ctx)
	}

	var out T
	err := l.Limit(ctx, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}

// Observer receives permit lifecycle events from a WindowLimiter.
// Implementations must be safe for concurrent use and must not block.
type Observer interface {
	// OnAcquire is called after a permit is acquired, with the time spent waiting.
	OnAcquire(w RateWindow, waited time.Duration)

	// OnRelease is called when a permit returns to the pool after its cooldown.
	OnRelease(w RateWindow)

	// OnCancel is called when a caller gives up waiting for a permit.
	OnCancel(w RateWindow, err error)
}

type nopObserver struct{}

func (nopObserver) OnAcquire(RateWindow, time.Duration) {}
func (nopObserver) OnRelease(RateWindow)                {}
func (nopObserver) OnCancel(RateWindow, error)          {}

// Observers fans events out to several observers in order. Nil entries are skipped.
func Observers(observers ...Observer) Observer {
	var out multiObserver
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	switch len(out) {
	case 0:
		return nopObserver{}
	case 1:
		return out[0]
	}
	return out
}

type multiObserver []Observer

func (m multiObserver) OnAcquire(w RateWindow, waited time.Duration) {
	for _, o := range m {
		o.OnAcquire(w, waited)
	}
}

func (m multiObserver) OnRelease(w RateWindow) {
	for _, o := range m {
		o.OnRelease(w)
	}
}

func (m multiObserver) OnCancel(w RateWindow, err error) {
	for _, o := range m {
		o.OnCancel(w, err)
	}
}

// Option configures a WindowLimiter.
type Option func(*options)

type options struct {
	clock    clockwork.Clock
	observer Observer
}

func defaultOptions() options {
	return options{
		clock:    clockwork.NewRealClock(),
		observer: nopObserver{},
	}
}

// WithClock sets the clock used to measure waits and schedule cooldowns.
// Tests use clockwork.NewFakeClock to control cooldown expiry.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithObserver sets the observer notified of permit events.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observer = observer
		}
	}
}

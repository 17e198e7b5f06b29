package ratelimit

import (
	"context"
	"errors"
	"fmt"
)

// Chain applies several limiters to the same work as one admission gate.
//
// For limiters [L1, L2, L3] the effective call is
//
//	L1.Limit(ctx, func(ctx) error {
//	    return L2.Limit(ctx, func(ctx) error {
//	        return L3.Limit(ctx, work)
//	    })
//	})
//
// so the work starts only once it holds a permit from every limiter. Each
// limiter keeps its own pool and schedules its own release, which makes the
// chain at least as strict as its strictest member.
//
// An empty Chain runs work immediately.
type Chain struct {
	limiters []Limiter
}

// NewChain builds a Chain with one WindowLimiter per window, in the given
// order. Options apply to every limiter in the chain.
//
// Example:
//
//	chain, err := ratelimit.NewChain(ratelimit.DefaultWindows())
func NewChain(windows []RateWindow, opts ...Option) (*Chain, error) {
	limiters := make([]Limiter, 0, len(windows))
	for i, w := range windows {
		l, err := NewWindowLimiter(w, opts...)
		if err != nil {
			return nil, fmt.Errorf("rate window %d: %w", i, err)
		}
		limiters = append(limiters, l)
	}
	return &Chain{limiters: limiters}, nil
}

// NewChainFromLimiters builds a Chain from existing limiters. Nil entries are skipped.
func NewChainFromLimiters(limiters ...Limiter) *Chain {
	c := &Chain{limiters: make([]Limiter, 0, len(limiters))}
	for _, l := range limiters {
		if l != nil {
			c.limiters = append(c.limiters, l)
		}
	}
	return c
}

// Limit implements Limiter.
func (c *Chain) Limit(ctx context.Context, work Work) error {
	next := work
	for i := len(c.limiters) - 1; i >= 0; i-- {
		limiter, inner := c.limiters[i], next
		next = func(ctx context.Context) error {
			return limiter.Limit(ctx, inner)
		}
	}
	return next(ctx)
}

// Len returns the number of limiters in the chain.
func (c *Chain) Len() int {
	return len(c.limiters)
}

// Windows returns the windows of the chain's WindowLimiters, in chain order.
func (c *Chain) Windows() []RateWindow {
	var windows []RateWindow
	for _, l := range c.limiters {
		if wl, ok := l.(*WindowLimiter); ok {
			windows = append(windows, wl.Window())
		}
	}
	return windows
}

// Limiters returns a copy of the chain's limiters.
func (c *Chain) Limiters() []Limiter {
	out := make([]Limiter, len(c.limiters))
	copy(out, c.limiters)
	return out
}

// Drain waits for pending releases on every member that supports it.
func (c *Chain) Drain(ctx context.Context) error {
	var errs []error
	for _, l := range c.limiters {
		if d, ok := l.(interface{ Drain(context.Context) error }); ok {
			if err := d.Drain(ctx); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Package ratelimit throttles outbound API calls with completion-relative rate windows.
//
// # Overview
//
// The package has three building blocks:
//
//   - RateWindow: an immutable (count, duration) constraint
//   - WindowLimiter: enforces one RateWindow with a pool of count permits
//   - Chain: composes limiters so work needs a permit from each of them
//
// # Rate Windows
//
// A permit is not returned to its pool until the window's duration has
// elapsed after the guarded work completes:
//
//	w := ratelimit.MustRateWindow(3, time.Second) // 3 per second
//	w.MaxRate()                                    // 3.0, for ordering only
//
// # Chains
//
// The public Jikan API allows roughly 3 requests per second and 60 per
// minute. DefaultWindows encodes that as three windows:
//
//	chain, err := ratelimit.NewChain(ratelimit.DefaultWindows())
//	if err != nil {
//	    return err
//	}
//
//	anime, err := ratelimit.Do(ctx, chain, func(ctx context.Context) (*models.Anime, error) {
//	    return client.fetchAnime(ctx, id)
//	})
//
// A chain built from no windows runs every call immediately.
//
// # Cancellation
//
// A caller whose context ends while waiting never holds a permit. Once a
// permit is held its release is always scheduled on the normal cooldown,
// whatever happens to the caller or the work.
//
// # Thread Safety
//
// All limiters are safe for concurrent use. Each WindowLimiter owns its
// permit pool; chains add no locking of their own.
package ratelimit

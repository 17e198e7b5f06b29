package config

import (
	"fmt"

	"mercator-hq/jikan/pkg/limits/ratelimit"
)

// RateWindows returns the configured rate windows in nesting order. It
// returns an empty slice when throttling is disabled.
func (c RateLimitConfig) RateWindows() ([]ratelimit.RateWindow, error) {
	if c.Disabled {
		return []ratelimit.RateWindow{}, nil
	}

	windows := make([]ratelimit.RateWindow, 0, len(c.Windows))
	for i, s := range c.Windows {
		w, err := ratelimit.ParseRateWindow(s)
		if err != nil {
			return nil, fmt.Errorf("rate_limits.windows[%d]: %w", i, err)
		}
		windows = append(windows, w)
	}
	return windows, nil
}

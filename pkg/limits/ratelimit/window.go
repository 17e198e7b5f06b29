package ratelimit

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidWindow is returned when a rate window has a non-positive count or duration.
var ErrInvalidWindow = errors.New("invalid rate window")

// RateWindow is an immutable throttling constraint: at most Count executions
// may hold a permit within Duration of each other's completion.
//
// RateWindow values are comparable with == and may be used as map keys.
type RateWindow struct {
	// Count is the number of permits in the window.
	Count int

	// Duration is the cooldown applied to a permit after its work completes.
	Duration time.Duration
}

// NewRateWindow creates a validated RateWindow.
//
// Example:
//
//	w, err := ratelimit.NewRateWindow(3, time.Second) // 3 per second
func NewRateWindow(count int, duration time.Duration) (RateWindow, error) {
	w := RateWindow{Count: count, Duration: duration}
	if err := w.Validate(); err != nil {
		return RateWindow{}, err
	}
	return w, nil
}

// MustRateWindow is like NewRateWindow but panics on invalid input.
// It is intended for package-level defaults.
func MustRateWindow(count int, duration time.Duration) RateWindow {
	w, err := NewRateWindow(count, duration)
	if err != nil {
		panic(err)
	}
	return w
}

// Validate reports whether the window can back a limiter.
func (w RateWindow) Validate() error {
	if w.Count <= 0 {
		return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidWindow, w.Count)
	}
	if w.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %s", ErrInvalidWindow, w.Duration)
	}
	return nil
}

// MaxRate returns the window's maximum rate in executions per second.
// It is only meaningful for comparing windows, never for scheduling.
func (w RateWindow) MaxRate() float64 {
	if w.Duration <= 0 {
		return 0
	}
	return float64(w.Count) / w.Duration.Seconds()
}

// Equal reports whether two windows have the same count and duration.
func (w RateWindow) Equal(other RateWindow) bool {
	return w == other
}

// Compare orders windows by MaxRate ascending. Windows with the same rate
// are ordered by Count, then Duration, so sorting is deterministic.
// It returns -1, 0 or +1.
func (w RateWindow) Compare(other RateWindow) int {
	a, b := w.MaxRate(), other.MaxRate()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	switch {
	case w.Count < other.Count:
		return -1
	case w.Count > other.Count:
		return 1
	}
	switch {
	case w.Duration < other.Duration:
		return -1
	case w.Duration > other.Duration:
		return 1
	}
	return 0
}

// String formats the window as "count/duration", e.g. "3/1s".
func (w RateWindow) String() string {
	return strconv.Itoa(w.Count) + "/" + w.Duration.String()
}

// ParseRateWindow parses the "count/duration" form produced by String.
func ParseRateWindow(s string) (RateWindow, error) {
	countStr, durStr, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok {
		return RateWindow{}, fmt.Errorf("%w: %q is not in count/duration form", ErrInvalidWindow, s)
	}

	count, err := strconv.Atoi(strings.TrimSpace(countStr))
	if err != nil {
		return RateWindow{}, fmt.Errorf("%w: bad count in %q: %v", ErrInvalidWindow, s, err)
	}
	dur, err := time.ParseDuration(strings.TrimSpace(durStr))
	if err != nil {
		return RateWindow{}, fmt.Errorf("%w: bad duration in %q: %v", ErrInvalidWindow, s, err)
	}

	return NewRateWindow(count, dur)
}

// ParseRateWindows parses a comma separated list of windows. An empty or
// blank string yields an empty list, which disables throttling.
func ParseRateWindows(s string) ([]RateWindow, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	windows := make([]RateWindow, 0, len(parts))
	for _, part := range parts {
		w, err := ParseRateWindow(part)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	return windows, nil
}

// SortWindows sorts windows in place by Compare.
func SortWindows(windows []RateWindow) {
	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].Compare(windows[j]) < 0
	})
}

// DefaultWindows returns the windows tuned for the public Jikan API:
// requests at least 300ms apart, bursts of at most 3 per second and a
// sustained rate of 60 per minute.
func DefaultWindows() []RateWindow {
	return []RateWindow{
		{Count: 1, Duration: 300 * time.Millisecond},
		{Count: 3, Duration: time.Second},
		{Count: 4, Duration: 4 * time.Second},
	}
}

package health

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

// Status values reported by checks and probes.
const (
	StatusOK        = "ok"
	StatusReady     = "ready"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// DefaultCheckTimeout bounds a single check when New is given zero.
const DefaultCheckTimeout = 5 * time.Second

// ErrCheckTimeout is reported when a check does not return in time.
var ErrCheckTimeout = errors.New("health check timeout")

// CheckFunc reports whether a component is healthy. A nil error means
// healthy.
type CheckFunc func(ctx context.Context) error

// CheckResult is the outcome of one check.
type CheckResult struct {
	Status   string        `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration_ns,omitempty"`
}

// Report is the aggregated answer of a probe.
type Report struct {
	Status    string                 `json:"status"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Checker runs named component checks for the poll command's probes.
type Checker struct {
	mu      sync.RWMutex
	checks  map[string]CheckFunc
	timeout time.Duration
}

// New creates a checker. A zero timeout uses DefaultCheckTimeout.
func New(timeout time.Duration) *Checker {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &Checker{
		checks:  make(map[string]CheckFunc),
		timeout: timeout,
	}
}

// Register adds or replaces the check for name.
func (c *Checker) Register(name string, check CheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// Unregister removes the check for name.
func (c *Checker) Unregister(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.checks, name)
}

// Names returns the registered check names, sorted.
func (c *Checker) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.checks))
	for name := range c.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Liveness reports that the process is up. It runs no checks.
func (c *Checker) Liveness() Report {
	return Report{Status: StatusOK, Timestamp: time.Now()}
}

// Readiness runs every check concurrently. The report is degraded when any
// check fails.
func (c *Checker) Readiness(ctx context.Context) Report {
	c.mu.RLock()
	checks := make(map[string]CheckFunc, len(c.checks))
	for name, check := range c.checks {
		checks[name] = check
	}
	c.mu.RUnlock()

	results := make(map[string]CheckResult, len(checks))
	var mu sync.Mutex
	var g errgroup.Group
	for name, check := range checks {
		g.Go(func() error {
			r := c.run(ctx, check)
			mu.Lock()
			results[name] = r
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	status := StatusReady
	for _, r := range results {
		if r.Status != StatusOK {
			status = StatusDegraded
			break
		}
	}
	return Report{Status: status, Checks: results, Timestamp: time.Now()}
}

func (c *Checker) run(ctx context.Context, check CheckFunc) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan error, 1)
	go func() { done <- check(ctx) }()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ErrCheckTimeout
	}

	r := CheckResult{Status: StatusOK, Duration: time.Since(start)}
	if err != nil {
		r.Status = StatusUnhealthy
		r.Message = err.Error()
	}
	return r
}

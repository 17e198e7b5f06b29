package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// ProgressReporter reports progress for batch fetches.
// Implementations are safe for concurrent use.
type ProgressReporter interface {
	Start(total int64)
	Increment()
	Finish()
	Error(err error)
}

// SimpleProgress renders a one-line bar with the observed request rate.
// With the default rate windows the rate settles near the slowest window.
type SimpleProgress struct {
	mu      sync.Mutex
	label   string
	total   int64
	current int64
	failed  int64
	started time.Time
	writer  io.Writer
	now     func() time.Time
}

// NewProgressReporter creates a progress reporter that writes to w.
// If w is nil, it defaults to os.Stderr.
func NewProgressReporter(w io.Writer, label string) *SimpleProgress {
	if w == nil {
		w = os.Stderr
	}
	if label == "" {
		label = "Fetching"
	}
	return &SimpleProgress{
		label:  label,
		writer: w,
		now:    time.Now,
	}
}

// Start resets the reporter for total items.
func (p *SimpleProgress) Start(total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.current = 0
	p.failed = 0
	p.started = p.now()
	p.render()
}

// Increment marks one more item as done.
func (p *SimpleProgress) Increment() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current < p.total {
		p.current++
	}
	p.render()
}

// Finish completes the bar and ends the line.
func (p *SimpleProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = p.total
	p.render()
	fmt.Fprintln(p.writer)
}

// Error counts a failed item and prints it on its own line.
func (p *SimpleProgress) Error(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.failed++
	if p.current < p.total {
		p.current++
	}
	fmt.Fprintf(p.writer, "\n✗ Error: %v\n", err)
	p.render()
}

// Failed returns the number of items reported through Error.
func (p *SimpleProgress) Failed() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.failed
}

func (p *SimpleProgress) render() {
	if p.total == 0 {
		return
	}

	percent := float64(p.current) / float64(p.total) * 100
	barWidth := 30
	filled := int(float64(barWidth) * percent / 100)

	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	var rate float64
	if elapsed := p.now().Sub(p.started).Seconds(); elapsed > 0 {
		rate = float64(p.current) / elapsed
	}

	fmt.Fprintf(p.writer, "\r%s: [%s] %.0f%% (%d/%d) %.2f req/s",
		p.label, bar, percent, p.current, p.total, rate)
}

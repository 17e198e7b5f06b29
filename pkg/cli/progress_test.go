package cli

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestSimpleProgressBasic(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf, "Fetching anime")

	start := time.Unix(1700000000, 0)
	progress.now = func() time.Time { return start }
	progress.Start(4)

	progress.now = func() time.Time { return start.Add(2 * time.Second) }
	progress.Increment()
	progress.Increment()
	progress.Finish()

	output := buf.String()
	if !strings.Contains(output, "Fetching anime:") {
		t.Errorf("Expected label in output, got %q", output)
	}
	if !strings.Contains(output, "(2/4) 1.00 req/s") {
		t.Errorf("Expected rate after two items in two seconds, got %q", output)
	}
	if !strings.Contains(output, "(4/4)") {
		t.Errorf("Expected finished bar, got %q", output)
	}
}

func TestSimpleProgressZeroTotal(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf, "")

	progress.Start(0)
	progress.Increment()
	progress.Finish()

	if strings.TrimSpace(buf.String()) != "" {
		t.Errorf("Expected no bar for zero total, got %q", buf.String())
	}
}

func TestSimpleProgressError(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf, "")

	progress.Start(2)
	progress.Error(errors.New("anime 99999 not found"))

	output := buf.String()
	if !strings.Contains(output, "Error: anime 99999 not found") {
		t.Errorf("Expected error line, got %q", output)
	}
	if progress.Failed() != 1 {
		t.Errorf("Failed() = %d, want 1", progress.Failed())
	}
	if !strings.Contains(output, "(1/2)") {
		t.Errorf("Expected failed item to count as done, got %q", output)
	}
}

func TestSimpleProgressConcurrent(t *testing.T) {
	progress := NewProgressReporter(&bytes.Buffer{}, "")
	progress.Start(50)

	var wg sync.WaitGroup
	for i := 0; i < 60; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			progress.Increment()
		}()
	}
	wg.Wait()

	progress.mu.Lock()
	defer progress.mu.Unlock()
	if progress.current != 50 {
		t.Errorf("current = %d, want capped at 50", progress.current)
	}
}

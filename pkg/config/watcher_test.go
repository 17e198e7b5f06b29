package config

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcher_ReloadsOnChange(t *testing.T) {
	path := writeConfig(t, "cache:\n  backend: memory\n")

	w, err := NewWatcher(path, 20*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func(cfg *Config) { reloaded <- cfg })
	}()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	// An invalid write is skipped.
	if err := os.WriteFile(path, []byte("cache:\n  backend: tape\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	select {
	case cfg := <-reloaded:
		t.Fatalf("Expected invalid config to be skipped, got backend %q", cfg.Cache.Backend)
	default:
	}

	if err := os.WriteFile(path, []byte("cache:\n  backend: none\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Cache.Backend != "none" {
			t.Errorf("Expected backend none, got %q", cfg.Cache.Backend)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Expected reload after file change")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Expected Watch to return after cancel")
	}
}

func TestNewWatcher_EmptyPath(t *testing.T) {
	if _, err := NewWatcher("", 0, nil); err == nil {
		t.Error("Expected error for empty path")
	}
}

func TestDebouncer_CollapsesBursts(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls atomic.Int32

	for i := 0; i < 5; i++ {
		d.Trigger(func() { calls.Add(1) })
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	if got := calls.Load(); got != 1 {
		t.Errorf("Expected 1 call, got %d", got)
	}

	d.Stop()
	d.Trigger(func() { calls.Add(1) })
	time.Sleep(60 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("Expected no calls after Stop, got %d", got)
	}
}

package cli

import (
	"context"
	"syscall"
	"testing"
	"time"
)

func TestSignalContext(t *testing.T) {
	ctx, stop := SignalContext(context.Background())
	defer stop()

	select {
	case <-ctx.Done():
		t.Fatal("Context should not be cancelled initially")
	default:
	}

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("Failed to send SIGTERM: %v", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Context should be cancelled after SIGTERM")
	}
}

func TestSignalContextParentCancel(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	ctx, stop := SignalContext(parent)
	defer stop()

	cancel()
	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("Context should follow its parent")
	}
}

func TestReloadSignals(t *testing.T) {
	ch, stop := ReloadSignals()
	defer stop()

	if err := syscall.Kill(syscall.Getpid(), syscall.SIGHUP); err != nil {
		t.Fatalf("Failed to send SIGHUP: %v", err)
	}

	select {
	case sig := <-ch:
		if sig != syscall.SIGHUP {
			t.Errorf("Received %v, want SIGHUP", sig)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected SIGHUP on reload channel")
	}
}

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// ShutdownSignals are the signals that cancel a command.
var ShutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// SignalContext returns a context that is canceled on SIGINT or SIGTERM.
// Call stop to release the signal registration.
func SignalContext(parent context.Context) (ctx context.Context, stop context.CancelFunc) {
	return signal.NotifyContext(parent, ShutdownSignals...)
}

// ReloadSignals returns a channel that receives SIGHUP, plus a function
// that stops delivery.
func ReloadSignals() (<-chan os.Signal, func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGHUP)
	return ch, func() { signal.Stop(ch) }
}

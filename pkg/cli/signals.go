package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// ShutdownSignals are the signals that stop a running server.
var ShutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// OnShutdown calls fn once, from its own goroutine, with the first shutdown
// signal received. Nothing is called if ctx ends or stop is invoked first.
func OnShutdown(ctx context.Context, fn func(os.Signal)) (stop func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, ShutdownSignals...)

	done := make(chan struct{})
	go func() {
		select {
		case sig := <-sigChan:
			fn(sig)
		case <-ctx.Done():
		case <-done:
		}
	}()

	var stopped bool
	return func() {
		if stopped {
			return
		}
		stopped = true
		signal.Stop(sigChan)
		close(done)
	}
}

package collector

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// SetupSignalHandler creates a context that is cancelled on SIGTERM or SIGINT.
// It also calls the provided shutdown function before cancelling. A second
// signal forces the process to exit.
//
// The returned stop function releases the signal handler.
func SetupSignalHandler(parent context.Context, shutdownFunc func(context.Context)) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	var once sync.Once
	done := make(chan struct{})
	stop := func() {
		once.Do(func() {
			signal.Stop(sigCh)
			close(done)
			cancel()
		})
	}

	go func() {
		select {
		case sig := <-sigCh:
			slog.Warn("Received signal, cancelling report", slog.String("signal", sig.String()))
		case <-done:
			return
		}

		if shutdownFunc != nil {
			shutdownFunc(ctx)
		}

		cancel()

		// Handle second signal - force exit
		select {
		case sig := <-sigCh:
			slog.Error("Received second signal, forcing exit", slog.String("signal", sig.String()))
			os.Exit(1)
		case <-done:
		}
	}()

	return ctx, stop
}

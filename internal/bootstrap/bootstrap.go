// Package bootstrap provides application lifecycle helpers.
package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// DefaultShutdownTimeout bounds the time all shutdown hooks may take together.
const DefaultShutdownTimeout = 10 * time.Second

// App runs a command and releases its resources afterwards.
type App struct {
	mu              sync.Mutex
	hooks           []func(ctx context.Context) error
	shutdownTimeout time.Duration
}

// New creates a new App.
func New() *App {
	return &App{shutdownTimeout: DefaultShutdownTimeout}
}

// SetShutdownTimeout replaces DefaultShutdownTimeout.
func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.shutdownTimeout = timeout
}

// AddShutdownHook registers a function to call during shutdown.
// Hooks run in reverse order (LIFO). Thread-safe.
func (a *App) AddShutdownHook(fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, fn)
}

// Run executes run with a context that is cancelled on SIGINT or SIGTERM, then calls
// the shutdown hooks whether run succeeded, failed or was interrupted.
// A context.Canceled caused by the interruption is not reported as an error.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	signalCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runErr := run(signalCtx)
	if runErr != nil && errors.Is(runErr, context.Canceled) && signalCtx.Err() != nil {
		slog.Default().Debug("interrupted", "error", runErr)
		runErr = nil
	}

	a.mu.Lock()
	timeout := a.shutdownTimeout
	a.mu.Unlock()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancelShutdown()

	return errors.Join(runErr, a.shutdown(shutdownCtx))
}

func (a *App) shutdown(ctx context.Context) error {
	a.mu.Lock()
	hooks := a.hooks
	a.hooks = nil
	a.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

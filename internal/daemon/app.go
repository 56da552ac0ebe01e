// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	xglog "github.com/ManuGH/vuejs/internal/log"
	"github.com/rs/zerolog"
)

// Runner is a background subsystem that runs until ctx is cancelled.
type Runner interface {
	Run(ctx context.Context) error
}

// App owns the long-lived runtime lifecycle (settings watcher, reload signal)
// and delegates server management to Manager.
type App struct {
	logger       zerolog.Logger
	manager      Manager
	watcher      Runner
	reload       func(ctx context.Context)
	reloadSignal os.Signal
}

// NewApp creates a new App orchestrator. watcher and reload may be nil.
func NewApp(logger zerolog.Logger, manager Manager, watcher Runner, reload func(ctx context.Context)) *App {
	return &App{
		logger:       logger,
		manager:      manager,
		watcher:      watcher,
		reload:       reload,
		reloadSignal: syscall.SIGHUP,
	}
}

// Run starts all owned background subsystems and blocks until ctx is cancelled or a fatal error occurs.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}

	g, ctx := errgroup.WithContext(ctx)

	// The watcher is best-effort: saves through the API still invalidate the cache.
	if a.watcher != nil {
		g.Go(func() error {
			if err := a.watcher.Run(ctx); err != nil {
				a.logger.Warn().Err(err).Str(xglog.FieldEvent, "settings.watcher_failed").Msg("settings watcher stopped")
			}
			return nil
		})
	}

	// SIGHUP drops cached definitions so edits made by other tools are picked up.
	if a.reload != nil && a.reloadSignal != nil {
		g.Go(func() error {
			hupChan := make(chan os.Signal, 1)
			signal.Notify(hupChan, a.reloadSignal)
			defer signal.Stop(hupChan)

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-hupChan:
					a.logger.Info().
						Str(xglog.FieldEvent, "settings.reload_signal").
						Str("signal", a.reloadSignal.String()).
						Msg("received reload signal, clearing cached definitions")
					a.reload(ctx)
				}
			}
		})
	}

	g.Go(func() error {
		err := a.manager.Start(ctx)
		if err != nil {
			_ = a.manager.Shutdown(context.Background())
		}
		return err
	})

	return g.Wait()
}

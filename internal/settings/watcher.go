// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package settings

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	xglog "github.com/ManuGH/vuejs/internal/log"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Watcher notices edits of the settings file made outside this process
// (operators, config management) and reports them through OnChange.
type Watcher struct {
	path     string
	onChange func(ctx context.Context)
	debounce time.Duration
	limiter  *rate.Limiter
	logger   zerolog.Logger
}

// NewWatcher creates a watcher for the settings file at path. At most one
// OnChange call per interval is made however often the file changes.
func NewWatcher(path string, interval time.Duration, onChange func(ctx context.Context)) *Watcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &Watcher{
		path:     filepath.Clean(path),
		onChange: onChange,
		debounce: 250 * time.Millisecond,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		logger:   xglog.WithComponent("settings.watcher"),
	}
}

// Run watches until ctx is cancelled. The parent directory is watched because
// atomic replaces swap the file's inode.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return fmt.Errorf("watch settings dir: %w", err)
	}
	defer func() { _ = fw.Close() }()

	w.logger.Info().
		Str(xglog.FieldEvent, "settings.watcher_started").
		Str(xglog.FieldPath, w.path).
		Msg("watching settings file for changes")

	changed := make(chan struct{}, 1)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	loopCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-loopCtx.Done():
				return
			case <-changed:
				if err := w.limiter.Wait(loopCtx); err != nil {
					return
				}
				w.onChange(loopCtx)
			}
		}
	}()
	defer func() {
		cancel()
		<-done
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Str(xglog.FieldEvent, "settings.watcher_stopped").Msg("settings watcher stopped")
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			w.logger.Debug().
				Str(xglog.FieldEvent, "settings.file_changed").
				Str("op", event.Op.String()).
				Msg("settings file changed")

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, func() {
				select {
				case changed <- struct{}{}:
				default:
				}
			})

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error().
				Err(err).
				Str(xglog.FieldEvent, "settings.watcher_error").
				Msg("settings watcher error")
		}
	}
}

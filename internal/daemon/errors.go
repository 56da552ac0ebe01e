// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package daemon

import "errors"

// Construction errors. Deps.Validate and NewApp return these before any
// listener is opened.
var (
	ErrMissingLogger     = errors.New("daemon: logger is required")
	ErrMissingAPIHandler = errors.New("daemon: settings API handler is required")
	ErrMissingManager    = errors.New("daemon: manager is required")
)

// ErrManagerNotStarted is returned by Shutdown before Start has run.
var ErrManagerNotStarted = errors.New("daemon: manager not started")

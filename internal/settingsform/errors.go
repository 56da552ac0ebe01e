// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package settingsform

import "errors"

var (
	// ErrPersist wraps store failures during Submit. Nothing was saved.
	ErrPersist = errors.New("persist settings")
	// ErrLoad wraps store failures while reading the current settings.
	ErrLoad = errors.New("load settings")
	// ErrProbeUnavailable is returned when the CDN could not be asked
	// whether a version exists. Nothing was saved.
	ErrProbeUnavailable = errors.New("cdn probe unavailable")
)

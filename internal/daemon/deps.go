// SPDX-License-Identifier: MIT

package daemon

import (
	"net/http"

	"github.com/rs/zerolog"
)

// Deps is what the Manager serves. Runtime.Deps builds it from a
// bootstrapped runtime.
type Deps struct {
	Logger zerolog.Logger

	// APIHandler serves the settings form, the JSON API and the static pages.
	APIHandler http.Handler

	// MetricsHandler and MetricsAddr enable the Prometheus listener. Either
	// one empty leaves it off.
	MetricsHandler http.Handler
	MetricsAddr    string
}

// metricsEnabled reports whether a separate metrics listener is configured.
func (d *Deps) metricsEnabled() bool {
	return d.MetricsHandler != nil && d.MetricsAddr != ""
}

// Validate rejects a disabled logger and a missing API handler.
func (d *Deps) Validate() error {
	if d.Logger.GetLevel() == zerolog.Disabled {
		return ErrMissingLogger
	}
	if d.APIHandler == nil {
		return ErrMissingAPIHandler
	}
	return nil
}

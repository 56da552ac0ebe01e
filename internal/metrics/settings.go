// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package metrics provides Prometheus metrics for the vuejs settings service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Labels stay bounded: library names come from the catalog, never from input.

var (
	settingsSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vuejs_settings_submissions_total",
		Help: "Settings form submissions by outcome",
	}, []string{"outcome"}) // outcome=saved|invalid|error

	settingsValidationErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vuejs_settings_validation_errors_total",
		Help: "Validation errors reported on submission, by field",
	}, []string{"field"})

	libraryVersionChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vuejs_library_version_changes_total",
		Help: "Saved library version changes by library and direction",
	}, []string{"library", "change"})

	libraryInstallation = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "vuejs_library_installation",
		Help: "Current installation mode per library (1 for the active mode)",
	}, []string{"library", "installation"})

	settingsReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vuejs_settings_reloads_total",
		Help: "Definition cache invalidations by trigger",
	}, []string{"trigger"}) // trigger=save|watcher
)

// Submission outcomes.
const (
	OutcomeSaved   = "saved"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// RecordSubmission counts one submission.
func RecordSubmission(outcome string) {
	settingsSubmissions.WithLabelValues(outcome).Inc()
}

// RecordValidationError counts one rejected field.
func RecordValidationError(field string) {
	settingsValidationErrors.WithLabelValues(field).Inc()
}

// RecordVersionChange counts a saved version change.
func RecordVersionChange(library, change string) {
	libraryVersionChanges.WithLabelValues(library, change).Inc()
}

// SetInstallation marks installation as the active mode for library.
func SetInstallation(library, installation string, all []string) {
	for _, mode := range all {
		v := 0.0
		if mode == installation {
			v = 1
		}
		libraryInstallation.WithLabelValues(library, mode).Set(v)
	}
}

// RecordReload counts a definition cache invalidation.
func RecordReload(trigger string) {
	settingsReloads.WithLabelValues(trigger).Inc()
}

// SubmissionCount returns the current submission counter (for testing).
func SubmissionCount(outcome string) float64 {
	return counterValue(settingsSubmissions.WithLabelValues(outcome))
}

// InstallationValue returns the installation gauge (for testing).
func InstallationValue(library, installation string) float64 {
	var m dto.Metric
	if err := libraryInstallation.WithLabelValues(library, installation).Write(&m); err != nil {
		return 0
	}
	return m.GetGauge().GetValue()
}

func counterValue(c prometheus.Counter) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

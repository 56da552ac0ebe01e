// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	libraryFilesDenied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vuejs_library_file_requests_denied_total",
		Help: "Local library file requests denied, by reason",
	}, []string{"reason"})

	libraryFilesServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vuejs_library_file_requests_served_total",
		Help: "Local library file requests served, by cache result",
	}, []string{"cache"}) // cache=hit|miss
)

// RecordLibraryFileDenied counts a rejected local library file request.
func RecordLibraryFileDenied(reason string) {
	libraryFilesDenied.WithLabelValues(reason).Inc()
}

// RecordLibraryFileServed counts a served local library file. notModified
// marks a 304 answer.
func RecordLibraryFileServed(notModified bool) {
	if notModified {
		libraryFilesServed.WithLabelValues("hit").Inc()
		return
	}
	libraryFilesServed.WithLabelValues("miss").Inc()
}

// LibraryFileDeniedCount returns the denial counter (for testing).
func LibraryFileDeniedCount(reason string) float64 {
	return counterValue(libraryFilesDenied.WithLabelValues(reason))
}

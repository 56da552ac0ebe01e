// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	discoveryLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vuejs_discovery_cache_lookups_total",
		Help: "Library definition cache lookups by result",
	}, []string{"result"}) // result=hit|miss

	discoveryClears = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vuejs_discovery_cache_clears_total",
		Help: "Total number of library definition cache clears",
	})

	cdnProbeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vuejs_cdn_probe_duration_seconds",
		Help:    "CDN existence probe latency by provider and result",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"provider", "result"}) // result=found|missing|error
)

// RecordCacheLookup counts a discovery cache hit or miss.
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	discoveryLookups.WithLabelValues(result).Inc()
}

// RecordCacheClear counts a discovery cache clear.
func RecordCacheClear() {
	discoveryClears.Inc()
}

// ObserveCDNProbe records a probe's latency in seconds.
func ObserveCDNProbe(provider, result string, seconds float64) {
	cdnProbeDuration.WithLabelValues(provider, result).Observe(seconds)
}

// CacheLookupCount returns the lookup counter for result (for testing).
func CacheLookupCount(result string) float64 {
	return counterValue(discoveryLookups.WithLabelValues(result))
}

// CacheClearCount returns the clear counter (for testing).
func CacheClearCount() float64 {
	return counterValue(discoveryClears)
}

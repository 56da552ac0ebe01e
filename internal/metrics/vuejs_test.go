// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/vuejs/internal/metrics"
)

func TestPromhttpExposure(t *testing.T) {
	metrics.RecordSubmission(metrics.OutcomeSaved)
	metrics.RecordCacheClear()

	srv := httptest.NewServer(promhttp.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "vuejs_settings_submissions_total")
	assert.Contains(t, string(body), "vuejs_discovery_cache_clears_total")
}

func TestRecordSubmission(t *testing.T) {
	before := metrics.SubmissionCount(metrics.OutcomeInvalid)
	metrics.RecordSubmission(metrics.OutcomeInvalid)
	metrics.RecordSubmission(metrics.OutcomeInvalid)
	assert.Equal(t, before+2, metrics.SubmissionCount(metrics.OutcomeInvalid))
}

func TestSetInstallation(t *testing.T) {
	modes := []string{"local", "cdn"}
	metrics.SetInstallation("vue", "cdn", modes)
	assert.Equal(t, 1.0, metrics.InstallationValue("vue", "cdn"))
	assert.Equal(t, 0.0, metrics.InstallationValue("vue", "local"))

	metrics.SetInstallation("vue", "local", modes)
	assert.Equal(t, 1.0, metrics.InstallationValue("vue", "local"))
	assert.Equal(t, 0.0, metrics.InstallationValue("vue", "cdn"))
}

func TestCacheLookups(t *testing.T) {
	hits := metrics.CacheLookupCount("hit")
	misses := metrics.CacheLookupCount("miss")

	metrics.RecordCacheLookup(true)
	metrics.RecordCacheLookup(false)
	metrics.RecordCacheLookup(false)

	assert.Equal(t, hits+1, metrics.CacheLookupCount("hit"))
	assert.Equal(t, misses+2, metrics.CacheLookupCount("miss"))
}

func TestObserveCDNProbe(t *testing.T) {
	metrics.ObserveCDNProbe("unpkg", "found", 0.12)

	count, err := testutil.GatherAndCount(prometheus.DefaultGatherer, "vuejs_cdn_probe_duration_seconds")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, count, 1)
}

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"errors"
	"testing"

	"github.com/ManuGH/vuejs/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) AppConfig {
	t.Helper()
	cfg := Defaults()
	cfg.DataDir = t.TempDir()
	return cfg
}

func invalidFields(t *testing.T, err error) []string {
	t.Helper()
	var verr validate.ValidationError
	require.True(t, errors.As(err, &verr), "want validate.ValidationError, got %v", err)
	fields := make([]string, 0, len(verr.Errors()))
	for _, e := range verr.Errors() {
		fields = append(fields, e.Field)
	}
	return fields
}

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, Validate(validConfig(t)))
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
		field  string
	}{
		{"log level", func(c *AppConfig) { c.LogLevel = "verbose" }, "LogLevel"},
		{"listen addr", func(c *AppConfig) { c.Server.ListenAddr = "8080" }, "Server.ListenAddr"},
		{"metrics on api port", func(c *AppConfig) { c.Server.MetricsAddr = c.Server.ListenAddr }, "Server.MetricsAddr"},
		{"store backend", func(c *AppConfig) { c.Store.Backend = "etcd" }, "Store.Backend"},
		{"redis store without addr", func(c *AppConfig) { c.Store.Backend = "redis" }, "Store.Redis.Addr"},
		{"redis store db", func(c *AppConfig) {
			c.Store.Backend = "redis"
			c.Store.Redis.Addr = "127.0.0.1:6379"
			c.Store.Redis.DB = 16
		}, "Store.Redis.DB"},
		{"discovery cache", func(c *AppConfig) { c.Discovery.Cache = "disk" }, "Discovery.Cache"},
		{"redis cache without addr", func(c *AppConfig) { c.Discovery.Cache = CacheRedis }, "Discovery.Redis.Addr"},
		{"template placeholder", func(c *AppConfig) { c.Templates.CDNJS = "//cdnjs.example/{package}" }, "Templates"},
		{"probe scheme", func(c *AppConfig) { c.Probe.Enabled = true; c.Probe.Scheme = "ftp" }, "Probe.Scheme"},
		{"probe cidr", func(c *AppConfig) { c.Probe.Enabled = true; c.Probe.CIDRs = []string{"300.0.0.0/8"} }, "Probe.CIDRs"},
		{"telemetry exporter", func(c *AppConfig) { c.Telemetry.Enabled = true; c.Telemetry.Exporter = "zipkin" }, "Telemetry.Exporter"},
		{"sampling rate", func(c *AppConfig) { c.Telemetry.SamplingRate = 2 }, "Telemetry.SamplingRate"},
		{"rate limit", func(c *AppConfig) { c.RateLimit.Requests = 0 }, "RateLimit.Requests"},
		{"origin", func(c *AppConfig) { c.AllowedOrigins = []string{"admin.example.org"} }, "AllowedOrigins"},
		{"libraries dir", func(c *AppConfig) { c.LibrariesDir = "/nonexistent/vuejs/libraries" }, "LibrariesDir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, invalidFields(t, err), tt.field)
		})
	}
}

func TestValidate_DisabledSectionsAreNotChecked(t *testing.T) {
	cfg := validConfig(t)
	cfg.Probe.Scheme = "ftp"
	cfg.Telemetry.Exporter = "zipkin"
	cfg.RateLimit.Enabled = false
	cfg.RateLimit.Requests = 0
	assert.NoError(t, Validate(cfg))
}

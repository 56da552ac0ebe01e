// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"time"

	"github.com/ManuGH/vuejs/internal/settings"
	"github.com/ManuGH/vuejs/internal/telemetry"
)

const (
	defaultListenAddr      = ":8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 30 * time.Second
	defaultIdleTimeout     = 120 * time.Second
	defaultShutdownTimeout = 15 * time.Second
	defaultMaxHeaderBytes  = 1 << 20 // 1 MB
	minShutdownTimeout     = 3 * time.Second
)

// Defaults returns the configuration used when neither file nor environment
// set a value.
func Defaults() AppConfig {
	return AppConfig{
		DataDir:    "data",
		LogLevel:   "info",
		LogService: "vuejs",
		Server: ServerRuntimeConfig{
			ListenAddr:      defaultListenAddr,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
			MaxHeaderBytes:  defaultMaxHeaderBytes,
		},
		Store: StoreConfig{
			Backend: settings.BackendFile,
		},
		Discovery: DiscoveryConfig{
			Cache:           CacheMemory,
			TTL:             time.Hour,
			CleanupInterval: 5 * time.Minute,
		},
		Probe: ProbeConfig{
			Timeout:       5 * time.Second,
			RatePerSecond: 2,
			Burst:         4,
			Scheme:        "https",
		},
		Telemetry: TelemetryConfig{
			Exporter:     telemetry.ExporterGRPC,
			Endpoint:     "localhost:4317",
			Insecure:     true,
			SamplingRate: 1.0,
		},
		RateLimit: RateLimitConfig{
			Enabled:  true,
			Requests: 120,
			Window:   time.Minute,
		},
		WatchEnabled:  true,
		WatchInterval: time.Second,
	}
}

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"time"

	"github.com/ManuGH/vuejs/internal/settings"
	"github.com/ManuGH/vuejs/internal/telemetry"
	"github.com/ManuGH/vuejs/internal/validate"
)

// maxRedisDB is the highest index of a stock redis server (databases 16).
const maxRedisDB = 15

var storeBackends = []string{
	settings.BackendFile,
	settings.BackendSQLite,
	settings.BackendBadger,
	settings.BackendRedis,
	settings.BackendMemory,
}

// Validate validates an AppConfig using the centralized validation package
func Validate(cfg AppConfig) error {
	v := validate.New()

	if _, err := validate.ParseLogLevel(cfg.LogLevel); err != nil {
		v.AddError("LogLevel", "must be one of debug, info, warn, error", cfg.LogLevel)
	}

	v.Directory("DataDir", cfg.DataDir, false)
	if cfg.LibrariesDir != "" {
		v.Directory("LibrariesDir", cfg.LibrariesDir, true)
	}

	// Server
	v.ListenAddr("Server.ListenAddr", cfg.Server.ListenAddr)
	if cfg.Server.MetricsAddr != "" {
		v.ListenAddr("Server.MetricsAddr", cfg.Server.MetricsAddr)
		if cfg.Server.MetricsAddr == cfg.Server.ListenAddr {
			v.AddError("Server.MetricsAddr", "must differ from Server.ListenAddr", cfg.Server.MetricsAddr)
		}
	}
	v.MinDuration("Server.ReadTimeout", cfg.Server.ReadTimeout, time.Second)
	v.MinDuration("Server.WriteTimeout", cfg.Server.WriteTimeout, time.Second)
	v.MinDuration("Server.IdleTimeout", cfg.Server.IdleTimeout, time.Second)
	v.MinDuration("Server.ShutdownTimeout", cfg.Server.ShutdownTimeout, minShutdownTimeout)
	v.Positive("Server.MaxHeaderBytes", cfg.Server.MaxHeaderBytes)

	// Settings store
	v.OneOf("Store.Backend", cfg.Store.Backend, storeBackends)
	if cfg.Store.Backend == settings.BackendRedis {
		v.NotEmpty("Store.Redis.Addr", cfg.Store.Redis.Addr)
		v.Range("Store.Redis.DB", cfg.Store.Redis.DB, 0, maxRedisDB)
	}

	// Discovery cache
	v.OneOf("Discovery.Cache", cfg.Discovery.Cache, []string{CacheMemory, CacheRedis, CacheNone})
	if cfg.Discovery.TTL < 0 {
		v.AddError("Discovery.TTL", "must be >= 0", cfg.Discovery.TTL)
	}
	if cfg.Discovery.Cache == CacheMemory {
		v.MinDuration("Discovery.CleanupInterval", cfg.Discovery.CleanupInterval, time.Second)
	}
	if cfg.Discovery.Cache == CacheRedis {
		v.NotEmpty("Discovery.Redis.Addr", cfg.Discovery.Redis.Addr)
		v.Range("Discovery.Redis.DB", cfg.Discovery.Redis.DB, 0, maxRedisDB)
	}

	v.Custom("Templates", cfg.Templates, func(any) error {
		return cfg.Templates.WithDefaults().Validate()
	})

	if cfg.Probe.Enabled {
		v.MinDuration("Probe.Timeout", cfg.Probe.Timeout, 100*time.Millisecond)
		if cfg.Probe.RatePerSecond <= 0 {
			v.AddError("Probe.RatePerSecond", "must be > 0", cfg.Probe.RatePerSecond)
		}
		v.Positive("Probe.Burst", cfg.Probe.Burst)
		v.OneOf("Probe.Scheme", cfg.Probe.Scheme, []string{"http", "https"})
		v.CIDR("Probe.CIDRs", cfg.Probe.CIDRs)
	}

	if cfg.Telemetry.Enabled {
		v.OneOf("Telemetry.Exporter", cfg.Telemetry.Exporter, []string{telemetry.ExporterGRPC, telemetry.ExporterHTTP})
		v.NotEmpty("Telemetry.Endpoint", cfg.Telemetry.Endpoint)
	}
	v.FloatRange("Telemetry.SamplingRate", cfg.Telemetry.SamplingRate, 0, 1)

	if cfg.RateLimit.Enabled {
		v.Positive("RateLimit.Requests", cfg.RateLimit.Requests)
		v.MinDuration("RateLimit.Window", cfg.RateLimit.Window, time.Second)
	}

	for _, origin := range cfg.AllowedOrigins {
		v.URL("AllowedOrigins", origin, []string{"http", "https"})
	}

	if cfg.WatchEnabled && cfg.Store.Backend == settings.BackendFile {
		v.MinDuration("WatchInterval", cfg.WatchInterval, 10*time.Millisecond)
	}

	if !v.IsValid() {
		return v.Err()
	}
	return nil
}

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import "time"

// ToFileConfig renders cfg in the YAML file layout. Loading the result
// yields cfg again (minus Version). Secrets are masked.
func (c AppConfig) ToFileConfig() FileConfig {
	r := c.Redacted()
	return FileConfig{
		DataDir:      r.DataDir,
		LogLevel:     r.LogLevel,
		LogService:   r.LogService,
		LibrariesDir: r.LibrariesDir,
		Server: ServerFileConfig{
			ListenAddr:      r.Server.ListenAddr,
			Bind:            r.Server.Bind,
			MetricsAddr:     r.Server.MetricsAddr,
			ReadTimeout:     durationString(r.Server.ReadTimeout),
			WriteTimeout:    durationString(r.Server.WriteTimeout),
			IdleTimeout:     durationString(r.Server.IdleTimeout),
			ShutdownTimeout: durationString(r.Server.ShutdownTimeout),
			MaxHeaderBytes:  r.Server.MaxHeaderBytes,
		},
		Store: StoreFileConfig{
			Backend: r.Store.Backend,
			Path:    r.Store.Path,
			Redis:   redisFileConfig(r.Store.Redis),
		},
		Discovery: DiscoveryFileConfig{
			Cache:           r.Discovery.Cache,
			TTL:             durationString(r.Discovery.TTL),
			CleanupInterval: durationString(r.Discovery.CleanupInterval),
			Redis:           redisFileConfig(r.Discovery.Redis),
		},
		Templates: r.Templates,
		Probe: ProbeFileConfig{
			Enabled:       ptr(r.Probe.Enabled),
			Timeout:       durationString(r.Probe.Timeout),
			RatePerSecond: r.Probe.RatePerSecond,
			Burst:         r.Probe.Burst,
			Scheme:        r.Probe.Scheme,
			ExtraHosts:    r.Probe.ExtraHosts,
			CIDRs:         r.Probe.CIDRs,
		},
		Telemetry: TelemetryFileConfig{
			Enabled:      ptr(r.Telemetry.Enabled),
			Exporter:     r.Telemetry.Exporter,
			Endpoint:     r.Telemetry.Endpoint,
			Insecure:     ptr(r.Telemetry.Insecure),
			SamplingRate: ptr(r.Telemetry.SamplingRate),
			Environment:  r.Telemetry.Environment,
		},
		RateLimit: RateLimitFileConfig{
			Enabled:  ptr(r.RateLimit.Enabled),
			Requests: r.RateLimit.Requests,
			Window:   durationString(r.RateLimit.Window),
		},
		Security: SecurityFileConfig{AllowedOrigins: r.AllowedOrigins},
		Watch: WatchFileConfig{
			Enabled:  ptr(r.WatchEnabled),
			Interval: durationString(r.WatchInterval),
		},
	}
}

func redisFileConfig(rc RedisConfig) RedisFileConfig {
	if rc.Addr == "" && rc.Key == "" {
		return RedisFileConfig{}
	}
	return RedisFileConfig{Addr: rc.Addr, Password: rc.Password, DB: ptr(rc.DB), Key: rc.Key}
}

func durationString(d time.Duration) string {
	if d == 0 {
		return ""
	}
	return d.String()
}

func ptr[T any](v T) *T { return &v }

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

// mergeEnvConfig applies the VUEJS_* environment on top of cfg.
func (l *Loader) mergeEnvConfig(cfg *AppConfig) {
	cfg.DataDir = l.envString("VUEJS_DATA_DIR", cfg.DataDir)
	cfg.LogLevel = l.envString("VUEJS_LOG_LEVEL", cfg.LogLevel)
	cfg.LogService = l.envString("VUEJS_LOG_SERVICE", cfg.LogService)
	cfg.LibrariesDir = l.envString("VUEJS_LIBRARIES_DIR", cfg.LibrariesDir)

	// Server
	cfg.Server.ListenAddr = l.envString("VUEJS_LISTEN", cfg.Server.ListenAddr)
	cfg.Server.Bind = l.envString("VUEJS_BIND", cfg.Server.Bind)
	cfg.Server.MetricsAddr = l.envString("VUEJS_METRICS_LISTEN", cfg.Server.MetricsAddr)
	cfg.Server.ReadTimeout = l.envDuration("VUEJS_SERVER_READ_TIMEOUT", cfg.Server.ReadTimeout)
	cfg.Server.WriteTimeout = l.envDuration("VUEJS_SERVER_WRITE_TIMEOUT", cfg.Server.WriteTimeout)
	cfg.Server.IdleTimeout = l.envDuration("VUEJS_SERVER_IDLE_TIMEOUT", cfg.Server.IdleTimeout)
	cfg.Server.ShutdownTimeout = l.envDuration("VUEJS_SERVER_SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)
	cfg.Server.MaxHeaderBytes = l.envInt("VUEJS_SERVER_MAX_HEADER_BYTES", cfg.Server.MaxHeaderBytes)

	// Settings store
	cfg.Store.Backend = l.envString("VUEJS_STORE_BACKEND", cfg.Store.Backend)
	cfg.Store.Path = l.envString("VUEJS_STORE_PATH", cfg.Store.Path)
	cfg.Store.Redis.Addr = l.envString("VUEJS_STORE_REDIS_ADDR", cfg.Store.Redis.Addr)
	cfg.Store.Redis.Password = l.envString("VUEJS_STORE_REDIS_PASSWORD", cfg.Store.Redis.Password)
	cfg.Store.Redis.DB = l.envInt("VUEJS_STORE_REDIS_DB", cfg.Store.Redis.DB)
	cfg.Store.Redis.Key = l.envString("VUEJS_STORE_REDIS_KEY", cfg.Store.Redis.Key)

	// Discovery cache
	cfg.Discovery.Cache = l.envString("VUEJS_DISCOVERY_CACHE", cfg.Discovery.Cache)
	cfg.Discovery.TTL = l.envDuration("VUEJS_DISCOVERY_TTL", cfg.Discovery.TTL)
	cfg.Discovery.CleanupInterval = l.envDuration("VUEJS_DISCOVERY_CLEANUP_INTERVAL", cfg.Discovery.CleanupInterval)
	cfg.Discovery.Redis.Addr = l.envString("VUEJS_DISCOVERY_REDIS_ADDR", cfg.Discovery.Redis.Addr)
	cfg.Discovery.Redis.Password = l.envString("VUEJS_DISCOVERY_REDIS_PASSWORD", cfg.Discovery.Redis.Password)
	cfg.Discovery.Redis.DB = l.envInt("VUEJS_DISCOVERY_REDIS_DB", cfg.Discovery.Redis.DB)
	cfg.Discovery.Redis.Key = l.envString("VUEJS_DISCOVERY_REDIS_PREFIX", cfg.Discovery.Redis.Key)

	// Path templates
	cfg.Templates.Local = l.envString("VUEJS_TEMPLATE_LOCAL", cfg.Templates.Local)
	cfg.Templates.Unpkg = l.envString("VUEJS_TEMPLATE_UNPKG", cfg.Templates.Unpkg)
	cfg.Templates.CDNJS = l.envString("VUEJS_TEMPLATE_CDNJS", cfg.Templates.CDNJS)
	cfg.Templates.JSDelivr = l.envString("VUEJS_TEMPLATE_JSDELIVR", cfg.Templates.JSDelivr)

	// CDN probe
	cfg.Probe.Enabled = l.envBool("VUEJS_VERIFY_CDN", cfg.Probe.Enabled)
	cfg.Probe.Timeout = l.envDuration("VUEJS_PROBE_TIMEOUT", cfg.Probe.Timeout)
	cfg.Probe.RatePerSecond = l.envFloat("VUEJS_PROBE_RATE", cfg.Probe.RatePerSecond)
	cfg.Probe.Burst = l.envInt("VUEJS_PROBE_BURST", cfg.Probe.Burst)
	cfg.Probe.Scheme = l.envString("VUEJS_PROBE_SCHEME", cfg.Probe.Scheme)
	cfg.Probe.ExtraHosts = l.envList("VUEJS_PROBE_EXTRA_HOSTS", cfg.Probe.ExtraHosts)
	cfg.Probe.CIDRs = l.envList("VUEJS_PROBE_CIDRS", cfg.Probe.CIDRs)

	// Telemetry
	cfg.Telemetry.Enabled = l.envBool("VUEJS_TELEMETRY_ENABLED", cfg.Telemetry.Enabled)
	cfg.Telemetry.Exporter = l.envString("VUEJS_OTLP_EXPORTER", cfg.Telemetry.Exporter)
	cfg.Telemetry.Endpoint = l.envString("VUEJS_OTLP_ENDPOINT", cfg.Telemetry.Endpoint)
	cfg.Telemetry.Insecure = l.envBool("VUEJS_OTLP_INSECURE", cfg.Telemetry.Insecure)
	cfg.Telemetry.SamplingRate = l.envFloat("VUEJS_TRACE_SAMPLING_RATE", cfg.Telemetry.SamplingRate)
	cfg.Telemetry.Environment = l.envString("VUEJS_ENVIRONMENT", cfg.Telemetry.Environment)

	// Rate limiting
	cfg.RateLimit.Enabled = l.envBool("VUEJS_RATELIMIT_ENABLED", cfg.RateLimit.Enabled)
	cfg.RateLimit.Requests = l.envInt("VUEJS_RATELIMIT_REQUESTS", cfg.RateLimit.Requests)
	cfg.RateLimit.Window = l.envDuration("VUEJS_RATELIMIT_WINDOW", cfg.RateLimit.Window)

	cfg.AllowedOrigins = l.envList("VUEJS_ALLOWED_ORIGINS", cfg.AllowedOrigins)

	// Watcher
	cfg.WatchEnabled = l.envBool("VUEJS_WATCH_ENABLED", cfg.WatchEnabled)
	cfg.WatchInterval = l.envDuration("VUEJS_WATCH_INTERVAL", cfg.WatchInterval)
}

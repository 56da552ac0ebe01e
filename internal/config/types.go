// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"time"

	"github.com/ManuGH/vuejs/internal/library"
)

// Discovery cache kinds.
const (
	CacheMemory = "memory"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// FileConfig represents the YAML configuration structure
type FileConfig struct {
	DataDir      string `yaml:"dataDir,omitempty"`
	LogLevel     string `yaml:"logLevel,omitempty"`
	LogService   string `yaml:"logService,omitempty"`
	LibrariesDir string `yaml:"librariesDir,omitempty"`

	Server    ServerFileConfig    `yaml:"server,omitempty"`
	Store     StoreFileConfig     `yaml:"store,omitempty"`
	Discovery DiscoveryFileConfig `yaml:"discovery,omitempty"`
	Templates library.Templates   `yaml:"templates,omitempty"`
	Probe     ProbeFileConfig     `yaml:"probe,omitempty"`
	Telemetry TelemetryFileConfig `yaml:"telemetry,omitempty"`
	RateLimit RateLimitFileConfig `yaml:"rateLimit,omitempty"`
	Security  SecurityFileConfig  `yaml:"security,omitempty"`
	Watch     WatchFileConfig     `yaml:"watch,omitempty"`
}

// ServerFileConfig holds the HTTP listener settings. Durations use Go syntax ("30s").
type ServerFileConfig struct {
	ListenAddr      string `yaml:"listenAddr,omitempty"`
	Bind            string `yaml:"bind,omitempty"` // host, IP or "if:<name>" for a ":PORT" listenAddr
	MetricsAddr     string `yaml:"metricsAddr,omitempty"`
	ReadTimeout     string `yaml:"readTimeout,omitempty"`
	WriteTimeout    string `yaml:"writeTimeout,omitempty"`
	IdleTimeout     string `yaml:"idleTimeout,omitempty"`
	ShutdownTimeout string `yaml:"shutdownTimeout,omitempty"`
	MaxHeaderBytes  int    `yaml:"maxHeaderBytes,omitempty"`
}

// RedisFileConfig is shared by the redis settings store and the redis discovery cache.
type RedisFileConfig struct {
	Addr     string `yaml:"addr,omitempty"`
	Password string `yaml:"password,omitempty"`
	DB       *int   `yaml:"db,omitempty"`
	// Key is the settings hash (store) or the key prefix (discovery cache).
	Key string `yaml:"key,omitempty"`
}

// StoreFileConfig selects the settings backend.
type StoreFileConfig struct {
	Backend string          `yaml:"backend,omitempty"`
	Path    string          `yaml:"path,omitempty"`
	Redis   RedisFileConfig `yaml:"redis,omitempty"`
}

// DiscoveryFileConfig configures the library definition cache.
type DiscoveryFileConfig struct {
	Cache           string          `yaml:"cache,omitempty"`
	TTL             string          `yaml:"ttl,omitempty"`
	CleanupInterval string          `yaml:"cleanupInterval,omitempty"`
	Redis           RedisFileConfig `yaml:"redis,omitempty"`
}

// ProbeFileConfig configures the CDN existence check run before a save.
type ProbeFileConfig struct {
	Enabled       *bool    `yaml:"enabled,omitempty"`
	Timeout       string   `yaml:"timeout,omitempty"`
	RatePerSecond float64  `yaml:"ratePerSecond,omitempty"`
	Burst         int      `yaml:"burst,omitempty"`
	Scheme        string   `yaml:"scheme,omitempty"`
	ExtraHosts    []string `yaml:"extraHosts,omitempty"`
	CIDRs         []string `yaml:"cidrs,omitempty"`
}

// TelemetryFileConfig configures OpenTelemetry tracing.
type TelemetryFileConfig struct {
	Enabled      *bool    `yaml:"enabled,omitempty"`
	Exporter     string   `yaml:"exporter,omitempty"`
	Endpoint     string   `yaml:"endpoint,omitempty"`
	Insecure     *bool    `yaml:"insecure,omitempty"`
	SamplingRate *float64 `yaml:"samplingRate,omitempty"`
	Environment  string   `yaml:"environment,omitempty"`
}

// RateLimitFileConfig configures per-client request limiting.
type RateLimitFileConfig struct {
	Enabled  *bool  `yaml:"enabled,omitempty"`
	Requests int    `yaml:"requests,omitempty"`
	Window   string `yaml:"window,omitempty"`
}

// SecurityFileConfig holds the origins accepted on state-changing requests.
type SecurityFileConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins,omitempty"`
}

// WatchFileConfig configures the settings file watcher.
type WatchFileConfig struct {
	Enabled  *bool  `yaml:"enabled,omitempty"`
	Interval string `yaml:"interval,omitempty"`
}

// AppConfig is the fully merged configuration.
type AppConfig struct {
	Version      string
	DataDir      string
	LogLevel     string
	LogService   string
	LibrariesDir string // Optional: serve local library files from here

	Server    ServerRuntimeConfig
	Store     StoreConfig
	Discovery DiscoveryConfig
	Templates library.Templates // empty entries keep the default
	Probe     ProbeConfig
	Telemetry TelemetryConfig
	RateLimit RateLimitConfig

	AllowedOrigins []string

	WatchEnabled  bool
	WatchInterval time.Duration
}

// ServerRuntimeConfig holds the resolved listener settings.
type ServerRuntimeConfig struct {
	ListenAddr      string // host already applied from Bind by the loader
	Bind            string
	MetricsAddr     string // empty disables the metrics listener
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxHeaderBytes  int
}

// RedisConfig holds a resolved Redis connection.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// StoreConfig holds the resolved settings backend.
type StoreConfig struct {
	Backend string
	Path    string // derived from DataDir when empty
	Redis   RedisConfig
}

// DiscoveryConfig holds the resolved discovery cache settings.
type DiscoveryConfig struct {
	Cache           string
	TTL             time.Duration
	CleanupInterval time.Duration
	Redis           RedisConfig
}

// ProbeConfig holds the resolved CDN probe settings.
type ProbeConfig struct {
	Enabled       bool
	Timeout       time.Duration
	RatePerSecond float64
	Burst         int
	Scheme        string
	ExtraHosts    []string
	CIDRs         []string
}

// TelemetryConfig holds the resolved tracing settings.
type TelemetryConfig struct {
	Enabled      bool
	Exporter     string
	Endpoint     string
	Insecure     bool
	SamplingRate float64
	Environment  string
}

// RateLimitConfig holds the resolved request limiter settings.
type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Window   time.Duration
}

// Redacted returns a copy safe for logging.
func (c AppConfig) Redacted() AppConfig {
	out := c
	if out.Store.Redis.Password != "" {
		out.Store.Redis.Password = "***"
	}
	if out.Discovery.Redis.Password != "" {
		out.Discovery.Redis.Password = "***"
	}
	return out
}

// SPDX-License-Identifier: MIT

// Package daemon provides the core daemon bootstrapping and lifecycle management.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/ManuGH/vuejs/internal/api"
	"github.com/ManuGH/vuejs/internal/api/middleware"
	"github.com/ManuGH/vuejs/internal/cache"
	"github.com/ManuGH/vuejs/internal/config"
	"github.com/ManuGH/vuejs/internal/discovery"
	"github.com/ManuGH/vuejs/internal/health"
	"github.com/ManuGH/vuejs/internal/library"
	xglog "github.com/ManuGH/vuejs/internal/log"
	"github.com/ManuGH/vuejs/internal/metrics"
	"github.com/ManuGH/vuejs/internal/pages"
	"github.com/ManuGH/vuejs/internal/settings"
	"github.com/ManuGH/vuejs/internal/settingsform"
	"github.com/ManuGH/vuejs/internal/telemetry"
)

// Runtime holds the components built from an AppConfig.
type Runtime struct {
	Config    config.AppConfig
	Store     settings.Store
	Cache     cache.Cache
	Resolver  *library.Resolver
	Registry  *discovery.Registry
	Service   *settingsform.Service
	Health    *health.Manager
	Telemetry *telemetry.Provider
	API       *api.Server

	logger zerolog.Logger
}

// Bootstrap opens the settings store and discovery cache and assembles the
// HTTP surface. Call Close (or register the shutdown hooks) to release them.
func Bootstrap(ctx context.Context, cfg config.AppConfig) (*Runtime, error) {
	rt := &Runtime{Config: cfg, logger: xglog.WithComponent("daemon")}

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Telemetry.Enabled,
		ServiceName:    cfg.LogService,
		ServiceVersion: cfg.Version,
		Environment:    cfg.Telemetry.Environment,
		ExporterType:   cfg.Telemetry.Exporter,
		Endpoint:       cfg.Telemetry.Endpoint,
		Insecure:       cfg.Telemetry.Insecure,
		SamplingRate:   cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		// Tracing is optional; keep serving without it.
		rt.logger.Warn().Err(err).Str(xglog.FieldEvent, "telemetry.init_failed").Msg("telemetry initialization failed, continuing without tracing")
		tp, _ = telemetry.NewProvider(ctx, telemetry.Config{})
	}
	rt.Telemetry = tp

	store, err := settings.Open(ctx, settings.Config{
		Backend: cfg.Store.Backend,
		Path:    cfg.Store.Path,
		Redis: settings.RedisConfig{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
			Key:      cfg.Store.Redis.Key,
		},
	})
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("open settings store: %w", err)
	}
	rt.Store = store

	c, err := newDiscoveryCache(ctx, cfg.Discovery)
	if err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("open discovery cache: %w", err)
	}
	rt.Cache = c

	rt.Resolver = library.NewResolver(library.DefaultCatalog(), cfg.Templates.WithDefaults())
	rt.Registry = discovery.NewRegistry(store, rt.Resolver, c, cfg.Discovery.TTL)

	var opts []settingsform.Option
	if cfg.Probe.Enabled {
		prober, err := settingsform.NewCDNProber(settingsform.ProbeConfig{
			Timeout:       cfg.Probe.Timeout,
			RatePerSecond: cfg.Probe.RatePerSecond,
			Burst:         cfg.Probe.Burst,
			Scheme:        cfg.Probe.Scheme,
			ExtraHosts:    cfg.Probe.ExtraHosts,
			CIDRs:         cfg.Probe.CIDRs,
		}, rt.Resolver.Templates())
		if err != nil {
			_ = rt.Close(ctx)
			return nil, fmt.Errorf("create cdn prober: %w", err)
		}
		opts = append(opts, settingsform.WithProber(prober))
	}
	rt.Service = settingsform.NewService(store, rt.Resolver, rt.Registry, opts...)

	rt.Health = health.NewManager(cfg.Version)
	rt.Health.RegisterChecker(health.NewStoreChecker(store))
	if store.Backend() == settings.BackendFile {
		// Absent until the first save, which the store reports as defaults.
		rt.Health.RegisterChecker(health.NewFileChecker("settings_file", cfg.Store.Path, true))
	}
	rt.Health.RegisterChecker(health.NewLocalLibrariesChecker(store, cfg.LibrariesDir))
	if rc, ok := c.(*cache.RedisCache); ok {
		rt.Health.RegisterChecker(health.NewPingChecker("discovery_cache", rc.HealthCheck, true))
	}

	pageRegistry := pages.NewRegistry()
	if err := pages.RegisterMyModule(pageRegistry); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("register pages: %w", err)
	}

	tracingService := ""
	if cfg.Telemetry.Enabled {
		tracingService = cfg.LogService
	}
	rt.API = api.New(api.Config{
		Stack: middleware.StackConfig{
			AllowedOrigins:        cfg.AllowedOrigins,
			EnableSecurityHeaders: true,
			EnableMetrics:         true,
			TracingService:        tracingService,
			EnableLogging:         true,
			EnableRateLimit:       cfg.RateLimit.Enabled,
			RateLimit: middleware.RateLimitConfig{
				RequestLimit: cfg.RateLimit.Requests,
				WindowSize:   cfg.RateLimit.Window,
			},
		},
		LibrariesDir: cfg.LibrariesDir,
	}, api.Deps{
		Settings:  rt.Service,
		Libraries: rt.Registry,
		Pages:     pageRegistry,
		Health:    rt.Health,
	})

	return rt, nil
}

func newDiscoveryCache(ctx context.Context, cfg config.DiscoveryConfig) (cache.Cache, error) {
	switch cfg.Cache {
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Key,
		}, xglog.WithComponent("discovery.cache"))
	case config.CacheNone:
		return cache.NewNoOpCache(), nil
	default:
		return cache.NewMemoryCache(cfg.CleanupInterval), nil
	}
}

// Handler returns the API handler.
func (rt *Runtime) Handler() http.Handler { return rt.API.Handler() }

// Deps returns the manager dependencies for this runtime.
func (rt *Runtime) Deps(logger zerolog.Logger) Deps {
	return Deps{
		Logger:         logger,
		APIHandler:     rt.Handler(),
		MetricsHandler: promhttp.Handler(),
		MetricsAddr:    rt.Config.Server.MetricsAddr,
	}
}

// Watcher returns the settings file watcher, or nil when the backend is not
// a file or watching is disabled.
func (rt *Runtime) Watcher() Runner {
	if !rt.Config.WatchEnabled || rt.Store.Backend() != settings.BackendFile {
		return nil
	}
	return settings.NewWatcher(rt.Config.Store.Path, rt.Config.WatchInterval, func(ctx context.Context) {
		rt.Reload(ctx, "watcher")
	})
}

// Reload drops cached definitions after the stored settings changed outside
// the API.
func (rt *Runtime) Reload(ctx context.Context, trigger string) {
	rt.Registry.ClearCachedDefinitions(ctx)
	metrics.RecordReload(trigger)
}

// RegisterShutdownHooks releases the runtime's resources when m shuts down.
// Telemetry is registered first so it flushes last.
func (rt *Runtime) RegisterShutdownHooks(m Manager) {
	if rt.Telemetry != nil {
		m.RegisterShutdownHook("telemetry", rt.Telemetry.Shutdown)
	}
	if rt.Store != nil {
		m.RegisterShutdownHook("settings_store", func(context.Context) error { return rt.Store.Close() })
	}
	if rt.Cache != nil {
		m.RegisterShutdownHook("discovery_cache", func(context.Context) error { return rt.Cache.Close() })
	}
}

// Close releases everything Bootstrap opened. It is used on failed startup
// and in tests; running daemons use RegisterShutdownHooks.
func (rt *Runtime) Close(ctx context.Context) error {
	var errs []error
	if rt.Cache != nil {
		errs = append(errs, rt.Cache.Close())
	}
	if rt.Store != nil {
		errs = append(errs, rt.Store.Close())
	}
	if rt.Telemetry != nil {
		errs = append(errs, rt.Telemetry.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

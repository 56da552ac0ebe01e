// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"fmt"
	"strings"
	"time"
)

// mergeFileConfig copies every value the file sets over the defaults.
func mergeFileConfig(dst *AppConfig, src *FileConfig) error {
	setString(&dst.DataDir, src.DataDir)
	setString(&dst.LogLevel, src.LogLevel)
	setString(&dst.LogService, src.LogService)
	setString(&dst.LibrariesDir, src.LibrariesDir)

	if err := mergeServer(&dst.Server, src.Server); err != nil {
		return err
	}

	setString(&dst.Store.Backend, src.Store.Backend)
	setString(&dst.Store.Path, src.Store.Path)
	mergeRedis(&dst.Store.Redis, src.Store.Redis)

	setString(&dst.Discovery.Cache, src.Discovery.Cache)
	if err := setDuration(&dst.Discovery.TTL, "discovery.ttl", src.Discovery.TTL); err != nil {
		return err
	}
	if err := setDuration(&dst.Discovery.CleanupInterval, "discovery.cleanupInterval", src.Discovery.CleanupInterval); err != nil {
		return err
	}
	mergeRedis(&dst.Discovery.Redis, src.Discovery.Redis)

	setString(&dst.Templates.Local, src.Templates.Local)
	setString(&dst.Templates.Unpkg, src.Templates.Unpkg)
	setString(&dst.Templates.CDNJS, src.Templates.CDNJS)
	setString(&dst.Templates.JSDelivr, src.Templates.JSDelivr)

	setBool(&dst.Probe.Enabled, src.Probe.Enabled)
	if err := setDuration(&dst.Probe.Timeout, "probe.timeout", src.Probe.Timeout); err != nil {
		return err
	}
	if src.Probe.RatePerSecond > 0 {
		dst.Probe.RatePerSecond = src.Probe.RatePerSecond
	}
	if src.Probe.Burst > 0 {
		dst.Probe.Burst = src.Probe.Burst
	}
	setString(&dst.Probe.Scheme, src.Probe.Scheme)
	if len(src.Probe.ExtraHosts) > 0 {
		dst.Probe.ExtraHosts = append([]string(nil), src.Probe.ExtraHosts...)
	}
	if len(src.Probe.CIDRs) > 0 {
		dst.Probe.CIDRs = append([]string(nil), src.Probe.CIDRs...)
	}

	setBool(&dst.Telemetry.Enabled, src.Telemetry.Enabled)
	setString(&dst.Telemetry.Exporter, src.Telemetry.Exporter)
	setString(&dst.Telemetry.Endpoint, src.Telemetry.Endpoint)
	setBool(&dst.Telemetry.Insecure, src.Telemetry.Insecure)
	if src.Telemetry.SamplingRate != nil {
		dst.Telemetry.SamplingRate = *src.Telemetry.SamplingRate
	}
	setString(&dst.Telemetry.Environment, src.Telemetry.Environment)

	setBool(&dst.RateLimit.Enabled, src.RateLimit.Enabled)
	if src.RateLimit.Requests > 0 {
		dst.RateLimit.Requests = src.RateLimit.Requests
	}
	if err := setDuration(&dst.RateLimit.Window, "rateLimit.window", src.RateLimit.Window); err != nil {
		return err
	}

	if len(src.Security.AllowedOrigins) > 0 {
		dst.AllowedOrigins = append([]string(nil), src.Security.AllowedOrigins...)
	}

	setBool(&dst.WatchEnabled, src.Watch.Enabled)
	return setDuration(&dst.WatchInterval, "watch.interval", src.Watch.Interval)
}

func mergeServer(dst *ServerRuntimeConfig, src ServerFileConfig) error {
	setString(&dst.ListenAddr, src.ListenAddr)
	setString(&dst.Bind, src.Bind)
	setString(&dst.MetricsAddr, src.MetricsAddr)
	if src.MaxHeaderBytes > 0 {
		dst.MaxHeaderBytes = src.MaxHeaderBytes
	}
	for _, d := range []struct {
		field string
		raw   string
		dst   *time.Duration
	}{
		{"server.readTimeout", src.ReadTimeout, &dst.ReadTimeout},
		{"server.writeTimeout", src.WriteTimeout, &dst.WriteTimeout},
		{"server.idleTimeout", src.IdleTimeout, &dst.IdleTimeout},
		{"server.shutdownTimeout", src.ShutdownTimeout, &dst.ShutdownTimeout},
	} {
		if err := setDuration(d.dst, d.field, d.raw); err != nil {
			return err
		}
	}
	return nil
}

func mergeRedis(dst *RedisConfig, src RedisFileConfig) {
	setString(&dst.Addr, src.Addr)
	setString(&dst.Password, src.Password)
	setString(&dst.Key, src.Key)
	if src.DB != nil {
		dst.DB = *src.DB
	}
}

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, field, raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%s: invalid duration %q: %w", field, raw, err)
	}
	*dst = d
	return nil
}

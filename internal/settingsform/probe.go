// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package settingsform

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/ManuGH/vuejs/internal/library"
	xglog "github.com/ManuGH/vuejs/internal/log"
	"github.com/ManuGH/vuejs/internal/metrics"
	"github.com/ManuGH/vuejs/internal/platform/httpx"
	xnet "github.com/ManuGH/vuejs/internal/platform/net"
)

// Prober checks that a resolved CDN path exists before it is saved.
type Prober interface {
	Probe(ctx context.Context, setting library.LibrarySetting) error
}

// ProbeConfig configures CDNProber.
type ProbeConfig struct {
	Timeout time.Duration
	// RatePerSecond and Burst bound outbound HEAD requests.
	RatePerSecond float64
	Burst         int
	// Scheme completes scheme-relative CDN paths; "https" when empty.
	Scheme string
	// ExtraHosts and CIDRs extend the allowlist derived from the templates.
	ExtraHosts []string
	CIDRs      []string
	Ports      []int
}

// CDNProber issues HEAD requests against the configured CDN templates.
type CDNProber struct {
	client  *http.Client
	policy  *xnet.Policy
	limiter *rate.Limiter
	scheme  string
	logger  zerolog.Logger
}

// NewCDNProber builds a prober whose allowlist holds every host named by
// the CDN templates plus cfg.ExtraHosts.
func NewCDNProber(cfg ProbeConfig, templates library.Templates) (*CDNProber, error) {
	if cfg.Scheme == "" {
		cfg.Scheme = "https"
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 2
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 4
	}
	if len(cfg.Ports) == 0 {
		cfg.Ports = []int{80, 443}
	}

	hosts := append([]string(nil), cfg.ExtraHosts...)
	for _, provider := range library.CDNProviders {
		if h := xnet.HostOf(templates.ForProvider(provider)); h != "" {
			hosts = append(hosts, h)
		}
	}

	policy, err := xnet.NewPolicy(true, xnet.OutboundAllowlist{
		Hosts:   hosts,
		CIDRs:   cfg.CIDRs,
		Ports:   cfg.Ports,
		Schemes: []string{cfg.Scheme},
	})
	if err != nil {
		return nil, fmt.Errorf("cdn probe allowlist: %w", err)
	}

	return &CDNProber{
		client:  httpx.NewTracedClient(cfg.Timeout, "cdn.probe"),
		policy:  policy,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
		scheme:  cfg.Scheme,
		logger:  xglog.WithComponent("cdn-probe"),
	}, nil
}

// Probe returns a *library.ValidationError when the CDN answers 404 for the
// setting's path, and an error wrapping ErrProbeUnavailable when it cannot
// tell. Local installations are never probed.
func (p *CDNProber) Probe(ctx context.Context, setting library.LibrarySetting) error {
	if !setting.IsExternal() {
		return nil
	}

	target, err := p.policy.Check(ctx, xnet.AbsoluteURL(setting.Path, p.scheme))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProbeUnavailable, err)
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrProbeUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrProbeUnavailable, err)
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	provider := string(setting.CDN)
	if err != nil {
		metrics.ObserveCDNProbe(provider, "error", time.Since(start).Seconds())
		return fmt.Errorf("%w: %v", ErrProbeUnavailable, err)
	}
	_ = resp.Body.Close()

	logger := xglog.FromContext(ctx).With().
		Str(xglog.FieldLibrary, setting.Name).
		Str(xglog.FieldCDN, provider).
		Str(xglog.FieldURL, xnet.SanitizeURL(target.String())).
		Int("status", resp.StatusCode).
		Logger()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		metrics.ObserveCDNProbe(provider, "missing", time.Since(start).Seconds())
		logger.Info().Str(xglog.FieldEvent, "cdn.probe_missing").Msg("version not found on cdn")
		return &library.ValidationError{Library: setting.Name, Field: "version", Message: library.MsgVersionMissing}
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		metrics.ObserveCDNProbe(provider, "found", time.Since(start).Seconds())
		logger.Debug().Str(xglog.FieldEvent, "cdn.probe_found").Msg("version found on cdn")
		return nil
	default:
		metrics.ObserveCDNProbe(provider, "error", time.Since(start).Seconds())
		logger.Warn().Str(xglog.FieldEvent, "cdn.probe_failed").Msg("unexpected cdn response")
		return fmt.Errorf("%w: %s answered %d", ErrProbeUnavailable, target.Host, resp.StatusCode)
	}
}

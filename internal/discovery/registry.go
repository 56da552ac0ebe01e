// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package discovery exposes the configured libraries as registered assets.
//
// Asset definitions are derived from the stored settings and cached until
// ClearCachedDefinitions is called, which happens after every save.
package discovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/ManuGH/vuejs/internal/cache"
	"github.com/ManuGH/vuejs/internal/library"
	xglog "github.com/ManuGH/vuejs/internal/log"
	"github.com/ManuGH/vuejs/internal/metrics"
	"github.com/ManuGH/vuejs/internal/settings"
)

// Extension is the name under which the libraries are registered.
const Extension = "vuejs"

// ErrUnknownExtension is returned for extensions other than Extension.
var ErrUnknownExtension = errors.New("unknown extension")

// Asset is one registered JavaScript library.
type Asset struct {
	Name         string               `json:"name"`
	Title        string               `json:"title"`
	Path         string               `json:"path"`
	External     bool                 `json:"external"`
	Version      string               `json:"version"`
	Installation library.Installation `json:"installation"`
	Development  bool                 `json:"development"`
	Minified     bool                 `json:"minified"`
}

// Registry builds asset definitions from the settings store.
type Registry struct {
	store    settings.Store
	resolver *library.Resolver
	cache    cache.Cache
	ttl      time.Duration
	logger   zerolog.Logger

	// generation is bumped by every clear. A rebuild started under an older
	// generation must not repopulate the cache.
	generation atomic.Uint64
}

// NewRegistry creates a Registry. A nil cache disables caching; a zero ttl
// keeps definitions until the next clear.
func NewRegistry(store settings.Store, resolver *library.Resolver, c cache.Cache, ttl time.Duration) *Registry {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &Registry{
		store:    store,
		resolver: resolver,
		cache:    c,
		ttl:      ttl,
		logger:   xglog.WithComponent("discovery"),
	}
}

// LibrariesByExtension returns the assets registered for extension, in
// catalog order.
func (r *Registry) LibrariesByExtension(ctx context.Context, extension string) ([]Asset, error) {
	if extension != Extension {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, extension)
	}

	if raw, ok := r.cache.Get(ctx, extension); ok {
		var assets []Asset
		if err := json.Unmarshal(raw, &assets); err == nil {
			metrics.RecordCacheLookup(true)
			return assets, nil
		}
		r.logger.Warn().Str(xglog.FieldEvent, "discovery.cache_corrupt").Msg("discarding undecodable cache entry")
		r.cache.Delete(ctx, extension)
	}
	metrics.RecordCacheLookup(false)

	gen := r.generation.Load()
	rec, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	rec = rec.WithDefaults(r.resolver)

	assets := make([]Asset, 0, len(r.resolver.Catalog()))
	for _, def := range r.resolver.Catalog() {
		s := rec.Libraries[def.Name]
		assets = append(assets, Asset{
			Name:         def.Name,
			Title:        def.Title,
			Path:         s.Path,
			External:     s.IsExternal(),
			Version:      s.Version,
			Installation: s.Installation,
			Development:  s.Development,
			Minified:     !s.Development,
		})
	}

	if r.generation.Load() != gen {
		xglog.FromContext(ctx).Debug().
			Str(xglog.FieldEvent, "discovery.rebuild_stale").
			Str(xglog.FieldExtension, extension).
			Msg("settings changed during rebuild, not caching")
		return assets, nil
	}
	if raw, err := json.Marshal(assets); err == nil {
		r.cache.Set(ctx, extension, raw, r.ttl)
	}

	xglog.FromContext(ctx).Debug().
		Str(xglog.FieldEvent, "discovery.rebuilt").
		Str(xglog.FieldExtension, extension).
		Int("assets", len(assets)).
		Msg("library definitions rebuilt")

	return assets, nil
}

// ClearCachedDefinitions drops every cached definition so the next lookup
// reflects the stored settings.
func (r *Registry) ClearCachedDefinitions(ctx context.Context) {
	r.generation.Add(1)
	r.cache.Clear(ctx)
	metrics.RecordCacheClear()
	xglog.FromContext(ctx).Info().
		Str(xglog.FieldEvent, "discovery.cleared").
		Msg("library definition cache cleared")
}

// CacheStats reports the underlying cache counters.
func (r *Registry) CacheStats() cache.CacheStats {
	return r.cache.Stats()
}

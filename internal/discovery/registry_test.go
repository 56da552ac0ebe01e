// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/vuejs/internal/cache"
	"github.com/ManuGH/vuejs/internal/library"
	"github.com/ManuGH/vuejs/internal/settings"
)

type countingStore struct {
	settings.Store
	loads int
	err   error
}

func (s *countingStore) Load(ctx context.Context) (settings.Record, error) {
	s.loads++
	if s.err != nil {
		return settings.Record{}, s.err
	}
	return s.Store.Load(ctx)
}

func newRegistry(t *testing.T) (*Registry, *countingStore) {
	t.Helper()
	store := &countingStore{Store: settings.NewMemoryStore()}
	c := cache.NewMemoryCache(0)
	t.Cleanup(func() { _ = c.Close() })
	resolver := library.NewResolver(library.DefaultCatalog(), library.Templates{})
	return NewRegistry(store, resolver, c, 0), store
}

func TestLibrariesByExtension_Defaults(t *testing.T) {
	reg, _ := newRegistry(t)

	assets, err := reg.LibrariesByExtension(context.Background(), Extension)
	require.NoError(t, err)
	require.Len(t, assets, 2)

	assert.Equal(t, "vue", assets[0].Name)
	assert.Equal(t, "//unpkg.com/vue@3.2.37/dist/vue.runtime.global.prod.js", assets[0].Path)
	assert.True(t, assets[0].External)
	assert.True(t, assets[0].Minified)

	assert.Equal(t, "petitevue", assets[1].Name)
	assert.Equal(t, "0.4.1", assets[1].Version)
}

func TestLibrariesByExtension_CachesUntilCleared(t *testing.T) {
	ctx := context.Background()
	reg, store := newRegistry(t)

	_, err := reg.LibrariesByExtension(ctx, Extension)
	require.NoError(t, err)
	_, err = reg.LibrariesByExtension(ctx, Extension)
	require.NoError(t, err)
	assert.Equal(t, 1, store.loads, "second lookup is served from cache")

	require.NoError(t, store.Save(ctx, settings.Record{Libraries: map[string]library.LibrarySetting{
		"vue": {
			Installation: library.InstallationLocal,
			Development:  true,
			CDN:          library.CDNUnpkg,
			Version:      "3.3.4",
			Path:         "/libraries/vue/dist/vue.runtime.global.js",
		},
	}}))

	stale, err := reg.LibrariesByExtension(ctx, Extension)
	require.NoError(t, err)
	assert.Equal(t, "3.2.37", stale[0].Version, "cache is not invalidated implicitly")

	reg.ClearCachedDefinitions(ctx)

	fresh, err := reg.LibrariesByExtension(ctx, Extension)
	require.NoError(t, err)
	assert.Equal(t, 2, store.loads)
	assert.Equal(t, "/libraries/vue/dist/vue.runtime.global.js", fresh[0].Path)
	assert.False(t, fresh[0].External)
	assert.False(t, fresh[0].Minified)
	assert.EqualValues(t, 1, reg.CacheStats().Clears)
}

func TestLibrariesByExtension_UnknownExtension(t *testing.T) {
	reg, store := newRegistry(t)

	_, err := reg.LibrariesByExtension(context.Background(), "jquery")
	assert.ErrorIs(t, err, ErrUnknownExtension)
	assert.Zero(t, store.loads)
}

func TestLibrariesByExtension_StoreError(t *testing.T) {
	reg, store := newRegistry(t)
	store.err = errors.New("disk gone")

	_, err := reg.LibrariesByExtension(context.Background(), Extension)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestLibrariesByExtension_CorruptCacheEntry(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{Store: settings.NewMemoryStore()}
	c := cache.NewMemoryCache(0)
	c.Set(ctx, Extension, []byte("{not json"), 0)
	reg := NewRegistry(store, library.NewResolver(library.DefaultCatalog(), library.Templates{}), c, 0)

	assets, err := reg.LibrariesByExtension(ctx, Extension)
	require.NoError(t, err)
	assert.Len(t, assets, 2)
	assert.Equal(t, 1, store.loads)
}

func TestNewRegistry_NilCache(t *testing.T) {
	store := &countingStore{Store: settings.NewMemoryStore()}
	reg := NewRegistry(store, library.NewResolver(library.DefaultCatalog(), library.Templates{}), nil, 0)

	for i := 0; i < 3; i++ {
		_, err := reg.LibrariesByExtension(context.Background(), Extension)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, store.loads)
}

// saveDuringLoadStore simulates a Submit that lands between the registry's
// Load and its cache write.
type saveDuringLoadStore struct {
	settings.Store
	onLoad func(ctx context.Context)
}

func (s *saveDuringLoadStore) Load(ctx context.Context) (settings.Record, error) {
	rec, err := s.Store.Load(ctx)
	if s.onLoad != nil {
		hook := s.onLoad
		s.onLoad = nil
		hook(ctx)
	}
	return rec, err
}

func TestLibrariesByExtension_ClearDuringRebuildIsNotOverwritten(t *testing.T) {
	ctx := context.Background()
	store := &saveDuringLoadStore{Store: settings.NewMemoryStore()}
	c := cache.NewMemoryCache(0)
	t.Cleanup(func() { _ = c.Close() })
	resolver := library.NewResolver(library.DefaultCatalog(), library.Templates{})
	reg := NewRegistry(store, resolver, c, 0)

	const savedPath = "//cdn.jsdelivr.net/npm/vue@3.4.0/dist/vue.runtime.global.prod.js"
	store.onLoad = func(ctx context.Context) {
		require.NoError(t, store.Store.Save(ctx, settings.Record{Libraries: map[string]library.LibrarySetting{
			"vue": {
				Installation: library.InstallationCDN,
				CDN:          library.CDNJSDelivr,
				Version:      "3.4.0",
				Path:         savedPath,
			},
		}}))
		reg.ClearCachedDefinitions(ctx)
	}

	first, err := reg.LibrariesByExtension(ctx, Extension)
	require.NoError(t, err)
	assert.Equal(t, "//unpkg.com/vue@3.2.37/dist/vue.runtime.global.prod.js", first[0].Path,
		"the in-flight lookup still answers from what it loaded")
	assert.Zero(t, reg.CacheStats().CurrentSize, "stale rebuild must not be cached")

	next, err := reg.LibrariesByExtension(ctx, Extension)
	require.NoError(t, err)
	assert.Equal(t, savedPath, next[0].Path)
}

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package settings

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/vuejs/internal/library"
)

func sampleRecord() Record {
	return Record{Libraries: map[string]library.LibrarySetting{
		"vue": {
			Installation: library.InstallationCDN,
			CDN:          library.CDNJSDelivr,
			Version:      "3.2.37",
			Path:         "//cdn.jsdelivr.net/npm/vue@3.2.37/dist/vue.runtime.global.prod.js",
		},
		"petitevue": {
			Installation: library.InstallationLocal,
			Development:  true,
			CDN:          library.CDNUnpkg,
			Version:      "0.4.1",
			Path:         "/libraries/petite-vue/dist/petite-vue.js",
		},
	}}
}

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()

	sq, err := NewSqliteStore(ctx, filepath.Join(dir, "settings.sqlite"))
	require.NoError(t, err)

	bg, err := OpenBadgerStore("")
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rs := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "")

	stores := map[string]Store{
		BackendMemory: NewMemoryStore(),
		BackendFile:   NewFileStore(filepath.Join(dir, "nested", ConfigName+".yaml")),
		BackendSQLite: sq,
		BackendBadger: bg,
		BackendRedis:  rs,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			_ = s.Close()
		}
	})
	return stores
}

func TestStores_EmptyLoad(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			rec, err := s.Load(context.Background())
			require.NoError(t, err)
			assert.Empty(t, rec.Libraries)
			assert.Equal(t, name, s.Backend())
			assert.NoError(t, s.Ping(context.Background()))
		})
	}
}

func TestStores_SaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	want := sampleRecord().Clone()

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save(ctx, sampleRecord()))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Load() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStores_SaveReplacesWholeSet(t *testing.T) {
	ctx := context.Background()

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save(ctx, sampleRecord()))

			only := Record{Libraries: map[string]library.LibrarySetting{
				"vue": {Installation: library.InstallationLocal, CDN: library.CDNUnpkg, Version: "3.3.0", Path: "/libraries/vue/dist/vue.runtime.global.prod.js"},
			}}
			require.NoError(t, s.Save(ctx, only))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"vue"}, got.Names(), "libraries absent from the new set must be gone")
			assert.Equal(t, "3.3.0", got.Libraries["vue"].Version)
			assert.Equal(t, "vue", got.Libraries["vue"].Name)
		})
	}
}

func TestFileStore_RejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, writeFile(path, "libraries:\n  vue:\n    installation: cdn\n    colour: blue\n"))

	_, err := NewFileStore(path).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "colour")
}

func TestFileStore_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, writeFile(path, ""))

	rec, err := NewFileStore(path).Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rec.Libraries)
}

func TestMemoryStore_Closed(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Close())
	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, s.Save(context.Background(), Record{}), ErrClosed)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(ctx, Config{Backend: "", Path: DefaultPath(BackendFile, dir)})
	require.NoError(t, err)
	assert.Equal(t, BackendFile, s.Backend())

	s, err = Open(ctx, Config{Backend: "SQLite", Path: DefaultPath(BackendSQLite, dir)})
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, s.Backend())
	require.NoError(t, s.Close())

	_, err = Open(ctx, Config{Backend: "etcd"})
	assert.ErrorIs(t, err, ErrUnsupportedBackend)
}

func TestRecord_WithDefaults(t *testing.T) {
	resolver := library.NewResolver(library.DefaultCatalog(), library.Templates{})

	rec := Record{Libraries: map[string]library.LibrarySetting{
		"vue": {Installation: library.InstallationCDN, CDN: "bunnycdn", Version: "3.2.37"},
	}}.WithDefaults(resolver)

	require.Equal(t, []string{"petitevue", "vue"}, rec.Names())

	vue := rec.Libraries["vue"]
	assert.Equal(t, library.CDNUnpkg, vue.CDN, "unknown providers are normalised for display")
	assert.Equal(t, "//unpkg.com/vue@3.2.37/dist/vue.runtime.global.prod.js", vue.Path)

	pv := rec.Libraries["petitevue"]
	assert.Equal(t, "petitevue", pv.Name)
	assert.Equal(t, library.InstallationCDN, pv.Installation)
	assert.False(t, pv.Development)
	assert.Equal(t, "0.4.1", pv.Version)
	assert.Equal(t, "//unpkg.com/petite-vue@0.4.1/dist/petite-vue.iife.js", pv.Path)
}

func TestSqliteStore_VerifyIntegrity(t *testing.T) {
	s, err := NewSqliteStore(context.Background(), filepath.Join(t.TempDir(), "s.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	issues, err := s.VerifyIntegrity(context.Background())
	require.NoError(t, err)
	assert.Nil(t, issues)
}

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestToFileConfig_RoundTrip(t *testing.T) {
	dataDir := t.TempDir()
	t.Setenv("VUEJS_DATA_DIR", dataDir)

	want, err := NewLoader(filepath.Join("testdata", "valid-full.yaml"), "test").Load()
	require.NoError(t, err)

	raw, err := yaml.Marshal(want.ToFileConfig())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "dump.yaml")
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	got, err := NewLoader(path, "test").Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestToFileConfig_MasksSecrets(t *testing.T) {
	cfg := Defaults()
	cfg.Store.Redis = RedisConfig{Addr: "redis:6379", Password: "hunter2"}

	fc := cfg.ToFileConfig()

	assert.Equal(t, "***", fc.Store.Redis.Password)
	assert.Equal(t, "redis:6379", fc.Store.Redis.Addr)
	assert.Empty(t, fc.Discovery.Redis.Addr)
}

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package settings

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Backend names.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config selects and parameterises a Store.
type Config struct {
	Backend string
	// Path is the YAML file (file), database file (sqlite) or directory (badger).
	Path  string
	Redis RedisConfig
}

// DefaultPath returns the backend's default location under dataDir.
func DefaultPath(backend, dataDir string) string {
	switch backend {
	case BackendSQLite:
		return filepath.Join(dataDir, "settings.sqlite")
	case BackendBadger:
		return filepath.Join(dataDir, "settings.badger")
	default:
		return filepath.Join(dataDir, ConfigName+".yaml")
	}
}

// Open creates the Store selected by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case "", BackendFile:
		return NewFileStore(cfg.Path), nil
	case BackendSQLite:
		return NewSqliteStore(ctx, cfg.Path)
	case BackendBadger:
		return OpenBadgerStore(cfg.Path)
	case BackendRedis:
		return OpenRedisStore(ctx, cfg.Redis)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, cfg.Backend)
	}
}

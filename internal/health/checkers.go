// SPDX-License-Identifier: MIT

package health

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ManuGH/vuejs/internal/library"
	"github.com/ManuGH/vuejs/internal/settings"
)

// PingFunc reports whether a dependency is reachable.
type PingFunc func(ctx context.Context) error

// PingChecker wraps a PingFunc. A failing ping is unhealthy unless the
// dependency is optional, in which case it is degraded.
type PingChecker struct {
	name     string
	ping     PingFunc
	optional bool
}

// NewPingChecker creates a checker around ping.
func NewPingChecker(name string, ping PingFunc, optional bool) *PingChecker {
	return &PingChecker{name: name, ping: ping, optional: optional}
}

func (c *PingChecker) Name() string { return c.name }

func (c *PingChecker) Check(ctx context.Context) CheckResult {
	if err := c.ping(ctx); err != nil {
		status := StatusUnhealthy
		if c.optional {
			status = StatusDegraded
		}
		return CheckResult{Status: status, Error: err.Error()}
	}
	return CheckResult{Status: StatusHealthy}
}

// NewStoreChecker reports the settings store's reachability.
func NewStoreChecker(store settings.Store) *PingChecker {
	return &PingChecker{
		name: "settings_store",
		ping: func(ctx context.Context) error {
			if err := store.Ping(ctx); err != nil {
				return fmt.Errorf("%s: %w", store.Backend(), err)
			}
			return nil
		},
	}
}

// FileChecker checks if a file exists and is readable. A missing optional
// file is degraded rather than unhealthy.
type FileChecker struct {
	name     string
	path     string
	optional bool
}

// NewFileChecker creates a checker for file existence
func NewFileChecker(name, path string, optional bool) *FileChecker {
	return &FileChecker{name: name, path: path, optional: optional}
}

func (c *FileChecker) Name() string {
	return c.name
}

func (c *FileChecker) Check(_ context.Context) CheckResult {
	if c.path == "" {
		return CheckResult{Status: StatusHealthy, Message: "not configured (optional)"}
	}

	info, err := os.Stat(c.path)
	switch {
	case errors.Is(err, os.ErrNotExist) && c.optional:
		return CheckResult{Status: StatusDegraded, Message: "not created yet: " + c.path}
	case errors.Is(err, os.ErrNotExist):
		return CheckResult{Status: StatusUnhealthy, Error: "file not found", Message: c.path}
	case err != nil:
		return CheckResult{Status: StatusUnhealthy, Error: err.Error()}
	case info.IsDir():
		return CheckResult{Status: StatusUnhealthy, Error: "expected file, got directory"}
	case info.Size() == 0:
		return CheckResult{Status: StatusDegraded, Message: "file is empty"}
	}
	return CheckResult{Status: StatusHealthy, Message: "file exists and readable"}
}

// LocalLibrariesChecker verifies that every library configured for local
// installation has its runtime file under the libraries directory.
type LocalLibrariesChecker struct {
	store settings.Store
	// dir replaces the "/libraries" prefix of local paths.
	dir string
}

// NewLocalLibrariesChecker creates the checker. An empty dir disables it.
func NewLocalLibrariesChecker(store settings.Store, dir string) *LocalLibrariesChecker {
	return &LocalLibrariesChecker{store: store, dir: dir}
}

func (c *LocalLibrariesChecker) Name() string { return "local_libraries" }

func (c *LocalLibrariesChecker) Check(ctx context.Context) CheckResult {
	if c.dir == "" {
		return CheckResult{Status: StatusHealthy, Message: "not configured (optional)"}
	}
	rec, err := c.store.Load(ctx)
	if err != nil {
		return CheckResult{Status: StatusUnhealthy, Error: err.Error()}
	}

	var missing []string
	for _, name := range rec.Names() {
		s := rec.Libraries[name]
		if s.Installation != library.InstallationLocal {
			continue
		}
		if _, err := os.Stat(LocalFile(c.dir, s.Path)); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return CheckResult{
			Status:  StatusDegraded,
			Message: "runtime file missing for: " + strings.Join(missing, ", "),
		}
	}
	return CheckResult{Status: StatusHealthy}
}

// LocalFile maps a local asset path such as
// "/libraries/vue/dist/vue.runtime.global.js" onto dir.
func LocalFile(dir, assetPath string) string {
	rel := strings.TrimPrefix(assetPath, "/libraries/")
	return filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+rel)))
}

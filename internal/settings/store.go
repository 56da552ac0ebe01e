// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

// Package settings persists the "vuejs.settings" configuration record.
//
// The record has a single key, libraries, mapping a library name to its
// LibrarySetting. Every backend replaces the whole map in one atomic write;
// a reader never observes a mix of old and new libraries.
package settings

import (
	"context"
	"errors"
	"sort"

	"github.com/ManuGH/vuejs/internal/library"
)

// ConfigName is the name of the configuration record managed here.
const ConfigName = "vuejs.settings"

var (
	// ErrUnsupportedBackend is returned by Open for unknown backend names.
	ErrUnsupportedBackend = errors.New("unsupported settings backend")
	// ErrClosed is returned by stores used after Close.
	ErrClosed = errors.New("settings store closed")
)

// Record is the persisted configuration.
type Record struct {
	Libraries map[string]library.LibrarySetting `yaml:"libraries" json:"libraries"`
}

// Store reads and writes the configuration record.
type Store interface {
	// Load returns the stored record. An empty store yields an empty record.
	Load(ctx context.Context) (Record, error)
	// Save replaces the stored record atomically.
	Save(ctx context.Context, rec Record) error
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
	// Backend names the storage implementation.
	Backend() string
	Close() error
}

// Clone returns a deep copy of r with library names filled in from the map keys.
func (r Record) Clone() Record {
	out := Record{Libraries: make(map[string]library.LibrarySetting, len(r.Libraries))}
	for name, s := range r.Libraries {
		s.Name = name
		out.Libraries[name] = s
	}
	return out
}

// Names returns the stored library names, sorted.
func (r Record) Names() []string {
	names := make([]string, 0, len(r.Libraries))
	for name := range r.Libraries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FromOutput builds the record persisted for a resolved submission.
func FromOutput(out library.LibrarySettingsOutput) Record {
	return Record{Libraries: out.Libraries}.Clone()
}

// WithDefaults fills every catalog library missing from r with its defaults,
// normalises unknown CDN providers and re-derives all paths.
func (r Record) WithDefaults(resolver *library.Resolver) Record {
	out := r.Clone()
	for _, def := range resolver.Catalog() {
		s, ok := out.Libraries[def.Name]
		if !ok {
			s = def.DefaultSetting()
		}
		if _, known := library.ParseInstallation(string(s.Installation)); !known {
			s.Installation = library.InstallationCDN
		}
		s.CDN, _ = library.ParseCDNProvider(string(s.CDN))
		if s.Version == "" {
			s.Version = def.DefaultVersion
		}
		s.Path = library.ResolvePath(s, def, resolver.Templates())
		out.Libraries[def.Name] = s
	}
	return out
}

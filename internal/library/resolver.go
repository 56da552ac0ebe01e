// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package library

import (
	"fmt"
	"sort"
	"strings"
)

// Template placeholders.
const (
	PlaceholderPackage  = "{package}"
	PlaceholderVersion  = "{version}"
	PlaceholderFilename = "{filename}"
)

// Templates holds the path templates for local and CDN installations.
type Templates struct {
	Local    string `yaml:"local" json:"local"`
	Unpkg    string `yaml:"unpkg" json:"unpkg"`
	CDNJS    string `yaml:"cdnjs" json:"cdnjs"`
	JSDelivr string `yaml:"jsdelivr" json:"jsdelivr"`
}

// DefaultTemplates returns the upstream layouts of the supported hosts.
func DefaultTemplates() Templates {
	return Templates{
		Local:    "/libraries/{package}/dist/{filename}",
		Unpkg:    "//unpkg.com/{package}@{version}/dist/{filename}",
		CDNJS:    "//cdnjs.cloudflare.com/ajax/libs/{package}/{version}/{filename}",
		JSDelivr: "//cdn.jsdelivr.net/npm/{package}@{version}/dist/{filename}",
	}
}

// WithDefaults fills empty templates from DefaultTemplates.
func (t Templates) WithDefaults() Templates {
	d := DefaultTemplates()
	if t.Local == "" {
		t.Local = d.Local
	}
	if t.Unpkg == "" {
		t.Unpkg = d.Unpkg
	}
	if t.CDNJS == "" {
		t.CDNJS = d.CDNJS
	}
	if t.JSDelivr == "" {
		t.JSDelivr = d.JSDelivr
	}
	return t
}

// Validate rejects templates that cannot produce a usable path.
func (t Templates) Validate() error {
	checks := []struct {
		name, tpl string
		needs     []string
	}{
		{"local", t.Local, []string{PlaceholderFilename}},
		{"unpkg", t.Unpkg, []string{PlaceholderFilename, PlaceholderVersion}},
		{"cdnjs", t.CDNJS, []string{PlaceholderFilename, PlaceholderVersion}},
		{"jsdelivr", t.JSDelivr, []string{PlaceholderFilename, PlaceholderVersion}},
	}
	for _, c := range checks {
		if c.tpl == "" {
			return fmt.Errorf("template %s is empty", c.name)
		}
		for _, p := range c.needs {
			if !strings.Contains(c.tpl, p) {
				return fmt.Errorf("template %s must contain %s", c.name, p)
			}
		}
	}
	return nil
}

// ForProvider returns the template of p, falling back to unpkg.
func (t Templates) ForProvider(p CDNProvider) string {
	switch p {
	case CDNCdnjs:
		return t.CDNJS
	case CDNJSDelivr:
		return t.JSDelivr
	default:
		return t.Unpkg
	}
}

// ResolvePath derives the asset path for setting. It is a pure function of
// its inputs.
func ResolvePath(setting LibrarySetting, def Definition, tpl Templates) string {
	filename := def.RuntimeFilename(setting.Development)
	if setting.Installation != InstallationCDN {
		return expand(tpl.Local, def.Package, setting.Version, filename)
	}
	provider, _ := ParseCDNProvider(string(setting.CDN))
	return expand(tpl.ForProvider(provider), def.Package, setting.Version, filename)
}

func expand(tpl, pkg, version, filename string) string {
	return strings.NewReplacer(
		PlaceholderPackage, pkg,
		PlaceholderVersion, version,
		PlaceholderFilename, filename,
	).Replace(tpl)
}

// LibraryInput is the raw per-library submission.
type LibraryInput struct {
	Installation string `json:"installation"`
	Development  bool   `json:"development"`
	CDN          string `json:"cdn"`
	Version      string `json:"version"`
}

// LibrarySettingsInput is one submission covering every library.
type LibrarySettingsInput struct {
	Libraries map[string]LibraryInput `json:"libraries"`
}

// LibrarySettingsOutput is a validated submission with derived paths.
type LibrarySettingsOutput struct {
	Libraries map[string]LibrarySetting `json:"libraries"`
}

// Resolver validates submissions and derives asset paths.
type Resolver struct {
	catalog   Catalog
	templates Templates
}

// NewResolver creates a resolver over catalog. Empty templates fall back to
// DefaultTemplates.
func NewResolver(catalog Catalog, templates Templates) *Resolver {
	return &Resolver{
		catalog:   catalog,
		templates: templates.WithDefaults(),
	}
}

// Catalog returns the definitions the resolver knows about.
func (r *Resolver) Catalog() Catalog { return r.catalog }

// Templates returns the effective path templates.
func (r *Resolver) Templates() Templates { return r.templates }

// Path derives the asset path of setting.
func (r *Resolver) Path(setting LibrarySetting) (string, error) {
	def, ok := r.catalog.Lookup(setting.Name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownLibrary, setting.Name)
	}
	return ResolvePath(setting, def, r.templates), nil
}

// Resolve validates every catalog library in input and derives its path.
// Either all libraries are returned or none: any ValidationError fails the
// whole submission.
func (r *Resolver) Resolve(input LibrarySettingsInput) (LibrarySettingsOutput, ValidationErrors) {
	var errs ValidationErrors

	unknown := make([]string, 0)
	for name := range input.Libraries {
		if _, ok := r.catalog.Lookup(name); !ok {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		errs = append(errs, &ValidationError{Library: name, Field: "installation", Message: MsgUnknownLibrary})
	}

	out := LibrarySettingsOutput{Libraries: make(map[string]LibrarySetting, len(r.catalog))}
	for _, def := range r.catalog {
		in, present := input.Libraries[def.Name]
		if !present {
			errs = append(errs, &ValidationError{Library: def.Name, Field: "installation", Message: MsgIllegalChoice})
			continue
		}

		installation, ok := ParseInstallation(in.Installation)
		if !ok {
			errs = append(errs, &ValidationError{Library: def.Name, Field: "installation", Message: MsgIllegalChoice})
		}

		version, err := ValidateVersion(in.Version)
		if err != nil {
			errs = append(errs, &ValidationError{Library: def.Name, Field: "version", Message: MsgVersionFormat})
		}

		provider, _ := ParseCDNProvider(in.CDN)
		setting := LibrarySetting{
			Name:         def.Name,
			Installation: installation,
			Development:  in.Development,
			CDN:          provider,
			Version:      version,
		}
		setting.Path = ResolvePath(setting, def, r.templates)
		out.Libraries[def.Name] = setting
	}

	if len(errs) > 0 {
		return LibrarySettingsOutput{}, errs
	}
	return out, nil
}

// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package library

import "strings"

// Installation selects where a library is loaded from.
type Installation string

const (
	InstallationLocal Installation = "local"
	InstallationCDN   Installation = "cdn"
)

// Installations lists the accepted installation types in display order.
var Installations = []Installation{InstallationLocal, InstallationCDN}

// ParseInstallation maps a raw value onto a known Installation.
func ParseInstallation(raw string) (Installation, bool) {
	switch Installation(strings.TrimSpace(raw)) {
	case InstallationLocal:
		return InstallationLocal, true
	case InstallationCDN:
		return InstallationCDN, true
	default:
		return "", false
	}
}

// CDNProvider names an external host serving library files by version.
type CDNProvider string

const (
	CDNUnpkg    CDNProvider = "unpkg"
	CDNCdnjs    CDNProvider = "cdnjs"
	CDNJSDelivr CDNProvider = "jsdelivr"

	// DefaultCDN is used whenever the stored or submitted provider is unknown.
	DefaultCDN = CDNUnpkg
)

// CDNProviders lists the accepted providers in display order.
var CDNProviders = []CDNProvider{CDNUnpkg, CDNCdnjs, CDNJSDelivr}

// ParseCDNProvider maps a raw value onto a known provider. Unknown or empty
// values resolve to DefaultCDN with ok == false so callers can log the fallback.
func ParseCDNProvider(raw string) (provider CDNProvider, ok bool) {
	switch CDNProvider(strings.TrimSpace(raw)) {
	case CDNUnpkg:
		return CDNUnpkg, true
	case CDNCdnjs:
		return CDNCdnjs, true
	case CDNJSDelivr:
		return CDNJSDelivr, true
	default:
		return DefaultCDN, false
	}
}

// Label returns the provider's display name.
func (p CDNProvider) Label() string {
	switch p {
	case CDNUnpkg:
		return "UNPKG"
	case CDNCdnjs:
		return "cdnjs"
	case CDNJSDelivr:
		return "jsDelivr"
	default:
		return string(p)
	}
}

// LibrarySetting is the persisted configuration of one library.
// Path is derived by ResolvePath and never authored directly.
type LibrarySetting struct {
	Name         string       `yaml:"-" json:"-"`
	Installation Installation `yaml:"installation" json:"installation"`
	Development  bool         `yaml:"development" json:"development"`
	CDN          CDNProvider  `yaml:"cdn" json:"cdn"`
	Version      string       `yaml:"version" json:"version"`
	Path         string       `yaml:"path" json:"path"`
}

// IsExternal reports whether the setting loads the library from a CDN.
func (s LibrarySetting) IsExternal() bool {
	return s.Installation == InstallationCDN
}

// Definition describes one supported library.
type Definition struct {
	// Name is the settings key, e.g. "vue".
	Name string
	// Title is the fieldset title shown to administrators.
	Title string
	// Package is the npm package name used in local and CDN paths.
	Package string
	// DevFilename and ProdFilename are the runtime builds shipped in dist/.
	DevFilename  string
	ProdFilename string
	// DefaultVersion is offered when nothing has been stored yet.
	DefaultVersion string
}

// RuntimeFilename picks the distributed file for the requested build.
func (d Definition) RuntimeFilename(development bool) string {
	if development {
		return d.DevFilename
	}
	return d.ProdFilename
}

// DefaultSetting returns the setting used when no stored configuration exists.
func (d Definition) DefaultSetting() LibrarySetting {
	return LibrarySetting{
		Name:         d.Name,
		Installation: InstallationCDN,
		Development:  false,
		CDN:          DefaultCDN,
		Version:      d.DefaultVersion,
	}
}

// Catalog is an ordered set of library definitions.
type Catalog []Definition

// Lookup returns the definition registered under name.
func (c Catalog) Lookup(name string) (Definition, bool) {
	for _, d := range c {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}

// Names returns the library names in catalog order.
func (c Catalog) Names() []string {
	out := make([]string, 0, len(c))
	for _, d := range c {
		out = append(out, d.Name)
	}
	return out
}

// DefaultCatalog returns the runtimes this extension ships settings for.
func DefaultCatalog() Catalog {
	return Catalog{
		{
			Name:           "vue",
			Title:          "VueJS Runtime",
			Package:        "vue",
			DevFilename:    "vue.runtime.global.js",
			ProdFilename:   "vue.runtime.global.prod.js",
			DefaultVersion: "3.2.37",
		},
		{
			Name:           "petitevue",
			Title:          "Petite Vue Runtime",
			Package:        "petite-vue",
			DevFilename:    "petite-vue.js",
			ProdFilename:   "petite-vue.iife.js",
			DefaultVersion: "0.4.1",
		},
	}
}

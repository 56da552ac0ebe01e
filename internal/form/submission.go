// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package form

import (
	"net/url"

	"github.com/ManuGH/vuejs/internal/library"
)

// ParseSubmission reads the nested element values of every catalog library.
// A library is included when at least one of its elements was posted, so a
// truncated submission surfaces as a validation error rather than silently
// keeping stale values. An unchecked checkbox posts nothing and reads false.
func ParseSubmission(values url.Values, catalog library.Catalog) library.LibrarySettingsInput {
	input := library.LibrarySettingsInput{Libraries: make(map[string]library.LibraryInput, len(catalog))}

	for _, def := range catalog {
		present := false
		get := func(key string) string {
			name := ElementName(def.Name, key)
			if _, ok := values[name]; ok {
				present = true
			}
			return values.Get(name)
		}

		in := library.LibraryInput{
			Installation: get(KeyInstallation),
			CDN:          get(KeyCDN),
			Version:      get(KeyVersion),
			Development:  isChecked(get(KeyDevelopment)),
		}
		if present {
			input.Libraries[def.Name] = in
		}
	}
	return input
}

func isChecked(v string) bool {
	switch v {
	case "", "0", "false", "off":
		return false
	default:
		return true
	}
}

// InputFromSetting converts a stored setting back into form values.
func InputFromSetting(s library.LibrarySetting) library.LibraryInput {
	return library.LibraryInput{
		Installation: string(s.Installation),
		Development:  s.Development,
		CDN:          string(s.CDN),
		Version:      s.Version,
	}
}

// InputFromSettings converts stored settings back into form values.
func InputFromSettings(libs map[string]library.LibrarySetting) library.LibrarySettingsInput {
	input := library.LibrarySettingsInput{Libraries: make(map[string]library.LibraryInput, len(libs))}
	for name, s := range libs {
		input.Libraries[name] = InputFromSetting(s)
	}
	return input
}

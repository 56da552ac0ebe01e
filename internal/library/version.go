// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package library

import "regexp"

// versionPattern accepts X.Y.Z with an optional single-digit alpha/beta/rc
// suffix, optionally prefixed with "v".
var versionPattern = regexp.MustCompile(`^(?P<prefix>v)?(?P<version>\d+\.\d+\.\d+(?:-(?:alpha|beta|rc)\.\d)?)$`)

// ValidateVersion checks raw against the accepted grammar and returns the
// version without its "v" prefix.
func ValidateVersion(raw string) (string, error) {
	m := versionPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", &ValidationError{Field: "version", Message: MsgVersionFormat}
	}
	return m[versionPattern.SubexpIndex("version")], nil
}

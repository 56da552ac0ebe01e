// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package library

import "github.com/Masterminds/semver/v3"

// VersionChange classifies the difference between a stored and a submitted version.
type VersionChange string

const (
	VersionUnchanged VersionChange = "unchanged"
	VersionUpgrade   VersionChange = "upgrade"
	VersionDowngrade VersionChange = "downgrade"
	VersionInitial   VersionChange = "initial"
	VersionUnknown   VersionChange = "unknown"
)

// CompareVersions classifies the move from old to new. An empty old version
// means nothing was stored before.
func CompareVersions(old, new string) VersionChange {
	if old == "" {
		return VersionInitial
	}
	if old == new {
		return VersionUnchanged
	}
	ov, err := semver.NewVersion(old)
	if err != nil {
		return VersionUnknown
	}
	nv, err := semver.NewVersion(new)
	if err != nil {
		return VersionUnknown
	}
	switch nv.Compare(ov) {
	case 1:
		return VersionUpgrade
	case -1:
		return VersionDowngrade
	default:
		return VersionUnchanged
	}
}

package common

import (
	"maps"
	"slices"
)

// Maps a project slug to the version ids known from the last run.
type KnownVersions map[string][]string

// Creates a deep copy of the known versions.
func (k KnownVersions) Clone() KnownVersions {
	clone := make(KnownVersions, len(k))
	for project, versions := range k {
		clone[project] = slices.Clone(versions)
	}
	return clone
}

// Gets the project slugs in sorted order.
func (k KnownVersions) Projects() []string {
	return slices.Sorted(maps.Keys(k))
}

// Gets the total number of known versions.
func (k KnownVersions) VersionCount() int {
	count := 0
	for _, versions := range k {
		count += len(versions)
	}
	return count
}

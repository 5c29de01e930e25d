package embeds

import (
	"regexp"
	"slices"

	"github.com/roemer/gover"
	"github.com/samber/lo"
)

// Matches release versions like 1.20 or 1.20.1.
var releaseVersionRegex = regexp.MustCompile(`^(?P<d1>\d+)\.(?P<d2>\d+)(?:\.(?P<d3>\d+))?$`)

// Sorts release versions from newest to oldest. Other versions (like snapshots) keep
// their relative order and are placed after the releases.
func SortGameVersions(gameVersions []string) []string {
	type parsedVersion struct {
		raw     string
		version *gover.Version
	}
	parsed := lo.Map(gameVersions, func(raw string, _ int) *parsedVersion {
		version, err := gover.ParseVersionFromRegex(raw, releaseVersionRegex)
		if err != nil {
			return &parsedVersion{raw: raw}
		}
		return &parsedVersion{raw: raw, version: version}
	})
	slices.SortStableFunc(parsed, func(a, b *parsedVersion) int {
		switch {
		case a.version == nil && b.version == nil:
			return 0
		case a.version == nil:
			return 1
		case b.version == nil:
			return -1
		case b.version.LessThan(a.version):
			return -1
		case a.version.LessThan(b.version):
			return 1
		}
		return 0
	})
	return lo.Map(parsed, func(p *parsedVersion, _ int) string { return p.raw })
}

package parser

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rijksuitgaven/roadmap/internal/roadmap"
)

// splitReleaseID separates the letter prefix of a release id from its
// numeric part: "V10.2" → ("V", "10.2").
func splitReleaseID(id string) (prefix, number string) {
	i := strings.IndexFunc(id, func(r rune) bool { return r >= '0' && r <= '9' })
	if i < 0 {
		return id, ""
	}
	return id[:i], id[i:]
}

// CompareReleaseIDs orders release ids by prefix, then numerically by their
// dotted version, so V2.1 sorts before V10.0. Ids whose number does not parse
// as a version sort after those that do.
func CompareReleaseIDs(a, b string) int {
	pa, na := splitReleaseID(a)
	pb, nb := splitReleaseID(b)
	if c := cmp.Compare(pa, pb); c != 0 {
		return c
	}

	va, errA := semver.NewVersion(na)
	vb, errB := semver.NewVersion(nb)
	switch {
	case errA == nil && errB == nil:
		if c := va.Compare(vb); c != 0 {
			return c
		}
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return cmp.Compare(a, b)
}

func sortVersions(vs []*roadmap.Version) {
	slices.SortStableFunc(vs, func(a, b *roadmap.Version) int {
		return CompareReleaseIDs(a.ID, b.ID)
	})
}

package parser

import (
	"strings"

	"github.com/rijksuitgaven/roadmap/internal/roadmap"
)

// Strategy selects how a track's flat versions are nested.
type Strategy int

const (
	// InitiativeGrouped nests every version under a synthetic parent per
	// initiative family (V2.0, V2.1 → V2).
	InitiativeGrouped Strategy = iota

	// ExplicitParent treats X.0 as the parent of X.1, X.2, ...
	ExplicitParent
)

func (s Strategy) String() string {
	switch s {
	case InitiativeGrouped:
		return "initiative-grouped"
	case ExplicitParent:
		return "explicit-parent"
	default:
		return "unknown"
	}
}

// StrategyFor returns the nesting strategy of a track.
func StrategyFor(key roadmap.TrackKey) Strategy {
	if key == roadmap.TrackEndUser {
		return InitiativeGrouped
	}
	return ExplicitParent
}

// BuildHierarchy nests a track's flat versions and returns its sorted
// top-level releases.
func BuildHierarchy(key roadmap.TrackKey, flat []*roadmap.Version, initiatives map[string]Initiative) []*roadmap.Version {
	var releases []*roadmap.Version
	switch StrategyFor(key) {
	case InitiativeGrouped:
		releases = groupByInitiative(flat, initiatives)
	default:
		releases = nestExplicitParents(flat)
	}
	sortVersions(releases)
	for _, r := range releases {
		sortVersions(r.Children)
	}
	return releases
}

// family returns the id up to the first dot ("A1.2" → "A1") and the rest
// ("2"). rest is empty for dotless ids.
func family(id string) (fam, rest string) {
	fam, rest, _ = strings.Cut(id, ".")
	return fam, rest
}

// isRootID reports whether the dotted remainder is all zeros (A1.0, A1.0.0).
func isRootID(rest string) bool {
	if rest == "" {
		return false
	}
	for _, part := range strings.Split(rest, ".") {
		if strings.Trim(part, "0") != "" {
			return false
		}
	}
	return true
}

func groupByInitiative(flat []*roadmap.Version, initiatives map[string]Initiative) []*roadmap.Version {
	releases := []*roadmap.Version{}
	parents := make(map[string]*roadmap.Version)
	explicit := make(map[string]bool)

	// A dotless version is the family's own record; it becomes the parent.
	for _, v := range flat {
		fam, rest := family(v.ID)
		if rest == "" && parents[fam] == nil {
			applyInitiative(v, initiatives[fam])
			parents[fam] = v
			explicit[fam] = true
			releases = append(releases, v)
		}
	}

	for _, v := range flat {
		fam, rest := family(v.ID)
		if rest == "" {
			continue
		}
		p := parents[fam]
		if p == nil {
			p = roadmap.NewVersion(fam, v.Name, roadmap.StatusPlanned)
			applyInitiative(p, initiatives[fam])
			parents[fam] = p
			releases = append(releases, p)
		}
		p.Children = append(p.Children, v)
	}

	for fam, p := range parents {
		if !explicit[fam] {
			p.Status = deriveParentStatus(p.Children)
		}
	}
	return releases
}

// applyInitiative copies an initiative's name and promise onto its parent.
// Without a core promise the use case stands in, marked as inferred.
func applyInitiative(p *roadmap.Version, in Initiative) {
	if in.Name != "" {
		p.Name = in.Name
	}
	switch {
	case in.Objective != "":
		p.Objective = in.Objective
		p.ObjectiveClear = true
	case in.UseCase != "":
		p.Objective = in.UseCase
		p.ObjectiveClear = false
	default:
		p.ObjectiveClear = p.Objective != ""
	}
}

// deriveParentStatus rolls child statuses up into an initiative status.
// Partially live families count as building.
func deriveParentStatus(children []*roadmap.Version) roadmap.VersionStatus {
	live, active := 0, false
	for _, c := range children {
		switch c.Status {
		case roadmap.StatusLive:
			live++
		case roadmap.StatusBuilding, roadmap.StatusInProgress:
			active = true
		}
	}
	switch {
	case len(children) > 0 && live == len(children):
		return roadmap.StatusLive
	case active, live > 0:
		return roadmap.StatusBuilding
	default:
		return roadmap.StatusPlanned
	}
}

func nestExplicitParents(flat []*roadmap.Version) []*roadmap.Version {
	releases := []*roadmap.Version{}
	parents := make(map[string]*roadmap.Version)

	for _, v := range flat {
		fam, rest := family(v.ID)
		switch {
		case rest == "":
			releases = append(releases, v)
		case isRootID(rest):
			releases = append(releases, v)
			if parents[fam] == nil {
				parents[fam] = v
			}
		}
	}

	for _, v := range flat {
		fam, rest := family(v.ID)
		if rest == "" || isRootID(rest) {
			continue
		}
		p := parents[fam]
		if p == nil {
			p = roadmap.NewVersion(fam+".0", v.Name, v.Status)
			parents[fam] = p
			releases = append(releases, p)
		}
		p.Children = append(p.Children, v)
	}
	return releases
}

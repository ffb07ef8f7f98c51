package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rijksuitgaven/roadmap/internal/roadmap"
)

const (
	// statusWindow is how many lines below a version heading are searched for
	// its status line.
	statusWindow = 5

	// maxBulletTitle is the length ceiling separating bullet features from
	// prose bullets.
	maxBulletTitle = 100
)

var (
	versionHeaderRe = regexp.MustCompile(`^###\s+([VAMD]\d+(?:\.\d+)*)\s+[-–—]\s+(.+?)(?:\s*\([^)]*\))?\s*$`)
	statusLineRe    = regexp.MustCompile(`\*\*Status:?\*\*:?\s*(.+)`)
	objectiveLineRe = regexp.MustCompile(`(?i)\*\*(?:Objective|Goal):?\*\*:?\s*(.+?)\s*$`)
	separatorRowRe  = regexp.MustCompile(`^\|[\s\-:|]+\|$`)
	bulletRe        = regexp.MustCompile(`^-\s+(?:(` + trackingCode + `):?\s+)?(.+?)(?:\s*\([^)]*\))?\s*$`)
)

// scanState is the line scanner's state. It is passed to and returned from
// step so every transition is explicit.
type scanState struct {
	track        roadmap.TrackKey
	version      string // Current version id; empty before the first header
	inTable      bool
	headerPassed bool
}

// FlatTrack is one track's versions in document order, before nesting.
type FlatTrack struct {
	Versions []*roadmap.Version
	byID     map[string]*roadmap.Version
}

func newFlatTrack() *FlatTrack {
	return &FlatTrack{byID: make(map[string]*roadmap.Version)}
}

// Get returns the version with the given id.
func (ft *FlatTrack) Get(id string) *roadmap.Version {
	return ft.byID[id]
}

// ParseVersions runs the line scanner over the versioning document and
// returns the flat version list of every track.
func ParseVersions(lines []string) map[roadmap.TrackKey]*FlatTrack {
	out := make(map[roadmap.TrackKey]*FlatTrack, len(roadmap.TrackKeys))
	for _, key := range roadmap.TrackKeys {
		out[key] = newFlatTrack()
	}

	st := scanState{}
	for i := range lines {
		st = step(st, lines, i, out)
	}
	return out
}

func step(st scanState, lines []string, i int, out map[roadmap.TrackKey]*FlatTrack) scanState {
	line := lines[i]

	if key, boundary := Classify(st.track, line); boundary {
		return scanState{track: key}
	}
	if st.track == roadmap.TrackNone {
		return st
	}
	ft := out[st.track]

	if m := versionHeaderRe.FindStringSubmatch(line); m != nil {
		id := m[1]
		if ft.Get(id) == nil {
			v := newVersionFromHeader(id, strings.TrimSpace(m[2]), lines[i+1:])
			ft.Versions = append(ft.Versions, v)
			ft.byID[id] = v
		}
		return scanState{track: st.track, version: id}
	}
	if st.version == "" {
		return st
	}
	return featureStep(st, line, ft.Get(st.version))
}

// newVersionFromHeader builds a version and reads its status, timeline and
// objective from the lines just below the header.
func newVersionFromHeader(id, name string, below []string) *roadmap.Version {
	v := roadmap.NewVersion(id, name, roadmap.StatusPlanned)
	v.ObjectiveClear = true

	statusSeen := false
	for _, next := range below[:min(statusWindow, len(below))] {
		if strings.HasPrefix(next, "#") {
			break
		}
		if m := statusLineRe.FindStringSubmatch(next); m != nil && !statusSeen {
			statusSeen = true
			v.Status = VersionStatusOf(m[1])
			v.Timeline = timelineOf(m[1])
			continue
		}
		if m := objectiveLineRe.FindStringSubmatch(next); m != nil && v.Objective == "" {
			v.Objective = m[1]
		}
	}
	return v
}

// featureStep handles a line inside a version section: table structure, table
// rows and bullet features.
func featureStep(st scanState, raw string, v *roadmap.Version) scanState {
	line := strings.TrimSpace(raw)
	isPipe := strings.HasPrefix(line, "|")

	switch {
	case isPipe && isFeatureTableHeader(line):
		st.inTable, st.headerPassed = true, false
		return st
	case st.inTable && separatorRowRe.MatchString(line):
		st.headerPassed = true
		return st
	case st.inTable && isPipe:
		if st.headerPassed {
			if f, ok := parseTableRow(line, v.ID); ok {
				v.AddFeature(f)
			}
		}
		return st
	case st.inTable && line == "":
		return st
	case st.inTable:
		st.inTable, st.headerPassed = false, false
	}

	if f, ok := parseBullet(strings.TrimRight(raw, " \t"), v); ok {
		v.AddFeature(f)
	}
	return st
}

func splitRow(line string) []string {
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "|")
	line = strings.TrimSuffix(line, "|")
	cells := strings.Split(line, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

func isFeatureTableHeader(line string) bool {
	for _, cell := range splitRow(line) {
		c := strings.ToLower(stripEmphasis(cell))
		if c == "feature" || c == "dataset" {
			return true
		}
	}
	return false
}

func parseTableRow(line, versionID string) (*roadmap.Feature, bool) {
	cells := splitRow(line)
	if len(cells) < 2 {
		return nil, false
	}
	id, title := splitTrackingCode(stripEmphasis(cells[0]))
	if title == "" {
		return nil, false
	}

	statusCell := cells[len(cells)-1]
	for _, c := range cells[1:] {
		if hasStatusGlyph(c) {
			statusCell = c
			break
		}
	}

	return &roadmap.Feature{
		ID:      id,
		Title:   title,
		Version: versionID,
		Status:  FeatureStatusOf(statusCell),
		Source:  roadmap.SourceVersioning,
	}, true
}

func parseBullet(line string, v *roadmap.Version) (*roadmap.Feature, bool) {
	m := bulletRe.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}
	raw := m[2]
	if strings.Contains(raw, "**") {
		return nil, false
	}

	var id *string
	if m[1] != "" {
		code := m[1]
		id = &code
	}
	title := collapseSpaces(stripEmphasis(raw))
	if title == "" || utf8.RuneCountInString(title) >= maxBulletTitle {
		return nil, false
	}

	return &roadmap.Feature{
		ID:      id,
		Title:   title,
		Version: v.ID,
		Status:  inferredFeatureStatus(v.Status),
		Source:  roadmap.SourceVersioning,
	}, true
}

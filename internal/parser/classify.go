package parser

import "github.com/rijksuitgaven/roadmap/internal/roadmap"

// trackHeadingRules recognise level-2 headings that open or close a track.
// Order matters: the legacy V1 heading must be seen before the generic
// end-user rule.
var trackHeadingRules = []rule[roadmap.TrackKey]{
	{"legacy end-user", re(`^##\s+V1\s+[-–—]\s`), roadmap.TrackNone},
	{"end-user", re(`^##\s+V(?:[2-9]|[1-9]\d+)\s+[-–—]\s`), roadmap.TrackEndUser},
	{"admin", re(`(?i)^##\s+Admin Track`), roadmap.TrackAdmin},
	{"launch", re(`(?i)^##\s+(?:Marketing|Launch) Track`), roadmap.TrackLaunch},
	{"data", re(`(?i)^##\s+Data Track`), roadmap.TrackData},
	{"administrative", re(`(?i)^##\s+(?:Product Tiers|Version Dependencies|Current Roadmap|Quick Reference|Versioning Scheme|Major Versions|Overview)`), roadmap.TrackNone},
}

// trackHeading reports whether line is a track boundary and which track it
// opens (TrackNone for headings that close tracking).
func trackHeading(line string) (roadmap.TrackKey, bool) {
	return firstMatch(trackHeadingRules, line)
}

// Classify returns the track line belongs to, given the track of the
// preceding line. boundary is true when line itself opens or closes a track.
func Classify(current roadmap.TrackKey, line string) (key roadmap.TrackKey, boundary bool) {
	if k, ok := trackHeading(line); ok {
		return k, true
	}
	return current, false
}

// ClassifyLines tags every line with its track.
func ClassifyLines(lines []string) []roadmap.TrackKey {
	out := make([]roadmap.TrackKey, len(lines))
	current := roadmap.TrackNone
	for i, line := range lines {
		current, _ = Classify(current, line)
		out[i] = current
	}
	return out
}

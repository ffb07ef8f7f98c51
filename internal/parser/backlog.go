package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rijksuitgaven/roadmap/internal/roadmap"
)

const (
	// completionWindow is how much of a section's head is checked for a
	// completion marker.
	completionWindow = 300

	// maxKeywords and minKeywordLen define the dedup keyword set.
	maxKeywords   = 3
	minKeywordLen = 4

	// unslotted is the version label of backlog items with no target release.
	unslotted = "Backlog"

	// preLaunchVersion receives items hinted as pre-launch work.
	preLaunchVersion = "M1.0"
)

var (
	completedTitleRe  = regexp.MustCompile(`(?i)\(COMPLETED\)`)
	completedMarkerRe = regexp.MustCompile(`(?i)✅\s*(?:COMPLETED?|DONE)\b`)
	priorityHintRe    = regexp.MustCompile(`(?i)\*\*Priority:?\*\*:?\s*[^(\n]*?\(([^)]+)\)`)
	versionHintRe     = regexp.MustCompile(`(?i)^([VAMD])(\d+(?:\.\d+)*)\b`)
	versionNoteRe     = regexp.MustCompile(`(?i)\(\s*[VAMD]\d+(?:\.\d+)*\s*\)`)
	preLaunchNoteRe   = regexp.MustCompile(`(?i)\(\s*Pre-?Launch\s*\)`)
)

// route is where a backlog section wants to go.
type route struct {
	track   roadmap.TrackKey
	version string // Empty when no release was named
}

var trackLetters = map[string]roadmap.TrackKey{
	"V": roadmap.TrackEndUser,
	"A": roadmap.TrackAdmin,
	"M": roadmap.TrackLaunch,
	"D": roadmap.TrackData,
}

// hintRules classify a priority hint, first match wins. Hints matching none
// of them route to the end-user track without a release.
var hintRules = []func(hint string) (route, bool){
	func(hint string) (route, bool) {
		if preLaunchRe(hint) {
			return route{track: roadmap.TrackLaunch, version: preLaunchVersion}, true
		}
		return route{}, false
	},
	func(hint string) (route, bool) {
		m := versionHintRe.FindStringSubmatch(hint)
		if m == nil {
			return route{}, false
		}
		letter := strings.ToUpper(m[1])
		return route{track: trackLetters[letter], version: letter + m[2]}, true
	},
	func(hint string) (route, bool) {
		if key, ok := trackLetters[strings.ToUpper(hint[:1])]; ok && (len(hint) == 1 || !isLetter(hint[1])) {
			return route{track: key}, true
		}
		return route{}, false
	},
	keywordRoute(`(?i)\badmin\b`, roadmap.TrackAdmin),
	keywordRoute(`(?i)\bdata\b`, roadmap.TrackData),
	keywordRoute(`(?i)\b(?:marketing|launch)\b`, roadmap.TrackLaunch),
}

var preLaunchRe = re(`(?i)pre-?launch`)

func keywordRoute(pattern string, key roadmap.TrackKey) func(string) (route, bool) {
	match := re(pattern)
	return func(hint string) (route, bool) {
		if match(hint) {
			return route{track: key}, true
		}
		return route{}, false
	}
}

func isLetter(b byte) bool {
	return unicode.IsLetter(rune(b))
}

// RouteHint maps a priority hint such as "V2.1" or "Pre-Launch" to a track
// and optional release id.
func RouteHint(hint string) (roadmap.TrackKey, string) {
	hint = strings.TrimSpace(hint)
	if hint == "" {
		return roadmap.TrackEndUser, ""
	}
	for _, match := range hintRules {
		if r, ok := match(hint); ok {
			return r.track, r.version
		}
	}
	return roadmap.TrackEndUser, ""
}

// BacklogItem is a parsed backlog section before deduplication.
type BacklogItem struct {
	Track   roadmap.TrackKey
	Version string
	Feature *roadmap.Feature
}

// ParseBacklog turns the backlog document into items, skipping completed
// sections.
func ParseBacklog(src string) []BacklogItem {
	var items []BacklogItem
	for _, sec := range SplitSections([]byte(src), 3) {
		if item, ok := parseBacklogSection(sec); ok {
			items = append(items, item)
		}
	}
	return items
}

func parseBacklogSection(sec Section) (BacklogItem, bool) {
	if completedTitleRe.MatchString(sec.Title) || completedMarkerRe.MatchString(head(sec.Body, completionWindow)) {
		return BacklogItem{}, false
	}

	status := roadmap.FeatureBacklogged
	if m := statusLineRe.FindStringSubmatch(sec.Body); m != nil {
		if completedMarkerRe.MatchString(m[1]) {
			return BacklogItem{}, false
		}
		status = FeatureStatusOf(m[1])
	}

	track, version := roadmap.TrackEndUser, ""
	if m := priorityHintRe.FindStringSubmatch(sec.Body); m != nil {
		track, version = RouteHint(m[1])
	}

	id, title := cleanBacklogTitle(sec.Title)
	if title == "" {
		return BacklogItem{}, false
	}
	label := version
	if label == "" {
		label = unslotted
	}

	return BacklogItem{
		Track:   track,
		Version: version,
		Feature: &roadmap.Feature{
			ID:      id,
			Title:   title,
			Version: label,
			Status:  status,
			Source:  roadmap.SourceBacklog,
		},
	}, true
}

func cleanBacklogTitle(title string) (*string, string) {
	title = completedTitleRe.ReplaceAllString(title, "")
	title = versionNoteRe.ReplaceAllString(title, "")
	title = preLaunchNoteRe.ReplaceAllString(title, "")
	title = strings.ReplaceAll(title, "**", "")
	return splitTrackingCode(collapseSpaces(title))
}

// head returns at most n bytes of s without splitting a rune.
func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// MergeBacklog places backlog items into the roadmap. Near-duplicates of
// features already in the track, including backlog items placed earlier in
// the same merge, are dropped; the rest go to their named release when it
// exists, otherwise to the track backlog.
func MergeBacklog(rm roadmap.Roadmap, items []BacklogItem) {
	known := make(map[roadmap.TrackKey][]string, len(rm))
	for key, t := range rm {
		t.Walk(func(v *roadmap.Version) {
			for _, f := range v.Features {
				known[key] = append(known[key], normalizeTitle(f.Title))
			}
		})
	}

	for _, item := range items {
		t, ok := rm[item.Track]
		if !ok {
			continue
		}
		if IsNearDuplicate(item.Feature.Title, known[item.Track]) {
			continue
		}
		known[item.Track] = append(known[item.Track], normalizeTitle(item.Feature.Title))
		if v := findSlot(t, item.Version); v != nil {
			item.Feature.Version = v.ID
			v.AddFeature(item.Feature)
			continue
		}
		t.Backlog = append(t.Backlog, item.Feature)
	}
}

// findSlot resolves a hinted release id to a release or child, accepting
// "A1" for "A1.0".
func findSlot(t *roadmap.Track, id string) *roadmap.Version {
	if id == "" {
		return nil
	}
	if v := t.Find(id); v != nil {
		return v
	}
	if !strings.Contains(id, ".") {
		return t.Find(id + ".0")
	}
	return nil
}

// normalizeTitle lowercases s and replaces every run of non-alphanumerics
// with a single space.
func normalizeTitle(s string) string {
	s = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// titleKeywords returns up to three words longer than three characters.
func titleKeywords(normalized string) []string {
	var out []string
	for _, w := range strings.Fields(normalized) {
		if utf8.RuneCountInString(w) < minKeywordLen {
			continue
		}
		out = append(out, w)
		if len(out) == maxKeywords {
			break
		}
	}
	return out
}

func containsAll(haystack string, words []string) bool {
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !strings.Contains(haystack, w) {
			return false
		}
	}
	return true
}

// IsNearDuplicate reports whether title matches one of the normalized known
// titles: either all of the candidate's keywords occur in a known title, or
// all keywords of a known title with at least two keywords occur in the
// candidate.
func IsNearDuplicate(title string, known []string) bool {
	norm := normalizeTitle(title)
	kw := titleKeywords(norm)
	for _, k := range known {
		if containsAll(k, kw) {
			return true
		}
		if kk := titleKeywords(k); len(kk) >= 2 && containsAll(norm, kk) {
			return true
		}
	}
	return false
}

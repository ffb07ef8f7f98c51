package parser

import (
	"regexp"
	"strings"

	"github.com/rijksuitgaven/roadmap/internal/roadmap"
)

// rule pairs a predicate with the value it yields. Rule lists are evaluated in
// order and the first match wins.
type rule[T any] struct {
	name   string
	match  func(text string) bool
	result T
}

func firstMatch[T any](rules []rule[T], text string) (T, bool) {
	for _, r := range rules {
		if r.match(text) {
			return r.result, true
		}
	}
	var zero T
	return zero, false
}

func re(pattern string) func(string) bool {
	return regexp.MustCompile(pattern).MatchString
}

func contains(sub string) func(string) bool {
	return func(s string) bool { return strings.Contains(s, sub) }
}

func anyOf(preds ...func(string) bool) func(string) bool {
	return func(s string) bool {
		for _, p := range preds {
			if p(s) {
				return true
			}
		}
		return false
	}
}

var versionStatusRules = []rule[roadmap.VersionStatus]{
	{"live", re(`(?i)✅\s*Live`), roadmap.StatusLive},
	{"building", anyOf(contains("🔨"), re(`(?i)in development`), re(`(?i)\btesting\b`)), roadmap.StatusBuilding},
	{"staging", anyOf(re(`(?i)on staging`), re(`(?i)⏳.*staging`)), roadmap.StatusStaging},
	{"in_progress", anyOf(contains("⏳"), re(`(?i)in progress`)), roadmap.StatusInProgress},
}

// VersionStatusOf maps a **Status:** line to a release status.
func VersionStatusOf(text string) roadmap.VersionStatus {
	if s, ok := firstMatch(versionStatusRules, text); ok {
		return s
	}
	return roadmap.StatusPlanned
}

var featureStatusRules = []rule[roadmap.FeatureStatus]{
	{"done", contains("✅"), roadmap.FeatureDone},
	{"staging", re(`(?i)staging`), roadmap.FeatureStaging},
	{"in_progress", anyOf(contains("⏳"), contains("🔨"), contains("🚧"), re(`(?i)in progress`)), roadmap.FeatureInProgress},
	{"backlogged", re(`(?i)backlog`), roadmap.FeatureBacklogged},
}

// FeatureStatusOf maps a table status cell or backlog status line to a
// feature status.
func FeatureStatusOf(text string) roadmap.FeatureStatus {
	if s, ok := firstMatch(featureStatusRules, text); ok {
		return s
	}
	return roadmap.FeaturePlanned
}

// inferredFeatureStatus is the status of a bullet feature, which carries no
// status of its own.
func inferredFeatureStatus(v roadmap.VersionStatus) roadmap.FeatureStatus {
	switch v {
	case roadmap.StatusLive, roadmap.StatusBuilding:
		return roadmap.FeatureDone
	case roadmap.StatusStaging:
		return roadmap.FeatureStaging
	case roadmap.StatusInProgress:
		return roadmap.FeatureInProgress
	default:
		return roadmap.FeaturePlanned
	}
}

var statusGlyphs = []string{"✅", "⏳", "🔨", "🚧", "❌", "⬜", "📋", "🟡"}

func hasStatusGlyph(s string) bool {
	for _, g := range statusGlyphs {
		if strings.Contains(s, g) {
			return true
		}
	}
	return false
}

const timelineToken = `(?:\bWeek\b|\bWk\b|\bQ[1-4]\b|\bpost\b|\bbefore\b|\bafter\b|~|\b(?:19|20)\d{2}\b|` +
	`\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\b)`

var (
	parenTimelineRe = regexp.MustCompile(`(?i)\(([^()]*` + timelineToken + `[^()]*)\)`)
	commaTimelineRe = regexp.MustCompile(`(?i),\s*([^,()]*` + timelineToken + `[^,()]*)$`)
)

// timelineOf pulls the schedule hint out of a status line: a parenthetical
// first, else a trailing comma clause.
func timelineOf(text string) string {
	if m := parenTimelineRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := commaTimelineRe.FindStringSubmatch(strings.TrimSpace(text)); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// trackingCode matches external issue codes such as UX-042, DATA2-7 or
// BACKEND-12.
const trackingCode = `[A-Z][A-Z0-9]{1,6}-\d+`

var (
	trackingCodeRe      = regexp.MustCompile(`\b` + trackingCode + `\b`)
	trackingCodeStripRe = regexp.MustCompile(`\b` + trackingCode + `\b:?\s*`)
	emphasisRe          = regexp.MustCompile("[`*]")
	spacesRe            = regexp.MustCompile(`\s+`)
)

// splitTrackingCode returns the first tracking code in title (nil when there
// is none) and the title with the code removed.
func splitTrackingCode(title string) (*string, string) {
	code := trackingCodeRe.FindString(title)
	if code == "" {
		return nil, title
	}
	cleaned := trackingCodeStripRe.ReplaceAllString(title, "")
	return &code, collapseSpaces(cleaned)
}

func stripEmphasis(s string) string {
	return strings.TrimSpace(emphasisRe.ReplaceAllString(s, ""))
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(spacesRe.ReplaceAllString(s, " "))
}

package parser

import (
	"regexp"
	"strings"
)

// initiativeWindow bounds how far below an initiative heading its promise
// and use-case lines are looked for.
const initiativeWindow = 12

// Initiative is a top-level product theme grouping one family of releases.
type Initiative struct {
	Key       string // Family identifier, e.g. "V2"
	Name      string
	Objective string // Core promise
	UseCase   string
}

var (
	initiativeHeaderRe = regexp.MustCompile(`^##\s+([A-Z]\d+)\s+[-–—]\s+(.+?)(?:\s*\([^)]*\))?\s*$`)
	corePromiseRe      = regexp.MustCompile(`(?i)^\s*(?:[-*]\s+)?\*\*Core promise:?\*\*:?\s*(.+?)\s*$`)
	newUseCaseRe       = regexp.MustCompile(`(?i)^\s*(?:[-*]\s+)?\*\*New use case:?\*\*:?\s*(.+?)\s*$`)
)

// ExtractInitiatives scans the versioning document for initiative headings
// and returns them keyed by family identifier. Later headings for the same
// key replace earlier ones.
func ExtractInitiatives(lines []string) map[string]Initiative {
	out := make(map[string]Initiative)
	for i, line := range lines {
		m := initiativeHeaderRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		in := Initiative{Key: m[1], Name: strings.TrimSpace(m[2])}

		end := min(i+1+initiativeWindow, len(lines))
		for _, next := range lines[i+1 : end] {
			if strings.HasPrefix(next, "#") {
				break
			}
			if pm := corePromiseRe.FindStringSubmatch(next); pm != nil && in.Objective == "" {
				in.Objective = pm[1]
			}
			if um := newUseCaseRe.FindStringSubmatch(next); um != nil && in.UseCase == "" {
				in.UseCase = um[1]
			}
		}
		out[in.Key] = in
	}
	return out
}

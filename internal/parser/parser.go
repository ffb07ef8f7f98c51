// Package parser compiles the versioning and backlog planning documents into
// a roadmap.Roadmap.
//
// Stages run in a fixed order and each consumes the previous stage's output:
// initiatives, track classification, version and feature scanning, hierarchy
// building, progress aggregation and finally the backlog merge. Lines and
// sections that match no pattern are dropped without error.
package parser

import (
	"fmt"
	"strings"

	"github.com/rijksuitgaven/roadmap/internal/roadmap"
)

// Parse compiles both documents. It fails with a CodeMissingSource error when
// either document is empty, and with CodeInternal if a stage panics; no
// partial roadmap is returned on failure.
func Parse(versioning, backlog string) (rm roadmap.Roadmap, err error) {
	if strings.TrimSpace(versioning) == "" {
		return nil, roadmap.MissingSource("versioning")
	}
	if strings.TrimSpace(backlog) == "" {
		return nil, roadmap.MissingSource("backlog")
	}

	defer func() {
		if r := recover(); r != nil {
			rm = nil
			err = &roadmap.Error{Code: roadmap.CodeInternal, Op: "parse", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	lines := splitLines(versioning)
	initiatives := ExtractInitiatives(lines)
	flat := ParseVersions(lines)

	rm = roadmap.New()
	for _, key := range roadmap.TrackKeys {
		t := rm[key]
		t.Releases = BuildHierarchy(key, flat[key].Versions, initiatives)
		Aggregate(t.Releases)
	}

	MergeBacklog(rm, ParseBacklog(backlog))
	for _, key := range roadmap.TrackKeys {
		Aggregate(rm[key].Releases)
	}
	return rm, nil
}

func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

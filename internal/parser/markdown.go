package parser

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Section is a run of raw markdown that starts at a heading.
type Section struct {
	Title string // Heading text with the leading #s removed, markup kept
	Body  string // Raw source from the heading line up to the next section
}

// SplitSections cuts src at every top-level heading of the given level.
// Headings nested in lists, quotes or code fences do not start a section.
// Text before the first heading is dropped.
func SplitSections(src []byte, level int) []Section {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var starts []int
	var titles []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok || h.Level != level || h.Lines().Len() == 0 {
			continue
		}
		seg := h.Lines().At(0)
		start := lineStart(src, seg.Start)
		starts = append(starts, start)
		titles = append(titles, headingTitle(src[start:lineEnd(src, seg.Stop)]))
	}

	sections := make([]Section, 0, len(starts))
	for i, start := range starts {
		end := len(src)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		sections = append(sections, Section{
			Title: titles[i],
			Body:  string(src[start:end]),
		})
	}
	return sections
}

func lineStart(src []byte, pos int) int {
	return bytes.LastIndexByte(src[:pos], '\n') + 1
}

func lineEnd(src []byte, pos int) int {
	if i := bytes.IndexByte(src[pos:], '\n'); i >= 0 {
		return pos + i
	}
	return len(src)
}

// headingTitle strips ATX markers from a raw heading line.
func headingTitle(line []byte) string {
	s := strings.TrimSpace(string(line))
	s = strings.TrimLeft(s, "#")
	s = strings.TrimSpace(s)
	// Optional closing sequence: "### Title ###".
	if trimmed := strings.TrimRight(s, "#"); trimmed != s && strings.HasSuffix(trimmed, " ") {
		s = strings.TrimSpace(trimmed)
	}
	return s
}

package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rijksuitgaven/roadmap/internal/roadmap"
)

func TestSplitSections(t *testing.T) {
	src := "preamble\n\n### First ###\nbody one\n\n```\n### fenced\n```\n\n- ### in a list\n\n## Level two\n### Second\nbody two"
	secs := SplitSections([]byte(src), 3)

	require.Len(t, secs, 2)
	assert.Equal(t, "First", secs[0].Title)
	assert.True(t, strings.HasPrefix(secs[0].Body, "### First ###\n"))
	assert.Contains(t, secs[0].Body, "### fenced")
	assert.Contains(t, secs[0].Body, "## Level two")
	assert.Equal(t, "Second", secs[1].Title)
	assert.Equal(t, "### Second\nbody two", secs[1].Body)
}

func TestSplitSections_NoHeadings(t *testing.T) {
	assert.Empty(t, SplitSections([]byte("just text\n"), 3))
}

func TestParseBacklog(t *testing.T) {
	items := ParseBacklog(`# Backlog

### Old cleanup (COMPLETED)
**Priority:** Low (A1.0)

### Member export
**Status:** ✅ Completed
**Priority:** Low (A1.0)

### Report builder
**Status:** ✅ Done

### **OPS-12:** Role management (A3.0)
**Status:** 🚧
**Priority:** Medium (A3.0)

### Newsletter signup (Pre-Launch)
**Priority:** High (Pre-Launch)

### Loose idea
`)
	require.Len(t, items, 3)

	role := items[0]
	assert.Equal(t, roadmap.TrackAdmin, role.Track)
	assert.Equal(t, "A3.0", role.Version)
	assert.Equal(t, "Role management", role.Feature.Title)
	require.NotNil(t, role.Feature.ID)
	assert.Equal(t, "OPS-12", *role.Feature.ID)
	assert.Equal(t, roadmap.FeatureInProgress, role.Feature.Status)
	assert.Equal(t, roadmap.SourceBacklog, role.Feature.Source)

	news := items[1]
	assert.Equal(t, roadmap.TrackLaunch, news.Track)
	assert.Equal(t, "M1.0", news.Version)
	assert.Equal(t, "Newsletter signup", news.Feature.Title)
	assert.Equal(t, roadmap.FeatureBacklogged, news.Feature.Status)

	loose := items[2]
	assert.Equal(t, roadmap.TrackEndUser, loose.Track)
	assert.Empty(t, loose.Version)
	assert.Equal(t, "Backlog", loose.Feature.Version)
}

func TestParseBacklog_CompletedMarkerBeyondWindow(t *testing.T) {
	body := "### Long item\n" + strings.Repeat("words ", 80) + "\n✅ DONE\n"
	items := ParseBacklog(body)
	require.Len(t, items, 1)
	assert.Equal(t, "Long item", items[0].Feature.Title)
}

func TestMergeBacklog_DiscardsNearDuplicate(t *testing.T) {
	rm := roadmap.New()
	v2 := roadmap.NewVersion("V2.0", "Foundation", roadmap.StatusLive)
	v2.AddFeature(&roadmap.Feature{Title: "Export button", Version: "V2.0", Status: roadmap.FeatureDone, Source: roadmap.SourceVersioning})
	rm[roadmap.TrackEndUser].Releases = []*roadmap.Version{v2}

	MergeBacklog(rm, ParseBacklog("### Export button improvements\n**Priority:** High (V2.0)\n"))

	assert.Len(t, v2.Features, 1)
	assert.Empty(t, rm[roadmap.TrackEndUser].Backlog)
}

func TestMergeBacklog_DiscardsRepeatedBacklogSection(t *testing.T) {
	rm := roadmap.New()
	crm := roadmap.NewVersion("A1.0", "CRM", roadmap.StatusBuilding)
	crm.AddFeature(&roadmap.Feature{Title: "Contact list", Version: "A1.0", Status: roadmap.FeatureInProgress, Source: roadmap.SourceVersioning})
	rm[roadmap.TrackAdmin].Releases = []*roadmap.Version{crm}

	MergeBacklog(rm, ParseBacklog(`### Bulk contact import
**Priority:** High (A1.0)

### Bulk contact import
**Priority:** High (A1.0)

### Bulk contact import tooling
**Priority:** Low (A9.0)
`))

	assert.Equal(t, []string{"Contact list", "Bulk contact import"}, titles(crm.Features))
	assert.Empty(t, rm[roadmap.TrackAdmin].Backlog)
}

func TestMergeBacklog_Placement(t *testing.T) {
	rm := roadmap.New()
	parent := roadmap.NewVersion("A1.0", "Admin", roadmap.StatusLive)
	child := roadmap.NewVersion("A1.1", "Bulk", roadmap.StatusPlanned)
	parent.Children = []*roadmap.Version{child}
	rm[roadmap.TrackAdmin].Releases = []*roadmap.Version{parent}

	MergeBacklog(rm, ParseBacklog(`### Audit log
**Priority:** High (A1.1)

### Seat limits
**Priority:** High (A1)

### Billing portal
**Priority:** Low (A4.2)

### Ghost track
**Priority:** Low (Q3)
`))

	require.Len(t, child.Features, 1)
	assert.Equal(t, "Audit log", child.Features[0].Title)
	assert.Equal(t, "A1.1", child.Features[0].Version)

	require.Len(t, parent.Features, 1)
	assert.Equal(t, "Seat limits", parent.Features[0].Title)
	assert.Equal(t, "A1.0", parent.Features[0].Version)

	require.Len(t, rm[roadmap.TrackAdmin].Backlog, 1)
	assert.Equal(t, "A4.2", rm[roadmap.TrackAdmin].Backlog[0].Version)

	assert.Equal(t, []string{"Ghost track"}, titles(rm[roadmap.TrackEndUser].Backlog))
}

func TestParseBacklog_PriorityLevelVariants(t *testing.T) {
	items := ParseBacklog(`### Audit log
**Priority:** P1 (A1.0)

### Seat limits
**Priority:** (A1.1)

### Newsletter
**Priority:** Must have, soon (Pre-Launch)
`)
	require.Len(t, items, 3)
	assert.Equal(t, roadmap.TrackAdmin, items[0].Track)
	assert.Equal(t, "A1.0", items[0].Version)
	assert.Equal(t, roadmap.TrackAdmin, items[1].Track)
	assert.Equal(t, "A1.1", items[1].Version)
	assert.Equal(t, roadmap.TrackLaunch, items[2].Track)
	assert.Equal(t, "M1.0", items[2].Version)
}

func TestIsNearDuplicate(t *testing.T) {
	known := []string{"export button", "csv download", "member list overview"}
	tests := []struct {
		title string
		want  bool
	}{
		{"Export button", true},
		{"Export button improvements", true},
		{"Better export button", true},
		{"Member list", true},
		{"CSV download v2", true},
		{"Download all files", false},
		{"Search history", false},
		{"UI", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsNearDuplicate(tt.title, known), "title %q", tt.title)
	}
}

func TestTitleKeywords(t *testing.T) {
	assert.Equal(t, []string{"export", "button", "improvements"}, titleKeywords("the export button improvements again"))
	assert.Empty(t, titleKeywords("a ui fix"))
	assert.Equal(t, "export button v2", normalizeTitle("  **Export**-button (v2)!"))
}

func TestHead(t *testing.T) {
	assert.Equal(t, "abc", head("abc", 10))
	assert.Equal(t, "ab", head("abc", 2))
	assert.Equal(t, "a", head("a✅", 3))
}

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rijksuitgaven/roadmap/internal/roadmap"
)

func TestStrategyFor(t *testing.T) {
	assert.Equal(t, InitiativeGrouped, StrategyFor(roadmap.TrackEndUser))
	assert.Equal(t, ExplicitParent, StrategyFor(roadmap.TrackAdmin))
	assert.Equal(t, ExplicitParent, StrategyFor(roadmap.TrackLaunch))
	assert.Equal(t, ExplicitParent, StrategyFor(roadmap.TrackData))
	assert.Equal(t, "explicit-parent", ExplicitParent.String())
}

func TestBuildHierarchy_SyntheticExplicitParent(t *testing.T) {
	bulk := roadmap.NewVersion("A1.1", "Bulk", roadmap.StatusInProgress)
	releases := BuildHierarchy(roadmap.TrackAdmin, []*roadmap.Version{bulk}, nil)

	require.Len(t, releases, 1)
	p := releases[0]
	assert.Equal(t, "A1.0", p.ID)
	assert.Equal(t, "Bulk", p.Name)
	assert.Equal(t, roadmap.StatusInProgress, p.Status)
	assert.False(t, p.ObjectiveClear)
	assert.Equal(t, []*roadmap.Version{bulk}, p.Children)
}

func TestBuildHierarchy_ExplicitParents(t *testing.T) {
	flat := []*roadmap.Version{
		roadmap.NewVersion("A2.1", "Two one", roadmap.StatusPlanned),
		roadmap.NewVersion("A1.0", "One", roadmap.StatusLive),
		roadmap.NewVersion("A1.2", "One two", roadmap.StatusPlanned),
		roadmap.NewVersion("A1.1", "One one", roadmap.StatusLive),
		roadmap.NewVersion("A3", "Three", roadmap.StatusPlanned),
	}
	releases := BuildHierarchy(roadmap.TrackAdmin, flat, nil)

	require.Equal(t, []string{"A1.0", "A2.0", "A3"}, ids(releases))
	assert.Equal(t, []string{"A1.1", "A1.2"}, ids(releases[0].Children))
	assert.Equal(t, []string{"A2.1"}, ids(releases[1].Children))
	assert.Empty(t, releases[2].Children)
}

func TestBuildHierarchy_InitiativeGrouped(t *testing.T) {
	flat := []*roadmap.Version{
		roadmap.NewVersion("V2.0", "Foundation", roadmap.StatusLive),
		roadmap.NewVersion("V2.1", "Export", roadmap.StatusPlanned),
		roadmap.NewVersion("V3.0", "Dashboards", roadmap.StatusPlanned),
		roadmap.NewVersion("V4.0", "Alerts", roadmap.StatusPlanned),
	}
	initiatives := map[string]Initiative{
		"V2": {Key: "V2", Name: "Search Platform", Objective: "Find every euro"},
		"V3": {Key: "V3", Name: "Insights", UseCase: "Compare ministries"},
	}
	releases := BuildHierarchy(roadmap.TrackEndUser, flat, initiatives)

	require.Equal(t, []string{"V2", "V3", "V4"}, ids(releases))

	v2 := releases[0]
	assert.Equal(t, "Search Platform", v2.Name)
	assert.Equal(t, "Find every euro", v2.Objective)
	assert.True(t, v2.ObjectiveClear)
	assert.Equal(t, roadmap.StatusBuilding, v2.Status)
	assert.Equal(t, []string{"V2.0", "V2.1"}, ids(v2.Children))

	v3 := releases[1]
	assert.Equal(t, "Compare ministries", v3.Objective)
	assert.False(t, v3.ObjectiveClear)

	v4 := releases[2]
	assert.Equal(t, "Alerts", v4.Name)
	assert.Empty(t, v4.Objective)
	assert.False(t, v4.ObjectiveClear)
	assert.Equal(t, roadmap.StatusPlanned, v4.Status)
}

func TestBuildHierarchy_DotlessVersionIsParent(t *testing.T) {
	flat := []*roadmap.Version{
		roadmap.NewVersion("V5", "Own record", roadmap.StatusStaging),
		roadmap.NewVersion("V5.1", "Child", roadmap.StatusLive),
	}
	releases := BuildHierarchy(roadmap.TrackEndUser, flat, nil)

	require.Len(t, releases, 1)
	assert.Equal(t, roadmap.StatusStaging, releases[0].Status)
	assert.Equal(t, []string{"V5.1"}, ids(releases[0].Children))
}

func TestBuildHierarchy_EmptyTrack(t *testing.T) {
	releases := BuildHierarchy(roadmap.TrackData, nil, nil)
	assert.NotNil(t, releases)
	assert.Empty(t, releases)
}

func TestDeriveParentStatus(t *testing.T) {
	children := func(statuses ...roadmap.VersionStatus) []*roadmap.Version {
		out := make([]*roadmap.Version, 0, len(statuses))
		for _, s := range statuses {
			out = append(out, roadmap.NewVersion("V9.1", "x", s))
		}
		return out
	}
	tests := []struct {
		name     string
		children []*roadmap.Version
		want     roadmap.VersionStatus
	}{
		{"all live", children(roadmap.StatusLive, roadmap.StatusLive), roadmap.StatusLive},
		{"partly live", children(roadmap.StatusLive, roadmap.StatusPlanned), roadmap.StatusBuilding},
		{"one building", children(roadmap.StatusBuilding, roadmap.StatusPlanned), roadmap.StatusBuilding},
		{"one in progress", children(roadmap.StatusInProgress), roadmap.StatusBuilding},
		{"staging only", children(roadmap.StatusStaging), roadmap.StatusPlanned},
		{"all planned", children(roadmap.StatusPlanned), roadmap.StatusPlanned},
		{"none", nil, roadmap.StatusPlanned},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deriveParentStatus(tt.children))
		})
	}
}

func TestCompareReleaseIDs(t *testing.T) {
	assert.Negative(t, CompareReleaseIDs("X2.0", "X2.1"))
	assert.Negative(t, CompareReleaseIDs("X2.1", "X10.0"))
	assert.Negative(t, CompareReleaseIDs("X2.0", "X10.0"))
	assert.Positive(t, CompareReleaseIDs("X10.0", "X9.9"))
	assert.Zero(t, CompareReleaseIDs("V2", "V2"))
	assert.Negative(t, CompareReleaseIDs("A9.0", "D1.0"))
	assert.Negative(t, CompareReleaseIDs("V2.0", "V2.0.1"))
}

func TestSortVersions(t *testing.T) {
	vs := []*roadmap.Version{
		roadmap.NewVersion("X10.0", "", roadmap.StatusPlanned),
		roadmap.NewVersion("X2.1", "", roadmap.StatusPlanned),
		roadmap.NewVersion("X2.0", "", roadmap.StatusPlanned),
	}
	sortVersions(vs)
	assert.Equal(t, []string{"X2.0", "X2.1", "X10.0"}, ids(vs))
}

func TestAggregate(t *testing.T) {
	parent := roadmap.NewVersion("A1.0", "Parent", roadmap.StatusLive)
	parent.Features = []*roadmap.Feature{
		{Title: "a", Status: roadmap.FeatureDone},
		{Title: "b", Status: roadmap.FeaturePlanned},
	}
	child := roadmap.NewVersion("A1.1", "Child", roadmap.StatusLive)
	child.Features = []*roadmap.Feature{
		{Title: "c", Status: roadmap.FeatureDone},
		{Title: "d", Status: roadmap.FeatureStaging},
		{Title: "e", Status: roadmap.FeatureDone},
	}
	parent.Children = []*roadmap.Version{child}

	releases := []*roadmap.Version{parent}
	Aggregate(releases)
	Aggregate(releases)

	assert.Equal(t, 3, child.FeaturesTotal)
	assert.Equal(t, 2, child.FeaturesDone)
	assert.Equal(t, 5, parent.FeaturesTotal)
	assert.Equal(t, 3, parent.FeaturesDone)
}

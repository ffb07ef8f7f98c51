package roadmap

// TrackKey identifies one of the four release streams.
type TrackKey string

const (
	TrackEndUser TrackKey = "v"
	TrackAdmin   TrackKey = "a"
	TrackLaunch  TrackKey = "m"
	TrackData    TrackKey = "d"

	// TrackNone marks lines outside any track section.
	TrackNone TrackKey = ""
)

// TrackKeys lists the tracks in display order.
var TrackKeys = []TrackKey{TrackEndUser, TrackAdmin, TrackLaunch, TrackData}

// VersionStatus is the lifecycle state of a release.
type VersionStatus string

const (
	StatusLive       VersionStatus = "live"
	StatusBuilding   VersionStatus = "building"
	StatusStaging    VersionStatus = "staging"
	StatusPlanned    VersionStatus = "planned"
	StatusInProgress VersionStatus = "in_progress"
)

// FeatureStatus is the delivery state of a single feature.
type FeatureStatus string

const (
	FeatureDone       FeatureStatus = "done"
	FeatureStaging    FeatureStatus = "staging"
	FeatureInProgress FeatureStatus = "in_progress"
	FeaturePlanned    FeatureStatus = "planned"
	FeatureBacklogged FeatureStatus = "backlogged"
)

// Source records which document a feature came from.
type Source string

const (
	SourceVersioning Source = "versioning"
	SourceBacklog    Source = "backlog"
)

// Feature is a single planned or delivered capability.
type Feature struct {
	ID      *string       `json:"id" yaml:"id"` // Tracking code such as UX-042; null when absent
	Title   string        `json:"title" yaml:"title"`
	Version string        `json:"version" yaml:"version"` // Owning version id, or "Backlog"
	Status  FeatureStatus `json:"status" yaml:"status"`
	Source  Source        `json:"source" yaml:"source"`
}

// Version is a release. Top-level releases may own one level of children.
type Version struct {
	ID             string        `json:"id" yaml:"id"`
	Name           string        `json:"name" yaml:"name"`
	Status         VersionStatus `json:"status" yaml:"status"`
	FeaturesTotal  int           `json:"features_total" yaml:"features_total"`
	FeaturesDone   int           `json:"features_done" yaml:"features_done"`
	Features       []*Feature    `json:"features" yaml:"features"`
	Timeline       string        `json:"timeline,omitempty" yaml:"timeline,omitempty"`
	Objective      string        `json:"objective,omitempty" yaml:"objective,omitempty"`
	ObjectiveClear bool          `json:"objectiveClear" yaml:"objectiveClear"`
	Children       []*Version    `json:"children" yaml:"children"`
}

// Track is one release stream with its release tree and unslotted backlog.
type Track struct {
	Key         TrackKey   `json:"key" yaml:"key"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description" yaml:"description"`
	Releases    []*Version `json:"releases" yaml:"releases"`
	Backlog     []*Feature `json:"backlog" yaml:"backlog"`
}

// Roadmap maps every track key to its compiled track.
type Roadmap map[TrackKey]*Track

// Label is the display name and description of a track.
type Label struct {
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// DefaultLabels are the labels shown by the admin UI.
var DefaultLabels = map[TrackKey]Label{
	TrackEndUser: {Name: "End-user", Description: "Zoekplatform en gebruikersfuncties"},
	TrackAdmin:   {Name: "Admin", Description: "Beheer, CRM en interne tooling"},
	TrackLaunch:  {Name: "Launch", Description: "Marketing, SEO en lanceringsinfrastructuur"},
	TrackData:    {Name: "Data", Description: "Datasets, jaarupdates en datacorrecties"},
}

// New returns a Roadmap holding an empty track for every key.
func New() Roadmap {
	rm := make(Roadmap, len(TrackKeys))
	for _, key := range TrackKeys {
		l := DefaultLabels[key]
		rm[key] = &Track{
			Key:         key,
			Name:        l.Name,
			Description: l.Description,
			Releases:    []*Version{},
			Backlog:     []*Feature{},
		}
	}
	return rm
}

// NewVersion returns a version with non-nil feature and child slices.
func NewVersion(id, name string, status VersionStatus) *Version {
	return &Version{
		ID:       id,
		Name:     name,
		Status:   status,
		Features: []*Feature{},
		Children: []*Version{},
	}
}

// Relabel replaces track names and descriptions with non-empty overrides.
func (rm Roadmap) Relabel(labels map[TrackKey]Label) {
	for key, l := range labels {
		t, ok := rm[key]
		if !ok {
			continue
		}
		if l.Name != "" {
			t.Name = l.Name
		}
		if l.Description != "" {
			t.Description = l.Description
		}
	}
}

// AddFeature appends f and bumps the version's own counters.
func (v *Version) AddFeature(f *Feature) {
	v.Features = append(v.Features, f)
	v.FeaturesTotal++
	if f.Status == FeatureDone {
		v.FeaturesDone++
	}
}

// Walk calls fn for every release and child in the track, parents first.
func (t *Track) Walk(fn func(v *Version)) {
	for _, r := range t.Releases {
		fn(r)
		for _, c := range r.Children {
			fn(c)
		}
	}
}

// Find returns the release or child with the given id.
func (t *Track) Find(id string) *Version {
	var found *Version
	t.Walk(func(v *Version) {
		if found == nil && v.ID == id {
			found = v
		}
	})
	return found
}

package roadmap

// TrackSummary is an at-a-glance count of a compiled track.
type TrackSummary struct {
	Key           TrackKey `json:"key" yaml:"key"`
	Name          string   `json:"name" yaml:"name"`
	Releases      int      `json:"releases" yaml:"releases"`
	LiveReleases  int      `json:"live_releases" yaml:"live_releases"`
	FeaturesTotal int      `json:"features_total" yaml:"features_total"`
	FeaturesDone  int      `json:"features_done" yaml:"features_done"`
	Backlog       int      `json:"backlog" yaml:"backlog"`
}

// Percent returns the share of done features, rounded down.
func (s TrackSummary) Percent() int {
	if s.FeaturesTotal == 0 {
		return 0
	}
	return s.FeaturesDone * 100 / s.FeaturesTotal
}

// Summarize counts top-level releases and their aggregated progress per track,
// in TrackKeys order.
func Summarize(rm Roadmap) []TrackSummary {
	out := make([]TrackSummary, 0, len(TrackKeys))
	for _, key := range TrackKeys {
		t, ok := rm[key]
		if !ok {
			continue
		}
		s := TrackSummary{
			Key:      key,
			Name:     t.Name,
			Releases: len(t.Releases),
			Backlog:  len(t.Backlog),
		}
		for _, r := range t.Releases {
			if r.Status == StatusLive {
				s.LiveReleases++
			}
			s.FeaturesTotal += r.FeaturesTotal
			s.FeaturesDone += r.FeaturesDone
		}
		out = append(out, s)
	}
	return out
}

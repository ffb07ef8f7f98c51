package parser

import "github.com/rijksuitgaven/roadmap/internal/roadmap"

// Aggregate recomputes every release's counters as its own features plus the
// totals of its children. Counters are rebuilt from the feature lists, so
// running it again after a merge never double counts.
func Aggregate(releases []*roadmap.Version) {
	for _, r := range releases {
		aggregate(r)
	}
}

func aggregate(v *roadmap.Version) {
	total, done := 0, 0
	for _, f := range v.Features {
		total++
		if f.Status == roadmap.FeatureDone {
			done++
		}
	}
	for _, c := range v.Children {
		aggregate(c)
		total += c.FeaturesTotal
		done += c.FeaturesDone
	}
	v.FeaturesTotal, v.FeaturesDone = total, done
}

package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rijksuitgaven/roadmap/internal/roadmap"
)

var (
	// compileTotal counts roadmap requests by outcome: hit, compiled or error.
	compileTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roadmap_compile_total",
		Help: "Roadmap requests by outcome",
	}, []string{"result"})

	// compileDuration tracks parse latency of cache misses.
	compileDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "roadmap_compile_duration_seconds",
		Help:    "Roadmap compile duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
	})

	// compileErrors counts failed loads and compiles by error code.
	compileErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "roadmap_compile_errors_total",
		Help: "Failed roadmap loads and compiles by error code",
	}, []string{"code"})

	// trackFeatures reports the latest compiled feature counts per track.
	trackFeatures = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "roadmap_track_features",
		Help: "Features per track in the latest compiled roadmap",
	}, []string{"track", "state"})
)

func observeSummaries(sums []roadmap.TrackSummary) {
	for _, s := range sums {
		track := string(s.Key)
		trackFeatures.WithLabelValues(track, "total").Set(float64(s.FeaturesTotal))
		trackFeatures.WithLabelValues(track, "done").Set(float64(s.FeaturesDone))
		trackFeatures.WithLabelValues(track, "backlog").Set(float64(s.Backlog))
	}
}

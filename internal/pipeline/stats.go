package pipeline

import (
	"slices"
	"sync"
	"time"
)

// request is one Roadmap call that was served either from the cache or by a
// fresh compile.
type request struct {
	at       time.Time
	cached   bool
	compile  time.Duration
	features int
}

// StatsSnapshot aggregates the requests seen within the stats window.
// Latency fields cover compiles only; cache hits cost no parse time.
type StatsSnapshot struct {
	Count        int     `json:"count"` // Compiles
	CacheHits    int     `json:"cache_hits"`
	HitRatio     float64 `json:"hit_ratio"`
	CacheEntries int     `json:"cache_entries"`
	Features     int     `json:"features"` // Feature count of the latest compile
	MinMs        int64   `json:"min_ms"`
	MaxMs        int64   `json:"max_ms"`
	AvgMs        float64 `json:"avg_ms"`
	P50Ms        float64 `json:"p50_ms"`
	P95Ms        float64 `json:"p95_ms"`
	P99Ms        float64 `json:"p99_ms"`
}

// ParseStats keeps compile latencies and cache hits within a rolling window.
type ParseStats struct {
	mu       sync.Mutex
	requests []request
	maxAge   time.Duration
}

func NewParseStats(maxAge time.Duration) *ParseStats {
	if maxAge <= 0 {
		maxAge = time.Hour
	}
	return &ParseStats{
		requests: make([]request, 0, 64),
		maxAge:   maxAge,
	}
}

// Record notes a compile that took d and produced features features.
func (s *ParseStats) Record(d time.Duration, features int) {
	s.add(request{compile: max(d, 0), features: features})
}

// RecordHit notes a request answered from the cache.
func (s *ParseStats) RecordHit() {
	s.add(request{cached: true})
}

func (s *ParseStats) add(r request) {
	r.at = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(r.at)
	s.requests = append(s.requests, r)
}

func (s *ParseStats) Snapshot() StatsSnapshot {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked(now)

	var snap StatsSnapshot
	var values []int64
	var sum int64
	for _, r := range s.requests {
		if r.cached {
			snap.CacheHits++
			continue
		}
		ms := r.compile.Milliseconds()
		values = append(values, ms)
		sum += ms
		snap.Features = r.features
	}
	if total := snap.CacheHits + len(values); total > 0 {
		snap.HitRatio = float64(snap.CacheHits) / float64(total)
	}
	if len(values) == 0 {
		return snap
	}
	slices.Sort(values)

	snap.Count = len(values)
	snap.MinMs = values[0]
	snap.MaxMs = values[len(values)-1]
	snap.AvgMs = float64(sum) / float64(len(values))
	snap.P50Ms = percentile(values, 50)
	snap.P95Ms = percentile(values, 95)
	snap.P99Ms = percentile(values, 99)
	return snap
}

func (s *ParseStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.maxAge)
	kept := s.requests[:0]
	for _, r := range s.requests {
		if !r.at.Before(cutoff) {
			kept = append(kept, r)
		}
	}
	s.requests = kept
}

// percentile interpolates linearly between the two nearest ranks.
func percentile(sorted []int64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return float64(sorted[0])
	case pct >= 100:
		return float64(sorted[len(sorted)-1])
	}

	rank := float64(len(sorted)-1) * pct / 100
	lo := int(rank)
	if lo+1 >= len(sorted) {
		return float64(sorted[lo])
	}
	frac := rank - float64(lo)
	return float64(sorted[lo]) + float64(sorted[lo+1]-sorted[lo])*frac
}

package pipeline

import (
	"testing"
	"time"
)

func TestParseStatsSnapshotPercentiles(t *testing.T) {
	stats := NewParseStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400, 500} {
		stats.Record(time.Duration(ms)*time.Millisecond, 4)
	}

	snap := stats.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 || snap.MaxMs != 500 {
		t.Fatalf("expected min=100 max=500, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.P99Ms != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Ms)
	}
}

func TestParseStatsPrunesExpiredSamples(t *testing.T) {
	stats := NewParseStats(10 * time.Millisecond)
	stats.Record(100*time.Millisecond, 1)
	time.Sleep(25 * time.Millisecond)

	if snap := stats.Snapshot(); snap.Count != 0 {
		t.Fatalf("expected count=0 after prune, got %d", snap.Count)
	}

	stats.Record(200*time.Millisecond, 1)
	snap := stats.Snapshot()
	if snap.Count != 1 || snap.MinMs != 200 {
		t.Fatalf("expected one fresh 200ms sample, got %+v", snap)
	}
}

func TestParseStatsEmpty(t *testing.T) {
	if snap := NewParseStats(0).Snapshot(); snap != (StatsSnapshot{}) {
		t.Fatalf("expected zero snapshot, got %+v", snap)
	}
}

func TestParseStatsCacheHits(t *testing.T) {
	stats := NewParseStats(time.Hour)
	stats.Record(40*time.Millisecond, 7)
	stats.RecordHit()
	stats.RecordHit()
	stats.RecordHit()

	snap := stats.Snapshot()
	if snap.Count != 1 || snap.CacheHits != 3 {
		t.Fatalf("expected 1 compile and 3 hits, got %+v", snap)
	}
	if snap.HitRatio != 0.75 {
		t.Fatalf("expected hit ratio 0.75, got %f", snap.HitRatio)
	}
	if snap.Features != 7 || snap.MaxMs != 40 {
		t.Fatalf("hits must not affect compile figures, got %+v", snap)
	}
}

func TestParseStatsOnlyHits(t *testing.T) {
	stats := NewParseStats(time.Hour)
	stats.RecordHit()

	snap := stats.Snapshot()
	if snap.Count != 0 || snap.CacheHits != 1 || snap.HitRatio != 1 {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}

// Package pipeline serves compiled roadmaps: it loads the source documents,
// compiles them once per distinct content and keeps the result cached.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rijksuitgaven/roadmap/internal/parser"
	"github.com/rijksuitgaven/roadmap/internal/roadmap"
	"github.com/rijksuitgaven/roadmap/internal/source"
)

// Options configures a Service.
type Options struct {
	CacheTTL time.Duration
	Labels   map[roadmap.TrackKey]roadmap.Label // Track name overrides

	// WatchFiles, when set, makes Start recompile whenever one of the files
	// changes.
	WatchFiles []string
}

// Service compiles and caches roadmaps.
//
// Returned roadmaps are shared between callers and must not be modified.
type Service struct {
	loader source.Loader
	opts   Options
	cache  *Cache
	stats  *ParseStats
	group  singleflight.Group
	log    *slog.Logger

	cancel  context.CancelFunc
	wg      sync.WaitGroup
	watcher *source.Watcher
}

func NewService(loader source.Loader, opts Options, log *slog.Logger) *Service {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 10 * time.Minute
	}
	return &Service{
		loader: loader,
		opts:   opts,
		cache:  NewCache(opts.CacheTTL),
		stats:  NewParseStats(time.Hour),
		log:    log,
	}
}

// Roadmap returns the roadmap for the current documents, compiling them if
// their content has not been seen within the cache TTL.
func (s *Service) Roadmap(ctx context.Context) (roadmap.Roadmap, error) {
	docs, err := loadWithRetry(ctx, s.loader)
	if err != nil {
		s.fail(err)
		return nil, err
	}

	key := documentsKey(docs.Versioning, docs.Backlog)
	if rm, ok := s.cache.Get(key); ok {
		s.hit()
		return rm, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		if rm, ok := s.cache.Get(key); ok {
			s.hit()
			return rm, nil
		}
		return s.compile(key, docs)
	})
	if err != nil {
		s.fail(err)
		return nil, err
	}
	return v.(roadmap.Roadmap), nil
}

func (s *Service) compile(key string, docs source.Documents) (roadmap.Roadmap, error) {
	log := s.log.With("content_hash", key[:12])

	start := time.Now()
	rm, err := parser.Parse(docs.Versioning, docs.Backlog)
	elapsed := time.Since(start)
	if err != nil {
		log.Error("compile failed", "code", roadmap.CodeOf(err), "error", err)
		return nil, err
	}
	compileDuration.Observe(elapsed.Seconds())
	compileTotal.WithLabelValues("compiled").Inc()

	rm.Relabel(s.opts.Labels)
	s.cache.Put(key, rm)

	sums := roadmap.Summarize(rm)
	observeSummaries(sums)
	features := 0
	for _, sum := range sums {
		features += sum.FeaturesTotal
		log.Info("compiled track",
			"track", sum.Key,
			"strategy", parser.StrategyFor(sum.Key).String(),
			"releases", sum.Releases,
			"features_done", sum.FeaturesDone,
			"features_total", sum.FeaturesTotal,
			"backlog", sum.Backlog,
		)
	}
	s.stats.Record(elapsed, features)
	log.Info("roadmap compiled", "duration_ms", elapsed.Milliseconds(), "features", features)
	return rm, nil
}

func (s *Service) hit() {
	s.stats.RecordHit()
	compileTotal.WithLabelValues("hit").Inc()
}

func (s *Service) fail(err error) {
	compileTotal.WithLabelValues("error").Inc()
	compileErrors.WithLabelValues(string(roadmap.CodeOf(err))).Inc()
}

// Stats returns compile latency percentiles, cache hits and the number of
// roadmaps currently cached.
func (s *Service) Stats() StatsSnapshot {
	snap := s.stats.Snapshot()
	snap.CacheEntries = s.CacheSize()
	return snap
}

// CacheSize returns how many compiled roadmaps are held.
func (s *Service) CacheSize() int {
	return s.cache.Len()
}

// Start launches the cache cleanup loop and, when configured, the document
// watcher. A first compile warms the cache; its failure is logged, not
// returned.
func (s *Service) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	if len(s.opts.WatchFiles) > 0 {
		w, err := source.NewWatcher(s.opts.WatchFiles...)
		if err != nil {
			cancel()
			return fmt.Errorf("create watcher: %w", err)
		}
		if err := w.Start(); err != nil {
			w.Stop()
			cancel()
			return fmt.Errorf("start watcher: %w", err)
		}
		s.watcher = w

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for {
				select {
				case <-runCtx.Done():
					return
				case c, ok := <-w.Changes:
					if !ok {
						return
					}
					s.log.Info("source changed", "file", c.File)
					s.refresh(runCtx)
				}
			}
		}()
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(cleanupInterval(s.opts.CacheTTL))
		defer ticker.Stop()
		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				if n := s.cache.Cleanup(); n > 0 {
					s.log.Debug("evicted cached roadmaps", "count", n)
				}
			}
		}
	}()

	s.refresh(runCtx)
	return nil
}

// Stop shuts down the background loops.
func (s *Service) Stop() {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Service) refresh(ctx context.Context) {
	if _, err := s.Roadmap(ctx); err != nil {
		s.log.Warn("roadmap refresh failed", "code", roadmap.CodeOf(err), "error", err)
	}
}

func cleanupInterval(ttl time.Duration) time.Duration {
	return min(max(ttl/2, time.Second), 5*time.Minute)
}

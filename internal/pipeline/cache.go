package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/rijksuitgaven/roadmap/internal/roadmap"
)

// entry is one compiled roadmap.
type entry struct {
	roadmap    roadmap.Roadmap
	compiledAt time.Time
	lastUsed   time.Time
}

// Cache is a thread-safe in-memory store of compiled roadmaps keyed by the
// content hash of their source documents, with TTL eviction.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		ttl:     ttl,
	}
}

func (c *Cache) Put(key string, rm roadmap.Roadmap) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	c.entries[key] = &entry{roadmap: rm, compiledAt: now, lastUsed: now}
}

// Get returns the roadmap for key and marks it used.
func (c *Cache) Get(key string) (roadmap.Roadmap, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	e.lastUsed = time.Now()
	return e.roadmap, true
}

// Len returns the number of cached roadmaps.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Cleanup removes entries unused for longer than the TTL.
func (c *Cache) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	removed := 0
	for key, e := range c.entries {
		if now.Sub(e.lastUsed) > c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}

// documentsKey is the cache key of a document pair.
func documentsKey(versioning, backlog string) string {
	return ContentHashHex([]byte(versioning + "\x00" + backlog))
}

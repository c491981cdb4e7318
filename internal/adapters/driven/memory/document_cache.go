package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentCache = (*DocumentCache)(nil)

// DefaultTTL is how long a fetched program is served from cache
const DefaultTTL = 5 * time.Minute

type cacheEntry struct {
	content  string
	storedAt time.Time
}

// DocumentCache is an in-process DocumentCache keyed by URL.
// Entries older than the TTL are never returned and are dropped by Evict.
type DocumentCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	clock   driven.Clock
}

// NewDocumentCache creates a cache with the given TTL and clock.
// A nil clock uses the wall clock.
func NewDocumentCache(ttl time.Duration, clock driven.Clock) *DocumentCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = driven.SystemClock{}
	}
	return &DocumentCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		clock:   clock,
	}
}

// Get returns the content for key if it is younger than the TTL
func (c *DocumentCache) Get(ctx context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !c.fresh(entry) {
		return "", false, nil
	}
	return entry.content, true, nil
}

// Set stores content stamped with the current clock time
func (c *DocumentCache) Set(ctx context.Context, key, content string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictLocked()
	c.entries[key] = cacheEntry{content: content, storedAt: c.clock.Now()}
	return nil
}

// Purge drops every entry
func (c *DocumentCache) Purge(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
	return nil
}

// TTL returns the configured time-to-live
func (c *DocumentCache) TTL() time.Duration {
	return c.ttl
}

// Evict removes expired entries and returns how many were dropped
func (c *DocumentCache) Evict() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictLocked()
}

func (c *DocumentCache) evictLocked() int {
	evicted := 0
	for key, entry := range c.entries {
		if !c.fresh(entry) {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of stored entries, expired or not
func (c *DocumentCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *DocumentCache) fresh(entry cacheEntry) bool {
	return c.clock.Now().Sub(entry.storedAt) < c.ttl
}

package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentCache = (*DocumentCache)(nil)

const (
	// documentPrefix namespaces cached program documents
	documentPrefix = "legislativas:doc:"

	// DefaultTTL matches the in-memory cache
	DefaultTTL = 5 * time.Minute

	scanBatch = 100
)

// DocumentCache implements driven.DocumentCache using Redis.
// Entries use Redis TTL for expiration so replicas share one view.
type DocumentCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDocumentCache creates a new Redis-backed DocumentCache
func NewDocumentCache(client *redis.Client, ttl time.Duration) *DocumentCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &DocumentCache{client: client, ttl: ttl}
}

// Get returns the cached content for key
func (c *DocumentCache) Get(ctx context.Context, key string) (string, bool, error) {
	content, err := c.client.Get(ctx, documentPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get document: %w", err)
	}
	return content, true, nil
}

// Set stores content with the cache TTL
func (c *DocumentCache) Set(ctx context.Context, key, content string) error {
	if err := c.client.Set(ctx, documentPrefix+key, content, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set document: %w", err)
	}
	return nil
}

// Purge deletes every cached document.
// Keys are collected with SCAN first and deleted afterwards in batches, so
// deletes never move the scan cursor.
func (c *DocumentCache) Purge(ctx context.Context) error {
	var keys []string
	iter := c.client.Scan(ctx, 0, documentPrefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan documents: %w", err)
	}

	for start := 0; start < len(keys); start += scanBatch {
		end := min(start+scanBatch, len(keys))
		if err := c.client.Del(ctx, keys[start:end]...).Err(); err != nil {
			return fmt.Errorf("failed to delete documents: %w", err)
		}
	}
	return nil
}

// TTL returns the configured time-to-live
func (c *DocumentCache) TTL() time.Duration {
	return c.ttl
}

// Ping checks if Redis is reachable
func (c *DocumentCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

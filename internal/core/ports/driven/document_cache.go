package driven

import (
	"context"
	"time"
)

// DocumentCache stores fetched program text keyed by URL.
// Implementations must never return an entry older than their TTL.
type DocumentCache interface {
	// Get returns the cached content and true on a fresh hit
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores content stamped with the current time
	Set(ctx context.Context, key, content string) error

	// Purge drops every cached document
	Purge(ctx context.Context) error

	// TTL returns the configured time-to-live
	TTL() time.Duration
}

// Clock abstracts the current time so cache expiry can be tested
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall clock
type SystemClock struct{}

// Now returns time.Now()
func (SystemClock) Now() time.Time { return time.Now() }

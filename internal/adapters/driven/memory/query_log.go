package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.QueryLog = (*QueryLog)(nil)

// DefaultQueryLogSize is the number of records kept in memory
const DefaultQueryLogSize = 1000

// QueryLog keeps the most recent query records in a fixed-size ring
type QueryLog struct {
	mu      sync.Mutex
	records []*domain.QueryRecord
	next    int
	full    bool
}

// NewQueryLog creates a ring holding up to size records
func NewQueryLog(size int) *QueryLog {
	if size <= 0 {
		size = DefaultQueryLogSize
	}
	return &QueryLog{records: make([]*domain.QueryRecord, size)}
}

// Record appends a record, overwriting the oldest when full
func (l *QueryLog) Record(ctx context.Context, rec *domain.QueryRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records[l.next] = rec
	l.next = (l.next + 1) % len(l.records)
	if l.next == 0 {
		l.full = true
	}
	return nil
}

// Recent returns up to limit records, newest first
func (l *QueryLog) Recent(ctx context.Context, limit int) ([]*domain.QueryRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	count := l.next
	if l.full {
		count = len(l.records)
	}
	if limit <= 0 || limit > count {
		limit = count
	}

	out := make([]*domain.QueryRecord, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (l.next - i + len(l.records)) % len(l.records)
		out = append(out, l.records[idx])
	}
	return out, nil
}

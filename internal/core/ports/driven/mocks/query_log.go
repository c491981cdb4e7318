package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
)

// Ensure MockQueryLog implements QueryLog
var _ driven.QueryLog = (*MockQueryLog)(nil)

// MockQueryLog is a mock implementation of QueryLog for testing
type MockQueryLog struct {
	mu      sync.Mutex
	records []*domain.QueryRecord
	err     error
}

// NewMockQueryLog creates a new MockQueryLog
func NewMockQueryLog() *MockQueryLog {
	return &MockQueryLog{}
}

func (m *MockQueryLog) Record(ctx context.Context, rec *domain.QueryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *MockQueryLog) Recent(ctx context.Context, limit int) ([]*domain.QueryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.QueryRecord, 0, len(m.records))
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

// Helper methods for testing

func (m *MockQueryLog) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Records returns all recorded queries in insertion order
func (m *MockQueryLog) Records() []*domain.QueryRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.QueryRecord, len(m.records))
	copy(out, m.records)
	return out
}

package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
)

// Ensure MockDocumentCache implements DocumentCache
var _ driven.DocumentCache = (*MockDocumentCache)(nil)

// MockDocumentCache is a map-backed DocumentCache without expiry
type MockDocumentCache struct {
	mu      sync.Mutex
	entries map[string]string
	getErr  error
	setErr  error
	purges  int
}

// NewMockDocumentCache creates a new MockDocumentCache
func NewMockDocumentCache() *MockDocumentCache {
	return &MockDocumentCache{entries: make(map[string]string)}
}

func (m *MockDocumentCache) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	content, ok := m.entries[key]
	return content, ok, nil
}

func (m *MockDocumentCache) Set(ctx context.Context, key, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[key] = content
	return nil
}

func (m *MockDocumentCache) Purge(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]string)
	m.purges++
	return nil
}

func (m *MockDocumentCache) TTL() time.Duration {
	return 5 * time.Minute
}

// Helper methods for testing

func (m *MockDocumentCache) SetErrors(getErr, setErr error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getErr = getErr
	m.setErr = setErr
}

func (m *MockDocumentCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *MockDocumentCache) Purges() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.purges
}

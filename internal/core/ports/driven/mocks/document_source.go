package mocks

import (
	"context"
	"net/http"
	"sync"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
)

// Ensure MockDocumentSource implements DocumentSource
var _ driven.DocumentSource = (*MockDocumentSource)(nil)

// MockDocumentSource is an in-memory document host for testing.
// Unknown URLs answer with a 404 UpstreamError.
type MockDocumentSource struct {
	mu       sync.Mutex
	docs     map[string]string
	failures map[string]error
	calls    map[string]int
}

// NewMockDocumentSource creates a new MockDocumentSource
func NewMockDocumentSource() *MockDocumentSource {
	return &MockDocumentSource{
		docs:     make(map[string]string),
		failures: make(map[string]error),
		calls:    make(map[string]int),
	}
}

func (m *MockDocumentSource) Fetch(ctx context.Context, url string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[url]++

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err, ok := m.failures[url]; ok {
		return "", err
	}
	content, ok := m.docs[url]
	if !ok {
		return "", &domain.UpstreamError{StatusCode: http.StatusNotFound, Status: http.StatusText(http.StatusNotFound)}
	}
	return content, nil
}

// Helper methods for testing

func (m *MockDocumentSource) Put(url, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[url] = content
	delete(m.failures, url)
}

func (m *MockDocumentSource) Fail(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[url] = err
}

// Calls returns the number of fetches for url
func (m *MockDocumentSource) Calls(url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[url]
}

// TotalCalls returns the number of fetches across all URLs
func (m *MockDocumentSource) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

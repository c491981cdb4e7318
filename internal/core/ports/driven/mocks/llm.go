package mocks

import (
	"context"
	"sync"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
)

// Ensure MockLLMService implements LLMService
var _ driven.LLMService = (*MockLLMService)(nil)

// MockLLMService is a mock implementation of LLMService for testing.
// It returns a fixed response and records every request it receives.
type MockLLMService struct {
	mu       sync.Mutex
	model    string
	response string
	err      error
	pingErr  error
	requests []domain.ChatRequest
}

// NewMockLLMService creates a new MockLLMService
func NewMockLLMService() *MockLLMService {
	return &MockLLMService{
		model:    "mock-chat-model",
		response: "mock answer",
	}
}

func (m *MockLLMService) Complete(ctx context.Context, req domain.ChatRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, req)
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *MockLLMService) Model() string {
	return m.model
}

func (m *MockLLMService) Ping(ctx context.Context) error {
	return m.pingErr
}

func (m *MockLLMService) Close() error {
	return nil
}

// Helper methods for testing

func (m *MockLLMService) SetResponse(response string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.response = response
	m.err = nil
}

func (m *MockLLMService) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockLLMService) SetPingError(err error) {
	m.pingErr = err
}

func (m *MockLLMService) SetModel(model string) {
	m.model = model
}

// Calls returns the number of Complete calls
func (m *MockLLMService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// LastRequest returns the most recent request, or false if none
func (m *MockLLMService) LastRequest() (domain.ChatRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return domain.ChatRequest{}, false
	}
	return m.requests[len(m.requests)-1], true
}

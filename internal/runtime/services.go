package runtime

import (
	"context"
	"sync"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
)

// Services holds references to dynamically configurable services.
// The LLM service is nil until an API key is configured and can be
// replaced while the server is running.
// Thread-safe for concurrent access.
type Services struct {
	mu sync.RWMutex

	// Config tracks capability flags
	config *domain.RuntimeConfig

	// Dynamic services (can be nil)
	llmService driven.LLMService
}

// NewServices creates a new Services registry
func NewServices(config *domain.RuntimeConfig) *Services {
	if config == nil {
		config = domain.NewRuntimeConfig("memory", "memory")
	}
	return &Services{
		config: config,
	}
}

// Config returns the runtime configuration
func (s *Services) Config() *domain.RuntimeConfig {
	return s.config
}

// LLMService returns the current LLM service (may be nil)
func (s *Services) LLMService() driven.LLMService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.llmService
}

// SetLLMService updates the LLM service.
// Closes the old service if present. Updates config flags.
func (s *Services) SetLLMService(svc driven.LLMService) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.llmService != nil && s.llmService != svc {
		_ = s.llmService.Close()
	}

	s.llmService = svc
	if svc != nil {
		s.config.SetLLM(true, svc.Model())
	} else {
		s.config.SetLLM(false, "")
	}
}

// Close shuts down all services
func (s *Services) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if s.llmService != nil {
		err = s.llmService.Close()
		s.llmService = nil
	}
	s.config.SetLLM(false, "")

	return err
}

// ValidateAndSetLLM validates connectivity before setting LLM service
func (s *Services) ValidateAndSetLLM(ctx context.Context, svc driven.LLMService) error {
	if svc == nil {
		s.SetLLMService(nil)
		return nil
	}

	if err := svc.Ping(ctx); err != nil {
		_ = svc.Close()
		return err
	}

	s.SetLLMService(svc)
	return nil
}

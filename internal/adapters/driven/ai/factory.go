package ai

import (
	"fmt"
	"math"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
)

// Ensure Factory implements AIServiceFactory
var _ driven.AIServiceFactory = (*Factory)(nil)

// Factory creates AI services based on configuration
type Factory struct{}

// NewFactory creates a new AI service factory
func NewFactory() *Factory {
	return &Factory{}
}

// CreateLLMService creates an LLM service from settings. Unconfigured
// settings yield a nil service and no error.
func (f *Factory) CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	var (
		svc driven.LLMService
		err error
	)
	switch settings.Provider {
	case domain.AIProviderDeepSeek:
		svc, err = newChat(settings, DefaultDeepSeekModel, DefaultDeepSeekURL)
	case domain.AIProviderOpenAI:
		svc, err = newChat(settings, DefaultOpenAIModel, DefaultOpenAIURL)
	case domain.AIProviderAnthropic:
		svc, err = NewAnthropicLLM(settings.APIKey, settings.Model, settings.BaseURL, settings.Timeout)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProvider, settings.Provider)
	}
	if err != nil {
		return nil, err
	}

	if settings.RatePerSecond > 0 {
		burst := int(math.Ceil(settings.RatePerSecond))
		svc = NewRateLimitedLLM(svc, settings.RatePerSecond, burst)
	}
	return svc, nil
}

func newChat(settings *domain.LLMSettings, model, endpoint string) (*OpenAIChat, error) {
	if settings.Model != "" {
		model = settings.Model
	}
	if settings.BaseURL != "" {
		endpoint = settings.BaseURL
	}
	return NewOpenAIChat(settings.APIKey, model, endpoint, settings.Timeout)
}

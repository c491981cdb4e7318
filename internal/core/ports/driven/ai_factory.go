package driven

import (
	"github.com/custodia-labs/legislativas/internal/core/domain"
)

// AIServiceFactory creates AI services based on configuration
type AIServiceFactory interface {
	// CreateLLMService creates an LLM service from settings
	// Returns nil, nil if settings are not configured
	CreateLLMService(settings *domain.LLMSettings) (LLMService, error)
}

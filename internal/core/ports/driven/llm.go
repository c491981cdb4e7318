package driven

import (
	"context"

	"github.com/custodia-labs/legislativas/internal/core/domain"
)

// LLMService sends chat-completion requests to a hosted model
type LLMService interface {
	// Complete returns the text of the first completion choice.
	// Non-success responses are returned as *domain.UpstreamError and an
	// answer without choices as domain.ErrEmptyCompletion.
	Complete(ctx context.Context, req domain.ChatRequest) (string, error)

	// Model returns the model name being used
	Model() string

	// Ping verifies the LLM service is reachable
	Ping(ctx context.Context) error

	// Close releases resources held by the LLM service
	Close() error
}

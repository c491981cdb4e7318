package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
)

// Ensure AnthropicLLM implements LLMService
var _ driven.LLMService = (*AnthropicLLM)(nil)

// DefaultAnthropicModel is used when no model is configured
const DefaultAnthropicModel = "claude-3-5-haiku-latest"

// AnthropicLLM implements LLMService using the Anthropic Messages API
type AnthropicLLM struct {
	client *anthropic.Client
	model  string
}

// NewAnthropicLLM creates a new Anthropic-backed LLM service.
// baseURL is optional and only needed for proxies.
func NewAnthropicLLM(apiKey, model, baseURL string, timeout time.Duration) (*AnthropicLLM, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", domain.ErrNotConfigured)
	}
	if model == "" {
		model = DefaultAnthropicModel
	}
	if timeout <= 0 {
		timeout = DefaultLLMTimeout
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := anthropic.NewClient(opts...)
	return &AnthropicLLM{
		client: &client,
		model:  model,
	}, nil
}

// Complete sends the request as a single Messages call. System messages are
// joined into the system prompt; the rest are sent as user turns.
func (a *AnthropicLLM) Complete(ctx context.Context, req domain.ChatRequest) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = domain.DefaultCompletionTokens
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(a.model),
		MaxTokens:   int64(maxTokens),
		Temperature: anthropic.Float(req.Temperature),
	}
	for _, m := range req.Messages {
		switch m.Role {
		case domain.ChatRoleSystem:
			params.System = append(params.System, anthropic.TextBlockParam{Text: m.Content})
		default:
			params.Messages = append(params.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		}
	}

	resp, err := a.client.Messages.New(ctx, params)
	if err != nil {
		return "", mapAnthropicError(err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", domain.ErrEmptyCompletion
	}
	return b.String(), nil
}

// Model returns the model name being used
func (a *AnthropicLLM) Model() string {
	return a.model
}

// Ping sends a one-token request to validate the key and model
func (a *AnthropicLLM) Ping(ctx context.Context) error {
	_, err := a.Complete(ctx, domain.ChatRequest{
		Messages:  []domain.ChatMessage{{Role: domain.ChatRoleUser, Content: "ping"}},
		MaxTokens: 1,
	})
	if errors.Is(err, domain.ErrEmptyCompletion) {
		return nil
	}
	return err
}

// Close is a no-op; the SDK client holds no resources of its own
func (a *AnthropicLLM) Close() error {
	return nil
}

// mapAnthropicError turns SDK status errors into UpstreamError
func mapAnthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &domain.UpstreamError{
			StatusCode: apiErr.StatusCode,
			Status:     http.StatusText(apiErr.StatusCode),
			Message:    errorMessage([]byte(apiErr.RawJSON())),
		}
	}
	return fmt.Errorf("anthropic request failed: %w", err)
}

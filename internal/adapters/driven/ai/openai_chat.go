package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
)

// Ensure OpenAIChat implements LLMService
var _ driven.LLMService = (*OpenAIChat)(nil)

const (
	// DefaultDeepSeekURL is the chat-completions endpoint used when none is configured
	DefaultDeepSeekURL = "https://api.deepseek.com/chat/completions"

	// DefaultDeepSeekModel is the model used when none is configured
	DefaultDeepSeekModel = "deepseek-chat"

	// DefaultOpenAIURL is the OpenAI chat-completions endpoint
	DefaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

	// DefaultOpenAIModel is the OpenAI model used when none is configured
	DefaultOpenAIModel = "gpt-4o-mini"

	// DefaultLLMTimeout bounds a single completion request
	DefaultLLMTimeout = 60 * time.Second
)

// maxErrorBody caps how much of an error response is kept
const maxErrorBody = 4096

// OpenAIChat implements LLMService against any OpenAI-compatible
// chat-completions endpoint (DeepSeek, OpenAI, local gateways).
type OpenAIChat struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

// NewOpenAIChat creates a chat-completions client. endpoint is the full URL
// of the chat-completions resource.
func NewOpenAIChat(apiKey, model, endpoint string, timeout time.Duration) (*OpenAIChat, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: API key is required", domain.ErrNotConfigured)
	}
	if model == "" {
		model = DefaultDeepSeekModel
	}
	if endpoint == "" {
		endpoint = DefaultDeepSeekURL
	}
	if timeout <= 0 {
		timeout = DefaultLLMTimeout
	}

	return &OpenAIChat{
		apiKey:   apiKey,
		model:    model,
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// chatRequest is the request body for the chat-completions API
type chatRequest struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	MaxTokens   int                  `json:"max_tokens,omitempty"`
	Temperature float64              `json:"temperature"`
}

// chatResponse is the response from the chat-completions API
type chatResponse struct {
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// chatErrorResponse is the body returned with non-2xx statuses
type chatErrorResponse struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// Complete sends one chat-completion request and returns the first choice.
func (c *OpenAIChat) Complete(ctx context.Context, req domain.ChatRequest) (string, error) {
	resp, err := c.doRequest(ctx, chatRequest{
		Model:       c.model,
		Messages:    req.Messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", domain.ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

// Model returns the model name being used
func (c *OpenAIChat) Model() string {
	return c.model
}

// Ping verifies the endpoint accepts our credentials with a one-token completion
func (c *OpenAIChat) Ping(ctx context.Context) error {
	_, err := c.Complete(ctx, domain.ChatRequest{
		Messages:  []domain.ChatMessage{{Role: domain.ChatRoleUser, Content: "ping"}},
		MaxTokens: 1,
	})
	if errors.Is(err, domain.ErrEmptyCompletion) {
		return nil
	}
	return err
}

// Close releases idle connections
func (c *OpenAIChat) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// doRequest makes a request to the chat-completions API
func (c *OpenAIChat) doRequest(ctx context.Context, reqBody chatRequest) (*chatResponse, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, upstreamError(resp)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &chatResp, nil
}

// upstreamError converts a non-2xx response into an UpstreamError. A JSON
// body contributes only its error.message; Body is kept for plain text.
func upstreamError(resp *http.Response) *domain.UpstreamError {
	upErr := &domain.UpstreamError{
		StatusCode: resp.StatusCode,
		Status:     http.StatusText(resp.StatusCode),
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if json.Valid(raw) {
		upErr.Message = errorMessage(raw)
		return upErr
	}
	upErr.Body = strings.TrimSpace(string(raw))
	return upErr
}

// errorMessage extracts error.message from a provider error body
func errorMessage(raw []byte) string {
	var errResp chatErrorResponse
	if err := json.Unmarshal(raw, &errResp); err != nil || errResp.Error == nil {
		return ""
	}
	return errResp.Error.Message
}

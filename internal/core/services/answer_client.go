package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
	"github.com/custodia-labs/legislativas/internal/runtime"
)

const (
	// DefaultAnswerMaxTokens caps the completion length
	DefaultAnswerMaxTokens = domain.DefaultCompletionTokens

	// DefaultAnswerTemperature keeps answers close to the source text
	DefaultAnswerTemperature = 0.2
)

const answerSystemPrompt = `You are an AI assistant specialized in analyzing Portuguese political party electoral programs. 
Your answers must be based *exclusively* on the provided "Context" from the party programs. 
Do not use any external knowledge or make assumptions beyond what is written in the context.
If the answer cannot be found in the provided context, clearly state that the information is not available in the documents.
Keep your answers concise, factual, and directly relevant to the user's question.
When citing information, you can refer to the party name if relevant (e.g., "According to Party X's program...").
Format your answer using Markdown for readability (e.g., lists, bolding for emphasis) if it enhances clarity.
If the user asks to compare two or more parties on a specific topic, present the comparison in a well-formatted Markdown table where appropriate.
Answer in Portuguese unless the user's question is in English. If the question is in English, answer in English. If the question is in Portuguese, answer in Portuguese.`

// Messages returned to the user instead of an answer.
const (
	msgNotConfigured = "Error: The AI service is not configured. Missing API key."
	msgEmptyAnswer   = "Error: Received an empty or invalid response from the AI service."
)

// AnswerClient asks the configured LLM to answer a question from a context.
// It never fails: every error is rendered as a user-facing message.
type AnswerClient struct {
	services    *runtime.Services
	maxTokens   int
	temperature float64
	logger      *slog.Logger
}

// AnswerClientConfig holds dependencies for AnswerClient.
type AnswerClientConfig struct {
	Services    *runtime.Services
	MaxTokens   int
	Temperature *float64
	Logger      *slog.Logger
}

// NewAnswerClient creates a new answer client.
func NewAnswerClient(cfg AnswerClientConfig) *AnswerClient {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultAnswerMaxTokens
	}
	temperature := DefaultAnswerTemperature
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}

	return &AnswerClient{
		services:    cfg.Services,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// Answer sends one chat request and returns the trimmed answer or an
// explanatory message.
func (c *AnswerClient) Answer(ctx context.Context, contextText, question string, partyNames []string) string {
	var llm driven.LLMService
	if c.services != nil {
		llm = c.services.LLMService()
	}
	if llm == nil {
		return msgNotConfigured
	}

	req := domain.ChatRequest{
		Messages: []domain.ChatMessage{
			{Role: domain.ChatRoleSystem, Content: answerSystemPrompt},
			{Role: domain.ChatRoleUser, Content: BuildUserPrompt(contextText, question, partyNames)},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	answer, err := llm.Complete(ctx, req)
	if err != nil {
		c.logger.Error("ai service call failed", "error", err)
		return describeLLMError(err)
	}
	return strings.TrimSpace(answer)
}

// BuildUserPrompt wraps the context and question in the answer instructions.
func BuildUserPrompt(contextText, question string, partyNames []string) string {
	mention := "the provided electoral programs"
	if len(partyNames) > 0 {
		mention = "the electoral programs of " + strings.Join(partyNames, " and ")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Context from %s:\n", mention)
	b.WriteString("--- BEGIN CONTEXT ---\n")
	b.WriteString(contextText)
	b.WriteString("\n--- END CONTEXT ---\n\n")
	fmt.Fprintf(&b, "User's Question: \"%s\"\n\n", question)
	b.WriteString("Based *only* on the context provided above, please answer the user's question.\n")
	b.WriteString("Answer:")
	return strings.TrimSpace(b.String())
}

// describeLLMError renders an LLM failure as the message shown to the user.
func describeLLMError(err error) string {
	if errors.Is(err, domain.ErrNotConfigured) {
		return msgNotConfigured
	}
	if errors.Is(err, domain.ErrEmptyCompletion) {
		return msgEmptyAnswer
	}

	var upErr *domain.UpstreamError
	if errors.As(err, &upErr) {
		detail := ""
		switch {
		case upErr.Message != "":
			detail = " Message: " + upErr.Message
		case upErr.Body != "":
			detail = " Details: " + upErr.Body
		case upErr.Status != "":
			detail = " Reason: " + upErr.Status
		}
		return fmt.Sprintf("AI service request failed with status %d.%s", upErr.StatusCode, detail)
	}

	return "Error communicating with the AI service: " + err.Error()
}

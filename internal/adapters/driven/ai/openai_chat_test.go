package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/legislativas/internal/core/domain"
)

func TestNewOpenAIChat_RequiresAPIKey(t *testing.T) {
	_, err := NewOpenAIChat("", "", "", 0)
	if !errors.Is(err, domain.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got %v", err)
	}
}

func TestNewOpenAIChat_Defaults(t *testing.T) {
	chat, err := NewOpenAIChat("sk-test", "", "", 0)
	require.NoError(t, err)

	assert.Equal(t, DefaultDeepSeekModel, chat.model)
	assert.Equal(t, DefaultDeepSeekURL, chat.endpoint)
	assert.Equal(t, DefaultLLMTimeout, chat.client.Timeout)
}

func TestOpenAIChat_Complete(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"  O PS propõe...  "},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	chat, err := NewOpenAIChat("sk-test", "deepseek-chat", server.URL, time.Second)
	require.NoError(t, err)

	answer, err := chat.Complete(context.Background(), domain.ChatRequest{
		Messages: []domain.ChatMessage{
			{Role: domain.ChatRoleSystem, Content: "system"},
			{Role: domain.ChatRoleUser, Content: "question"},
		},
		MaxTokens:   1536,
		Temperature: 0.2,
	})
	require.NoError(t, err)

	assert.Equal(t, "  O PS propõe...  ", answer)
	assert.Equal(t, "deepseek-chat", got.Model)
	assert.Equal(t, 1536, got.MaxTokens)
	assert.InDelta(t, 0.2, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "question", got.Messages[1].Content)
}

func TestOpenAIChat_Complete_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	chat, err := NewOpenAIChat("sk-test", "", server.URL, time.Second)
	require.NoError(t, err)

	_, err = chat.Complete(context.Background(), domain.ChatRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyCompletion)
}

func TestOpenAIChat_Complete_StructuredError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"Authentication Fails","type":"authentication_error","code":"invalid_request_error"}}`))
	}))
	defer server.Close()

	chat, err := NewOpenAIChat("sk-bad", "", server.URL, time.Second)
	require.NoError(t, err)

	_, err = chat.Complete(context.Background(), domain.ChatRequest{})

	var upErr *domain.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusUnauthorized, upErr.StatusCode)
	assert.Equal(t, "Unauthorized", upErr.Status)
	assert.Equal(t, "Authentication Fails", upErr.Message)
	assert.Empty(t, upErr.Body)
}

func TestOpenAIChat_Complete_JSONErrorWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"detail":"overloaded","retry":true}`))
	}))
	defer server.Close()

	chat, err := NewOpenAIChat("sk-test", "", server.URL, time.Second)
	require.NoError(t, err)

	_, err = chat.Complete(context.Background(), domain.ChatRequest{})

	var upErr *domain.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusServiceUnavailable, upErr.StatusCode)
	assert.Equal(t, "Service Unavailable", upErr.Status)
	assert.Empty(t, upErr.Message)
	assert.Empty(t, upErr.Body, "structured bodies fall back to the status text")
}

func TestOpenAIChat_Complete_PlainTextError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream connect error\n"))
	}))
	defer server.Close()

	chat, err := NewOpenAIChat("sk-test", "", server.URL, time.Second)
	require.NoError(t, err)

	_, err = chat.Complete(context.Background(), domain.ChatRequest{})

	var upErr *domain.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusBadGateway, upErr.StatusCode)
	assert.Empty(t, upErr.Message)
	assert.Equal(t, "upstream connect error", upErr.Body)
}

func TestOpenAIChat_Complete_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	// Runs before server.Close so the handler can return
	defer close(release)

	chat, err := NewOpenAIChat("sk-test", "", server.URL, 5*time.Second)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = chat.Complete(ctx, domain.ChatRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestOpenAIChat_Ping(t *testing.T) {
	var maxTokens int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		maxTokens = req.MaxTokens
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"p"}}]}`))
	}))
	defer server.Close()

	chat, err := NewOpenAIChat("sk-test", "", server.URL, time.Second)
	require.NoError(t, err)

	assert.NoError(t, chat.Ping(context.Background()))
	assert.Equal(t, 1, maxTokens)
	assert.NoError(t, chat.Close())
}

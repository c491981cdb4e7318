package domain

import (
	"errors"
	"fmt"
)

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrInvalidProvider indicates an unknown AI provider was specified
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrNotConfigured indicates the AI service has no credentials
	ErrNotConfigured = errors.New("ai service not configured")

	// ErrEmptyCompletion indicates the model returned no usable choice
	ErrEmptyCompletion = errors.New("empty completion")
)

// UpstreamError is returned by LLM adapters when the provider answers with a
// non-success status. Message holds the provider's structured error message,
// Body the raw text when the body was not structured.
type UpstreamError struct {
	StatusCode int
	Status     string
	Message    string
	Body       string
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Message)
	case e.Body != "":
		return fmt.Sprintf("upstream status %d: %s", e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("upstream status %d", e.StatusCode)
	}
}

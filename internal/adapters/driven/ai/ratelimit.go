package ai

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
)

// Ensure RateLimitedLLM implements LLMService
var _ driven.LLMService = (*RateLimitedLLM)(nil)

// RateLimitedLLM throttles completions with a token bucket before they reach
// the wrapped service. Ping and Close pass through unthrottled.
type RateLimitedLLM struct {
	next   driven.LLMService
	bucket *rate.Limiter
}

// NewRateLimitedLLM wraps next with a limiter of perSecond requests and the
// given burst. A burst below one is raised to one.
func NewRateLimitedLLM(next driven.LLMService, perSecond float64, burst int) *RateLimitedLLM {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedLLM{
		next:   next,
		bucket: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Complete waits for a token, then delegates
func (r *RateLimitedLLM) Complete(ctx context.Context, req domain.ChatRequest) (string, error) {
	if err := r.bucket.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	return r.next.Complete(ctx, req)
}

// Model returns the wrapped model name
func (r *RateLimitedLLM) Model() string {
	return r.next.Model()
}

// Ping delegates without consuming a token
func (r *RateLimitedLLM) Ping(ctx context.Context) error {
	return r.next.Ping(ctx)
}

// Close closes the wrapped service
func (r *RateLimitedLLM) Close() error {
	return r.next.Close()
}

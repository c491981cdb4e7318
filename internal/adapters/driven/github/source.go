package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.DocumentSource = (*RawSource)(nil)

const (
	// DefaultTimeout bounds a single document download
	DefaultTimeout = 15 * time.Second

	// DefaultMaxDocumentSize caps a document body in bytes
	DefaultMaxDocumentSize = 16 << 20
)

// ErrDocumentTooLarge is returned when a body exceeds the size cap
var ErrDocumentTooLarge = errors.New("document exceeds size limit")

// RawSource downloads raw Markdown files over HTTP.
// It makes exactly one request per call; there are no retries.
type RawSource struct {
	httpClient *http.Client
	maxSize    int64
}

// NewRawSource creates a source with the given request timeout.
func NewRawSource(timeout time.Duration) *RawSource {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &RawSource{
		httpClient: &http.Client{Timeout: timeout},
		maxSize:    DefaultMaxDocumentSize,
	}
}

// NewRawSourceWithClient creates a source using an existing HTTP client.
func NewRawSourceWithClient(client *http.Client) *RawSource {
	return &RawSource{httpClient: client, maxSize: DefaultMaxDocumentSize}
}

// Fetch returns the body of url. A non-2xx response is returned as
// *domain.UpstreamError.
func (s *RawSource) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/markdown, text/plain;q=0.9, */*;q=0.1")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return "", &domain.UpstreamError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		}
	}

	// One byte past the cap tells a full-size document from a truncated one
	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > s.maxSize {
		return "", fmt.Errorf("%w: more than %d bytes", ErrDocumentTooLarge, s.maxSize)
	}
	return string(body), nil
}

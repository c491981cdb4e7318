package postprocessors

import (
	"strings"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
)

// EmptyChunkFilter drops chunks with no visible content and renumbers the rest.
type EmptyChunkFilter struct{}

// Verify interface compliance
var _ driven.PostProcessor = (*EmptyChunkFilter)(nil)

// NewEmptyChunkFilter creates a new empty-chunk filter.
func NewEmptyChunkFilter() *EmptyChunkFilter {
	return &EmptyChunkFilter{}
}

// Process removes empty chunks.
func (f *EmptyChunkFilter) Process(chunks []domain.Chunk) []domain.Chunk {
	result := make([]domain.Chunk, 0, len(chunks))
	for _, chunk := range chunks {
		if strings.TrimSpace(chunk.Content) == "" {
			continue
		}
		chunk.Position = len(result)
		result = append(result, chunk)
	}
	return result
}

// Name returns the processor name.
func (f *EmptyChunkFilter) Name() string {
	return "empty-filter"
}

// Order returns 10 - runs after the chunker.
func (f *EmptyChunkFilter) Order() int {
	return 10
}

package postprocessors

import (
	"sort"
	"sync"
	"unicode/utf8"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.PostProcessorPipeline = (*Pipeline)(nil)

// Pipeline implements PostProcessorPipeline.
// It chains multiple post-processors in order, starting with a Chunker.
type Pipeline struct {
	mu         sync.RWMutex
	processors []driven.PostProcessor
	sorted     bool
}

// NewPipeline creates a new post-processor pipeline.
func NewPipeline() *Pipeline {
	return &Pipeline{
		processors: make([]driven.PostProcessor, 0),
	}
}

// Add adds a processor to the pipeline.
// Processors are sorted by Order() before processing.
func (p *Pipeline) Add(processor driven.PostProcessor) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processors = append(p.processors, processor)
	p.sorted = false
}

// Process applies all processors in order.
// Input is the raw document content.
// Output is the ordered chunks ready for context assembly.
func (p *Pipeline) Process(content string) []domain.Chunk {
	p.mu.Lock()
	if !p.sorted {
		sort.SliceStable(p.processors, func(i, j int) bool {
			return p.processors[i].Order() < p.processors[j].Order()
		})
		p.sorted = true
	}
	processors := make([]driven.PostProcessor, len(p.processors))
	copy(processors, p.processors)
	p.mu.Unlock()

	// Start with a single chunk containing all content
	chunks := []domain.Chunk{
		{
			Content:     content,
			Position:    0,
			StartOffset: 0,
			EndOffset:   utf8.RuneCountInString(content),
		},
	}

	for _, proc := range processors {
		chunks = proc.Process(chunks)
	}

	return chunks
}

// List returns processor names in order.
func (p *Pipeline) List() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, len(p.processors))
	for i, proc := range p.processors {
		names[i] = proc.Name()
	}
	return names
}

// DefaultPipeline creates a pipeline with the default processors.
func DefaultPipeline() *Pipeline {
	return NewChunkPipeline(DefaultChunkConfig())
}

// NewChunkPipeline creates the markdown chunker followed by the empty-chunk filter.
func NewChunkPipeline(config ChunkConfig) *Pipeline {
	p := NewPipeline()
	p.Add(NewChunker(config))
	p.Add(NewEmptyChunkFilter())
	return p
}

// Contents returns the text of each chunk in order.
func Contents(chunks []domain.Chunk) []string {
	out := make([]string, len(chunks))
	for i, c := range chunks {
		out[i] = c.Content
	}
	return out
}

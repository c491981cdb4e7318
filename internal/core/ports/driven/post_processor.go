package driven

import "github.com/custodia-labs/legislativas/internal/core/domain"

// PostProcessor transforms document content into chunks.
// Processors form a pipeline: Chunker -> Filter -> etc.
type PostProcessor interface {
	// Process applies post-processing to content chunks.
	// The first processor (Chunker) receives a single chunk with the full content.
	// Subsequent processors receive the chunks from the previous stage.
	Process(chunks []domain.Chunk) []domain.Chunk

	// Name returns the processor name for logging/debugging.
	Name() string

	// Order returns the processor order in the pipeline (lower = earlier).
	// Chunker should be 0, subsequent processors increment from there.
	Order() int
}

// PostProcessorPipeline chains multiple post-processors in order.
type PostProcessorPipeline interface {
	// Process applies all processors in order.
	// Input is the raw document content.
	// Output is the ordered chunks ready for context assembly.
	Process(content string) []domain.Chunk

	// Add adds a processor to the pipeline.
	// Processors are sorted by Order() before processing.
	Add(processor PostProcessor)

	// List returns processor names in order.
	List() []string
}

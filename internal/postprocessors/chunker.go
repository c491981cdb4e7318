package postprocessors

import (
	"unicode"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
)

// ChunkConfig configures the chunker behavior.
// Sizes are measured in Unicode code points.
type ChunkConfig struct {
	// TargetSize is the maximum characters per chunk
	TargetSize int

	// Overlap is the character overlap between consecutive windows of one section
	Overlap int
}

// DefaultChunkConfig returns the production defaults.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		TargetSize: domain.DefaultChunkTargetSize,
		Overlap:    domain.DefaultChunkOverlap,
	}
}

var (
	paragraphBreak  = []rune("\n\n")
	subheadingBreak = []rune("\n### ")
)

// Chunker splits Markdown content into section-aware overlapping chunks.
// This is the first processor in the pipeline (Order = 0).
//
// Sections start at lines beginning with a second-level heading ("## ").
// Sections larger than TargetSize are cut with a sliding window that prefers
// paragraph breaks, then "### " subheadings, and falls back to a hard cut.
type Chunker struct {
	config ChunkConfig
}

// Verify interface compliance
var _ driven.PostProcessor = (*Chunker)(nil)

// NewChunker creates a new chunker with the given config.
// Non-positive values fall back to the defaults.
func NewChunker(config ChunkConfig) *Chunker {
	if config.TargetSize <= 0 {
		config.TargetSize = domain.DefaultChunkTargetSize
	}
	if config.Overlap < 0 || config.Overlap >= config.TargetSize {
		config.Overlap = 0
	}
	return &Chunker{config: config}
}

// Process splits each input chunk and numbers the results sequentially.
func (c *Chunker) Process(chunks []domain.Chunk) []domain.Chunk {
	var result []domain.Chunk
	for _, chunk := range chunks {
		for _, sp := range c.split([]rune(chunk.Content)) {
			sp.Position = len(result)
			sp.StartOffset += chunk.StartOffset
			sp.EndOffset += chunk.StartOffset
			result = append(result, sp)
		}
	}
	return result
}

// Name returns the processor name.
func (c *Chunker) Name() string {
	return "markdown-chunker"
}

// Order returns 0 - chunker should be first.
func (c *Chunker) Order() int {
	return 0
}

// Split chunks a single document and returns the chunk texts.
func (c *Chunker) Split(content string) []string {
	return Contents(c.Process([]domain.Chunk{{Content: content}}))
}

func (c *Chunker) split(doc []rune) []domain.Chunk {
	start, end := trimRunes(doc, 0, len(doc))
	if start == end {
		return nil
	}

	// A document that fits in one window stays whole.
	if end-start <= c.config.TargetSize {
		return []domain.Chunk{newChunk(doc, start, end)}
	}

	var chunks []domain.Chunk
	for _, sec := range sections(doc) {
		s, e := trimRunes(doc, sec[0], sec[1])
		if s == e {
			continue
		}
		if e-s <= c.config.TargetSize {
			chunks = append(chunks, newChunk(doc, s, e))
			continue
		}
		chunks = append(chunks, c.window(doc, s, e)...)
	}

	if len(chunks) == 0 {
		cut := min(start+c.config.TargetSize, end)
		s, e := trimRunes(doc, start, cut)
		if s < e {
			chunks = append(chunks, newChunk(doc, s, e))
		}
	}
	return chunks
}

// window slides over doc[from:to] emitting chunks of at most TargetSize.
func (c *Chunker) window(doc []rune, from, to int) []domain.Chunk {
	section := doc[from:to]
	n := len(section)
	target, overlap := c.config.TargetSize, c.config.Overlap

	var chunks []domain.Chunk
	pos := 0
	for pos < n {
		end := min(pos+target, n)
		if end < n {
			bp := lastIndexRunes(section, paragraphBreak, end)
			if bp <= pos+overlap {
				bp = lastIndexRunes(section, subheadingBreak, end)
			}
			if bp > pos+overlap {
				end = bp
			}
		}

		s, e := trimRunes(section, pos, end)
		if s < e {
			chunks = append(chunks, newChunk(doc, from+s, from+e))
		}

		next := end
		if end < n {
			next = end - overlap
		}
		// Always advance past the start of what was just emitted.
		if s == e || next <= s {
			next = end
		}
		pos = next
	}
	return chunks
}

// sections returns [start, end) ranges split before each "\n##<space>".
// The newline itself belongs to neither side.
func sections(doc []rune) [][2]int {
	var out [][2]int
	start := 0
	for i := 0; i+3 < len(doc); i++ {
		if doc[i] == '\n' && doc[i+1] == '#' && doc[i+2] == '#' && unicode.IsSpace(doc[i+3]) {
			out = append(out, [2]int{start, i})
			start = i + 1
		}
	}
	return append(out, [2]int{start, len(doc)})
}

// lastIndexRunes returns the last index i <= from where sep occurs in s, or -1.
func lastIndexRunes(s, sep []rune, from int) int {
	i := min(from, len(s)-len(sep))
	for ; i >= 0; i-- {
		match := true
		for j, r := range sep {
			if s[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// trimRunes narrows [start, end) to exclude leading and trailing whitespace.
func trimRunes(s []rune, start, end int) (int, int) {
	for start < end && unicode.IsSpace(s[start]) {
		start++
	}
	for end > start && unicode.IsSpace(s[end-1]) {
		end--
	}
	return start, end
}

func newChunk(doc []rune, start, end int) domain.Chunk {
	return domain.Chunk{
		Content:     string(doc[start:end]),
		StartOffset: start,
		EndOffset:   end,
	}
}

package postprocessors

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallChunker() *Chunker {
	return NewChunker(ChunkConfig{TargetSize: 100, Overlap: 20})
}

func TestDefaultChunkConfig(t *testing.T) {
	config := DefaultChunkConfig()

	if config.TargetSize != 6000 {
		t.Errorf("expected TargetSize 6000, got %d", config.TargetSize)
	}
	if config.Overlap != 200 {
		t.Errorf("expected Overlap 200, got %d", config.Overlap)
	}
}

func TestNewChunker_InvalidConfig(t *testing.T) {
	c := NewChunker(ChunkConfig{TargetSize: 0, Overlap: -5})
	assert.Equal(t, 6000, c.config.TargetSize)
	assert.Equal(t, 0, c.config.Overlap)

	c = NewChunker(ChunkConfig{TargetSize: 10, Overlap: 10})
	assert.Equal(t, 0, c.config.Overlap)
}

func TestChunker_NameAndOrder(t *testing.T) {
	c := NewChunker(DefaultChunkConfig())
	if c.Name() != "markdown-chunker" {
		t.Errorf("expected name 'markdown-chunker', got %s", c.Name())
	}
	if c.Order() != 0 {
		t.Errorf("expected order 0, got %d", c.Order())
	}
}

func TestChunker_ShortDocumentIsSingleChunk(t *testing.T) {
	c := NewChunker(DefaultChunkConfig())

	doc := "  \n## Saúde\nMais médicos.\n## Educação\nMais escolas.\n\n"
	chunks := c.Split(doc)

	require.Len(t, chunks, 1)
	assert.Equal(t, strings.TrimSpace(doc), chunks[0])
}

func TestChunker_SplitsOnSecondLevelHeadings(t *testing.T) {
	secA := "## A\n" + strings.Repeat("x", 60)
	secB := "## B\n" + strings.Repeat("y", 60)

	chunks := smallChunker().Split(secA + "\n" + secB)

	require.Len(t, chunks, 2)
	assert.Equal(t, secA, chunks[0])
	assert.Equal(t, secB, chunks[1])
}

func TestChunker_ThirdLevelHeadingDoesNotSplitSection(t *testing.T) {
	secA := "## A\n" + strings.Repeat("x", 60)
	doc := secA + "\n### sub\n" + strings.Repeat("y", 60)

	chunks := smallChunker().Split(doc)

	require.Len(t, chunks, 2)
	// The subheading is used as a break point inside the oversized section
	assert.Equal(t, secA, chunks[0])
	assert.True(t, strings.HasPrefix(chunks[1], strings.Repeat("x", 20)+"\n### sub\n"), chunks[1])
	assert.True(t, strings.HasSuffix(chunks[1], strings.Repeat("y", 60)))
}

func TestChunker_PrefersParagraphBreaks(t *testing.T) {
	section := strings.Repeat("p", 50) + "\n\n" + strings.Repeat("q", 80)

	chunks := smallChunker().Process(pipelineInput(section))

	require.Len(t, chunks, 3)
	assert.Equal(t, strings.Repeat("p", 50), chunks[0].Content)
	assert.Equal(t, strings.Repeat("p", 20)+"\n\n"+strings.Repeat("q", 78), chunks[1].Content)
	assert.Equal(t, strings.Repeat("q", 22), chunks[2].Content)

	assert.Equal(t, [2]int{0, 50}, [2]int{chunks[0].StartOffset, chunks[0].EndOffset})
	assert.Equal(t, [2]int{30, 130}, [2]int{chunks[1].StartOffset, chunks[1].EndOffset})
	assert.Equal(t, [2]int{110, 132}, [2]int{chunks[2].StartOffset, chunks[2].EndOffset})
}

func TestChunker_HardCutWithoutBreakPoints(t *testing.T) {
	doc := strings.Repeat("z", 1000)

	chunks := smallChunker().Split(doc)

	require.NotEmpty(t, chunks)
	for i, chunk := range chunks {
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 100, "chunk %d", i)
	}
	assert.Len(t, chunks[0], 100)
	assert.True(t, strings.HasSuffix(doc, chunks[len(chunks)-1]))
}

func TestChunker_CountsCodePoints(t *testing.T) {
	doc := strings.Repeat("é", 150)

	chunks := smallChunker().Split(doc)

	require.Len(t, chunks, 2)
	assert.Equal(t, 100, utf8.RuneCountInString(chunks[0]))
	assert.Equal(t, 70, utf8.RuneCountInString(chunks[1]))
}

func TestChunker_SkipsWhitespaceWindows(t *testing.T) {
	doc := "a" + strings.Repeat(" ", 300) + "b"

	chunks := smallChunker().Split(doc)

	assert.Equal(t, []string{"a", "b"}, chunks)
}

func TestChunker_ChunkInvariants(t *testing.T) {
	var b strings.Builder
	b.WriteString("# Programa Eleitoral\n\nIntrodução.\n\n")
	for i := 0; i < 12; i++ {
		fmt.Fprintf(&b, "## Capítulo %d\n\n", i)
		for j := 0; j < i*3+1; j++ {
			fmt.Fprintf(&b, "### Medida %d.%d\n\n", i, j)
			b.WriteString(strings.Repeat("Texto da medida com acentuação. ", 20+j))
			b.WriteString("\n\n")
		}
	}
	doc := b.String()

	chunks := NewChunker(DefaultChunkConfig()).Split(doc)

	require.Greater(t, len(chunks), 12)
	for i, chunk := range chunks {
		assert.NotEmpty(t, chunk, "chunk %d", i)
		assert.LessOrEqual(t, utf8.RuneCountInString(chunk), 6000, "chunk %d", i)
		assert.Equal(t, strings.TrimSpace(chunk), chunk, "chunk %d is not trimmed", i)
		assert.True(t, strings.Contains(doc, chunk), "chunk %d is not a substring", i)
	}
	assert.True(t, strings.HasPrefix(chunks[0], "# Programa Eleitoral"))
}

func TestChunker_OffsetsPointIntoDocument(t *testing.T) {
	doc := "## A\n" + strings.Repeat("uma frase. ", 30) + "\n## B\n" + strings.Repeat("outra. ", 40)
	runes := []rune(doc)

	for _, chunk := range smallChunker().Process(pipelineInput(doc)) {
		assert.Equal(t, string(runes[chunk.StartOffset:chunk.EndOffset]), chunk.Content)
	}
}

func TestLastIndexRunes(t *testing.T) {
	s := []rune("ab\n\ncd\n\nef")

	assert.Equal(t, 6, lastIndexRunes(s, paragraphBreak, 10))
	assert.Equal(t, 6, lastIndexRunes(s, paragraphBreak, 6))
	assert.Equal(t, 2, lastIndexRunes(s, paragraphBreak, 5))
	assert.Equal(t, -1, lastIndexRunes(s, paragraphBreak, 1))
	assert.Equal(t, -1, lastIndexRunes(s, subheadingBreak, 10))
}

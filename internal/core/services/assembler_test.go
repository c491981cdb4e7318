package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven/mocks"
	"github.com/custodia-labs/legislativas/internal/postprocessors"
)

func newTestAssembler(source *mocks.MockDocumentSource) *contextAssembler {
	roster := domain.DefaultRoster()
	fetcher := NewDocumentFetcher(DocumentFetcherConfig{
		Roster:  roster,
		BaseURL: testBaseURL,
		Source:  source,
		Cache:   mocks.NewMockDocumentCache(),
	})
	return NewContextAssembler(ContextAssemblerConfig{
		Roster:   roster,
		Fetcher:  fetcher,
		Pipeline: postprocessors.DefaultPipeline(),
	}).(*contextAssembler)
}

// longProgram returns a program of n sections that together exceed one chunk
func longProgram(party string, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "## %s secção %d\n%s\n", party, i, strings.Repeat("m", 600))
	}
	return b.String()
}

func putAll(source *mocks.MockDocumentSource, content func(p domain.Party) string) {
	for _, p := range domain.DefaultRoster().Parties() {
		source.Put(testBaseURL+p.Filename+".md", content(p))
	}
}

func TestContextAssembler_SingleSmallDocument(t *testing.T) {
	source := mocks.NewMockDocumentSource()
	source.Put(testBaseURL+"PS.md", "\n## Saúde\nMais médicos.\n")
	a := newTestAssembler(source)

	bundle, err := a.Assemble(context.Background(), []string{"PS"})
	require.NoError(t, err)

	want := "--- RELEVANT SECTIONS FROM Partido Socialista (PS) ---\n\n" +
		"## Saúde\nMais médicos." +
		"\n\n--- END SECTIONS FOR Partido Socialista (PS) ---\n\n"
	assert.Equal(t, want, bundle.Text)
	assert.Equal(t, []string{"PS"}, bundle.PartyIDs)
	assert.Equal(t, "\n## Saúde\nMais médicos.\n", bundle.SourceDocuments["PS"])
	assert.Equal(t, []string{"## Saúde\nMais médicos."}, bundle.ChunksByParty["PS"])
}

func TestContextAssembler_SelectionPolicy(t *testing.T) {
	tests := []struct {
		name       string
		parties    []string
		perParty   int
		separators int
	}{
		{name: "one party", parties: []string{"PS"}, perParty: 10, separators: 9},
		{name: "two parties", parties: []string{"PS", "AD"}, perParty: 3, separators: 4},
		{name: "three parties", parties: []string{"PS", "AD", "IL"}, perParty: 3, separators: 6},
		{name: "four parties", parties: []string{"PS", "AD", "IL", "BE"}, perParty: 1, separators: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := mocks.NewMockDocumentSource()
			putAll(source, func(p domain.Party) string { return longProgram(p.ID, 12) })
			a := newTestAssembler(source)

			bundle, err := a.Assemble(context.Background(), tt.parties)
			require.NoError(t, err)

			assert.Equal(t, tt.separators, strings.Count(bundle.Text, chunkSeparator))
			for _, id := range tt.parties {
				assert.Len(t, bundle.ChunksByParty[id], 12, "all chunks are kept for %s", id)
				assert.Contains(t, bundle.Text, fmt.Sprintf("## %s secção %d\n", id, tt.perParty-1))
				assert.NotContains(t, bundle.Text, fmt.Sprintf("## %s secção %d\n", id, tt.perParty))
			}
		})
	}
}

func TestContextAssembler_PreservesSelectionOrder(t *testing.T) {
	source := mocks.NewMockDocumentSource()
	putAll(source, func(p domain.Party) string { return "## " + p.ID + "\nconteúdo" })
	a := newTestAssembler(source)

	bundle, err := a.Assemble(context.Background(), []string{"PS", "AD", "BE"})
	require.NoError(t, err)

	ps := strings.Index(bundle.Text, "(PS) ---")
	ad := strings.Index(bundle.Text, "(AD) ---")
	be := strings.Index(bundle.Text, "(BE) ---")
	assert.True(t, ps >= 0 && ps < ad && ad < be, "unexpected order in %q", bundle.Text)
	assert.Equal(t, 2, strings.Count(bundle.Text, "---\n\n\n---"), "blocks are joined with a newline")
}

func TestContextAssembler_EmptySelectionUsesRoster(t *testing.T) {
	source := mocks.NewMockDocumentSource()
	putAll(source, func(p domain.Party) string { return "programa " + p.ID })
	a := newTestAssembler(source)

	bundle, err := a.Assemble(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultRoster().IDs(), bundle.PartyIDs)
	assert.Len(t, bundle.SourceDocuments, 8)
	assert.Equal(t, 8, strings.Count(bundle.Text, "--- RELEVANT SECTIONS FROM"))
}

func TestContextAssembler_FailedDocumentsAreVisible(t *testing.T) {
	source := mocks.NewMockDocumentSource()
	source.Put(testBaseURL+"PS.md", "programa PS")
	source.Fail(testBaseURL+"Livre.md", errors.New("timeout"))
	a := newTestAssembler(source)

	bundle, err := a.Assemble(context.Background(), []string{"PS", "L", "XX"})
	require.NoError(t, err)

	livre := "Error fetching program for L. Please try again later."
	assert.Contains(t, bundle.Text,
		"--- CONTENT FOR Livre (L) ---\n\n"+livre+"\n\n--- END CONTENT FOR Livre (L) ---\n\n")
	assert.Equal(t, livre, bundle.SourceDocuments["L"])
	assert.Equal(t, []string{livre}, bundle.ChunksByParty["L"])

	unknown := "Program for party ID 'XX' not found or mapping is missing."
	assert.Contains(t, bundle.Text, "--- CONTENT FOR XX (XX) ---\n\n"+unknown)
	assert.Contains(t, bundle.Text, "--- RELEVANT SECTIONS FROM Partido Socialista (PS) ---")
}

func TestContextAssembler_EmptyDocumentsProduceNoContext(t *testing.T) {
	source := mocks.NewMockDocumentSource()
	source.Put(testBaseURL+"PS.md", "   \n\n")
	a := newTestAssembler(source)

	bundle, err := a.Assemble(context.Background(), []string{"PS"})
	require.NoError(t, err)

	assert.True(t, bundle.Empty())
	assert.Empty(t, bundle.ChunksByParty["PS"])
	assert.Equal(t, "   \n\n", bundle.SourceDocuments["PS"])
}

func TestContextAssembler_CancelledContext(t *testing.T) {
	source := mocks.NewMockDocumentSource()
	a := newTestAssembler(source)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Assemble(ctx, []string{"PS"})
	assert.ErrorIs(t, err, context.Canceled)
}

// slowSource records how many fetches run at the same time
type slowSource struct {
	inflight atomic.Int32
	mu       sync.Mutex
	peak     int32
}

func (s *slowSource) Fetch(ctx context.Context, url string) (string, error) {
	n := s.inflight.Add(1)
	defer s.inflight.Add(-1)

	s.mu.Lock()
	if n > s.peak {
		s.peak = n
	}
	s.mu.Unlock()

	time.Sleep(20 * time.Millisecond)
	return "programa", nil
}

func TestContextAssembler_BoundedConcurrency(t *testing.T) {
	source := &slowSource{}
	roster := domain.DefaultRoster()
	a := NewContextAssembler(ContextAssemblerConfig{
		Roster:      roster,
		Fetcher:     NewDocumentFetcher(DocumentFetcherConfig{Roster: roster, BaseURL: testBaseURL, Source: source}),
		Pipeline:    postprocessors.DefaultPipeline(),
		Concurrency: 2,
	})

	bundle, err := a.Assemble(context.Background(), nil)
	require.NoError(t, err)

	assert.Len(t, bundle.PartyIDs, 8)
	assert.LessOrEqual(t, source.peak, int32(2))
	assert.Greater(t, source.peak, int32(0))
}

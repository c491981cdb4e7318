package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
	"github.com/custodia-labs/legislativas/internal/core/ports/driving"
)

// Ensure contextAssembler implements ContextAssembler
var _ driving.ContextAssembler = (*contextAssembler)(nil)

// DefaultFetchConcurrency bounds parallel program fetches per request.
const DefaultFetchConcurrency = 4

const chunkSeparator = "\n\n...\n\n"

// documentFetcher is the part of DocumentFetcher the assembler needs
type documentFetcher interface {
	Fetch(ctx context.Context, partyID string) *domain.Document
}

// contextAssembler builds the prompt context for a party selection
type contextAssembler struct {
	roster      *domain.Roster
	fetcher     documentFetcher
	pipeline    driven.PostProcessorPipeline
	policy      domain.SelectionPolicy
	concurrency int
	logger      *slog.Logger
}

// ContextAssemblerConfig holds dependencies for the context assembler.
type ContextAssemblerConfig struct {
	Roster      *domain.Roster
	Fetcher     documentFetcher
	Pipeline    driven.PostProcessorPipeline
	Policy      domain.SelectionPolicy // defaults to 10/3/1
	Concurrency int
	Logger      *slog.Logger
}

// NewContextAssembler creates a new ContextAssembler
func NewContextAssembler(cfg ContextAssemblerConfig) driving.ContextAssembler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	roster := cfg.Roster
	if roster == nil {
		roster = domain.DefaultRoster()
	}
	policy := cfg.Policy
	if len(policy) == 0 {
		policy = domain.DefaultSelectionPolicy()
	}
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultFetchConcurrency
	}

	return &contextAssembler{
		roster:      roster,
		fetcher:     cfg.Fetcher,
		pipeline:    cfg.Pipeline,
		policy:      policy,
		concurrency: concurrency,
		logger:      logger,
	}
}

// partyContent is the per-party result of fetch and chunk
type partyContent struct {
	doc    *domain.Document
	chunks []string
}

// Assemble fetches every selected party concurrently and concatenates
// the leading chunks of each program in selection order.
func (a *contextAssembler) Assemble(ctx context.Context, partyIDs []string) (*domain.ContextBundle, error) {
	ids := partyIDs
	if len(ids) == 0 {
		ids = a.roster.IDs()
	}

	results := make([]partyContent, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			doc := a.fetcher.Fetch(gctx, id)
			results[i] = partyContent{doc: doc}
			if doc.Available() {
				chunks := a.pipeline.Process(doc.Content)
				texts := make([]string, len(chunks))
				for j, c := range chunks {
					texts[j] = c.Content
				}
				results[i].chunks = texts
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("assemble context: %w", err)
	}

	perParty := a.policy.ChunksPerParty(len(ids))
	bundle := &domain.ContextBundle{
		PartyIDs:        ids,
		SourceDocuments: make(map[string]string, len(ids)),
		ChunksByParty:   make(map[string][]string, len(ids)),
	}

	blocks := make([]string, 0, len(ids))
	for i, id := range ids {
		res := results[i]
		name := a.roster.DisplayName(id)
		bundle.SourceDocuments[id] = res.doc.Text()

		if !res.doc.Available() {
			bundle.ChunksByParty[id] = []string{res.doc.Detail}
			blocks = append(blocks, fmt.Sprintf(
				"--- CONTENT FOR %s (%s) ---\n\n%s\n\n--- END CONTENT FOR %s (%s) ---\n\n",
				name, id, res.doc.Detail, name, id))
			continue
		}

		bundle.ChunksByParty[id] = res.chunks
		selected := res.chunks[:min(perParty, len(res.chunks))]
		if len(selected) == 0 {
			continue
		}
		blocks = append(blocks, fmt.Sprintf(
			"--- RELEVANT SECTIONS FROM %s (%s) ---\n\n%s\n\n--- END SECTIONS FOR %s (%s) ---\n\n",
			name, id, strings.Join(selected, chunkSeparator), name, id))
	}
	bundle.Text = strings.Join(blocks, "\n")

	a.logger.Debug("assembled context",
		"parties", len(ids),
		"chunks_per_party", perParty,
		"context_chars", len(bundle.Text))

	return bundle, nil
}

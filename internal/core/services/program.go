package services

import (
	"context"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
	"github.com/custodia-labs/legislativas/internal/core/ports/driving"
)

// Ensure programService implements ProgramService
var _ driving.ProgramService = (*programService)(nil)

// programService exposes single-party fetch and chunk for inspection
type programService struct {
	fetcher  documentFetcher
	pipeline driven.PostProcessorPipeline
}

// NewProgramService creates a new ProgramService
func NewProgramService(fetcher *DocumentFetcher, pipeline driven.PostProcessorPipeline) driving.ProgramService {
	return &programService{
		fetcher:  fetcher,
		pipeline: pipeline,
	}
}

// Fetch returns the party's program or a tagged failure
func (s *programService) Fetch(ctx context.Context, partyID string) *domain.Document {
	return s.fetcher.Fetch(ctx, partyID)
}

// Chunks fetches the program and splits it into ordered chunks
func (s *programService) Chunks(ctx context.Context, partyID string) (*domain.Document, []domain.Chunk) {
	doc := s.fetcher.Fetch(ctx, partyID)
	if !doc.Available() {
		return doc, nil
	}
	return doc, s.pipeline.Process(doc.Content)
}

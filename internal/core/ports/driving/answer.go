package driving

import (
	"context"

	"github.com/custodia-labs/legislativas/internal/core/domain"
)

// AnswerService answers questions about party programs
type AnswerService interface {
	// Answer validates the request, assembles context and asks the LLM.
	// Budget and missing-context outcomes are returned as results, not errors.
	Answer(ctx context.Context, req domain.AnswerRequest) (*domain.AnswerResult, error)

	// Parties returns the roster in display order
	Parties() []domain.Party
}

// ContextAssembler builds the bounded prompt context for a party selection
type ContextAssembler interface {
	// Assemble fetches and chunks each party's program. An empty selection
	// means every party in the roster. Only context cancellation fails.
	Assemble(ctx context.Context, partyIDs []string) (*domain.ContextBundle, error)
}

// ProgramService exposes single program fetches for inspection tools
type ProgramService interface {
	// Fetch returns the party's program or a tagged failure
	Fetch(ctx context.Context, partyID string) *domain.Document

	// Chunks fetches the program and splits it into ordered chunks.
	// Failed documents yield no chunks.
	Chunks(ctx context.Context, partyID string) (*domain.Document, []domain.Chunk)
}

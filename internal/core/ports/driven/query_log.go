package driven

import (
	"context"

	"github.com/custodia-labs/legislativas/internal/core/domain"
)

// QueryLog records answered and rejected queries
type QueryLog interface {
	// Record appends a query record
	Record(ctx context.Context, rec *domain.QueryRecord) error

	// Recent returns the newest records first, at most limit
	Recent(ctx context.Context, limit int) ([]*domain.QueryRecord, error)
}

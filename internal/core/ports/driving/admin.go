package driving

import (
	"context"

	"github.com/custodia-labs/legislativas/internal/core/domain"
)

// AdminService handles operator tasks
type AdminService interface {
	// PurgeCache drops every cached program document
	PurgeCache(ctx context.Context) error

	// RecentQueries returns the newest query records first
	RecentQueries(ctx context.Context, limit int) ([]*domain.QueryRecord, error)
}

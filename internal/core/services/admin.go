package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
	"github.com/custodia-labs/legislativas/internal/core/ports/driving"
)

// Ensure adminService implements AdminService
var _ driving.AdminService = (*adminService)(nil)

const (
	defaultRecentQueries = 50
	maxRecentQueries     = 500
)

// adminService implements the AdminService interface
type adminService struct {
	cache    driven.DocumentCache
	queryLog driven.QueryLog
	logger   *slog.Logger
}

// NewAdminService creates a new AdminService.
// Either dependency may be nil when the backend is disabled.
func NewAdminService(cache driven.DocumentCache, queryLog driven.QueryLog, logger *slog.Logger) driving.AdminService {
	if logger == nil {
		logger = slog.Default()
	}
	return &adminService{
		cache:    cache,
		queryLog: queryLog,
		logger:   logger,
	}
}

// PurgeCache drops every cached program document
func (s *adminService) PurgeCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Purge(ctx); err != nil {
		return fmt.Errorf("purge document cache: %w", err)
	}
	s.logger.Info("document cache purged")
	return nil
}

// RecentQueries returns the newest query records first
func (s *adminService) RecentQueries(ctx context.Context, limit int) ([]*domain.QueryRecord, error) {
	if limit <= 0 {
		limit = defaultRecentQueries
	}
	if limit > maxRecentQueries {
		limit = maxRecentQueries
	}
	if s.queryLog == nil {
		return []*domain.QueryRecord{}, nil
	}

	records, err := s.queryLog.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent queries: %w", err)
	}
	return records, nil
}

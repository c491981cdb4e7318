package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/custodia-labs/legislativas/internal/core/domain"
	"github.com/custodia-labs/legislativas/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.QueryLog = (*QueryLog)(nil)

// QueryLog implements driven.QueryLog using PostgreSQL
type QueryLog struct {
	db *DB
}

// NewQueryLog creates a new QueryLog
func NewQueryLog(db *DB) *QueryLog {
	return &QueryLog{db: db}
}

// Record inserts a query record
func (l *QueryLog) Record(ctx context.Context, rec *domain.QueryRecord) error {
	query := `
		INSERT INTO query_log (id, question, party_ids, outcome, estimated_tokens, model, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`

	partyIDs := rec.PartyIDs
	if partyIDs == nil {
		partyIDs = []string{}
	}

	_, err := l.db.ExecContext(ctx, query,
		rec.ID,
		rec.Question,
		pq.Array(partyIDs),
		string(rec.Outcome),
		rec.EstimatedTokens,
		rec.Model,
		rec.Duration.Milliseconds(),
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record query: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first
func (l *QueryLog) Recent(ctx context.Context, limit int) ([]*domain.QueryRecord, error) {
	query := `
		SELECT id, question, party_ids, outcome, estimated_tokens, model, duration_ms, created_at
		FROM query_log
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := l.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list queries: %w", err)
	}
	defer rows.Close()

	records := make([]*domain.QueryRecord, 0, limit)
	for rows.Next() {
		var (
			rec        domain.QueryRecord
			outcome    string
			durationMS int64
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.Question,
			pq.Array(&rec.PartyIDs),
			&outcome,
			&rec.EstimatedTokens,
			&rec.Model,
			&durationMS,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan query: %w", err)
		}
		rec.Outcome = domain.AnswerOutcome(outcome)
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate queries: %w", err)
	}

	return records, nil
}

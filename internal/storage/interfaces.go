package storage

import (
	"context"

	"dexpath/internal/domain"
)

// AssessmentStore holds the latest full assessment per token, keyed by mint.
// Upserts replace the previous assessment for the same mint.
type AssessmentStore interface {
	// Upsert inserts or replaces the assessment for a.Row.Mint.
	Upsert(ctx context.Context, a *domain.TokenAssessment) error

	// GetByMint retrieves the latest assessment for a mint.
	// Returns ErrNotFound if the mint has never been assessed.
	GetByMint(ctx context.Context, mint string) (*domain.TokenAssessment, error)

	// ListLatest retrieves up to limit assessments ordered by ObservedAt DESC.
	// limit <= 0 means no limit.
	ListLatest(ctx context.Context, limit int) ([]*domain.TokenAssessment, error)

	// ListByAction retrieves all assessments with the given action,
	// ordered by ObservedAt DESC.
	ListByAction(ctx context.Context, action domain.TradeAction) ([]*domain.TokenAssessment, error)
}

// ScoreHistoryStore is the append-only trail of per-token score observations.
type ScoreHistoryStore interface {
	// InsertBulk adds multiple points. Fails the entire batch on a duplicate
	// (mint, timestamp_ms).
	InsertBulk(ctx context.Context, points []*domain.ScorePoint) error

	// GetByMint retrieves all points for a mint, ordered by timestamp ASC.
	GetByMint(ctx context.Context, mint string) ([]*domain.ScorePoint, error)

	// GetByTimeRange retrieves points for a mint within [start, end] ms (inclusive).
	GetByTimeRange(ctx context.Context, mint string, start, end int64) ([]*domain.ScorePoint, error)
}

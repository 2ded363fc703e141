package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"dexpath/internal/domain"
	"dexpath/internal/observability"
	"dexpath/internal/storage"
)

// AssessmentStore implements storage.AssessmentStore using PostgreSQL.
// The row payload and the optional engine outputs are stored as JSONB; the
// fields the API filters and sorts on are promoted to columns.
type AssessmentStore struct {
	pool *Pool
}

// NewAssessmentStore creates a new AssessmentStore.
func NewAssessmentStore(pool *Pool) *AssessmentStore {
	return &AssessmentStore{pool: pool}
}

// Compile-time interface check.
var _ storage.AssessmentStore = (*AssessmentStore)(nil)

// Upsert inserts or replaces the assessment for a.Row.Mint.
func (s *AssessmentStore) Upsert(ctx context.Context, a *domain.TokenAssessment) error {
	if a == nil || a.Row.Mint == "" {
		return storage.ErrInvalidInput
	}

	rowJSON, err := json.Marshal(a.Row)
	if err != nil {
		return fmt.Errorf("marshal token row: %w", err)
	}
	metricsJSON, err := marshalOptional(a.Metrics)
	if err != nil {
		return fmt.Errorf("marshal metrics: %w", err)
	}
	summaryJSON, err := marshalOptional(a.Summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	trustJSON, err := marshalOptional(a.Trust)
	if err != nil {
		return fmt.Errorf("marshal trust score: %w", err)
	}

	query := `
		INSERT INTO token_assessments (
			mint, symbol, confidence_score, momentum, risk, mode_fit, action,
			spike_probability, spike_band, row_data, metrics, summary, trust,
			observed_at_ms
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (mint) DO UPDATE SET
			symbol = EXCLUDED.symbol,
			confidence_score = EXCLUDED.confidence_score,
			momentum = EXCLUDED.momentum,
			risk = EXCLUDED.risk,
			mode_fit = EXCLUDED.mode_fit,
			action = EXCLUDED.action,
			spike_probability = EXCLUDED.spike_probability,
			spike_band = EXCLUDED.spike_band,
			row_data = EXCLUDED.row_data,
			metrics = EXCLUDED.metrics,
			summary = EXCLUDED.summary,
			trust = EXCLUDED.trust,
			observed_at_ms = EXCLUDED.observed_at_ms,
			updated_at = now()
	`

	start := time.Now()
	_, err = s.pool.Exec(ctx, query,
		a.Row.Mint,
		a.Row.Symbol,
		a.Assessment.ConfidenceScore,
		string(a.Assessment.Momentum),
		string(a.Assessment.Risk),
		string(a.Assessment.ModeFit),
		string(a.Assessment.Action),
		a.Assessment.SpikeProbability,
		a.Assessment.SpikeBand,
		rowJSON,
		metricsJSON,
		summaryJSON,
		trustJSON,
		a.ObservedAt,
	)
	observability.RecordDBQuery("postgres", "upsert_assessment", time.Since(start).Seconds(), err)
	if err != nil {
		return fmt.Errorf("upsert token assessment: %w", err)
	}
	return nil
}

// GetByMint retrieves the latest assessment for a mint. Returns ErrNotFound
// if the mint has never been assessed.
func (s *AssessmentStore) GetByMint(ctx context.Context, mint string) (*domain.TokenAssessment, error) {
	query := selectAssessment + ` WHERE mint = $1`

	start := time.Now()
	row := s.pool.QueryRow(ctx, query, mint)
	a, err := scanAssessment(row)
	observability.RecordDBQuery("postgres", "get_assessment", time.Since(start).Seconds(), err)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get assessment by mint: %w", err)
	}
	return a, nil
}

// ListLatest retrieves up to limit assessments ordered by observed_at_ms DESC.
func (s *AssessmentStore) ListLatest(ctx context.Context, limit int) ([]*domain.TokenAssessment, error) {
	query := selectAssessment + ` ORDER BY observed_at_ms DESC, mint ASC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	start := time.Now()
	rows, err := s.pool.Query(ctx, query, args...)
	observability.RecordDBQuery("postgres", "list_assessments", time.Since(start).Seconds(), err)
	if err != nil {
		return nil, fmt.Errorf("list latest assessments: %w", err)
	}
	defer rows.Close()

	return scanAssessments(rows)
}

// ListByAction retrieves all assessments with the given action, observed_at_ms DESC.
func (s *AssessmentStore) ListByAction(ctx context.Context, action domain.TradeAction) ([]*domain.TokenAssessment, error) {
	query := selectAssessment + ` WHERE action = $1 ORDER BY observed_at_ms DESC, mint ASC`

	start := time.Now()
	rows, err := s.pool.Query(ctx, query, string(action))
	observability.RecordDBQuery("postgres", "list_assessments_by_action", time.Since(start).Seconds(), err)
	if err != nil {
		return nil, fmt.Errorf("list assessments by action: %w", err)
	}
	defer rows.Close()

	return scanAssessments(rows)
}

const selectAssessment = `
	SELECT confidence_score, momentum, risk, mode_fit, action,
	       spike_probability, spike_band, row_data, metrics, summary, trust,
	       observed_at_ms
	FROM token_assessments
`

// scanAssessment scans a single row into a TokenAssessment.
func scanAssessment(row pgx.Row) (*domain.TokenAssessment, error) {
	var (
		a           domain.TokenAssessment
		momentum    string
		risk        string
		modeFit     string
		action      string
		rowJSON     []byte
		metricsJSON []byte
		summaryJSON []byte
		trustJSON   []byte
	)

	err := row.Scan(
		&a.Assessment.ConfidenceScore,
		&momentum,
		&risk,
		&modeFit,
		&action,
		&a.Assessment.SpikeProbability,
		&a.Assessment.SpikeBand,
		&rowJSON,
		&metricsJSON,
		&summaryJSON,
		&trustJSON,
		&a.ObservedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Assessment.Momentum = domain.MomentumState(momentum)
	a.Assessment.Risk = domain.RiskLevel(risk)
	a.Assessment.ModeFit = domain.TradingMode(modeFit)
	a.Assessment.Action = domain.TradeAction(action)

	if err := json.Unmarshal(rowJSON, &a.Row); err != nil {
		return nil, fmt.Errorf("unmarshal token row: %w", err)
	}
	if a.Metrics, err = unmarshalOptional[domain.TokenMetrics](metricsJSON); err != nil {
		return nil, fmt.Errorf("unmarshal metrics: %w", err)
	}
	if a.Summary, err = unmarshalOptional[domain.TokenSummary](summaryJSON); err != nil {
		return nil, fmt.Errorf("unmarshal summary: %w", err)
	}
	if a.Trust, err = unmarshalOptional[domain.TrustScore](trustJSON); err != nil {
		return nil, fmt.Errorf("unmarshal trust score: %w", err)
	}

	return &a, nil
}

// scanAssessments scans multiple rows.
func scanAssessments(rows pgx.Rows) ([]*domain.TokenAssessment, error) {
	var result []*domain.TokenAssessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assessment row: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assessment rows: %w", err)
	}
	return result, nil
}

// marshalOptional marshals v, passing nil pointers through as SQL NULL.
func marshalOptional[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

// unmarshalOptional decodes a nullable JSONB column.
func unmarshalOptional[T any](data []byte) (*T, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

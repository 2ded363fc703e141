package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"dexpath/internal/domain"
	"dexpath/internal/observability"
	"dexpath/internal/storage"
)

// ScoreHistoryStore implements storage.ScoreHistoryStore using ClickHouse.
// MergeTree does not enforce uniqueness, so duplicates are rejected with
// explicit existence checks before the batch is sent.
type ScoreHistoryStore struct {
	conn *Conn
}

// NewScoreHistoryStore creates a new ScoreHistoryStore.
func NewScoreHistoryStore(conn *Conn) *ScoreHistoryStore {
	return &ScoreHistoryStore{conn: conn}
}

// Compile-time interface check.
var _ storage.ScoreHistoryStore = (*ScoreHistoryStore)(nil)

// InsertBulk adds multiple points. Fails the entire batch on a duplicate
// (mint, timestamp_ms).
func (s *ScoreHistoryStore) InsertBulk(ctx context.Context, points []*domain.ScorePoint) error {
	if len(points) == 0 {
		return nil
	}
	for _, p := range points {
		if p == nil || p.Mint == "" {
			return storage.ErrInvalidInput
		}
	}

	type key struct {
		mint        string
		timestampMs int64
	}
	seen := make(map[key]struct{}, len(points))
	for _, p := range points {
		k := key{p.Mint, p.TimestampMs}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	for _, p := range points {
		exists, err := s.exists(ctx, p.Mint, p.TimestampMs)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO score_history (
			mint, timestamp_ms, confidence_score, spike_probability,
			momentum, risk, action
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range points {
		err = batch.Append(
			p.Mint, uint64(p.TimestampMs), uint8(p.ConfidenceScore),
			p.SpikeProbability, string(p.Momentum), string(p.Risk),
			string(p.Action),
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	started := time.Now()
	err = batch.Send()
	observability.RecordDBQuery("clickhouse", "insert_score_history", time.Since(started).Seconds(), err)
	if err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByMint retrieves all points for a mint, ordered by timestamp ASC.
func (s *ScoreHistoryStore) GetByMint(ctx context.Context, mint string) ([]*domain.ScorePoint, error) {
	query := `
		SELECT mint, timestamp_ms, confidence_score, spike_probability,
		       momentum, risk, action
		FROM score_history
		WHERE mint = ?
		ORDER BY timestamp_ms ASC
	`

	started := time.Now()
	rows, err := s.conn.Query(ctx, query, mint)
	observability.RecordDBQuery("clickhouse", "get_score_history", time.Since(started).Seconds(), err)
	if err != nil {
		return nil, fmt.Errorf("query by mint: %w", err)
	}
	defer rows.Close()

	return scanScorePoints(rows)
}

// GetByTimeRange retrieves points for a mint within [start, end] ms (inclusive).
func (s *ScoreHistoryStore) GetByTimeRange(ctx context.Context, mint string, start, end int64) ([]*domain.ScorePoint, error) {
	query := `
		SELECT mint, timestamp_ms, confidence_score, spike_probability,
		       momentum, risk, action
		FROM score_history
		WHERE mint = ? AND timestamp_ms >= ? AND timestamp_ms <= ?
		ORDER BY timestamp_ms ASC
	`

	started := time.Now()
	rows, err := s.conn.Query(ctx, query, mint, uint64(start), uint64(end))
	observability.RecordDBQuery("clickhouse", "get_score_history_range", time.Since(started).Seconds(), err)
	if err != nil {
		return nil, fmt.Errorf("query by time range: %w", err)
	}
	defer rows.Close()

	return scanScorePoints(rows)
}

// exists checks if a point with the given key exists.
func (s *ScoreHistoryStore) exists(ctx context.Context, mint string, timestampMs int64) (bool, error) {
	query := `
		SELECT count(*) FROM score_history
		WHERE mint = ? AND timestamp_ms = ?
	`

	var count uint64
	err := s.conn.QueryRow(ctx, query, mint, uint64(timestampMs)).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// scanScorePoints scans multiple rows.
func scanScorePoints(rows driver.Rows) ([]*domain.ScorePoint, error) {
	var points []*domain.ScorePoint

	for rows.Next() {
		var (
			p           domain.ScorePoint
			timestampMs uint64
			confidence  uint8
			momentum    string
			risk        string
			action      string
		)

		err := rows.Scan(
			&p.Mint, &timestampMs, &confidence, &p.SpikeProbability,
			&momentum, &risk, &action,
		)
		if err != nil {
			return nil, fmt.Errorf("scan score history row: %w", err)
		}

		p.TimestampMs = int64(timestampMs)
		p.ConfidenceScore = int(confidence)
		p.Momentum = domain.MomentumState(momentum)
		p.Risk = domain.RiskLevel(risk)
		p.Action = domain.TradeAction(action)
		points = append(points, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate score history rows: %w", err)
	}

	return points, nil
}

package memory

import (
	"context"
	"sort"
	"sync"

	"dexpath/internal/domain"
	"dexpath/internal/storage"
)

type scoreKey struct {
	mint        string
	timestampMs int64
}

// ScoreHistoryStore is an in-memory implementation of storage.ScoreHistoryStore.
type ScoreHistoryStore struct {
	mu     sync.RWMutex
	byMint map[string][]*domain.ScorePoint
	keys   map[scoreKey]struct{}
}

// NewScoreHistoryStore creates a new in-memory score history store.
func NewScoreHistoryStore() *ScoreHistoryStore {
	return &ScoreHistoryStore{
		byMint: make(map[string][]*domain.ScorePoint),
		keys:   make(map[scoreKey]struct{}),
	}
}

var _ storage.ScoreHistoryStore = (*ScoreHistoryStore)(nil)

// InsertBulk adds multiple points. Fails the entire batch on a duplicate
// (mint, timestamp_ms), leaving the store unchanged.
func (s *ScoreHistoryStore) InsertBulk(_ context.Context, points []*domain.ScorePoint) error {
	if len(points) == 0 {
		return nil
	}
	for _, p := range points {
		if p == nil || p.Mint == "" {
			return storage.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the whole batch before touching state.
	seen := make(map[scoreKey]struct{}, len(points))
	for _, p := range points {
		k := scoreKey{p.Mint, p.TimestampMs}
		if _, exists := s.keys[k]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	for _, p := range points {
		pointCopy := *p
		s.byMint[p.Mint] = append(s.byMint[p.Mint], &pointCopy)
		s.keys[scoreKey{p.Mint, p.TimestampMs}] = struct{}{}
	}
	return nil
}

// GetByMint retrieves all points for a mint, ordered by timestamp ASC.
func (s *ScoreHistoryStore) GetByMint(_ context.Context, mint string) ([]*domain.ScorePoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(mint, func(*domain.ScorePoint) bool { return true }), nil
}

// GetByTimeRange retrieves points for a mint within [start, end] ms (inclusive).
func (s *ScoreHistoryStore) GetByTimeRange(_ context.Context, mint string, start, end int64) ([]*domain.ScorePoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collect(mint, func(p *domain.ScorePoint) bool {
		return p.TimestampMs >= start && p.TimestampMs <= end
	}), nil
}

// collect copies matching points sorted by timestamp. Caller holds the lock.
func (s *ScoreHistoryStore) collect(mint string, match func(*domain.ScorePoint) bool) []*domain.ScorePoint {
	var result []*domain.ScorePoint
	for _, p := range s.byMint[mint] {
		if match(p) {
			pointCopy := *p
			result = append(result, &pointCopy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].TimestampMs < result[j].TimestampMs
	})
	return result
}

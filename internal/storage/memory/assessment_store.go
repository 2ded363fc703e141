package memory

import (
	"context"
	"sort"
	"sync"

	"dexpath/internal/domain"
	"dexpath/internal/storage"
)

// AssessmentStore is an in-memory implementation of storage.AssessmentStore.
type AssessmentStore struct {
	mu     sync.RWMutex
	byMint map[string]*domain.TokenAssessment
}

// NewAssessmentStore creates a new in-memory assessment store.
func NewAssessmentStore() *AssessmentStore {
	return &AssessmentStore{
		byMint: make(map[string]*domain.TokenAssessment),
	}
}

var _ storage.AssessmentStore = (*AssessmentStore)(nil)

// Upsert inserts or replaces the assessment for a.Row.Mint.
func (s *AssessmentStore) Upsert(_ context.Context, a *domain.TokenAssessment) error {
	if a == nil || a.Row.Mint == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	assessmentCopy := *a
	s.byMint[a.Row.Mint] = &assessmentCopy
	return nil
}

// GetByMint retrieves the latest assessment for a mint.
func (s *AssessmentStore) GetByMint(_ context.Context, mint string) (*domain.TokenAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, exists := s.byMint[mint]
	if !exists {
		return nil, storage.ErrNotFound
	}

	assessmentCopy := *a
	return &assessmentCopy, nil
}

// ListLatest retrieves up to limit assessments ordered by ObservedAt DESC.
func (s *AssessmentStore) ListLatest(_ context.Context, limit int) ([]*domain.TokenAssessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.TokenAssessment, 0, len(s.byMint))
	for _, a := range s.byMint {
		assessmentCopy := *a
		result = append(result, &assessmentCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].ObservedAt != result[j].ObservedAt {
			return result[i].ObservedAt > result[j].ObservedAt
		}
		// Stable order for equal timestamps.
		return result[i].Row.Mint < result[j].Row.Mint
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ListByAction retrieves all assessments with the given action, ObservedAt DESC.
func (s *AssessmentStore) ListByAction(ctx context.Context, action domain.TradeAction) ([]*domain.TokenAssessment, error) {
	all, err := s.ListLatest(ctx, 0)
	if err != nil {
		return nil, err
	}

	var result []*domain.TokenAssessment
	for _, a := range all {
		if a.Assessment.Action == action {
			result = append(result, a)
		}
	}
	return result, nil
}

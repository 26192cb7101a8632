package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"tariff-event-lab/internal/domain"
	"tariff-event-lab/internal/storage"
)

// StudyResultStore is an in-memory implementation of storage.StudyResultStore.
type StudyResultStore struct {
	mu           sync.RWMutex
	correlations map[string]*domain.CorrelationResult  // keyed by (ticker, scope)
	significance map[string]*domain.SignificanceResult // keyed by (ticker, event_label)
}

// NewStudyResultStore creates a new in-memory study result store.
func NewStudyResultStore() *StudyResultStore {
	return &StudyResultStore{
		correlations: make(map[string]*domain.CorrelationResult),
		significance: make(map[string]*domain.SignificanceResult),
	}
}

func resultKey(ticker, scope string) string {
	return fmt.Sprintf("%s|%s", ticker, scope)
}

// InsertCorrelations adds correlation rows. Fails entire batch on
// duplicate (ticker, scope).
func (s *StudyResultStore) InsertCorrelations(_ context.Context, results []*domain.CorrelationResult) error {
	if len(results) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(results))
	for _, r := range results {
		if r == nil || r.Ticker == "" || r.Scope == "" {
			return storage.ErrInvalidInput
		}
		key := resultKey(r.Ticker, r.Scope)
		if _, exists := s.correlations[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	for _, r := range results {
		s.correlations[resultKey(r.Ticker, r.Scope)] = cloneCorrelation(r)
	}

	return nil
}

// InsertSignificance adds significance rows. Fails entire batch on
// duplicate (ticker, event_label).
func (s *StudyResultStore) InsertSignificance(_ context.Context, results []*domain.SignificanceResult) error {
	if len(results) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(results))
	for _, r := range results {
		if r == nil || r.Ticker == "" || r.EventLabel == "" {
			return storage.ErrInvalidInput
		}
		key := resultKey(r.Ticker, r.EventLabel)
		if _, exists := s.significance[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	for _, r := range results {
		s.significance[resultKey(r.Ticker, r.EventLabel)] = cloneSignificance(r)
	}

	return nil
}

// GetCorrelations retrieves all correlation rows, ordered by (ticker, scope) ASC.
func (s *StudyResultStore) GetCorrelations(_ context.Context) ([]*domain.CorrelationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.CorrelationResult, 0, len(s.correlations))
	for _, r := range s.correlations {
		result = append(result, cloneCorrelation(r))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Ticker != result[j].Ticker {
			return result[i].Ticker < result[j].Ticker
		}
		return result[i].Scope < result[j].Scope
	})

	return result, nil
}

// GetSignificance retrieves all significance rows, ordered by (ticker, event_label) ASC.
func (s *StudyResultStore) GetSignificance(_ context.Context) ([]*domain.SignificanceResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.SignificanceResult, 0, len(s.significance))
	for _, r := range s.significance {
		result = append(result, cloneSignificance(r))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Ticker != result[j].Ticker {
			return result[i].Ticker < result[j].Ticker
		}
		return result[i].EventLabel < result[j].EventLabel
	})

	return result, nil
}

func cloneCorrelation(r *domain.CorrelationResult) *domain.CorrelationResult {
	resultCopy := *r
	resultCopy.ReturnsVsAvg = cloneFloat(r.ReturnsVsAvg)
	resultCopy.ReturnsVsVader = cloneFloat(r.ReturnsVsVader)
	resultCopy.PValue = cloneFloat(r.PValue)
	return &resultCopy
}

func cloneSignificance(r *domain.SignificanceResult) *domain.SignificanceResult {
	resultCopy := *r
	resultCopy.MeanBefore = cloneFloat(r.MeanBefore)
	resultCopy.MeanAfter = cloneFloat(r.MeanAfter)
	resultCopy.PValue = cloneFloat(r.PValue)
	return &resultCopy
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

var _ storage.StudyResultStore = (*StudyResultStore)(nil)

package memory

import (
	"context"
	"sort"
	"sync"

	"tariff-event-lab/internal/domain"
	"tariff-event-lab/internal/storage"
)

// ReturnTimeseriesStore is an in-memory implementation of storage.ReturnTimeseriesStore.
type ReturnTimeseriesStore struct {
	mu   sync.RWMutex
	data map[string]*domain.ReturnPoint // keyed by (ticker, date)
}

// NewReturnTimeseriesStore creates a new in-memory return timeseries store.
func NewReturnTimeseriesStore() *ReturnTimeseriesStore {
	return &ReturnTimeseriesStore{
		data: make(map[string]*domain.ReturnPoint),
	}
}

// InsertBulk adds multiple points. Fails entire batch on duplicate (ticker, date).
func (s *ReturnTimeseriesStore) InsertBulk(_ context.Context, points []*domain.ReturnPoint) error {
	if len(points) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(points))
	for _, p := range points {
		if p == nil || p.Ticker == "" {
			return storage.ErrInvalidInput
		}
		key := barKey(p.Ticker, p.Date)
		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	for _, p := range points {
		pointCopy := cloneReturnPoint(p)
		s.data[barKey(p.Ticker, p.Date)] = pointCopy
	}

	return nil
}

// GetByTicker retrieves all points for a ticker, ordered by date ASC.
func (s *ReturnTimeseriesStore) GetByTicker(_ context.Context, ticker string) ([]*domain.ReturnPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.ReturnPoint
	for _, p := range s.data {
		if p.Ticker == ticker {
			result = append(result, cloneReturnPoint(p))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	return result, nil
}

// cloneReturnPoint deep-copies a point so callers cannot alias the
// stored optional value.
func cloneReturnPoint(p *domain.ReturnPoint) *domain.ReturnPoint {
	pointCopy := *p
	if p.LogReturn != nil {
		v := *p.LogReturn
		pointCopy.LogReturn = &v
	}
	return &pointCopy
}

var _ storage.ReturnTimeseriesStore = (*ReturnTimeseriesStore)(nil)

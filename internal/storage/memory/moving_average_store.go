package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"tariff-event-lab/internal/domain"
	"tariff-event-lab/internal/storage"
)

// MovingAverageStore is an in-memory implementation of storage.MovingAverageStore.
type MovingAverageStore struct {
	mu   sync.RWMutex
	data map[string]*domain.MovingAveragePoint // keyed by (ticker, date, window_days)
}

// NewMovingAverageStore creates a new in-memory moving average store.
func NewMovingAverageStore() *MovingAverageStore {
	return &MovingAverageStore{
		data: make(map[string]*domain.MovingAveragePoint),
	}
}

// maKey generates a unique key for a moving average point.
func maKey(ticker string, date time.Time, windowDays int) string {
	return fmt.Sprintf("%s|%s|%d", ticker, date.Format("2006-01-02"), windowDays)
}

// InsertBulk adds multiple points. Fails entire batch on duplicate
// (ticker, date, window_days).
func (s *MovingAverageStore) InsertBulk(_ context.Context, points []*domain.MovingAveragePoint) error {
	if len(points) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(points))
	for _, p := range points {
		if p == nil || p.Ticker == "" || p.WindowDays < 1 {
			return storage.ErrInvalidInput
		}
		key := maKey(p.Ticker, p.Date, p.WindowDays)
		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	for _, p := range points {
		s.data[maKey(p.Ticker, p.Date, p.WindowDays)] = cloneMAPoint(p)
	}

	return nil
}

// GetByTicker retrieves points for a ticker and window, ordered by date ASC.
func (s *MovingAverageStore) GetByTicker(_ context.Context, ticker string, windowDays int) ([]*domain.MovingAveragePoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.MovingAveragePoint
	for _, p := range s.data {
		if p.Ticker == ticker && p.WindowDays == windowDays {
			result = append(result, cloneMAPoint(p))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	return result, nil
}

func cloneMAPoint(p *domain.MovingAveragePoint) *domain.MovingAveragePoint {
	pointCopy := *p
	if p.Value != nil {
		v := *p.Value
		pointCopy.Value = &v
	}
	return &pointCopy
}

var _ storage.MovingAverageStore = (*MovingAverageStore)(nil)

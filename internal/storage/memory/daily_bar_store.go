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

// DailyBarStore is an in-memory implementation of storage.DailyBarStore.
type DailyBarStore struct {
	mu   sync.RWMutex
	data map[string]*domain.DailyBar // keyed by (ticker, date)
}

// NewDailyBarStore creates a new in-memory daily bar store.
func NewDailyBarStore() *DailyBarStore {
	return &DailyBarStore{
		data: make(map[string]*domain.DailyBar),
	}
}

// barKey generates a unique key for a bar.
func barKey(ticker string, date time.Time) string {
	return fmt.Sprintf("%s|%s", ticker, date.Format("2006-01-02"))
}

// InsertBulk adds multiple bars. Fails entire batch on duplicate (ticker, date).
func (s *DailyBarStore) InsertBulk(_ context.Context, bars []*domain.DailyBar) error {
	if len(bars) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(bars))
	for _, b := range bars {
		if b == nil || b.Ticker == "" {
			return storage.ErrInvalidInput
		}
		key := barKey(b.Ticker, b.Date)
		if _, exists := s.data[key]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[key]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[key] = struct{}{}
	}

	for _, b := range bars {
		barCopy := *b
		s.data[barKey(b.Ticker, b.Date)] = &barCopy
	}

	return nil
}

// GetByTicker retrieves all bars for a ticker, ordered by date ASC.
func (s *DailyBarStore) GetByTicker(_ context.Context, ticker string) ([]*domain.DailyBar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.DailyBar
	for _, b := range s.data {
		if b.Ticker == ticker {
			barCopy := *b
			result = append(result, &barCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	return result, nil
}

// GetByDateRange retrieves bars for a ticker within [start, end] (inclusive).
func (s *DailyBarStore) GetByDateRange(_ context.Context, ticker string, start, end time.Time) ([]*domain.DailyBar, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.DailyBar
	for _, b := range s.data {
		if b.Ticker == ticker && !b.Date.Before(start) && !b.Date.After(end) {
			barCopy := *b
			result = append(result, &barCopy)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	return result, nil
}

// Tickers lists the distinct tickers present, sorted ASC.
func (s *DailyBarStore) Tickers(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, b := range s.data {
		seen[b.Ticker] = struct{}{}
	}

	result := make([]string, 0, len(seen))
	for t := range seen {
		result = append(result, t)
	}
	sort.Strings(result)

	return result, nil
}

var _ storage.DailyBarStore = (*DailyBarStore)(nil)

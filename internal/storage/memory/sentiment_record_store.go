package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"tariff-event-lab/internal/domain"
	"tariff-event-lab/internal/storage"
)

// SentimentRecordStore is an in-memory implementation of storage.SentimentRecordStore.
type SentimentRecordStore struct {
	mu   sync.RWMutex
	data map[string]*domain.SentimentRecord // keyed by record_id
}

// NewSentimentRecordStore creates a new in-memory sentiment record store.
func NewSentimentRecordStore() *SentimentRecordStore {
	return &SentimentRecordStore{
		data: make(map[string]*domain.SentimentRecord),
	}
}

// InsertBulk adds multiple records. Fails entire batch on duplicate record_id.
func (s *SentimentRecordStore) InsertBulk(_ context.Context, records []*domain.SentimentRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	batchKeys := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r == nil || r.RecordID == "" {
			return storage.ErrInvalidInput
		}
		if _, exists := s.data[r.RecordID]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[r.RecordID]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[r.RecordID] = struct{}{}
	}

	for _, r := range records {
		recordCopy := *r
		s.data[r.RecordID] = &recordCopy
	}

	return nil
}

// GetAll retrieves all records, ordered by (date, record_id) ASC.
func (s *SentimentRecordStore) GetAll(_ context.Context) ([]*domain.SentimentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.SentimentRecord, 0, len(s.data))
	for _, r := range s.data {
		recordCopy := *r
		result = append(result, &recordCopy)
	}

	sortRecords(result)
	return result, nil
}

// GetByDateRange retrieves records dated within [start, end] (inclusive).
func (s *SentimentRecordStore) GetByDateRange(_ context.Context, start, end time.Time) ([]*domain.SentimentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.SentimentRecord
	for _, r := range s.data {
		if !r.Date.Before(start) && !r.Date.After(end) {
			recordCopy := *r
			result = append(result, &recordCopy)
		}
	}

	sortRecords(result)
	return result, nil
}

func sortRecords(records []*domain.SentimentRecord) {
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].RecordID < records[j].RecordID
	})
}

var _ storage.SentimentRecordStore = (*SentimentRecordStore)(nil)

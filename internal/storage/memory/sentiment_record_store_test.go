package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"tariff-event-lab/internal/domain"
	"tariff-event-lab/internal/storage"
)

func record(id string, postedAt time.Time, combined float64) *domain.SentimentRecord {
	return &domain.SentimentRecord{
		RecordID:      id,
		PostedAt:      postedAt,
		Date:          domain.Day(postedAt),
		Subreddit:     "phinvest",
		Title:         "tariff talk",
		Author:        "u1",
		Score:         10,
		Relevance:     5,
		CombinedScore: combined,
		VaderCompound: combined * 0.8,
	}
}

func TestSentimentRecordStoreInsertAndGetAll(t *testing.T) {
	ctx := context.Background()
	store := NewSentimentRecordStore()

	err := store.InsertBulk(ctx, []*domain.SentimentRecord{
		record("r2", time.Date(2025, 4, 2, 9, 0, 0, 0, time.UTC), 0.2),
		record("r1", time.Date(2025, 4, 1, 15, 30, 0, 0, time.UTC), -0.1),
		record("r3", time.Date(2025, 4, 2, 8, 0, 0, 0, time.UTC), 0.3),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := store.GetAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	// Ordered by (date, record_id).
	wantOrder := []string{"r1", "r2", "r3"}
	for i, id := range wantOrder {
		if records[i].RecordID != id {
			t.Errorf("records[%d]: expected %s, got %s", i, id, records[i].RecordID)
		}
	}
}

func TestSentimentRecordStoreDuplicateID(t *testing.T) {
	ctx := context.Background()
	store := NewSentimentRecordStore()

	r := record("r1", time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC), 0.2)
	if err := store.InsertBulk(ctx, []*domain.SentimentRecord{r}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := store.InsertBulk(ctx, []*domain.SentimentRecord{record("r1", r.PostedAt, 0.9)})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}

	err = store.InsertBulk(ctx, []*domain.SentimentRecord{{PostedAt: r.PostedAt}})
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty record_id, got %v", err)
	}
}

func TestSentimentRecordStoreDateRange(t *testing.T) {
	ctx := context.Background()
	store := NewSentimentRecordStore()

	var records []*domain.SentimentRecord
	for i := 1; i <= 5; i++ {
		records = append(records, record(
			string(rune('a'+i)), time.Date(2025, 4, i, 12, 0, 0, 0, time.UTC), 0.1))
	}
	if err := store.InsertBulk(ctx, records); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.GetByDateRange(ctx,
		domain.DateYMD(2025, time.April, 2), domain.DateYMD(2025, time.April, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 records in inclusive range, got %d", len(got))
	}
}

package sentiment

import (
	"math"
	"testing"
	"time"

	"tariff-event-lab/internal/domain"
)

func record(id string, date time.Time, combined, vader float64) domain.SentimentRecord {
	return domain.SentimentRecord{
		RecordID:      id,
		PostedAt:      date.Add(10 * time.Hour),
		Date:          date,
		Subreddit:     "phinvest",
		CombinedScore: combined,
		VaderCompound: vader,
	}
}

func TestDailyAggregates_GroupsByDate(t *testing.T) {
	d1 := domain.DateYMD(2025, time.April, 1)
	d2 := domain.DateYMD(2025, time.April, 2)

	records := []domain.SentimentRecord{
		record("a", d1, 0.4, 0.5),
		record("b", d1, 0.2, 0.1),
		record("c", d2, -0.3, -0.2),
	}

	daily := DailyAggregates(records)
	if len(daily) != 2 {
		t.Fatalf("expected 2 aggregates, got %d", len(daily))
	}

	first := daily[0]
	if !first.Date.Equal(d1) {
		t.Errorf("expected first aggregate on %v, got %v", d1, first.Date)
	}
	if math.Abs(first.AvgCombined-0.3) > 1e-12 {
		t.Errorf("expected avg combined 0.3, got %f", first.AvgCombined)
	}
	if math.Abs(first.AvgVader-0.3) > 1e-12 {
		t.Errorf("expected avg vader 0.3, got %f", first.AvgVader)
	}
	if first.Count != 2 {
		t.Errorf("expected count 2, got %d", first.Count)
	}

	second := daily[1]
	if second.Count != 1 || second.AvgCombined != -0.3 {
		t.Errorf("wrong second aggregate: %+v", second)
	}
}

func TestDailyAggregates_SortedRegardlessOfInputOrder(t *testing.T) {
	d1 := domain.DateYMD(2025, time.April, 1)
	d2 := domain.DateYMD(2025, time.April, 5)

	records := []domain.SentimentRecord{
		record("late", d2, 0.1, 0.1),
		record("early", d1, 0.2, 0.2),
	}

	daily := DailyAggregates(records)
	if len(daily) != 2 {
		t.Fatalf("expected 2 aggregates, got %d", len(daily))
	}
	if !daily[0].Date.Before(daily[1].Date) {
		t.Error("aggregates must come out sorted by date ASC")
	}
}

func TestDailyAggregates_Empty(t *testing.T) {
	if daily := DailyAggregates(nil); daily != nil {
		t.Errorf("expected nil for empty corpus, got %v", daily)
	}
}

func TestDailyAggregates_TimestampNormalizedToDay(t *testing.T) {
	// Two records on the same calendar day at different hours must
	// land in one aggregate
	d := domain.DateYMD(2025, time.April, 1)
	records := []domain.SentimentRecord{
		record("morning", d, 0.2, 0.2),
		record("evening", d.Add(20*time.Hour), 0.4, 0.4),
	}

	daily := DailyAggregates(records)
	if len(daily) != 1 {
		t.Fatalf("expected 1 aggregate, got %d", len(daily))
	}
	if daily[0].Count != 2 {
		t.Errorf("expected both records grouped, got count %d", daily[0].Count)
	}
}

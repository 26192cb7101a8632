package pipeline

import (
	"context"
	"fmt"
	"math"
	"time"

	"tariff-event-lab/internal/domain"
	"tariff-event-lab/internal/storage"
)

// FixtureEvent is the event date the fixture data brackets.
var FixtureEvent = domain.Event{Label: "17pct_announcement", Date: domain.DateYMD(2025, time.April, 2)}

// LoadFixtures populates stores with deterministic demonstration data:
// two companies with ~4 weeks of bars around the fixture event, and a
// small scored sentiment corpus on the same dates.
func LoadFixtures(
	ctx context.Context,
	barStore storage.DailyBarStore,
	sentimentStore storage.SentimentRecordStore,
) error {
	if err := loadBars(ctx, barStore); err != nil {
		return err
	}
	return loadSentiment(ctx, sentimentStore)
}

func loadBars(ctx context.Context, store storage.DailyBarStore) error {
	start := domain.DateYMD(2025, time.March, 17)
	const days = 30

	specs := []struct {
		ticker string
		base   float64
		drift  float64 // daily price step before the event
		shock  float64 // one-off level shift on the event date
	}{
		{ticker: "JFC", base: 250, drift: 0.5, shock: -6},
		{ticker: "URC", base: 110, drift: -0.2, shock: -2.5},
	}

	for _, s := range specs {
		var bars []*domain.DailyBar
		price := s.base
		for i := 0; i < days; i++ {
			date := start.AddDate(0, 0, i)
			price += s.drift
			if date.Equal(FixtureEvent.Date) {
				price += s.shock
			}
			// Small deterministic wiggle so volatility is nonzero
			closePx := price + 1.5*math.Sin(float64(i))
			bars = append(bars, &domain.DailyBar{
				Ticker: s.ticker,
				Date:   date,
				Open:   closePx - 0.5,
				High:   closePx + 1.0,
				Low:    closePx - 1.0,
				Close:  closePx,
			})
		}
		if err := store.InsertBulk(ctx, bars); err != nil {
			return fmt.Errorf("load fixture bars for %s: %w", s.ticker, err)
		}
	}
	return nil
}

func loadSentiment(ctx context.Context, store storage.SentimentRecordStore) error {
	start := domain.DateYMD(2025, time.March, 17)
	const days = 30

	var records []*domain.SentimentRecord
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		// Sentiment dips after the event date
		combined := 0.25 * math.Cos(float64(i)/3)
		if !date.Before(FixtureEvent.Date) {
			combined -= 0.2
		}
		records = append(records, &domain.SentimentRecord{
			RecordID:      fmt.Sprintf("fx_%03d", i),
			PostedAt:      date.Add(14 * time.Hour),
			Date:          date,
			Subreddit:     "phinvest",
			Title:         fmt.Sprintf("Tariff watch day %d", i+1),
			Body:          "Discussion of tariff impact on food stocks.",
			Author:        "fixture_author",
			Score:         10 + i,
			Relevance:     5,
			CombinedScore: combined,
			VaderCompound: combined * 0.8,
		})
	}

	if err := store.InsertBulk(ctx, records); err != nil {
		return fmt.Errorf("load fixture sentiment: %w", err)
	}
	return nil
}

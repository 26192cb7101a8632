package reporting

import (
	"context"
	"sort"
	"time"

	"tariff-event-lab/internal/domain"
	"tariff-event-lab/internal/sentiment"
	"tariff-event-lab/internal/storage"
)

// Generator produces reports from stored data. The volatility and
// moving-average comparison tables are computed upstream and passed
// in; everything else is read from the stores.
type Generator struct {
	barStore       storage.DailyBarStore
	sentimentStore storage.SentimentRecordStore
	resultStore    storage.StudyResultStore
	now            func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(
	barStore storage.DailyBarStore,
	sentimentStore storage.SentimentRecordStore,
	resultStore storage.StudyResultStore,
) *Generator {
	return &Generator{
		barStore:       barStore,
		sentimentStore: sentimentStore,
		resultStore:    resultStore,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Generate assembles a complete study report.
func (g *Generator) Generate(
	ctx context.Context,
	volComparisons []domain.VolatilityComparison,
	maChanges []domain.MovingAverageChange,
) (*Report, error) {
	summary, err := g.generateDataSummary(ctx)
	if err != nil {
		return nil, err
	}

	correlations, err := g.resultStore.GetCorrelations(ctx)
	if err != nil {
		return nil, err
	}
	significance, err := g.resultStore.GetSignificance(ctx)
	if err != nil {
		return nil, err
	}

	records, err := g.sentimentStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	recordVals := make([]domain.SentimentRecord, len(records))
	for i, r := range records {
		recordVals[i] = *r
	}
	daily := sentiment.DailyAggregates(recordVals)

	// Count unique events across the significance table
	eventSet := make(map[string]struct{})
	for _, s := range significance {
		eventSet[s.EventLabel] = struct{}{}
	}

	report := &Report{
		GeneratedAt:           g.now(),
		TickerCount:           len(summary.PerTickerBars),
		EventCount:            len(eventSet),
		DataSummary:           *summary,
		VolatilityComparisons: sortedVolatility(volComparisons),
		MovingAverageChanges:  sortedMAChanges(maChanges),
		CorrelationResults:    derefCorrelations(correlations),
		SignificanceResults:   derefSignificance(significance),
		SentimentDaily:        daily,
	}
	report.DataSummary.SentimentRecords = len(records)
	report.DataSummary.SentimentDays = len(daily)

	return report, nil
}

// generateDataSummary computes per-ticker bar counts and the overall
// date range from the bar store.
func (g *Generator) generateDataSummary(ctx context.Context) (*DataSummary, error) {
	tickers, err := g.barStore.Tickers(ctx)
	if err != nil {
		return nil, err
	}

	summary := &DataSummary{}
	for _, ticker := range tickers {
		bars, err := g.barStore.GetByTicker(ctx, ticker)
		if err != nil {
			return nil, err
		}
		summary.PerTickerBars = append(summary.PerTickerBars, TickerBarCount{
			Ticker: ticker,
			Bars:   len(bars),
		})
		summary.TotalBars += len(bars)

		for _, bar := range bars {
			if summary.DateRangeStart.IsZero() || bar.Date.Before(summary.DateRangeStart) {
				summary.DateRangeStart = bar.Date
			}
			if summary.DateRangeEnd.IsZero() || bar.Date.After(summary.DateRangeEnd) {
				summary.DateRangeEnd = bar.Date
			}
		}
	}

	return summary, nil
}

func sortedVolatility(rows []domain.VolatilityComparison) []domain.VolatilityComparison {
	out := make([]domain.VolatilityComparison, len(rows))
	copy(out, rows)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ticker != out[j].Ticker {
			return out[i].Ticker < out[j].Ticker
		}
		return out[i].EventLabel < out[j].EventLabel
	})
	return out
}

func sortedMAChanges(rows []domain.MovingAverageChange) []domain.MovingAverageChange {
	out := make([]domain.MovingAverageChange, len(rows))
	copy(out, rows)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ticker != out[j].Ticker {
			return out[i].Ticker < out[j].Ticker
		}
		if out[i].EventLabel != out[j].EventLabel {
			return out[i].EventLabel < out[j].EventLabel
		}
		return out[i].WindowDays < out[j].WindowDays
	})
	return out
}

func derefCorrelations(rows []*domain.CorrelationResult) []domain.CorrelationResult {
	out := make([]domain.CorrelationResult, len(rows))
	for i, r := range rows {
		out[i] = *r
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ticker != out[j].Ticker {
			return out[i].Ticker < out[j].Ticker
		}
		return out[i].Scope < out[j].Scope
	})
	return out
}

func derefSignificance(rows []*domain.SignificanceResult) []domain.SignificanceResult {
	out := make([]domain.SignificanceResult, len(rows))
	for i, r := range rows {
		out[i] = *r
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Ticker != out[j].Ticker {
			return out[i].Ticker < out[j].Ticker
		}
		return out[i].EventLabel < out[j].EventLabel
	})
	return out
}

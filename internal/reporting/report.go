package reporting

import (
	"time"

	"tariff-event-lab/internal/domain"
)

// Report represents the tariff event study report structure.
type Report struct {
	// Metadata
	GeneratedAt time.Time
	TickerCount int
	EventCount  int

	// Data Summary
	DataSummary DataSummary

	// Result tables (sorted by ticker, then scope/event label)
	VolatilityComparisons []domain.VolatilityComparison
	MovingAverageChanges  []domain.MovingAverageChange
	CorrelationResults    []domain.CorrelationResult
	SignificanceResults   []domain.SignificanceResult

	// Daily sentiment aggregates (sorted by date)
	SentimentDaily []domain.SentimentDailyAggregate
}

// DataSummary describes the input data the study ran on.
type DataSummary struct {
	TotalBars        int
	PerTickerBars    []TickerBarCount
	DateRangeStart   time.Time
	DateRangeEnd     time.Time
	SentimentRecords int
	SentimentDays    int
}

// TickerBarCount is one row of the per-company bar count table.
type TickerBarCount struct {
	Ticker string
	Bars   int
}

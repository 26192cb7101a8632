package storage

import (
	"context"
	"time"

	"tariff-event-lab/internal/domain"
)

// DailyBarStore provides access to daily_bars storage.
type DailyBarStore interface {
	// InsertBulk adds multiple bars. Fails entire batch on duplicate (ticker, date).
	InsertBulk(ctx context.Context, bars []*domain.DailyBar) error

	// GetByTicker retrieves all bars for a ticker, ordered by date ASC.
	GetByTicker(ctx context.Context, ticker string) ([]*domain.DailyBar, error)

	// GetByDateRange retrieves bars for a ticker within [start, end] (inclusive).
	GetByDateRange(ctx context.Context, ticker string, start, end time.Time) ([]*domain.DailyBar, error)

	// Tickers lists the distinct tickers present, sorted ASC.
	Tickers(ctx context.Context) ([]string, error)
}

// SentimentRecordStore provides access to sentiment_records storage.
type SentimentRecordStore interface {
	// InsertBulk adds multiple records. Fails entire batch on duplicate record_id.
	InsertBulk(ctx context.Context, records []*domain.SentimentRecord) error

	// GetAll retrieves all records, ordered by (date, record_id) ASC.
	GetAll(ctx context.Context) ([]*domain.SentimentRecord, error)

	// GetByDateRange retrieves records dated within [start, end] (inclusive).
	GetByDateRange(ctx context.Context, start, end time.Time) ([]*domain.SentimentRecord, error)
}

// ReturnTimeseriesStore provides access to return_timeseries storage.
type ReturnTimeseriesStore interface {
	// InsertBulk adds multiple points. Fails entire batch on duplicate (ticker, date).
	InsertBulk(ctx context.Context, points []*domain.ReturnPoint) error

	// GetByTicker retrieves all points for a ticker, ordered by date ASC.
	GetByTicker(ctx context.Context, ticker string) ([]*domain.ReturnPoint, error)
}

// MovingAverageStore provides access to moving_average_timeseries storage.
type MovingAverageStore interface {
	// InsertBulk adds multiple points. Fails entire batch on duplicate
	// (ticker, date, window_days).
	InsertBulk(ctx context.Context, points []*domain.MovingAveragePoint) error

	// GetByTicker retrieves points for a ticker and window, ordered by date ASC.
	GetByTicker(ctx context.Context, ticker string, windowDays int) ([]*domain.MovingAveragePoint, error)
}

// StudyResultStore provides access to computed result tables.
type StudyResultStore interface {
	// InsertCorrelations adds correlation rows. Fails entire batch on
	// duplicate (ticker, scope).
	InsertCorrelations(ctx context.Context, results []*domain.CorrelationResult) error

	// InsertSignificance adds significance rows. Fails entire batch on
	// duplicate (ticker, event_label).
	InsertSignificance(ctx context.Context, results []*domain.SignificanceResult) error

	// GetCorrelations retrieves all correlation rows, ordered by (ticker, scope) ASC.
	GetCorrelations(ctx context.Context) ([]*domain.CorrelationResult, error)

	// GetSignificance retrieves all significance rows, ordered by (ticker, event_label) ASC.
	GetSignificance(ctx context.Context) ([]*domain.SignificanceResult, error)
}

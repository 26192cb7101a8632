package clickhouse

import (
	"context"
	"fmt"
	"time"

	"tariff-event-lab/internal/domain"
	"tariff-event-lab/internal/storage"
)

// MovingAverageStore implements storage.MovingAverageStore using ClickHouse.
// The value column is Nullable for the warmup dates where the trailing
// window is not yet fully populated.
type MovingAverageStore struct {
	conn *Conn
}

// NewMovingAverageStore creates a new MovingAverageStore.
func NewMovingAverageStore(conn *Conn) *MovingAverageStore {
	return &MovingAverageStore{conn: conn}
}

// Compile-time interface check.
var _ storage.MovingAverageStore = (*MovingAverageStore)(nil)

// InsertBulk adds multiple points. Fails entire batch on duplicate
// (ticker, date, window_days).
func (s *MovingAverageStore) InsertBulk(ctx context.Context, points []*domain.MovingAveragePoint) error {
	if len(points) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	type key struct {
		ticker     string
		date       time.Time
		windowDays int
	}
	seen := make(map[key]struct{})
	for _, p := range points {
		k := key{p.Ticker, p.Date, p.WindowDays}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	// Check for duplicates against existing DB rows
	for _, p := range points {
		exists, err := s.exists(ctx, p.Ticker, p.Date, p.WindowDays)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO moving_average_timeseries (ticker, bar_date, window_days, value)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range points {
		if err := batch.Append(p.Ticker, p.Date, uint16(p.WindowDays), p.Value); err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByTicker retrieves points for a ticker and window, ordered by date ASC.
func (s *MovingAverageStore) GetByTicker(ctx context.Context, ticker string, windowDays int) ([]*domain.MovingAveragePoint, error) {
	query := `
		SELECT ticker, bar_date, window_days, value
		FROM moving_average_timeseries
		WHERE ticker = ? AND window_days = ?
		ORDER BY bar_date ASC
	`

	rows, err := s.conn.Query(ctx, query, ticker, uint16(windowDays))
	if err != nil {
		return nil, fmt.Errorf("query moving average timeseries: %w", err)
	}
	defer rows.Close()

	var result []*domain.MovingAveragePoint
	for rows.Next() {
		var p domain.MovingAveragePoint
		var barDate time.Time
		var window uint16
		if err := rows.Scan(&p.Ticker, &barDate, &window, &p.Value); err != nil {
			return nil, fmt.Errorf("scan moving average point: %w", err)
		}
		p.Date = domain.Day(barDate)
		p.WindowDays = int(window)
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate moving average points: %w", err)
	}

	return result, nil
}

// exists checks whether a (ticker, date, window_days) row is already stored.
func (s *MovingAverageStore) exists(ctx context.Context, ticker string, date time.Time, windowDays int) (bool, error) {
	query := `
		SELECT count() FROM moving_average_timeseries
		WHERE ticker = ? AND bar_date = ? AND window_days = ?
	`

	var count uint64
	if err := s.conn.QueryRow(ctx, query, ticker, date, uint16(windowDays)).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

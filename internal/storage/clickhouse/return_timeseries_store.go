package clickhouse

import (
	"context"
	"fmt"
	"time"

	"tariff-event-lab/internal/domain"
	"tariff-event-lab/internal/storage"
)

// ReturnTimeseriesStore implements storage.ReturnTimeseriesStore using ClickHouse.
// The log_return column is Nullable; an undefined first-day return is
// stored as NULL, never coerced to zero.
type ReturnTimeseriesStore struct {
	conn *Conn
}

// NewReturnTimeseriesStore creates a new ReturnTimeseriesStore.
func NewReturnTimeseriesStore(conn *Conn) *ReturnTimeseriesStore {
	return &ReturnTimeseriesStore{conn: conn}
}

// Compile-time interface check.
var _ storage.ReturnTimeseriesStore = (*ReturnTimeseriesStore)(nil)

// InsertBulk adds multiple points. Fails entire batch on duplicate (ticker, date).
func (s *ReturnTimeseriesStore) InsertBulk(ctx context.Context, points []*domain.ReturnPoint) error {
	if len(points) == 0 {
		return nil
	}

	// Check for intra-batch duplicates
	type key struct {
		ticker string
		date   time.Time
	}
	seen := make(map[key]struct{})
	for _, p := range points {
		k := key{p.Ticker, p.Date}
		if _, exists := seen[k]; exists {
			return storage.ErrDuplicateKey
		}
		seen[k] = struct{}{}
	}

	// Check for duplicates against existing DB rows
	for _, p := range points {
		exists, err := s.exists(ctx, p.Ticker, p.Date)
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		if exists {
			return storage.ErrDuplicateKey
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, `
		INSERT INTO return_timeseries (ticker, bar_date, log_return)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, p := range points {
		if err := batch.Append(p.Ticker, p.Date, p.LogReturn); err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}

// GetByTicker retrieves all points for a ticker, ordered by date ASC.
func (s *ReturnTimeseriesStore) GetByTicker(ctx context.Context, ticker string) ([]*domain.ReturnPoint, error) {
	query := `
		SELECT ticker, bar_date, log_return
		FROM return_timeseries
		WHERE ticker = ?
		ORDER BY bar_date ASC
	`

	rows, err := s.conn.Query(ctx, query, ticker)
	if err != nil {
		return nil, fmt.Errorf("query return timeseries: %w", err)
	}
	defer rows.Close()

	var result []*domain.ReturnPoint
	for rows.Next() {
		var p domain.ReturnPoint
		var barDate time.Time
		if err := rows.Scan(&p.Ticker, &barDate, &p.LogReturn); err != nil {
			return nil, fmt.Errorf("scan return point: %w", err)
		}
		p.Date = domain.Day(barDate)
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate return points: %w", err)
	}

	return result, nil
}

// exists checks whether a (ticker, date) row is already stored.
func (s *ReturnTimeseriesStore) exists(ctx context.Context, ticker string, date time.Time) (bool, error) {
	query := `
		SELECT count() FROM return_timeseries
		WHERE ticker = ? AND bar_date = ?
	`

	var count uint64
	if err := s.conn.QueryRow(ctx, query, ticker, date).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

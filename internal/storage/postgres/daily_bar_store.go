package postgres

import (
	"context"
	"fmt"
	"time"

	"tariff-event-lab/internal/domain"
	"tariff-event-lab/internal/storage"
)

// DailyBarStore implements storage.DailyBarStore using PostgreSQL.
type DailyBarStore struct {
	pool *Pool
}

// NewDailyBarStore creates a new DailyBarStore.
func NewDailyBarStore(pool *Pool) *DailyBarStore {
	return &DailyBarStore{pool: pool}
}

// Compile-time interface check.
var _ storage.DailyBarStore = (*DailyBarStore)(nil)

// InsertBulk adds multiple bars atomically. Fails entire batch on any duplicate.
func (s *DailyBarStore) InsertBulk(ctx context.Context, bars []*domain.DailyBar) error {
	if len(bars) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO daily_bars (ticker, bar_date, open, high, low, close)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, b := range bars {
		_, err := tx.Exec(ctx, query,
			b.Ticker,
			b.Date,
			b.Open,
			b.High,
			b.Low,
			b.Close,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert daily bar in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetByTicker retrieves all bars for a ticker, ordered by date ASC.
func (s *DailyBarStore) GetByTicker(ctx context.Context, ticker string) ([]*domain.DailyBar, error) {
	query := `
		SELECT ticker, bar_date, open, high, low, close
		FROM daily_bars
		WHERE ticker = $1
		ORDER BY bar_date ASC
	`

	rows, err := s.pool.Query(ctx, query, ticker)
	if err != nil {
		return nil, fmt.Errorf("get bars by ticker: %w", err)
	}
	defer rows.Close()

	return scanBars(rows)
}

// GetByDateRange retrieves bars for a ticker within [start, end] (inclusive).
func (s *DailyBarStore) GetByDateRange(ctx context.Context, ticker string, start, end time.Time) ([]*domain.DailyBar, error) {
	query := `
		SELECT ticker, bar_date, open, high, low, close
		FROM daily_bars
		WHERE ticker = $1 AND bar_date >= $2 AND bar_date <= $3
		ORDER BY bar_date ASC
	`

	rows, err := s.pool.Query(ctx, query, ticker, start, end)
	if err != nil {
		return nil, fmt.Errorf("get bars by date range: %w", err)
	}
	defer rows.Close()

	return scanBars(rows)
}

// Tickers lists the distinct tickers present, sorted ASC.
func (s *DailyBarStore) Tickers(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT ticker FROM daily_bars ORDER BY ticker ASC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tickers: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var ticker string
		if err := rows.Scan(&ticker); err != nil {
			return nil, fmt.Errorf("scan ticker: %w", err)
		}
		result = append(result, ticker)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tickers: %w", err)
	}

	return result, nil
}

// rowScanner is the subset of pgx.Rows the scan helpers need.
type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanBars(rows rowScanner) ([]*domain.DailyBar, error) {
	var result []*domain.DailyBar
	for rows.Next() {
		var b domain.DailyBar
		var barDate time.Time
		if err := rows.Scan(&b.Ticker, &barDate, &b.Open, &b.High, &b.Low, &b.Close); err != nil {
			return nil, fmt.Errorf("scan daily bar: %w", err)
		}
		b.Date = domain.Day(barDate)
		result = append(result, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily bars: %w", err)
	}
	return result, nil
}

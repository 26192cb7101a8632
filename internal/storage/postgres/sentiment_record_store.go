package postgres

import (
	"context"
	"fmt"
	"time"

	"tariff-event-lab/internal/domain"
	"tariff-event-lab/internal/storage"
)

// SentimentRecordStore implements storage.SentimentRecordStore using PostgreSQL.
type SentimentRecordStore struct {
	pool *Pool
}

// NewSentimentRecordStore creates a new SentimentRecordStore.
func NewSentimentRecordStore(pool *Pool) *SentimentRecordStore {
	return &SentimentRecordStore{pool: pool}
}

// Compile-time interface check.
var _ storage.SentimentRecordStore = (*SentimentRecordStore)(nil)

// InsertBulk adds multiple records atomically. Fails entire batch on any duplicate.
func (s *SentimentRecordStore) InsertBulk(ctx context.Context, records []*domain.SentimentRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO sentiment_records (
			record_id, posted_at, record_date, subreddit, title, body, author,
			score, relevance, combined_score, vader_compound
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for _, r := range records {
		_, err := tx.Exec(ctx, query,
			r.RecordID,
			r.PostedAt,
			r.Date,
			r.Subreddit,
			r.Title,
			r.Body,
			r.Author,
			r.Score,
			r.Relevance,
			r.CombinedScore,
			r.VaderCompound,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert sentiment record in bulk: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetAll retrieves all records, ordered by (date, record_id) ASC.
func (s *SentimentRecordStore) GetAll(ctx context.Context) ([]*domain.SentimentRecord, error) {
	query := selectRecords + ` ORDER BY record_date ASC, record_id ASC`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all sentiment records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetByDateRange retrieves records dated within [start, end] (inclusive).
func (s *SentimentRecordStore) GetByDateRange(ctx context.Context, start, end time.Time) ([]*domain.SentimentRecord, error) {
	query := selectRecords + `
		WHERE record_date >= $1 AND record_date <= $2
		ORDER BY record_date ASC, record_id ASC
	`

	rows, err := s.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("get sentiment records by date range: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

const selectRecords = `
	SELECT record_id, posted_at, record_date, subreddit, title, body, author,
	       score, relevance, combined_score, vader_compound
	FROM sentiment_records
`

func scanRecords(rows rowScanner) ([]*domain.SentimentRecord, error) {
	var result []*domain.SentimentRecord
	for rows.Next() {
		var r domain.SentimentRecord
		var recordDate time.Time
		err := rows.Scan(
			&r.RecordID,
			&r.PostedAt,
			&recordDate,
			&r.Subreddit,
			&r.Title,
			&r.Body,
			&r.Author,
			&r.Score,
			&r.Relevance,
			&r.CombinedScore,
			&r.VaderCompound,
		)
		if err != nil {
			return nil, fmt.Errorf("scan sentiment record: %w", err)
		}
		r.PostedAt = r.PostedAt.UTC()
		r.Date = domain.Day(recordDate)
		result = append(result, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sentiment records: %w", err)
	}
	return result, nil
}

package postgres

import (
	"context"
	"fmt"

	"tariff-event-lab/internal/domain"
	"tariff-event-lab/internal/storage"
)

// StudyResultStore implements storage.StudyResultStore using PostgreSQL.
// Nullable columns carry the "not computable" states; a nil pointer
// round-trips as SQL NULL, never as zero.
type StudyResultStore struct {
	pool *Pool
}

// NewStudyResultStore creates a new StudyResultStore.
func NewStudyResultStore(pool *Pool) *StudyResultStore {
	return &StudyResultStore{pool: pool}
}

// Compile-time interface check.
var _ storage.StudyResultStore = (*StudyResultStore)(nil)

// InsertCorrelations adds correlation rows atomically. Fails entire
// batch on any duplicate (ticker, scope).
func (s *StudyResultStore) InsertCorrelations(ctx context.Context, results []*domain.CorrelationResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO correlation_results (
			ticker, scope, returns_vs_avg, returns_vs_vader, p_value,
			significant, meaningful, observations
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, r := range results {
		_, err := tx.Exec(ctx, query,
			r.Ticker,
			r.Scope,
			r.ReturnsVsAvg,
			r.ReturnsVsVader,
			r.PValue,
			r.Significant,
			r.Meaningful,
			r.Observations,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert correlation result: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// InsertSignificance adds significance rows atomically. Fails entire
// batch on any duplicate (ticker, event_label).
func (s *StudyResultStore) InsertSignificance(ctx context.Context, results []*domain.SignificanceResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO significance_results (
			ticker, event_label, mean_before, mean_after, p_value,
			significant, n_before, n_after
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, r := range results {
		_, err := tx.Exec(ctx, query,
			r.Ticker,
			r.EventLabel,
			r.MeanBefore,
			r.MeanAfter,
			r.PValue,
			r.Significant,
			r.NBefore,
			r.NAfter,
		)
		if err != nil {
			if isDuplicateKeyError(err) {
				return storage.ErrDuplicateKey
			}
			return fmt.Errorf("insert significance result: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetCorrelations retrieves all correlation rows, ordered by (ticker, scope) ASC.
func (s *StudyResultStore) GetCorrelations(ctx context.Context) ([]*domain.CorrelationResult, error) {
	query := `
		SELECT ticker, scope, returns_vs_avg, returns_vs_vader, p_value,
		       significant, meaningful, observations
		FROM correlation_results
		ORDER BY ticker ASC, scope ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get correlation results: %w", err)
	}
	defer rows.Close()

	var result []*domain.CorrelationResult
	for rows.Next() {
		var r domain.CorrelationResult
		err := rows.Scan(
			&r.Ticker,
			&r.Scope,
			&r.ReturnsVsAvg,
			&r.ReturnsVsVader,
			&r.PValue,
			&r.Significant,
			&r.Meaningful,
			&r.Observations,
		)
		if err != nil {
			return nil, fmt.Errorf("scan correlation result: %w", err)
		}
		result = append(result, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate correlation results: %w", err)
	}

	return result, nil
}

// GetSignificance retrieves all significance rows, ordered by (ticker, event_label) ASC.
func (s *StudyResultStore) GetSignificance(ctx context.Context) ([]*domain.SignificanceResult, error) {
	query := `
		SELECT ticker, event_label, mean_before, mean_after, p_value,
		       significant, n_before, n_after
		FROM significance_results
		ORDER BY ticker ASC, event_label ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get significance results: %w", err)
	}
	defer rows.Close()

	var result []*domain.SignificanceResult
	for rows.Next() {
		var r domain.SignificanceResult
		err := rows.Scan(
			&r.Ticker,
			&r.EventLabel,
			&r.MeanBefore,
			&r.MeanAfter,
			&r.PValue,
			&r.Significant,
			&r.NBefore,
			&r.NAfter,
		)
		if err != nil {
			return nil, fmt.Errorf("scan significance result: %w", err)
		}
		result = append(result, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate significance results: %w", err)
	}

	return result, nil
}

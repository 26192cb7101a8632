package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariff-event-lab/internal/domain"
	"tariff-event-lab/internal/storage"
)

func TestStudyResultStore_CorrelationsNullRoundTrip(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewStudyResultStore(pool)
	ctx := context.Background()

	err := store.InsertCorrelations(ctx, []*domain.CorrelationResult{
		{
			Ticker:         "JFC",
			Scope:          domain.ScopeOverall,
			ReturnsVsAvg:   ptr(0.42),
			ReturnsVsVader: ptr(0.35),
			PValue:         ptr(0.012),
			Significant:    true,
			Meaningful:     true,
			Observations:   50,
		},
		{
			// Single-pair scope: every statistic is undefined.
			Ticker:       "JFC",
			Scope:        "19pct_deal",
			Observations: 1,
		},
	})
	require.NoError(t, err)

	results, err := store.GetCorrelations(ctx)
	require.NoError(t, err)
	require.Len(t, results, 2)

	undefined := results[0]
	assert.Equal(t, "19pct_deal", undefined.Scope, "ordered by ticker then scope")
	assert.Nil(t, undefined.ReturnsVsAvg, "NULL must come back as nil, not zero")
	assert.Nil(t, undefined.ReturnsVsVader)
	assert.Nil(t, undefined.PValue)
	assert.False(t, undefined.Significant)
	assert.False(t, undefined.Meaningful)
	assert.Equal(t, 1, undefined.Observations)

	defined := results[1]
	assert.Equal(t, domain.ScopeOverall, defined.Scope)
	require.NotNil(t, defined.ReturnsVsAvg)
	assert.Equal(t, 0.42, *defined.ReturnsVsAvg)
	require.NotNil(t, defined.PValue)
	assert.Equal(t, 0.012, *defined.PValue)
	assert.True(t, defined.Significant)
	assert.True(t, defined.Meaningful)
}

func TestStudyResultStore_CorrelationDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewStudyResultStore(pool)
	ctx := context.Background()

	row := &domain.CorrelationResult{Ticker: "URC", Scope: domain.ScopeOverall, Observations: 10}
	require.NoError(t, store.InsertCorrelations(ctx, []*domain.CorrelationResult{row}))

	err := store.InsertCorrelations(ctx, []*domain.CorrelationResult{row})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	// Same ticker, different scope is a distinct key.
	err = store.InsertCorrelations(ctx, []*domain.CorrelationResult{
		{Ticker: "URC", Scope: "inauguration", Observations: 5},
	})
	assert.NoError(t, err)
}

func TestStudyResultStore_SignificanceNullRoundTrip(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewStudyResultStore(pool)
	ctx := context.Background()

	err := store.InsertSignificance(ctx, []*domain.SignificanceResult{
		{
			Ticker:      "MONDE",
			EventLabel:  "20pct_escalation",
			MeanBefore:  ptr(0.0012),
			MeanAfter:   ptr(-0.0045),
			PValue:      ptr(0.031),
			Significant: true,
			NBefore:     40,
			NAfter:      12,
		},
		{
			// One side too small to test.
			Ticker:     "MONDE",
			EventLabel: "19pct_deal",
			MeanBefore: ptr(0.0008),
			NBefore:    51,
			NAfter:     1,
		},
	})
	require.NoError(t, err)

	results, err := store.GetSignificance(ctx)
	require.NoError(t, err)
	require.Len(t, results, 2)

	partial := results[0]
	assert.Equal(t, "19pct_deal", partial.EventLabel)
	require.NotNil(t, partial.MeanBefore)
	assert.Equal(t, 0.0008, *partial.MeanBefore)
	assert.Nil(t, partial.MeanAfter)
	assert.Nil(t, partial.PValue)
	assert.False(t, partial.Significant)
	assert.Equal(t, 51, partial.NBefore)
	assert.Equal(t, 1, partial.NAfter)

	full := results[1]
	require.NotNil(t, full.PValue)
	assert.Equal(t, 0.031, *full.PValue)
	assert.True(t, full.Significant)
}

func TestStudyResultStore_SignificanceDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewStudyResultStore(pool)
	ctx := context.Background()

	row := &domain.SignificanceResult{Ticker: "GSMI", EventLabel: "inauguration", NBefore: 3, NAfter: 3}
	require.NoError(t, store.InsertSignificance(ctx, []*domain.SignificanceResult{row}))

	err := store.InsertSignificance(ctx, []*domain.SignificanceResult{row})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)
}

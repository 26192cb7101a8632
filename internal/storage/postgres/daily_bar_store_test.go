package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariff-event-lab/internal/domain"
	"tariff-event-lab/internal/storage"
)

func testBar(ticker string, date time.Time, closePx float64) *domain.DailyBar {
	return &domain.DailyBar{
		Ticker: ticker,
		Date:   date,
		Open:   closePx - 1,
		High:   closePx + 2,
		Low:    closePx - 3,
		Close:  closePx,
	}
}

func TestDailyBarStore_InsertAndGetByTicker(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewDailyBarStore(pool)
	ctx := context.Background()

	d1 := domain.DateYMD(2025, time.April, 1)
	d2 := domain.DateYMD(2025, time.April, 2)

	err := store.InsertBulk(ctx, []*domain.DailyBar{
		testBar("JFC", d2, 248.0),
		testBar("JFC", d1, 252.4),
		testBar("URC", d1, 110.5),
	})
	require.NoError(t, err)

	bars, err := store.GetByTicker(ctx, "JFC")
	require.NoError(t, err)
	require.Len(t, bars, 2)

	assert.True(t, bars[0].Date.Equal(d1), "bars should come back date-ascending")
	assert.Equal(t, 252.4, bars[0].Close)
	assert.Equal(t, 251.4, bars[0].Open)
	assert.True(t, bars[1].Date.Equal(d2))
}

func TestDailyBarStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewDailyBarStore(pool)
	ctx := context.Background()

	d := domain.DateYMD(2025, time.April, 1)
	require.NoError(t, store.InsertBulk(ctx, []*domain.DailyBar{testBar("JFC", d, 250)}))

	err := store.InsertBulk(ctx, []*domain.DailyBar{
		testBar("JFC", domain.DateYMD(2025, time.April, 2), 251),
		testBar("JFC", d, 252),
	})
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	// The failed batch must not have partially inserted.
	bars, err := store.GetByTicker(ctx, "JFC")
	require.NoError(t, err)
	assert.Len(t, bars, 1)
}

func TestDailyBarStore_GetByDateRange(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewDailyBarStore(pool)
	ctx := context.Background()

	var bars []*domain.DailyBar
	for i := 1; i <= 5; i++ {
		bars = append(bars, testBar("CNPF", domain.DateYMD(2025, time.April, i), 36+float64(i)))
	}
	require.NoError(t, store.InsertBulk(ctx, bars))

	got, err := store.GetByDateRange(ctx, "CNPF",
		domain.DateYMD(2025, time.April, 2), domain.DateYMD(2025, time.April, 4))
	require.NoError(t, err)
	require.Len(t, got, 3, "range is inclusive on both ends")
	assert.True(t, got[0].Date.Equal(domain.DateYMD(2025, time.April, 2)))
	assert.True(t, got[2].Date.Equal(domain.DateYMD(2025, time.April, 4)))
}

func TestDailyBarStore_Tickers(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewDailyBarStore(pool)
	ctx := context.Background()

	d := domain.DateYMD(2025, time.April, 1)
	require.NoError(t, store.InsertBulk(ctx, []*domain.DailyBar{
		testBar("MONDE", d, 8.5),
		testBar("GSMI", d, 92.0),
		testBar("MONDE", domain.DateYMD(2025, time.April, 2), 8.6),
	}))

	tickers, err := store.Tickers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"GSMI", "MONDE"}, tickers)
}

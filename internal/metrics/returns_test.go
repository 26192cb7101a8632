package metrics

import (
	"errors"
	"math"
	"testing"
	"time"

	"tariff-event-lab/internal/domain"
)

const floatTol = 1e-12

func barSeries(ticker string, start time.Time, closes []float64) []domain.DailyBar {
	bars := make([]domain.DailyBar, len(closes))
	for i, c := range closes {
		bars[i] = domain.DailyBar{
			Ticker: ticker,
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
		}
	}
	return bars
}

func TestComputeLogReturns_FirstObservationUndefined(t *testing.T) {
	start := domain.DateYMD(2025, time.March, 3)
	bars := barSeries("JFC", start, []float64{100, 102, 101, 105, 107})

	returns, err := ComputeLogReturns(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(returns) != 5 {
		t.Fatalf("expected 5 points, got %d", len(returns))
	}

	if returns[0].LogReturn != nil {
		t.Errorf("expected first return undefined, got %f", *returns[0].LogReturn)
	}

	want := []float64{
		math.Log(102.0 / 100.0),
		math.Log(101.0 / 102.0),
		math.Log(105.0 / 101.0),
		math.Log(107.0 / 105.0),
	}
	for i, w := range want {
		got := returns[i+1]
		if got.LogReturn == nil {
			t.Fatalf("point %d: expected defined return", i+1)
		}
		if math.Abs(*got.LogReturn-w) > floatTol {
			t.Errorf("point %d: expected %.12f, got %.12f", i+1, w, *got.LogReturn)
		}
	}
}

func TestComputeLogReturns_DatesAndTickerCarried(t *testing.T) {
	start := domain.DateYMD(2025, time.March, 3)
	bars := barSeries("URC", start, []float64{110, 111})

	returns, err := ComputeLogReturns(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if returns[1].Ticker != "URC" {
		t.Errorf("expected ticker URC, got %s", returns[1].Ticker)
	}
	if !returns[1].Date.Equal(start.AddDate(0, 0, 1)) {
		t.Errorf("expected date %v, got %v", start.AddDate(0, 0, 1), returns[1].Date)
	}
}

func TestComputeLogReturns_NonPositiveClose(t *testing.T) {
	start := domain.DateYMD(2025, time.March, 3)
	bars := barSeries("JFC", start, []float64{100, 0, 105})

	_, err := ComputeLogReturns(bars)
	if !errors.Is(err, ErrData) {
		t.Fatalf("expected ErrData, got %v", err)
	}

	bars = barSeries("JFC", start, []float64{100, -5, 105})
	_, err = ComputeLogReturns(bars)
	if !errors.Is(err, ErrData) {
		t.Fatalf("expected ErrData for negative close, got %v", err)
	}
}

func TestComputeLogReturns_Empty(t *testing.T) {
	returns, err := ComputeLogReturns(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if returns != nil {
		t.Errorf("expected nil series, got %v", returns)
	}
}

func TestVolatility_KnownValue(t *testing.T) {
	start := domain.DateYMD(2025, time.March, 3)
	bars := barSeries("JFC", start, []float64{100, 102, 101, 105, 107})
	returns, err := ComputeLogReturns(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	vol := Volatility(returns, domain.Window{})
	if vol == nil {
		t.Fatal("expected defined volatility")
	}

	// Sample stddev (n-1) over the 4 defined returns
	values := []float64{
		math.Log(102.0 / 100.0),
		math.Log(101.0 / 102.0),
		math.Log(105.0 / 101.0),
		math.Log(107.0 / 105.0),
	}
	m := 0.0
	for _, v := range values {
		m += v
	}
	m /= 4
	sumSq := 0.0
	for _, v := range values {
		sumSq += (v - m) * (v - m)
	}
	want := math.Sqrt(sumSq / 3)

	if math.Abs(*vol-want) > floatTol {
		t.Errorf("expected %.12f, got %.12f", want, *vol)
	}
}

func TestVolatility_InsufficientDataIsNilNotZero(t *testing.T) {
	start := domain.DateYMD(2025, time.March, 3)
	bars := barSeries("JFC", start, []float64{100, 102})
	returns, err := ComputeLogReturns(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Only one defined return in the whole series
	if vol := Volatility(returns, domain.Window{}); vol != nil {
		t.Errorf("expected nil for 1 defined return, got %f", *vol)
	}

	// Empty series
	if vol := Volatility(nil, domain.Window{}); vol != nil {
		t.Errorf("expected nil for empty series, got %f", *vol)
	}
}

func TestVolatility_WindowFiltering(t *testing.T) {
	start := domain.DateYMD(2025, time.March, 3)
	bars := barSeries("JFC", start, []float64{100, 102, 101, 105, 107})
	returns, err := ComputeLogReturns(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Window containing only the last defined return → insufficient
	w := domain.Window{Start: start.AddDate(0, 0, 4)}
	if vol := Volatility(returns, w); vol != nil {
		t.Errorf("expected nil for single in-window return, got %f", *vol)
	}

	// Window excluding everything
	w = domain.Window{Start: domain.DateYMD(2026, time.January, 1)}
	if vol := Volatility(returns, w); vol != nil {
		t.Errorf("expected nil for empty window, got %f", *vol)
	}
}

func TestVolatility_ZeroVolatilityIsDefined(t *testing.T) {
	start := domain.DateYMD(2025, time.March, 3)
	bars := barSeries("JFC", start, []float64{100, 100, 100})
	returns, err := ComputeLogReturns(bars)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Flat series: volatility is exactly 0 but computable, not nil
	vol := Volatility(returns, domain.Window{})
	if vol == nil {
		t.Fatal("expected defined zero volatility")
	}
	if *vol != 0 {
		t.Errorf("expected 0, got %f", *vol)
	}
}

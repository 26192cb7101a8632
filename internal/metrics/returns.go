package metrics

import (
	"errors"
	"fmt"
	"math"

	"tariff-event-lab/internal/domain"
)

// ErrData indicates numerically invalid input, e.g. a non-positive
// close price feeding a logarithm. Fatal for the affected company's
// series only; other companies are unaffected.
var ErrData = errors.New("invalid series data")

// ComputeLogReturns derives the log-return series from an ordered
// DailyBar sequence. Bars must be pre-sorted by date ASC.
//
// The first observation has no previous close, so its LogReturn is nil.
// For i > 0: log_return[i] = ln(close[i]) - ln(close[i-1]).
func ComputeLogReturns(bars []domain.DailyBar) ([]domain.ReturnPoint, error) {
	if len(bars) == 0 {
		return nil, nil
	}

	result := make([]domain.ReturnPoint, 0, len(bars))
	for i, b := range bars {
		if b.Close <= 0 {
			return nil, fmt.Errorf("%w: %s close %.6f on %s is not positive",
				ErrData, b.Ticker, b.Close, b.Date.Format("2006-01-02"))
		}

		p := domain.ReturnPoint{
			Ticker: b.Ticker,
			Date:   b.Date,
		}
		if i > 0 {
			r := math.Log(b.Close) - math.Log(bars[i-1].Close)
			p.LogReturn = &r
		}
		result = append(result, p)
	}

	return result, nil
}

// Volatility computes the sample standard deviation of defined log
// returns whose date falls inside the window. Undefined entries are
// skipped. Returns nil when fewer than 2 defined observations fall in
// the window: "insufficient data" and "zero volatility" are distinct
// results and must stay distinguishable.
func Volatility(returns []domain.ReturnPoint, w domain.Window) *float64 {
	var values []float64
	for _, p := range returns {
		if p.LogReturn == nil {
			continue
		}
		if !w.Contains(p.Date) {
			continue
		}
		values = append(values, *p.LogReturn)
	}

	if len(values) < 2 {
		return nil
	}

	sd := sampleStddev(values)
	return &sd
}

// mean calculates the arithmetic mean.
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// sampleStddev calculates sample standard deviation (n-1 denominator).
// Callers must guarantee len(values) >= 2.
func sampleStddev(values []float64) float64 {
	m := mean(values)
	sumSq := 0.0
	for _, v := range values {
		diff := v - m
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(values)-1))
}

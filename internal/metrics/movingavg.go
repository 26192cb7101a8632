package metrics

import (
	"tariff-event-lab/internal/domain"
)

// MovingAverage computes the trailing, right-aligned simple moving
// average over windowDays consecutive closes ending at each date.
// Bars must be pre-sorted by date ASC.
//
// The first windowDays-1 points carry a nil Value: a partial window is
// never reported as if it were complete, and no forward-looking close
// ever contributes to a point.
func MovingAverage(bars []domain.DailyBar, windowDays int) []domain.MovingAveragePoint {
	if len(bars) == 0 || windowDays < 1 {
		return nil
	}

	result := make([]domain.MovingAveragePoint, 0, len(bars))
	for i, b := range bars {
		p := domain.MovingAveragePoint{
			Ticker:     b.Ticker,
			Date:       b.Date,
			WindowDays: windowDays,
		}
		if i >= windowDays-1 {
			sum := 0.0
			for j := i - windowDays + 1; j <= i; j++ {
				sum += bars[j].Close
			}
			v := sum / float64(windowDays)
			p.Value = &v
		}
		result = append(result, p)
	}

	return result
}

// WindowedMean averages the defined moving-average values whose date
// falls inside the window. Returns nil when no defined value does.
func WindowedMean(points []domain.MovingAveragePoint, w domain.Window) *float64 {
	var values []float64
	for _, p := range points {
		if p.Value == nil {
			continue
		}
		if !w.Contains(p.Date) {
			continue
		}
		values = append(values, *p.Value)
	}

	if len(values) == 0 {
		return nil
	}

	m := mean(values)
	return &m
}

// Package eventwindow splits daily series into date windows anchored
// on calendar events: an open-ended before/after pair, or a fixed
// ±K-day radius window. Windows from different events may overlap;
// each is evaluated independently against the full series.
package eventwindow

import (
	"time"

	"tariff-event-lab/internal/domain"
)

// BeforeAfterWindows returns the two half-open windows around an event
// date. The boundary date belongs to "after": before is every date
// strictly earlier than the event, after is the event date onward.
func BeforeAfterWindows(event time.Time) (before, after domain.Window) {
	d := domain.Day(event)
	before = domain.Window{End: d.AddDate(0, 0, -1)}
	after = domain.Window{Start: d}
	return before, after
}

// RadiusWindow returns the inclusive window [event-kDays, event+kDays].
func RadiusWindow(event time.Time, kDays int) domain.Window {
	d := domain.Day(event)
	return domain.Window{
		Start: d.AddDate(0, 0, -kDays),
		End:   d.AddDate(0, 0, kDays),
	}
}

// SplitBars partitions a bar series around an event date. The split is
// exhaustive and non-overlapping: every bar lands in exactly one half.
func SplitBars(bars []domain.DailyBar, event time.Time) (before, after []domain.DailyBar) {
	d := domain.Day(event)
	for _, b := range bars {
		if b.Date.Before(d) {
			before = append(before, b)
		} else {
			after = append(after, b)
		}
	}
	return before, after
}

// SplitReturns partitions a return series around an event date, with
// the same boundary rule as SplitBars.
func SplitReturns(returns []domain.ReturnPoint, event time.Time) (before, after []domain.ReturnPoint) {
	d := domain.Day(event)
	for _, p := range returns {
		if p.Date.Before(d) {
			before = append(before, p)
		} else {
			after = append(after, p)
		}
	}
	return before, after
}

// FilterReturns keeps the return points whose date falls inside the
// window, preserving order.
func FilterReturns(returns []domain.ReturnPoint, w domain.Window) []domain.ReturnPoint {
	var result []domain.ReturnPoint
	for _, p := range returns {
		if w.Contains(p.Date) {
			result = append(result, p)
		}
	}
	return result
}

// DefinedReturns extracts the defined log-return values from a series,
// preserving order and skipping nil entries.
func DefinedReturns(returns []domain.ReturnPoint) []float64 {
	var values []float64
	for _, p := range returns {
		if p.LogReturn != nil {
			values = append(values, *p.LogReturn)
		}
	}
	return values
}

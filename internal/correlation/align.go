// Package correlation aligns per-company daily returns with daily
// sentiment aggregates and measures their association: Pearson
// correlation per scope window plus t-distribution significance tests.
// Every operation is a pure function of its inputs.
package correlation

import (
	"sort"
	"time"

	"tariff-event-lab/internal/domain"
)

// AlignedPair is one date present in both the return series and the
// sentiment aggregate table.
type AlignedPair struct {
	Date        time.Time
	LogReturn   float64
	AvgCombined float64
	AvgVader    float64
}

// Align inner-joins a company's return series with the daily sentiment
// aggregates by exact calendar-date match. Undefined returns and dates
// missing on either side are dropped from the joined view; the source
// series are not modified. The result is sorted by date ASC regardless
// of input order.
func Align(returns []domain.ReturnPoint, daily []domain.SentimentDailyAggregate) []AlignedPair {
	byDate := make(map[time.Time]domain.SentimentDailyAggregate, len(daily))
	for _, agg := range daily {
		byDate[domain.Day(agg.Date)] = agg
	}

	var pairs []AlignedPair
	for _, p := range returns {
		if p.LogReturn == nil {
			continue
		}
		agg, ok := byDate[domain.Day(p.Date)]
		if !ok {
			continue
		}
		pairs = append(pairs, AlignedPair{
			Date:        domain.Day(p.Date),
			LogReturn:   *p.LogReturn,
			AvgCombined: agg.AvgCombined,
			AvgVader:    agg.AvgVader,
		})
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].Date.Before(pairs[j].Date)
	})

	return pairs
}

// FilterPairs keeps the aligned pairs whose date falls in the window.
func FilterPairs(pairs []AlignedPair, w domain.Window) []AlignedPair {
	var result []AlignedPair
	for _, p := range pairs {
		if w.Contains(p.Date) {
			result = append(result, p)
		}
	}
	return result
}

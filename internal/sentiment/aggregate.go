// Package sentiment folds scored Reddit records into the daily
// aggregates the correlation engine joins against, plus the corpus
// summary the report prints. Scoring itself happens upstream; records
// arrive with combined and VADER scores already attached.
package sentiment

import (
	"sort"
	"time"

	"tariff-event-lab/internal/domain"
)

// DailyAggregates groups records by calendar date and averages their
// scores. The result is sorted by date ASC and immutable thereafter.
func DailyAggregates(records []domain.SentimentRecord) []domain.SentimentDailyAggregate {
	if len(records) == 0 {
		return nil
	}

	type acc struct {
		combined float64
		vader    float64
		count    int
	}
	byDate := make(map[time.Time]*acc)
	for _, r := range records {
		day := domain.Day(r.Date)
		a, ok := byDate[day]
		if !ok {
			a = &acc{}
			byDate[day] = a
		}
		a.combined += r.CombinedScore
		a.vader += r.VaderCompound
		a.count++
	}

	result := make([]domain.SentimentDailyAggregate, 0, len(byDate))
	for day, a := range byDate {
		result = append(result, domain.SentimentDailyAggregate{
			Date:        day,
			AvgCombined: a.combined / float64(a.count),
			AvgVader:    a.vader / float64(a.count),
			Count:       a.count,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})

	return result
}

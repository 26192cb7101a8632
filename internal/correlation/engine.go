package correlation

import (
	"math"

	"tariff-event-lab/internal/domain"
)

// Correlate builds the CorrelationResult for one company over one
// scope window. Pass a zero-value Window for the overall scope.
//
// The returns-vs-combined correlation drives the significance test and
// the meaningful flag; returns-vs-VADER is reported alongside it.
func Correlate(ticker, scope string, pairs []AlignedPair, w domain.Window) domain.CorrelationResult {
	scoped := FilterPairs(pairs, w)

	result := domain.CorrelationResult{
		Ticker:       ticker,
		Scope:        scope,
		Observations: len(scoped),
	}
	if len(scoped) < minPairsCorrelation {
		return result
	}

	returns, combined, vader := pairColumns(scoped)
	result.ReturnsVsAvg = Pearson(returns, combined)
	result.ReturnsVsVader = Pearson(returns, vader)

	if result.ReturnsVsAvg == nil {
		return result
	}

	result.Meaningful = math.Abs(*result.ReturnsVsAvg) >= domain.MeaningfulCorrelation
	result.PValue = CorrelationPValue(*result.ReturnsVsAvg, len(scoped))
	if result.PValue != nil {
		result.Significant = *result.PValue < domain.SignificanceLevel
	}

	return result
}

// CompareMeans builds the SignificanceResult for one company around
// one event: Welch's test of mean log returns strictly before the
// event date against those on or after it.
func CompareMeans(ticker string, event domain.Event, returns []domain.ReturnPoint) domain.SignificanceResult {
	beforePts, afterPts := splitDefined(returns, event)

	result := domain.SignificanceResult{
		Ticker:     ticker,
		EventLabel: event.Label,
		NBefore:    len(beforePts),
		NAfter:     len(afterPts),
	}
	if len(beforePts) > 0 {
		m := mean(beforePts)
		result.MeanBefore = &m
	}
	if len(afterPts) > 0 {
		m := mean(afterPts)
		result.MeanAfter = &m
	}

	result.PValue = WelchPValue(beforePts, afterPts)
	if result.PValue != nil {
		result.Significant = *result.PValue < domain.SignificanceLevel
	}

	return result
}

// splitDefined partitions the defined log returns around the event
// date; the boundary date belongs to after.
func splitDefined(returns []domain.ReturnPoint, event domain.Event) (before, after []float64) {
	d := domain.Day(event.Date)
	for _, p := range returns {
		if p.LogReturn == nil {
			continue
		}
		if p.Date.Before(d) {
			before = append(before, *p.LogReturn)
		} else {
			after = append(after, *p.LogReturn)
		}
	}
	return before, after
}

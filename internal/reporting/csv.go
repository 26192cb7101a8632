package reporting

import (
	"fmt"
	"strings"

	"tariff-event-lab/internal/domain"
)

// CSV cells for undefined values are left empty rather than written
// as 0, so downstream consumers can tell "no data" from "no change".

// RenderVolatilityCSV renders volatility comparisons as CSV string.
func RenderVolatilityCSV(rows []domain.VolatilityComparison) string {
	var sb strings.Builder
	sb.WriteString("ticker,event_label,vol_before,vol_after,change,pct_change\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%s\n",
			r.Ticker, r.EventLabel,
			csvFloat(r.Before, 6), csvFloat(r.After, 6),
			csvFloat(r.Change, 6), csvFloat(r.PctChange, 4)))
	}
	return sb.String()
}

// RenderMovingAverageCSV renders moving average changes as CSV string.
func RenderMovingAverageCSV(rows []domain.MovingAverageChange) string {
	var sb strings.Builder
	sb.WriteString("ticker,event_label,window_days,ma_before,ma_after,pct_change\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%d,%s,%s,%s\n",
			r.Ticker, r.EventLabel, r.WindowDays,
			csvFloat(r.Before, 4), csvFloat(r.After, 4), csvFloat(r.PctChange, 4)))
	}
	return sb.String()
}

// RenderCorrelationCSV renders correlation results as CSV string.
func RenderCorrelationCSV(rows []domain.CorrelationResult) string {
	var sb strings.Builder
	sb.WriteString("ticker,scope,returns_vs_avg,returns_vs_vader,p_value,significant,meaningful,observations\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%t,%t,%d\n",
			r.Ticker, r.Scope,
			csvFloat(r.ReturnsVsAvg, 6), csvFloat(r.ReturnsVsVader, 6), csvFloat(r.PValue, 6),
			r.Significant, r.Meaningful, r.Observations))
	}
	return sb.String()
}

// RenderSignificanceCSV renders significance test results as CSV string.
func RenderSignificanceCSV(rows []domain.SignificanceResult) string {
	var sb strings.Builder
	sb.WriteString("ticker,event_label,mean_before,mean_after,p_value,significant,n_before,n_after\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s,%s,%s,%s,%s,%t,%d,%d\n",
			r.Ticker, r.EventLabel,
			csvFloat(r.MeanBefore, 6), csvFloat(r.MeanAfter, 6), csvFloat(r.PValue, 6),
			r.Significant, r.NBefore, r.NAfter))
	}
	return sb.String()
}

// RenderSentimentDailyCSV renders daily sentiment aggregates as CSV string.
func RenderSentimentDailyCSV(rows []domain.SentimentDailyAggregate) string {
	var sb strings.Builder
	sb.WriteString("date,avg_combined,avg_vader,count\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%s,%.6f,%.6f,%d\n",
			r.Date.Format("2006-01-02"), r.AvgCombined, r.AvgVader, r.Count))
	}
	return sb.String()
}

// csvFloat formats an optional float for a CSV cell. Nil renders as
// an empty cell.
func csvFloat(v *float64, prec int) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.*f", prec, *v)
}

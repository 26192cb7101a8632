package reporting

import (
	"fmt"
	"strings"
	"time"
)

// notAvailable is rendered for values that could not be computed from
// the available sample. Never rendered as 0.
const notAvailable = "n/a"

// RenderMarkdown renders report as Markdown string.
func RenderMarkdown(r *Report) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Tariff Event Study\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", r.GeneratedAt.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Companies: %d | Events: %d\n\n", r.TickerCount, r.EventCount))

	// Data Summary
	sb.WriteString("## Data Summary\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Total Bars | %d |\n", r.DataSummary.TotalBars))
	for _, tc := range r.DataSummary.PerTickerBars {
		sb.WriteString(fmt.Sprintf("| %s Bars | %d |\n", tc.Ticker, tc.Bars))
	}
	sb.WriteString(fmt.Sprintf("| Date Range Start | %s |\n", mdDate(r.DataSummary.DateRangeStart)))
	sb.WriteString(fmt.Sprintf("| Date Range End | %s |\n", mdDate(r.DataSummary.DateRangeEnd)))
	sb.WriteString(fmt.Sprintf("| Sentiment Records | %d |\n", r.DataSummary.SentimentRecords))
	sb.WriteString(fmt.Sprintf("| Sentiment Days | %d |\n", r.DataSummary.SentimentDays))
	sb.WriteString("\n")

	// Volatility Comparison
	sb.WriteString("## Volatility Before/After Events\n\n")
	if len(r.VolatilityComparisons) > 0 {
		sb.WriteString("| Ticker | Event | Before | After | Change | Change% |\n")
		sb.WriteString("|--------|-------|--------|-------|--------|--------|\n")
		for _, v := range r.VolatilityComparisons {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
				v.Ticker, v.EventLabel,
				mdFloat(v.Before, 6), mdFloat(v.After, 6),
				mdFloat(v.Change, 6), mdFloat(v.PctChange, 2)))
		}
	} else {
		sb.WriteString("No volatility comparisons available.\n")
	}
	sb.WriteString("\n")

	// Moving Average Changes
	sb.WriteString("## Moving Average Changes\n\n")
	if len(r.MovingAverageChanges) > 0 {
		sb.WriteString("| Ticker | Event | Window | Before | After | Change% |\n")
		sb.WriteString("|--------|-------|--------|--------|-------|--------|\n")
		for _, m := range r.MovingAverageChanges {
			sb.WriteString(fmt.Sprintf("| %s | %s | MA%d | %s | %s | %s |\n",
				m.Ticker, m.EventLabel, m.WindowDays,
				mdFloat(m.Before, 4), mdFloat(m.After, 4), mdFloat(m.PctChange, 2)))
		}
	} else {
		sb.WriteString("No moving average changes available.\n")
	}
	sb.WriteString("\n")

	// Correlation Results
	sb.WriteString("## Returns vs Sentiment Correlation\n\n")
	if len(r.CorrelationResults) > 0 {
		sb.WriteString("| Ticker | Scope | r (combined) | r (VADER) | p-value | Significant | Meaningful | N |\n")
		sb.WriteString("|--------|-------|--------------|-----------|---------|-------------|------------|---|\n")
		for _, c := range r.CorrelationResults {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %s | %d |\n",
				c.Ticker, c.Scope,
				mdFloat(c.ReturnsVsAvg, 4), mdFloat(c.ReturnsVsVader, 4), mdFloat(c.PValue, 4),
				yesNo(c.Significant), yesNo(c.Meaningful), c.Observations))
		}
	} else {
		sb.WriteString("No correlation results available.\n")
	}
	sb.WriteString("\n")

	// Significance Tests
	sb.WriteString("## Mean Return Significance (before vs after)\n\n")
	if len(r.SignificanceResults) > 0 {
		sb.WriteString("| Ticker | Event | Mean Before | Mean After | p-value | Significant | N Before | N After |\n")
		sb.WriteString("|--------|-------|-------------|------------|---------|-------------|----------|--------|\n")
		for _, s := range r.SignificanceResults {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s | %d | %d |\n",
				s.Ticker, s.EventLabel,
				mdFloat(s.MeanBefore, 6), mdFloat(s.MeanAfter, 6), mdFloat(s.PValue, 4),
				yesNo(s.Significant), s.NBefore, s.NAfter))
		}
	} else {
		sb.WriteString("No significance results available.\n")
	}
	sb.WriteString("\n")

	// Daily Sentiment
	sb.WriteString("## Daily Sentiment\n\n")
	if len(r.SentimentDaily) > 0 {
		sb.WriteString("| Date | Avg Combined | Avg VADER | Records |\n")
		sb.WriteString("|------|--------------|-----------|--------|\n")
		for _, d := range r.SentimentDaily {
			sb.WriteString(fmt.Sprintf("| %s | %.4f | %.4f | %d |\n",
				d.Date.Format("2006-01-02"), d.AvgCombined, d.AvgVader, d.Count))
		}
	} else {
		sb.WriteString("No sentiment aggregates available.\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// mdFloat formats an optional float for a markdown cell.
func mdFloat(v *float64, prec int) string {
	if v == nil {
		return notAvailable
	}
	return fmt.Sprintf("%.*f", prec, *v)
}

func mdDate(t time.Time) string {
	if t.IsZero() {
		return notAvailable
	}
	return t.Format("2006-01-02")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

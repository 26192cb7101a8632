package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"tariff-event-lab/internal/correlation"
	"tariff-event-lab/internal/domain"
	"tariff-event-lab/internal/eventwindow"
	"tariff-event-lab/internal/metrics"
	"tariff-event-lab/internal/reporting"
	"tariff-event-lab/internal/sentiment"
	"tariff-event-lab/internal/storage"
)

// StudyRunner orchestrates the full event study: derive return and
// moving-average series from stored bars, compare them around the
// configured events, correlate returns with daily sentiment, and
// write the report bundle.
type StudyRunner struct {
	barStore       storage.DailyBarStore
	sentimentStore storage.SentimentRecordStore
	returnStore    storage.ReturnTimeseriesStore
	maStore        storage.MovingAverageStore
	resultStore    storage.StudyResultStore
	reportGen      *reporting.Generator

	events     []domain.Event
	radiusDays int
	maWindows  []int

	outputDir string
	clock     func() time.Time

	// skipped collects per-company derivation failures; one bad
	// series never aborts the study.
	skipped map[string]error
}

// NewStudyRunner creates a runner over the given stores.
func NewStudyRunner(
	barStore storage.DailyBarStore,
	sentimentStore storage.SentimentRecordStore,
	returnStore storage.ReturnTimeseriesStore,
	maStore storage.MovingAverageStore,
	resultStore storage.StudyResultStore,
	events []domain.Event,
	radiusDays int,
	maWindows []int,
	outputDir string,
) *StudyRunner {
	return &StudyRunner{
		barStore:       barStore,
		sentimentStore: sentimentStore,
		returnStore:    returnStore,
		maStore:        maStore,
		resultStore:    resultStore,
		reportGen:      reporting.NewGenerator(barStore, sentimentStore, resultStore),
		events:         events,
		radiusDays:     radiusDays,
		maWindows:      maWindows,
		outputDir:      outputDir,
		clock:          func() time.Time { return time.Now().UTC() },
		skipped:        make(map[string]error),
	}
}

// WithClock sets a custom clock function for deterministic output.
func (r *StudyRunner) WithClock(clock func() time.Time) *StudyRunner {
	r.clock = clock
	r.reportGen = r.reportGen.WithClock(clock)
	return r
}

// Skipped returns the companies whose series could not be derived,
// keyed by ticker. Populated during Run.
func (r *StudyRunner) Skipped() map[string]error {
	return r.skipped
}

// Run executes the full study and writes output files:
// - TARIFF_STUDY.md
// - volatility_comparison.csv
// - moving_average_changes.csv
// - correlation_results.csv
// - significance_results.csv
// - sentiment_daily.csv
func (r *StudyRunner) Run(ctx context.Context) error {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return err
	}

	tickers, err := r.barStore.Tickers(ctx)
	if err != nil {
		return err
	}

	// 1. Derive per-company series
	returnsByTicker := make(map[string][]domain.ReturnPoint)
	maByTicker := make(map[string]map[int][]domain.MovingAveragePoint)
	for _, ticker := range tickers {
		bars, err := r.barStore.GetByTicker(ctx, ticker)
		if err != nil {
			return err
		}
		barVals := make([]domain.DailyBar, len(bars))
		for i, b := range bars {
			barVals[i] = *b
		}

		returns, err := metrics.ComputeLogReturns(barVals)
		if err != nil {
			if errors.Is(err, metrics.ErrData) {
				r.skipped[ticker] = err
				continue
			}
			return err
		}
		returnsByTicker[ticker] = returns

		maByTicker[ticker] = make(map[int][]domain.MovingAveragePoint)
		for _, window := range r.maWindows {
			maByTicker[ticker][window] = metrics.MovingAverage(barVals, window)
		}
	}

	// 2. Persist derived series
	if err := r.storeDerived(ctx, tickers, returnsByTicker, maByTicker); err != nil {
		return err
	}

	// 3. Event comparisons
	volComparisons := r.volatilityComparisons(tickers, returnsByTicker)
	maChanges := r.movingAverageChanges(tickers, maByTicker)

	// 4. Sentiment correlation + significance tests
	records, err := r.sentimentStore.GetAll(ctx)
	if err != nil {
		return err
	}
	recordVals := make([]domain.SentimentRecord, len(records))
	for i, rec := range records {
		recordVals[i] = *rec
	}
	daily := sentiment.DailyAggregates(recordVals)

	correlations, significance := r.studyResults(tickers, returnsByTicker, daily)
	if err := r.resultStore.InsertCorrelations(ctx, correlations); err != nil {
		return fmt.Errorf("store correlation results: %w", err)
	}
	if err := r.resultStore.InsertSignificance(ctx, significance); err != nil {
		return fmt.Errorf("store significance results: %w", err)
	}

	// 5. Assemble and write the report bundle
	report, err := r.reportGen.Generate(ctx, volComparisons, maChanges)
	if err != nil {
		return err
	}

	return r.writeOutputs(report)
}

// storeDerived persists return and moving-average series in
// deterministic ticker order.
func (r *StudyRunner) storeDerived(
	ctx context.Context,
	tickers []string,
	returnsByTicker map[string][]domain.ReturnPoint,
	maByTicker map[string]map[int][]domain.MovingAveragePoint,
) error {
	for _, ticker := range tickers {
		returns, ok := returnsByTicker[ticker]
		if !ok {
			continue
		}
		points := make([]*domain.ReturnPoint, len(returns))
		for i := range returns {
			points[i] = &returns[i]
		}
		if err := r.returnStore.InsertBulk(ctx, points); err != nil {
			return fmt.Errorf("store returns for %s: %w", ticker, err)
		}

		for _, window := range r.maWindows {
			series := maByTicker[ticker][window]
			maPoints := make([]*domain.MovingAveragePoint, len(series))
			for i := range series {
				maPoints[i] = &series[i]
			}
			if err := r.maStore.InsertBulk(ctx, maPoints); err != nil {
				return fmt.Errorf("store MA%d for %s: %w", window, ticker, err)
			}
		}
	}
	return nil
}

// volatilityComparisons computes before/after return volatility for
// every (ticker, event) pair.
func (r *StudyRunner) volatilityComparisons(
	tickers []string,
	returnsByTicker map[string][]domain.ReturnPoint,
) []domain.VolatilityComparison {
	var rows []domain.VolatilityComparison
	for _, ticker := range tickers {
		returns, ok := returnsByTicker[ticker]
		if !ok {
			continue
		}
		for _, event := range r.events {
			before, after := eventwindow.BeforeAfterWindows(event.Date)
			row := domain.VolatilityComparison{
				Ticker:     ticker,
				EventLabel: event.Label,
				Before:     metrics.Volatility(returns, before),
				After:      metrics.Volatility(returns, after),
			}
			if row.Before != nil && row.After != nil {
				change := *row.After - *row.Before
				row.Change = &change
				if *row.Before != 0 {
					pct := change / *row.Before * 100
					row.PctChange = &pct
				}
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// movingAverageChanges computes before/after mean moving-average
// levels for every (ticker, event, window) triple.
func (r *StudyRunner) movingAverageChanges(
	tickers []string,
	maByTicker map[string]map[int][]domain.MovingAveragePoint,
) []domain.MovingAverageChange {
	var rows []domain.MovingAverageChange
	for _, ticker := range tickers {
		series, ok := maByTicker[ticker]
		if !ok {
			continue
		}
		windows := make([]int, 0, len(series))
		for w := range series {
			windows = append(windows, w)
		}
		sort.Ints(windows)

		for _, event := range r.events {
			before, after := eventwindow.BeforeAfterWindows(event.Date)
			for _, window := range windows {
				row := domain.MovingAverageChange{
					Ticker:     ticker,
					EventLabel: event.Label,
					WindowDays: window,
					Before:     metrics.WindowedMean(series[window], before),
					After:      metrics.WindowedMean(series[window], after),
				}
				if row.Before != nil && row.After != nil && *row.Before != 0 {
					pct := (*row.After - *row.Before) / *row.Before * 100
					row.PctChange = &pct
				}
				rows = append(rows, row)
			}
		}
	}
	return rows
}

// studyResults computes the correlation table (overall plus one radius
// window per event) and the before/after mean significance table.
func (r *StudyRunner) studyResults(
	tickers []string,
	returnsByTicker map[string][]domain.ReturnPoint,
	daily []domain.SentimentDailyAggregate,
) ([]*domain.CorrelationResult, []*domain.SignificanceResult) {
	var correlations []*domain.CorrelationResult
	var significance []*domain.SignificanceResult

	for _, ticker := range tickers {
		returns, ok := returnsByTicker[ticker]
		if !ok {
			continue
		}
		pairs := correlation.Align(returns, daily)

		overall := correlation.Correlate(ticker, domain.ScopeOverall, pairs, domain.Window{})
		correlations = append(correlations, &overall)

		for _, event := range r.events {
			w := eventwindow.RadiusWindow(event.Date, r.radiusDays)
			scoped := correlation.Correlate(ticker, event.Label, pairs, w)
			correlations = append(correlations, &scoped)

			test := correlation.CompareMeans(ticker, event, returns)
			significance = append(significance, &test)
		}
	}

	return correlations, significance
}

// writeOutputs renders the markdown report and CSV exports.
func (r *StudyRunner) writeOutputs(report *reporting.Report) error {
	outputs := map[string]string{
		"TARIFF_STUDY.md":            reporting.RenderMarkdown(report),
		"volatility_comparison.csv":  reporting.RenderVolatilityCSV(report.VolatilityComparisons),
		"moving_average_changes.csv": reporting.RenderMovingAverageCSV(report.MovingAverageChanges),
		"correlation_results.csv":    reporting.RenderCorrelationCSV(report.CorrelationResults),
		"significance_results.csv":   reporting.RenderSignificanceCSV(report.SignificanceResults),
		"sentiment_daily.csv":        reporting.RenderSentimentDailyCSV(report.SentimentDaily),
	}

	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(r.outputDir, name)
		if err := os.WriteFile(path, []byte(outputs[name]), 0644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

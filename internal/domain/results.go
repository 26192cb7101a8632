package domain

// Policy constants for result interpretation. Fixed within the core;
// callers that want a different cut apply it to the raw values.
const (
	// SignificanceLevel is the p-value threshold below which a test
	// result is flagged significant.
	SignificanceLevel = 0.05

	// MeaningfulCorrelation is the |r| threshold above which a
	// correlation is flagged as meaningful in the report.
	MeaningfulCorrelation = 0.30
)

// ScopeOverall marks results computed over the full series rather
// than a single event window.
const ScopeOverall = "overall"

// CorrelationResult is the per-company Pearson correlation between
// daily log returns and daily sentiment aggregates, over one scope
// (overall or a single event's radius window).
//
// Nil pointer fields mean "not computable from the available sample":
// correlation needs at least 2 paired observations, the significance
// test at least 3. Nil is never reported as zero.
type CorrelationResult struct {
	Ticker         string
	Scope          string // ScopeOverall or an event label
	ReturnsVsAvg   *float64
	ReturnsVsVader *float64
	PValue         *float64
	Significant    bool // PValue < SignificanceLevel; false when PValue is nil
	Meaningful     bool // |ReturnsVsAvg| >= MeaningfulCorrelation; false when nil
	Observations   int
}

// VolatilityComparison compares a company's return volatility before
// and after one event. Before/After are sample standard deviations of
// log returns; nil when fewer than 2 defined returns fall in the half.
type VolatilityComparison struct {
	Ticker     string
	EventLabel string
	Before     *float64
	After      *float64
	Change     *float64 // After - Before; nil unless both defined
	PctChange  *float64 // Change / Before * 100; nil unless both defined and Before != 0
}

// MovingAverageChange compares a company's mean moving-average level
// before and after one event for a given window length.
type MovingAverageChange struct {
	Ticker     string
	EventLabel string
	WindowDays int
	Before     *float64
	After      *float64
	PctChange  *float64
}

// SignificanceResult is a Welch two-sample test of mean log returns
// before vs after one event. Nil PValue means the sample on either
// side was too small for a valid statistic.
type SignificanceResult struct {
	Ticker      string
	EventLabel  string
	MeanBefore  *float64
	MeanAfter   *float64
	PValue      *float64
	Significant bool
	NBefore     int
	NAfter      int
}

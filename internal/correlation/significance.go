package correlation

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Minimum sample sizes below which a test statistic is not computable.
// Results under these thresholds are reported as nil, never forced to
// a p-value of 0 or 1.
const (
	minPairsCorrelation = 2
	minPairsTest        = 3
	minSamplesWelch     = 2
)

// CorrelationPValue runs the two-sided t-test for a Pearson
// correlation coefficient r over n pairs:
//
//	t = r * sqrt((n-2) / (1-r^2)), df = n-2
//
// Returns nil when n < 3 or r is degenerate (|r| = 1 gives p = 0).
func CorrelationPValue(r float64, n int) *float64 {
	if n < minPairsTest {
		return nil
	}
	if math.Abs(r) >= 1 {
		p := 0.0
		return &p
	}

	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	p := twoSidedStudentsT(t, df)
	return &p
}

// WelchPValue runs Welch's two-sample t-test on independent samples,
// two-sided. Returns nil when either sample has fewer than 2 values or
// when both samples have zero variance and equal means (no statistic).
func WelchPValue(a, b []float64) *float64 {
	if len(a) < minSamplesWelch || len(b) < minSamplesWelch {
		return nil
	}

	na, nb := float64(len(a)), float64(len(b))
	meanA, meanB := mean(a), mean(b)
	varA, varB := sampleVariance(a, meanA), sampleVariance(b, meanB)

	se2 := varA/na + varB/nb
	if se2 == 0 {
		if meanA == meanB {
			return nil
		}
		p := 0.0
		return &p
	}

	t := (meanA - meanB) / math.Sqrt(se2)

	// Welch-Satterthwaite degrees of freedom.
	df := se2 * se2 / ((varA/na)*(varA/na)/(na-1) + (varB/nb)*(varB/nb)/(nb-1))
	p := twoSidedStudentsT(t, df)
	return &p
}

// twoSidedStudentsT returns the two-sided p-value for statistic t with
// df degrees of freedom.
func twoSidedStudentsT(t, df float64) float64 {
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))
	if p > 1 {
		p = 1
	}
	return p
}

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

func sampleVariance(values []float64, m float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		diff := v - m
		sumSq += diff * diff
	}
	return sumSq / float64(len(values)-1)
}

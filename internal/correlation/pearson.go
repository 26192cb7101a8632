package correlation

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Pearson computes the Pearson correlation coefficient between two
// equal-length samples. Returns nil when fewer than 2 pairs exist or
// when either sample has zero variance (correlation undefined) —
// never zero, so "no data" stays distinguishable from "no association".
func Pearson(x, y []float64) *float64 {
	if len(x) != len(y) || len(x) < 2 {
		return nil
	}

	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) {
		return nil
	}
	return &r
}

// pairColumns splits aligned pairs into the parallel samples the
// gonum stat functions consume.
func pairColumns(pairs []AlignedPair) (returns, combined, vader []float64) {
	returns = make([]float64, len(pairs))
	combined = make([]float64, len(pairs))
	vader = make([]float64, len(pairs))
	for i, p := range pairs {
		returns[i] = p.LogReturn
		combined[i] = p.AvgCombined
		vader[i] = p.AvgVader
	}
	return returns, combined, vader
}

package correlation

import (
	"math"
	"testing"
)

func TestCorrelationPValue_KnownValue(t *testing.T) {
	// r = 0.5 over n = 4 pairs: t = 0.5*sqrt(2/0.75), df = 2,
	// which works out to p = 0.5 exactly.
	p := CorrelationPValue(0.5, 4)
	if p == nil {
		t.Fatal("expected defined p-value")
	}
	if math.Abs(*p-0.5) > 1e-9 {
		t.Errorf("expected p = 0.5, got %.12f", *p)
	}
}

func TestCorrelationPValue_InsufficientPairs(t *testing.T) {
	if p := CorrelationPValue(0.9, 2); p != nil {
		t.Errorf("expected nil for n = 2, got %f", *p)
	}
	if p := CorrelationPValue(0.9, 0); p != nil {
		t.Errorf("expected nil for n = 0, got %f", *p)
	}
}

func TestCorrelationPValue_DegenerateCorrelation(t *testing.T) {
	p := CorrelationPValue(1, 5)
	if p == nil || *p != 0 {
		t.Errorf("expected p = 0 for |r| = 1, got %v", p)
	}
	p = CorrelationPValue(-1, 5)
	if p == nil || *p != 0 {
		t.Errorf("expected p = 0 for r = -1, got %v", p)
	}
}

func TestCorrelationPValue_StrongerCorrelationSmallerP(t *testing.T) {
	weak := CorrelationPValue(0.2, 10)
	strong := CorrelationPValue(0.8, 10)
	if weak == nil || strong == nil {
		t.Fatal("expected defined p-values")
	}
	if !(*strong < *weak) {
		t.Errorf("expected p(0.8) < p(0.2), got %f vs %f", *strong, *weak)
	}
	if *weak <= 0 || *weak > 1 || *strong <= 0 || *strong > 1 {
		t.Errorf("p-values out of range: %f, %f", *weak, *strong)
	}
}

func TestCorrelationPValue_SymmetricInSign(t *testing.T) {
	pos := CorrelationPValue(0.6, 12)
	neg := CorrelationPValue(-0.6, 12)
	if pos == nil || neg == nil {
		t.Fatal("expected defined p-values")
	}
	if math.Abs(*pos-*neg) > 1e-12 {
		t.Errorf("two-sided test must be symmetric in sign: %f vs %f", *pos, *neg)
	}
}

func TestWelchPValue_IdenticalSamples(t *testing.T) {
	a := []float64{1, 2, 3, 4}
	p := WelchPValue(a, a)
	if p == nil {
		t.Fatal("expected defined p-value")
	}
	// Equal means, positive variance: t = 0 → p = 1
	if math.Abs(*p-1) > 1e-12 {
		t.Errorf("expected p = 1, got %f", *p)
	}
}

func TestWelchPValue_ClearlySeparatedSamples(t *testing.T) {
	a := []float64{0.001, 0.002, 0.001, 0.002, 0.001}
	b := []float64{0.10, 0.11, 0.10, 0.11, 0.10}

	p := WelchPValue(a, b)
	if p == nil {
		t.Fatal("expected defined p-value")
	}
	if *p >= 0.05 {
		t.Errorf("expected strongly significant separation, got p = %f", *p)
	}
}

func TestWelchPValue_InsufficientSamples(t *testing.T) {
	if p := WelchPValue([]float64{1}, []float64{1, 2}); p != nil {
		t.Errorf("expected nil for 1-element sample, got %f", *p)
	}
	if p := WelchPValue(nil, []float64{1, 2}); p != nil {
		t.Errorf("expected nil for empty sample, got %f", *p)
	}
}

func TestWelchPValue_DegenerateVariance(t *testing.T) {
	// Both samples constant and equal: no statistic at all
	if p := WelchPValue([]float64{2, 2}, []float64{2, 2}); p != nil {
		t.Errorf("expected nil for identical constant samples, got %f", *p)
	}
	// Both constant but different: separation is certain
	p := WelchPValue([]float64{2, 2}, []float64{3, 3})
	if p == nil || *p != 0 {
		t.Errorf("expected p = 0 for disjoint constant samples, got %v", p)
	}
}

package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireSymmetric fails t unless data[n] and data[len-1-n] agree within eps
// for every n (a linear-phase kernel).
func RequireSymmetric(t *testing.T, data []float64, eps float64) {
	t.Helper()
	n := len(data)
	for i := range n / 2 {
		diff := math.Abs(data[i] - data[n-1-i])
		if diff > eps {
			t.Fatalf("not symmetric: [%d]=%v, [%d]=%v (diff %v > eps %v)", i, data[i], n-1-i, data[n-1-i], diff, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

package testutil

import (
	"math"
	"testing"
)

func TestRequireSliceNearlyEqualPasses(t *testing.T) {
	RequireSliceNearlyEqual(t, []float64{1, 2, 3}, []float64{1, 2 + 1e-13, 3}, 1e-12)
}

func TestRequireSymmetricPasses(t *testing.T) {
	RequireSymmetric(t, []float64{1, 2, 3, 2, 1}, 0)
	RequireSymmetric(t, []float64{0.5, 0.5}, 0)
	RequireSymmetric(t, nil, 0)
}

func TestRequireFinitePasses(t *testing.T) {
	RequireFinite(t, []float64{0, -1, math.MaxFloat64, math.SmallestNonzeroFloat64})
}

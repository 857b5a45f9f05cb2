package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Kaiser returns Kaiser window coefficients
//
//	w[n] = I0(beta * sqrt(1 - ((n-a)/a)^2)) / I0(beta),  a = (size-1)/2
//
// This is the symmetric form used for FIR design.
func Kaiser(size int, beta float64) ([]float64, error) {
	if err := validateKaiser(size, beta); err != nil {
		return nil, err
	}

	out := make([]float64, size)
	if size == 1 {
		out[0] = 1
		return out, nil
	}

	alpha := float64(size-1) / 2
	i0Beta := BesselI0(beta)

	for i := range out {
		r := (float64(i) - alpha) / alpha
		out[i] = BesselI0(beta*math.Sqrt(math.Max(0, 1-r*r))) / i0Beta
	}

	return out, nil
}

// Sinc returns the normalized sinc sin(pi*x)/(pi*x), with Sinc(0) = 1.
func Sinc(x float64) float64 {
	if x == 0 {
		return 1
	}

	px := math.Pi * x

	return math.Sin(px) / px
}

// BesselI0 returns the zeroth-order modified Bessel function of the first
// kind, evaluated by its power series
//
//	I0(x) = sum_k ((x/2)^k / k!)^2
//
// The series converges for all x; terms are summed until they no longer
// change the result at double precision.
func BesselI0(x float64) float64 {
	sum := 1.0
	term := 1.0

	x2 := (x * x) / 4
	for k := 1; k < maxBesselTerms; k++ {
		term *= x2 / float64(k*k)

		sum += term
		if term < 1e-17*sum {
			break
		}
	}

	return sum
}

const maxBesselTerms = 500

// EquivalentNoiseBandwidth returns the ENBW in bins for a window.
func EquivalentNoiseBandwidth(coeffs []float64) (float64, error) {
	if len(coeffs) == 0 {
		return 0, errEmptyCoeffs
	}

	sum := 0.0
	sumSquares := 0.0

	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	if sum == 0 {
		return 0, errZeroCoherentGain
	}

	return float64(len(coeffs)) * sumSquares / (sum * sum), nil
}

// CoherentGain returns sum(w[n]) / N, the DC response of the window.
func CoherentGain(coeffs []float64) float64 {
	if len(coeffs) == 0 {
		return 0
	}

	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}

	return sum / float64(len(coeffs))
}

// ApplyCoefficientsInPlace multiplies samples with coefficients in place.
func ApplyCoefficientsInPlace(samples, coeffs []float64) error {
	if len(samples) != len(coeffs) {
		return errMismatchedLength
	}

	vecmath.MulBlockInPlace(samples, coeffs)

	return nil
}

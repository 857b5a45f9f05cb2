// Package fixedpoint snaps real values onto a fixed-point grid with a given
// number of fractional bits.
//
// Quantized values stay float64 so they can be printed or compared directly;
// every result is an exact multiple of 2^-bits. The tie-breaking rule is
// selectable:
//
//	RoundHalfEven  (default) 0.5 -> 0, 1.5 -> 2, 2.5 -> 2
//	RoundHalfAway            0.5 -> 1, 1.5 -> 2, 2.5 -> 3
//
// Usage:
//
//	q, err := fixedpoint.NewQuantizer(fixedpoint.WithBits(16))
//	taps := q.QuantizeSlice(kernel)
package fixedpoint

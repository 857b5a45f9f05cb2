package fixedpoint

import (
	"errors"
	"fmt"
	"math"
)

const (
	defaultBits     = 16
	defaultRounding = RoundHalfEven

	// MinBits and MaxBits bound the fractional precision. Above 52 bits the
	// grid is finer than the float64 mantissa for values near 1.
	MinBits = 1
	MaxBits = 52
)

var (
	// ErrInvalidBits indicates a fractional bit count outside [MinBits, MaxBits].
	ErrInvalidBits = errors.New("invalid fractional bit count")
	// ErrInvalidRounding indicates an unknown rounding mode.
	ErrInvalidRounding = errors.New("invalid rounding mode")
)

type config struct {
	bits     int
	rounding Rounding
}

func defaultConfig() config {
	return config{
		bits:     defaultBits,
		rounding: defaultRounding,
	}
}

// Option configures a [Quantizer].
type Option func(*config) error

// WithBits sets the number of fractional bits (1-52, default 16).
func WithBits(bits int) Option {
	return func(cfg *config) error {
		if bits < MinBits || bits > MaxBits {
			return fmt.Errorf("fixedpoint: %w: %d not in [%d, %d]", ErrInvalidBits, bits, MinBits, MaxBits)
		}

		cfg.bits = bits

		return nil
	}
}

// WithRounding sets the tie-breaking rule (default [RoundHalfEven]).
func WithRounding(r Rounding) Option {
	return func(cfg *config) error {
		if !r.Valid() {
			return fmt.Errorf("fixedpoint: %w: %d", ErrInvalidRounding, int(r))
		}

		cfg.rounding = r

		return nil
	}
}

// Quantizer rounds values to the nearest multiple of 2^-bits.
// A Quantizer is immutable and safe for concurrent use.
type Quantizer struct {
	bits     int
	rounding Rounding
	scale    float64
}

// NewQuantizer creates a new Quantizer. The default configuration is
// 16 fractional bits with round-half-to-even.
func NewQuantizer(opts ...Option) (*Quantizer, error) {
	cfg := defaultConfig()

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		err := opt(&cfg)
		if err != nil {
			return nil, err
		}
	}

	return &Quantizer{
		bits:     cfg.bits,
		rounding: cfg.rounding,
		scale:    math.Ldexp(1, cfg.bits),
	}, nil
}

// Bits returns the number of fractional bits.
func (q *Quantizer) Bits() int { return q.bits }

// Rounding returns the tie-breaking rule.
func (q *Quantizer) Rounding() Rounding { return q.rounding }

// Scale returns 2^bits.
func (q *Quantizer) Scale() float64 { return q.scale }

// Step returns the grid spacing 2^-bits.
func (q *Quantizer) Step() float64 { return 1 / q.scale }

// MaxError returns the largest possible |Quantize(v) - v|, half a step.
func (q *Quantizer) MaxError() float64 { return 0.5 / q.scale }

// Integer returns round(v * 2^bits), the raw fixed-point code for v.
// The result is undefined when |v| * 2^bits exceeds the int64 range.
func (q *Quantizer) Integer(v float64) int64 {
	return int64(q.round(v * q.scale))
}

// Quantize returns v snapped to the nearest grid point. Values that round to
// zero yield +0, never -0.
func (q *Quantizer) Quantize(v float64) float64 {
	r := q.round(v * q.scale)
	if r == 0 {
		return 0
	}
	return r / q.scale
}

// QuantizeSlice returns a new slice holding every value of src quantized.
func (q *Quantizer) QuantizeSlice(src []float64) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = q.Quantize(v)
	}
	return out
}

func (q *Quantizer) round(x float64) float64 {
	switch q.rounding {
	case RoundHalfAway:
		return math.Round(x)
	default:
		return math.RoundToEven(x)
	}
}

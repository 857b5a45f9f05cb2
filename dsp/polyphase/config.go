package polyphase

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/polycoeffs/dsp/fixedpoint"
)

var (
	// ErrInvalidConfig indicates a design configuration that cannot be built.
	ErrInvalidConfig = errors.New("polyphase: invalid config")
	// ErrUnknownPreset indicates an unknown preset name.
	ErrUnknownPreset = errors.New("polyphase: unknown preset")
	// ErrUnsupportedRate indicates a source sample rate with no preset.
	ErrUnsupportedRate = errors.New("polyphase: unsupported sample rate")
)

// minFactor is the smallest upsample factor. At factor 1 the cutoff sits at
// the sample rate and the ideal response vanishes at every tap.
const minFactor = 2

// Config holds the design parameters. It is a plain value; copies are
// independent.
type Config struct {
	// Factor is the upsample factor and the number of phases.
	Factor int
	// Taps is the total kernel length.
	Taps int
	// Beta is the Kaiser window shape parameter.
	Beta float64
	// Bits is the number of fractional bits of the fixed-point grid.
	Bits int
	// Rounding is the tie-breaking rule used when quantizing.
	Rounding fixedpoint.Rounding
}

// DefaultConfig returns the 2x design: 24 taps, beta 6.5, 16 fractional bits,
// round half to even.
func DefaultConfig() Config {
	return PresetHD.Config()
}

// Validate reports whether c can be designed.
func (c Config) Validate() error {
	switch {
	case c.Factor < minFactor:
		return fmt.Errorf("%w: factor must be >= %d: %d", ErrInvalidConfig, minFactor, c.Factor)
	case c.Taps < 1:
		return fmt.Errorf("%w: taps must be >= 1: %d", ErrInvalidConfig, c.Taps)
	case c.Taps%c.Factor != 0:
		return fmt.Errorf("%w: taps %d not divisible by factor %d", ErrInvalidConfig, c.Taps, c.Factor)
	case c.Beta < 0 || math.IsNaN(c.Beta) || math.IsInf(c.Beta, 0):
		return fmt.Errorf("%w: beta must be >= 0 and finite: %f", ErrInvalidConfig, c.Beta)
	case c.Bits < fixedpoint.MinBits || c.Bits > fixedpoint.MaxBits:
		return fmt.Errorf("%w: bits must be in [%d, %d]: %d", ErrInvalidConfig, fixedpoint.MinBits, fixedpoint.MaxBits, c.Bits)
	case !c.Rounding.Valid():
		return fmt.Errorf("%w: unknown rounding %d", ErrInvalidConfig, int(c.Rounding))
	}

	return nil
}

// TapsPerPhase returns the length of each phase row.
func (c Config) TapsPerPhase() int {
	if c.Factor <= 0 {
		return 0
	}
	return c.Taps / c.Factor
}

// Cutoff returns the normalized cutoff frequency 1/Factor.
func (c Config) Cutoff() float64 {
	return 1 / float64(c.Factor)
}

// Quantizer returns the fixed-point quantizer described by c.
func (c Config) Quantizer() (*fixedpoint.Quantizer, error) {
	return fixedpoint.NewQuantizer(fixedpoint.WithBits(c.Bits), fixedpoint.WithRounding(c.Rounding))
}

// Preset names a predefined design.
type Preset int

const (
	// PresetHD is the 2x design for 88.2 kHz and 96 kHz sources.
	PresetHD Preset = iota
	// PresetSD is the 4x design for 44.1 kHz and 48 kHz sources.
	PresetSD

	presetCount // sentinel for validation
)

var presetNames = [presetCount]string{"hd", "sd"}

// String returns the preset name.
func (p Preset) String() string {
	if p >= 0 && p < presetCount {
		return presetNames[p]
	}
	return fmt.Sprintf("Preset(%d)", p)
}

// Config returns the design parameters of p. Unknown presets yield the
// zero Config, which fails validation.
func (p Preset) Config() Config {
	switch p {
	case PresetHD:
		return Config{Factor: 2, Taps: 24, Beta: 6.5, Bits: 16, Rounding: fixedpoint.RoundHalfEven}
	case PresetSD:
		return Config{Factor: 4, Taps: 48, Beta: 6.5, Bits: 16, Rounding: fixedpoint.RoundHalfEven}
	default:
		return Config{}
	}
}

// ParsePreset returns the preset with the given case-insensitive name.
func ParsePreset(name string) (Preset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range presetNames {
		if n == key {
			return Preset(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownPreset, name, strings.Join(presetNames[:], ", "))
}

// PresetForRate returns the preset that upsamples a source at sampleRate Hz
// to 192 kHz.
func PresetForRate(sampleRate float64) (Preset, error) {
	switch sampleRate {
	case 44100, 48000:
		return PresetSD, nil
	case 88200, 96000:
		return PresetHD, nil
	default:
		return 0, fmt.Errorf("%w: %g Hz", ErrUnsupportedRate, sampleRate)
	}
}

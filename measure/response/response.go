package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/polycoeffs/dsp/core"
)

const (
	defaultFFTSize  = 4096
	defaultCutoff   = 0.5
	minBinsPerTap   = 16
	passbandFrac    = 0.5
	stopbandFrac    = 1.5
	halfGainLinear  = 0.5
	nyquistFraction = 0.5
)

var (
	// ErrEmptyKernel indicates an empty kernel.
	ErrEmptyKernel = errors.New("response: kernel must not be empty")
	// ErrInvalidConfig indicates an unusable analysis configuration.
	ErrInvalidConfig = errors.New("response: invalid config")
)

// Config holds analysis parameters. Zero values select defaults.
type Config struct {
	// FFTSize is the zero-padded transform length, rounded up to a power of
	// two and to at least 16 bins per tap. Default 4096.
	FFTSize int
	// Gain is the nominal passband gain, normally the upsample factor.
	// Magnitudes are reported relative to it. Default 1.
	Gain float64
	// Cutoff is the design cutoff in cycles per sample. Default 0.5.
	Cutoff float64
	// Phases is the polyphase row count used for PhaseDCGains. Values
	// below 2 skip the per-phase analysis.
	Phases int
}

// Result holds the measured response.
type Result struct {
	DCGain       float64
	PhaseDCGains []float64
	// PhaseGainSpread is max(PhaseDCGains) - min(PhaseDCGains).
	PhaseGainSpread  float64
	PassbandRippleDB float64
	// StopbandAttenuationDB is NaN when the stopband lies beyond Nyquist.
	StopbandAttenuationDB float64
	Cutoff6dB             float64
	SymmetryError         float64
	// PeakTap is the index of the largest-magnitude tap.
	PeakTap int
	// Magnitude holds |H(k)|/Gain for bins 0..FFTSize/2.
	Magnitude []float64
	// BinWidth is the spacing of Magnitude in cycles per sample.
	BinWidth float64
}

// HasStopband reports whether a stopband was measured.
func (r Result) HasStopband() bool {
	return !math.IsNaN(r.StopbandAttenuationDB)
}

func normalizeConfig(cfg Config, taps int) (Config, error) {
	if cfg.Gain == 0 {
		cfg.Gain = 1
	}

	if cfg.Cutoff == 0 {
		cfg.Cutoff = defaultCutoff
	}

	if cfg.Gain < 0 || math.IsNaN(cfg.Gain) || math.IsInf(cfg.Gain, 0) {
		return cfg, fmt.Errorf("%w: gain must be > 0: %v", ErrInvalidConfig, cfg.Gain)
	}

	if cfg.Cutoff < 0 || cfg.Cutoff > nyquistFraction || math.IsNaN(cfg.Cutoff) {
		return cfg, fmt.Errorf("%w: cutoff must be in (0, 0.5]: %v", ErrInvalidConfig, cfg.Cutoff)
	}

	if cfg.FFTSize <= 0 {
		cfg.FFTSize = defaultFFTSize
	}

	cfg.FFTSize = nextPowerOf2(max(cfg.FFTSize, taps*minBinsPerTap))

	return cfg, nil
}

// Analyze measures the frequency response of kernel.
func Analyze(kernel []float64, cfg Config) (Result, error) {
	if len(kernel) == 0 {
		return Result{}, ErrEmptyKernel
	}

	cfg, err := normalizeConfig(cfg, len(kernel))
	if err != nil {
		return Result{}, err
	}

	mag, err := magnitude(kernel, cfg.FFTSize)
	if err != nil {
		return Result{}, err
	}

	vecmath.ScaleBlock(mag, mag, 1/cfg.Gain)

	binWidth := 1 / float64(cfg.FFTSize)

	res := Result{
		DCGain:                core.Sum(kernel),
		PassbandRippleDB:      passbandRipple(mag, binWidth, passbandFrac*cfg.Cutoff),
		StopbandAttenuationDB: stopbandAttenuation(mag, binWidth, stopbandFrac*cfg.Cutoff),
		Cutoff6dB:             halfGainCrossing(mag, binWidth),
		SymmetryError:         symmetryError(kernel),
		PeakTap:               core.ArgMaxAbs(kernel),
		Magnitude:             mag,
		BinWidth:              binWidth,
	}

	if cfg.Phases >= 2 {
		res.PhaseDCGains, res.PhaseGainSpread = phaseGains(kernel, cfg.Phases)
	}

	return res, nil
}

func magnitude(kernel []float64, fftSize int) ([]float64, error) {
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, fftSize)
	for i, v := range kernel {
		in[i] = complex(v, 0)
	}

	out := make([]complex128, fftSize)

	err = plan.Forward(out, in)
	if err != nil {
		return nil, fmt.Errorf("response: FFT failed: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)

	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return mag, nil
}

func passbandRipple(mag []float64, binWidth, edge float64) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)

	for k, m := range mag {
		if float64(k)*binWidth > edge {
			break
		}

		lo = math.Min(lo, m)
		hi = math.Max(hi, m)
	}

	if lo <= 0 || math.IsInf(hi, -1) {
		return math.Inf(1)
	}

	return core.LinearToDB(hi) - core.LinearToDB(lo)
}

func stopbandAttenuation(mag []float64, binWidth, edge float64) float64 {
	if edge > nyquistFraction {
		return math.NaN()
	}

	peak := 0.0
	found := false

	for k, m := range mag {
		if float64(k)*binWidth < edge {
			continue
		}

		found = true
		peak = math.Max(peak, m)
	}

	if !found {
		return math.NaN()
	}

	return -core.LinearToDB(peak)
}

// halfGainCrossing returns the first frequency where the normalized
// magnitude drops below one half, linearly interpolated between bins.
func halfGainCrossing(mag []float64, binWidth float64) float64 {
	for k := 1; k < len(mag); k++ {
		if mag[k] >= halfGainLinear {
			continue
		}

		m0, m1 := mag[k-1], mag[k]
		frac := core.Clamp((m0-halfGainLinear)/(m0-m1), 0, 1)

		return (float64(k-1) + frac) * binWidth
	}

	return nyquistFraction
}

func phaseGains(kernel []float64, phases int) ([]float64, float64) {
	gains := make([]float64, phases)
	for i, v := range kernel {
		gains[i%phases] += v
	}

	lo, hi := gains[0], gains[0]
	for _, g := range gains[1:] {
		lo = math.Min(lo, g)
		hi = math.Max(hi, g)
	}

	return gains, hi - lo
}

func symmetryError(kernel []float64) float64 {
	n := len(kernel)
	worst := 0.0

	for i := range n / 2 {
		worst = math.Max(worst, math.Abs(kernel[i]-kernel[n-1-i]))
	}

	return worst
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}

	return p
}

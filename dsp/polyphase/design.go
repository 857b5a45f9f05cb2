package polyphase

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/cwbudde/polycoeffs/dsp/core"
	"github.com/cwbudde/polycoeffs/dsp/window"
)

var (
	// ErrInvalidFactor indicates a phase count below one.
	ErrInvalidFactor = errors.New("polyphase: factor must be >= 1")
	// ErrInvalidPhases indicates phase rows that are not an interleaved split.
	ErrInvalidPhases = errors.New("polyphase: invalid phase rows")
	// ErrBackend indicates a backend result that the design cannot use.
	ErrBackend = errors.New("polyphase: backend failure")
)

// minKernelSum is the smallest unnormalized kernel sum accepted; anything
// closer to zero is rounding residue.
const minKernelSum = 1e-9

// Design is the complete result of one coefficient design.
type Design struct {
	Config Config
	// Window is the Kaiser window applied to the ideal response.
	Window []float64
	// Kernel is the normalized impulse response before quantization.
	Kernel []float64
	// Quantized is Kernel snapped to the fixed-point grid.
	Quantized []float64
	// Phases holds Config.Factor rows of Config.TapsPerPhase taps each.
	Phases [][]float64
}

// Option configures New.
type Option func(*options)

type options struct {
	backend Backend
}

// WithBackend replaces DefaultBackend for sinc and window evaluation.
func WithBackend(b Backend) Option {
	return func(o *options) {
		if b != nil {
			o.backend = b
		}
	}
}

// New runs the full pipeline for cfg: synthesize, quantize, decompose.
func New(cfg Config, opts ...Option) (*Design, error) {
	o := options{backend: DefaultBackend}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	kernel, win, err := synthesize(cfg, o.backend)
	if err != nil {
		return nil, err
	}

	q, err := cfg.Quantizer()
	if err != nil {
		return nil, fmt.Errorf("polyphase: %w", err)
	}

	quantized := q.QuantizeSlice(kernel)

	phases, err := Decompose(quantized, cfg.Factor)
	if err != nil {
		return nil, err
	}

	return &Design{
		Config:    cfg,
		Window:    win,
		Kernel:    kernel,
		Quantized: quantized,
		Phases:    phases,
	}, nil
}

// Synthesize returns the normalized windowed-sinc kernel for cfg.
//
//	h[n] = sinc(2*fc*(n - mid)) * w[n],  fc = 1/Factor, mid = (Taps-1)/2
//	h   *= Factor / sum(h)
//
// The result is symmetric about mid and sums to Factor. A nil backend
// selects DefaultBackend.
func Synthesize(cfg Config, b Backend) ([]float64, error) {
	if b == nil {
		b = DefaultBackend
	}

	kernel, _, err := synthesize(cfg, b)

	return kernel, err
}

func synthesize(cfg Config, b Backend) ([]float64, []float64, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	win, err := b.KaiserWindow(cfg.Taps, cfg.Beta)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: kaiser window: %w", ErrBackend, err)
	}

	if len(win) != cfg.Taps {
		return nil, nil, fmt.Errorf("%w: window has %d taps, want %d", ErrBackend, len(win), cfg.Taps)
	}

	mid := float64(cfg.Taps-1) / 2
	fc := cfg.Cutoff()

	h := make([]float64, cfg.Taps)
	for n := range h {
		h[n] = b.Sinc(2 * fc * (float64(n) - mid))
	}

	if err := window.ApplyCoefficientsInPlace(h, win); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrBackend, err)
	}

	sum := core.Sum(h)
	if core.NearlyEqual(sum, 0, minKernelSum) || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return nil, nil, fmt.Errorf("%w: kernel sum is %v", ErrBackend, sum)
	}

	vecmath.ScaleBlock(h, h, float64(cfg.Factor)/sum)

	return h, append([]float64(nil), win...), nil
}

// Decompose splits h into factor rows; row p holds h[p], h[p+factor], ...
// When len(h) is not a multiple of factor the leading rows are one tap longer.
func Decompose(h []float64, factor int) ([][]float64, error) {
	if factor < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFactor, factor)
	}

	phases := make([][]float64, factor)
	for p := range factor {
		phase := make([]float64, 0, phaseLen(len(h), factor, p))
		for i := p; i < len(h); i += factor {
			phase = append(phase, h[i])
		}

		phases[p] = phase
	}

	return phases, nil
}

// Interleave is the inverse of Decompose: it returns
// phases[0][0], phases[1][0], ..., phases[0][1], phases[1][1], ...
func Interleave(phases [][]float64) ([]float64, error) {
	factor := len(phases)
	if factor == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidPhases)
	}

	total := 0
	for _, ph := range phases {
		total += len(ph)
	}

	for p, ph := range phases {
		if want := phaseLen(total, factor, p); len(ph) != want {
			return nil, fmt.Errorf("%w: row %d has %d taps, want %d", ErrInvalidPhases, p, len(ph), want)
		}
	}

	out := make([]float64, total)
	for p, ph := range phases {
		for k, v := range ph {
			out[k*factor+p] = v
		}
	}

	return out, nil
}

func phaseLen(n, factor, p int) int {
	if p >= n {
		return 0
	}
	return (n - p + factor - 1) / factor
}

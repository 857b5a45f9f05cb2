package polyphase

import "github.com/cwbudde/polycoeffs/dsp/window"

// Backend supplies the numeric primitives of the design.
type Backend interface {
	// Sinc returns the normalized sinc sin(pi*x)/(pi*x), 1 at x = 0.
	Sinc(x float64) float64
	// KaiserWindow returns the symmetric Kaiser window of the given length.
	KaiserWindow(length int, beta float64) ([]float64, error)
}

// DefaultBackend evaluates both primitives with package window.
var DefaultBackend Backend = windowBackend{}

type windowBackend struct{}

func (windowBackend) Sinc(x float64) float64 {
	return window.Sinc(x)
}

func (windowBackend) KaiserWindow(length int, beta float64) ([]float64, error) {
	return window.Kaiser(length, beta)
}

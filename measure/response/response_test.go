package response

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/polycoeffs/dsp/polyphase"
	"github.com/cwbudde/polycoeffs/internal/testutil"
)

func TestAnalyzeImpulseIsFlat(t *testing.T) {
	res, err := Analyze(testutil.Impulse(16, 0), Config{Cutoff: 0.2})
	require.NoError(t, err)

	assert.Len(t, res.Magnitude, defaultFFTSize/2+1)
	assert.Equal(t, 1.0/defaultFFTSize, res.BinWidth)
	testutil.RequireSliceNearlyEqual(t, res.Magnitude, testutil.DC(1, len(res.Magnitude)), 1e-12)

	assert.Equal(t, 1.0, res.DCGain)
	assert.InDelta(t, 0, res.PassbandRippleDB, 1e-9)
	assert.True(t, res.HasStopband())
	assert.InDelta(t, 0, res.StopbandAttenuationDB, 1e-9)
	assert.Equal(t, 0.5, res.Cutoff6dB)
	assert.Equal(t, 0, res.PeakTap)
	assert.Nil(t, res.PhaseDCGains)
}

func TestAnalyzeDefaultDesign(t *testing.T) {
	d, err := polyphase.New(polyphase.DefaultConfig())
	require.NoError(t, err)

	res, err := Analyze(d.Quantized, Config{Gain: 2, Cutoff: d.Config.Cutoff(), Phases: 2})
	require.NoError(t, err)

	assert.InDelta(t, 2, res.DCGain, 1e-12)
	require.Len(t, res.PhaseDCGains, 2)
	assert.InDelta(t, 1, res.PhaseDCGains[0], 1e-12)
	assert.InDelta(t, 1, res.PhaseDCGains[1], 1e-12)
	assert.InDelta(t, 0, res.PhaseGainSpread, 1e-12)

	if res.PassbandRippleDB > 0.01 {
		t.Fatalf("passband ripple = %v dB, want <= 0.01", res.PassbandRippleDB)
	}

	assert.False(t, res.HasStopband(), "cutoff at Nyquist leaves no stopband")
	assert.InDelta(t, 0.476, res.Cutoff6dB, 0.002)
	assert.InDelta(t, 0, res.SymmetryError, 1e-15)
	assert.Equal(t, 11, res.PeakTap, "first of the two centre taps")
	testutil.RequireFinite(t, res.Magnitude)
}

func TestAnalyzeSDDesign(t *testing.T) {
	d, err := polyphase.New(polyphase.PresetSD.Config())
	require.NoError(t, err)

	res, err := Analyze(d.Kernel, Config{Gain: 4, Cutoff: d.Config.Cutoff(), Phases: 4})
	require.NoError(t, err)

	require.True(t, res.HasStopband())
	if res.StopbandAttenuationDB < 70 {
		t.Fatalf("stopband attenuation = %.2f dB, want >= 70", res.StopbandAttenuationDB)
	}

	assert.InDelta(t, 0.25, res.Cutoff6dB, 0.001)
	assert.InDelta(t, 4, res.DCGain, 1e-12)
	assert.InDelta(t, res.PhaseDCGains[0], res.PhaseDCGains[3], 1e-12)
	assert.Greater(t, res.PhaseGainSpread, 1.0)
}

func TestAnalyzeFFTSize(t *testing.T) {
	res, err := Analyze(testutil.Ones(24), Config{FFTSize: 1000})
	require.NoError(t, err)
	assert.Len(t, res.Magnitude, 513)

	res, err = Analyze(testutil.Ones(512), Config{FFTSize: 64})
	require.NoError(t, err)
	assert.Len(t, res.Magnitude, 512*minBinsPerTap/2+1)
}

func TestAnalyzeSymmetryError(t *testing.T) {
	res, err := Analyze(testutil.Ramp(6), Config{})
	require.NoError(t, err)
	assert.Equal(t, 5.0, res.SymmetryError)
	assert.Equal(t, 5, res.PeakTap)
}

func TestAnalyzeErrors(t *testing.T) {
	_, err := Analyze(nil, Config{})
	assert.True(t, errors.Is(err, ErrEmptyKernel))

	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "negative gain", cfg: Config{Gain: -1}},
		{name: "infinite gain", cfg: Config{Gain: math.Inf(1)}},
		{name: "cutoff above nyquist", cfg: Config{Cutoff: 0.6}},
		{name: "negative cutoff", cfg: Config{Cutoff: -0.1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Analyze(testutil.Ones(4), tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestNextPowerOf2(t *testing.T) {
	tests := []struct{ in, want int }{{1, 1}, {2, 2}, {3, 4}, {1000, 1024}, {4096, 4096}}
	for _, tt := range tests {
		if got := nextPowerOf2(tt.in); got != tt.want {
			t.Fatalf("nextPowerOf2(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

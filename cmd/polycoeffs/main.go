// Command polycoeffs prints fixed-point polyphase FIR coefficients for an
// integer-factor upsampler, designed with the windowed-sinc (Kaiser) method.
//
// Usage:
//
//	polycoeffs [flags]
//
// Without flags it prints the 2x table (24 taps, beta 6.5, 16 fractional
// bits) as two bracketed rows of 12 coefficients.
//
// Examples:
//
//	polycoeffs
//	polycoeffs --preset sd
//	polycoeffs --sample-rate 44100 -f go --name sdCoeffs
//	polycoeffs -c coeffs.yaml --report
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/cwbudde/polycoeffs/dsp/core"
	"github.com/cwbudde/polycoeffs/dsp/polyphase"
	"github.com/cwbudde/polycoeffs/dsp/window"
	"github.com/cwbudde/polycoeffs/internal/config"
	"github.com/cwbudde/polycoeffs/internal/render"
	"github.com/cwbudde/polycoeffs/measure/response"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type flags struct {
	set *pflag.FlagSet

	configPath string
	preset     string
	sampleRate float64
	factor     int
	taps       int
	beta       float64
	bits       int
	rounding   string
	format     string
	name       string
	precision  int
	report     bool
	verbose    bool
	help       bool
}

func newFlags(stderr io.Writer) *flags {
	f := &flags{set: pflag.NewFlagSet("polycoeffs", pflag.ContinueOnError)}
	fs := f.set
	fs.SetOutput(stderr)

	fs.StringVarP(&f.configPath, "config", "c", "", "YAML settings file")
	fs.StringVar(&f.preset, "preset", "", "design preset: hd (2x, 24 taps) or sd (4x, 48 taps); default hd")
	fs.Float64Var(&f.sampleRate, "sample-rate", 0, "source sample rate in Hz; selects the preset for upsampling to 192 kHz")
	fs.IntVar(&f.factor, "factor", 0, "upsample factor and number of phases (overrides preset)")
	fs.IntVar(&f.taps, "taps", 0, "total number of taps (overrides preset)")
	fs.Float64Var(&f.beta, "beta", 0, "Kaiser window beta (overrides preset)")
	fs.IntVar(&f.bits, "bits", 0, "fractional bits of the fixed-point grid (overrides preset)")
	fs.StringVar(&f.rounding, "rounding", "", "tie-breaking rule: half-even or half-away; default half-even")
	fs.StringVarP(&f.format, "format", "f", "", "output format: bracket or go; default bracket")
	fs.StringVar(&f.name, "name", "", "variable name for the go format; default coeffs")
	fs.IntVar(&f.precision, "precision", 0, "digits after the decimal point; default 13")
	fs.BoolVarP(&f.report, "report", "r", false, "log a frequency-response report to stderr")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "enable debug logging")
	fs.BoolVarP(&f.help, "help", "h", false, "display help text")

	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: polycoeffs [flags]\n\n")
		_, _ = fmt.Fprintf(stderr, "Prints fixed-point polyphase FIR coefficients for an upsampler.\n")
		_, _ = fmt.Fprintf(stderr, "Settings are layered: preset < config file < flags.\n\n")
		_, _ = fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	return f
}

// layer returns the explicitly set flags as a settings layer.
func (f *flags) layer() config.File {
	var l config.File

	fs := f.set
	if fs.Changed("preset") {
		l.Preset = f.preset
	}
	if fs.Changed("sample-rate") {
		l.SampleRate = &f.sampleRate
	}
	if fs.Changed("factor") {
		l.Factor = &f.factor
	}
	if fs.Changed("taps") {
		l.Taps = &f.taps
	}
	if fs.Changed("beta") {
		l.Beta = &f.beta
	}
	if fs.Changed("bits") {
		l.Bits = &f.bits
	}
	if fs.Changed("rounding") {
		l.Rounding = f.rounding
	}
	if fs.Changed("format") {
		l.Format = f.format
	}
	if fs.Changed("name") {
		l.Name = f.name
	}
	if fs.Changed("precision") {
		l.Precision = &f.precision
	}

	return l
}

func run(args []string, stdout, stderr io.Writer) int {
	f := newFlags(stderr)
	if err := f.set.Parse(args); err != nil {
		return exitUsage
	}

	if f.help {
		f.set.Usage()
		return exitOK
	}

	logger := log.NewWithOptions(stderr, log.Options{Prefix: "polycoeffs"})
	if f.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if f.set.NArg() > 0 {
		logger.Error("unexpected arguments", "args", f.set.Args())
		return exitUsage
	}

	var layers []config.File

	if f.configPath != "" {
		file, err := config.Load(f.configPath)
		if err != nil {
			logger.Error("cannot load config", "err", err)
			return exitUsage
		}

		logger.Debug("loaded config", "path", f.configPath)
		layers = append(layers, file)
	}

	settings, err := config.Resolve(append(layers, f.layer())...)
	if err != nil {
		logger.Error("invalid settings", "err", err)
		return exitUsage
	}

	cfg := settings.Design
	logger.Debug("designing",
		"preset", settings.Preset,
		"factor", cfg.Factor,
		"taps", cfg.Taps,
		"beta", cfg.Beta,
		"bits", cfg.Bits,
		"rounding", cfg.Rounding,
	)

	design, err := polyphase.New(cfg)
	if err != nil {
		logger.Error("design failed", "err", err)
		return exitError
	}

	if f.report {
		if err := logReport(logger, design); err != nil {
			logger.Error("response analysis failed", "err", err)
			return exitError
		}
	}

	if err := render.Write(stdout, design.Phases, settings.Format, settings.RenderOptions()...); err != nil {
		logger.Error("cannot write coefficients", "err", err)
		return exitError
	}

	return exitOK
}

func logReport(logger *log.Logger, d *polyphase.Design) error {
	cfg := d.Config

	res, err := response.Analyze(d.Quantized, response.Config{
		Gain:   float64(cfg.Factor),
		Cutoff: cfg.Cutoff(),
		Phases: cfg.Factor,
	})
	if err != nil {
		return err
	}

	enbw, err := window.EquivalentNoiseBandwidth(d.Window)
	if err != nil {
		return err
	}

	quantErr, err := core.MaxAbsDiff(d.Kernel, d.Quantized)
	if err != nil {
		return err
	}

	kv := []any{
		"dc_gain", res.DCGain,
		"phase_dc_gains", res.PhaseDCGains,
		"phase_gain_spread", res.PhaseGainSpread,
		"passband_ripple_db", res.PassbandRippleDB,
		"cutoff_6db", res.Cutoff6dB,
		"symmetry_error", res.SymmetryError,
		"peak_tap", res.PeakTap,
		"max_quant_error", quantErr,
		"window_enbw", enbw,
		"window_coherent_gain", window.CoherentGain(d.Window),
	}
	if res.HasStopband() {
		kv = append(kv, "stopband_db", res.StopbandAttenuationDB)
	}

	logger.Info("frequency response", kv...)

	return nil
}

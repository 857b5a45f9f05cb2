// Package config resolves generator settings from presets, YAML files and
// command-line overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/polycoeffs/dsp/fixedpoint"
	"github.com/cwbudde/polycoeffs/dsp/polyphase"
	"github.com/cwbudde/polycoeffs/internal/render"
)

// ErrConflictingPreset indicates that one layer names both a preset and a
// sample rate selecting a different preset.
var ErrConflictingPreset = errors.New("config: preset and sample rate disagree")

// File is one layer of settings. Nil pointers and empty strings leave the
// underlying value unchanged.
type File struct {
	Preset     string   `yaml:"preset"`
	SampleRate *float64 `yaml:"sample_rate"`
	Factor     *int     `yaml:"factor"`
	Taps       *int     `yaml:"taps"`
	Beta       *float64 `yaml:"beta"`
	Bits       *int     `yaml:"bits"`
	Rounding   string   `yaml:"rounding"`
	Format     string   `yaml:"format"`
	Precision  *int     `yaml:"precision"`
	Name       string   `yaml:"name"`
}

// Settings is the fully resolved generator configuration.
type Settings struct {
	Preset    polyphase.Preset
	Design    polyphase.Config
	Format    render.Format
	Precision int
	Name      string
}

// Defaults returns the settings used when nothing is configured: the hd
// preset printed in bracket format with 13 decimals.
func Defaults() Settings {
	return Settings{
		Preset:    polyphase.PresetHD,
		Design:    polyphase.DefaultConfig(),
		Format:    render.FormatBracket,
		Precision: render.DefaultPrecision,
		Name:      render.DefaultName,
	}
}

// Load reads and parses the YAML file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("config: %w", err)
	}

	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("config: %s: %w", path, err)
	}

	return f, nil
}

// Parse decodes a YAML document. Unknown keys are rejected; an empty
// document yields an empty File.
func Parse(data []byte) (File, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, err
	}

	return f, nil
}

// Resolve merges layers over Defaults. The last layer that names a preset
// (directly or through its sample rate) selects the base design; the
// explicit fields of every layer are then applied in order, so later layers
// win.
func Resolve(layers ...File) (Settings, error) {
	s := Defaults()

	for _, l := range layers {
		p, ok, err := l.preset()
		if err != nil {
			return Settings{}, err
		}

		if ok {
			s.Preset = p
			s.Design = p.Config()
		}
	}

	for _, l := range layers {
		if err := l.apply(&s); err != nil {
			return Settings{}, err
		}
	}

	if err := s.Design.Validate(); err != nil {
		return Settings{}, fmt.Errorf("config: %w", err)
	}

	if err := render.ValidateOptions(s.RenderOptions()...); err != nil {
		return Settings{}, fmt.Errorf("config: %w", err)
	}

	return s, nil
}

func (f File) preset() (polyphase.Preset, bool, error) {
	var (
		p     polyphase.Preset
		found bool
	)

	if f.Preset != "" {
		named, err := polyphase.ParsePreset(f.Preset)
		if err != nil {
			return 0, false, fmt.Errorf("config: %w", err)
		}

		p, found = named, true
	}

	if f.SampleRate != nil {
		byRate, err := polyphase.PresetForRate(*f.SampleRate)
		if err != nil {
			return 0, false, fmt.Errorf("config: %w", err)
		}

		if found && byRate != p {
			return 0, false, fmt.Errorf("%w: preset %s, %g Hz needs %s", ErrConflictingPreset, p, *f.SampleRate, byRate)
		}

		p, found = byRate, true
	}

	return p, found, nil
}

func (f File) apply(s *Settings) error {
	if f.Factor != nil {
		s.Design.Factor = *f.Factor
	}

	if f.Taps != nil {
		s.Design.Taps = *f.Taps
	}

	if f.Beta != nil {
		s.Design.Beta = *f.Beta
	}

	if f.Bits != nil {
		s.Design.Bits = *f.Bits
	}

	if f.Rounding != "" {
		r, err := fixedpoint.ParseRounding(f.Rounding)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}

		s.Design.Rounding = r
	}

	if f.Format != "" {
		format, err := render.ParseFormat(f.Format)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}

		s.Format = format
	}

	if f.Precision != nil {
		s.Precision = *f.Precision
	}

	if f.Name != "" {
		s.Name = f.Name
	}

	return nil
}

// RenderOptions returns the render options described by s.
func (s Settings) RenderOptions() []render.Option {
	return []render.Option{render.WithPrecision(s.Precision), render.WithName(s.Name)}
}

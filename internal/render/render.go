// Package render prints polyphase coefficient tables as source literals.
package render

import (
	"errors"
	"fmt"
	"go/token"
	"io"
	"strconv"
	"strings"
)

const (
	// DefaultPrecision is the number of digits printed after the decimal point.
	DefaultPrecision = 13
	// DefaultName is the variable name used by FormatGo.
	DefaultName = "coeffs"

	maxPrecision = 17
)

var (
	// ErrUnknownFormat indicates an unknown output format.
	ErrUnknownFormat = errors.New("render: unknown format")
	// ErrInvalidOption indicates an invalid precision or variable name.
	ErrInvalidOption = errors.New("render: invalid option")
)

// Format selects the literal syntax.
type Format int

const (
	// FormatBracket prints nested bracketed rows, one tab-indented row per
	// phase, each with a trailing comma.
	FormatBracket Format = iota
	// FormatGo prints a Go variable declaration.
	FormatGo

	formatCount // sentinel for validation
)

var formatNames = [formatCount]string{"bracket", "go"}

// String returns the format name.
func (f Format) String() string {
	if f.Valid() {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", f)
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	return f >= 0 && f < formatCount
}

// ParseFormat returns the format with the given case-insensitive name.
func ParseFormat(name string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range formatNames {
		if n == key {
			return Format(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, name, strings.Join(formatNames[:], ", "))
}

type config struct {
	precision int
	name      string
}

// Option configures Write.
type Option func(*config) error

// WithPrecision sets the digits after the decimal point (0-17, default 13).
func WithPrecision(digits int) Option {
	return func(c *config) error {
		if digits < 0 || digits > maxPrecision {
			return fmt.Errorf("%w: precision must be in [0, %d]: %d", ErrInvalidOption, maxPrecision, digits)
		}

		c.precision = digits

		return nil
	}
}

// WithName sets the variable name used by FormatGo.
func WithName(name string) Option {
	return func(c *config) error {
		if !token.IsIdentifier(name) {
			return fmt.Errorf("%w: %q is not a Go identifier", ErrInvalidOption, name)
		}

		c.name = name

		return nil
	}
}

func newConfig(opts []Option) (config, error) {
	cfg := config{precision: DefaultPrecision, name: DefaultName}

	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}

	return cfg, nil
}

// ValidateOptions reports the first error opts would cause in Write.
func ValidateOptions(opts ...Option) error {
	_, err := newConfig(opts)
	return err
}

// Write renders phases to w in format f.
func Write(w io.Writer, phases [][]float64, f Format, opts ...Option) error {
	cfg, err := newConfig(opts)
	if err != nil {
		return err
	}

	var b strings.Builder

	switch f {
	case FormatBracket:
		writeBracket(&b, phases, cfg.precision)
	case FormatGo:
		writeGo(&b, phases, cfg)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownFormat, int(f))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("render: write: %w", err)
	}

	return nil
}

// String renders phases in format f and returns the text.
func String(phases [][]float64, f Format, opts ...Option) (string, error) {
	var b strings.Builder
	if err := Write(&b, phases, f, opts...); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeBracket(b *strings.Builder, phases [][]float64, precision int) {
	b.WriteString("[\n")
	for _, row := range phases {
		b.WriteString("\t[")
		writeRow(b, row, precision)
		b.WriteString("],\n")
	}
	b.WriteString("]\n")
}

func writeGo(b *strings.Builder, phases [][]float64, cfg config) {
	fmt.Fprintf(b, "var %s = %s{\n", cfg.name, goType(phases))
	for _, row := range phases {
		b.WriteString("\t{")
		writeRow(b, row, cfg.precision)
		b.WriteString("},\n")
	}
	b.WriteString("}\n")
}

// goType returns a fixed-size array type when all rows have the same length.
func goType(phases [][]float64) string {
	if len(phases) == 0 {
		return "[][]float64"
	}

	n := len(phases[0])
	for _, row := range phases[1:] {
		if len(row) != n {
			return "[][]float64"
		}
	}

	return fmt.Sprintf("[%d][%d]float64", len(phases), n)
}

func writeRow(b *strings.Builder, row []float64, precision int) {
	for i, v := range row {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(v, 'f', precision, 64))
	}
}

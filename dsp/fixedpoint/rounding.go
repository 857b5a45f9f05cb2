package fixedpoint

import (
	"fmt"
	"strings"
)

// Rounding selects how values exactly halfway between two grid points are
// resolved.
type Rounding int

const (
	// RoundHalfEven rounds ties to the even grid point (banker's rounding).
	RoundHalfEven Rounding = iota
	// RoundHalfAway rounds ties away from zero.
	RoundHalfAway

	roundingCount // sentinel for validation
)

var roundingNames = [roundingCount]string{
	"half-even", "half-away",
}

// String returns the name of the rounding mode.
func (r Rounding) String() string {
	if r.Valid() {
		return roundingNames[r]
	}
	return fmt.Sprintf("Rounding(%d)", r)
}

// Valid reports whether r is a known rounding mode.
func (r Rounding) Valid() bool {
	return r >= 0 && r < roundingCount
}

// ParseRounding returns the rounding mode with the given name.
// Matching is case-insensitive; "even" and "away" are accepted as short forms.
func ParseRounding(name string) (Rounding, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "even", "bankers":
		return RoundHalfEven, nil
	case "away":
		return RoundHalfAway, nil
	}

	for i, n := range roundingNames {
		if n == key {
			return Rounding(i), nil
		}
	}

	return 0, fmt.Errorf("fixedpoint: %w: %q", ErrInvalidRounding, name)
}

// MarshalText implements encoding.TextMarshaler.
func (r Rounding) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("fixedpoint: %w: %d", ErrInvalidRounding, int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Rounding) UnmarshalText(text []byte) error {
	v, err := ParseRounding(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

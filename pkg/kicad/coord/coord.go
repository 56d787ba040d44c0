// Package coord provides the fixed-point length type used throughout the
// KiCad file model. KiCad stores lengths internally as integer nanometers;
// keeping that representation means millimeter values with up to six
// fractional digits convert losslessly, and repeated load/save cycles can
// never accumulate floating-point drift.
package coord

import (
	"fmt"
	"math"
	"strings"
)

// NanometersPerMm is the number of internal units per millimeter.
const NanometersPerMm = 1_000_000

// MaxFractionalDigits is the largest number of fractional millimeter
// digits that converts exactly to the internal unit.
const MaxFractionalDigits = 6

// Coord is a physical length in integer nanometers.
// Equality and ordering compare the integer representation directly.
type Coord int64

// Zero is the zero length.
const Zero Coord = 0

// FromNm builds a Coord from raw nanometers.
func FromNm(nm int64) Coord {
	return Coord(nm)
}

// FromMm converts a millimeter value to the nearest representable Coord.
func FromMm(mm float64) Coord {
	return Coord(math.Round(mm * NanometersPerMm))
}

// Nm returns the raw nanometer count.
func (c Coord) Nm() int64 {
	return int64(c)
}

// ToMm converts to millimeters.
func (c Coord) ToMm() float64 {
	return float64(c) / NanometersPerMm
}

// Add returns c + other.
func (c Coord) Add(other Coord) Coord {
	return c + other
}

// Sub returns c - other.
func (c Coord) Sub(other Coord) Coord {
	return c - other
}

// Neg returns -c.
func (c Coord) Neg() Coord {
	return -c
}

// MulScalar returns c scaled by f, rounded to the nearest nanometer.
func (c Coord) MulScalar(f float64) Coord {
	return Coord(math.Round(float64(c) * f))
}

// DivScalar returns c divided by f, rounded to the nearest nanometer.
func (c Coord) DivScalar(f float64) Coord {
	return Coord(math.Round(float64(c) / f))
}

// Half returns c / 2, rounded toward zero.
func (c Coord) Half() Coord {
	return c / 2
}

// Cmp returns -1, 0, or 1 depending on whether c is less than, equal to,
// or greater than other.
func (c Coord) Cmp(other Coord) int {
	switch {
	case c < other:
		return -1
	case c > other:
		return 1
	default:
		return 0
	}
}

// Less reports whether c is strictly smaller than other.
func (c Coord) Less(other Coord) bool {
	return c < other
}

// Min returns the smaller of a and b.
func Min(a, b Coord) Coord {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b Coord) Coord {
	if a > b {
		return a
	}
	return b
}

// Abs returns the absolute value of c.
func (c Coord) Abs() Coord {
	if c < 0 {
		return -c
	}
	return c
}

// String formats the length in millimeters exactly, using integer
// arithmetic only: no exponent, at most six fractional digits, trailing
// zeros and a bare trailing decimal point trimmed. Negative zero never
// occurs because the representation is integral.
func (c Coord) String() string {
	nm := int64(c)
	neg := nm < 0
	if neg {
		nm = -nm
	}

	whole := nm / NanometersPerMm
	frac := nm % NanometersPerMm

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}
	fmt.Fprintf(&sb, "%d", whole)
	if frac != 0 {
		digits := fmt.Sprintf("%06d", frac)
		digits = strings.TrimRight(digits, "0")
		sb.WriteByte('.')
		sb.WriteString(digits)
	}
	return sb.String()
}

// FromString parses a decimal millimeter value ("1.6", "-0.25", "100")
// exactly, without going through floating point. More than six fractional
// digits is an error unless the excess digits are all zero.
func FromString(s string) (Coord, error) {
	if s == "" {
		return 0, fmt.Errorf("empty coordinate")
	}

	rest := s
	neg := false
	switch rest[0] {
	case '-':
		neg = true
		rest = rest[1:]
	case '+':
		rest = rest[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(rest, ".")
	if intPart == "" && fracPart == "" {
		return 0, fmt.Errorf("invalid coordinate %q", s)
	}

	var nm int64
	for _, r := range intPart {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid coordinate %q", s)
		}
		nm = nm*10 + int64(r-'0')
		if nm > math.MaxInt64/NanometersPerMm {
			return 0, fmt.Errorf("coordinate %q out of range", s)
		}
	}
	nm *= NanometersPerMm

	if hasFrac {
		scale := int64(NanometersPerMm / 10)
		for i, r := range fracPart {
			if r < '0' || r > '9' {
				return 0, fmt.Errorf("invalid coordinate %q", s)
			}
			if i >= MaxFractionalDigits {
				if r != '0' {
					return 0, fmt.Errorf("coordinate %q exceeds %d fractional digits", s, MaxFractionalDigits)
				}
				continue
			}
			nm += int64(r-'0') * scale
			scale /= 10
		}
	}

	if neg {
		nm = -nm
	}
	return Coord(nm), nil
}

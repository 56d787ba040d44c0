package sexp

import (
	"fmt"

	"github.com/issus/kicadgo/pkg/kicad/coord"
)

// Typed child extraction helpers for domain mappers. Index 0 is the tag,
// index 1 the first value. Structural problems come back as errors for
// the mapper to turn into diagnostics; nothing here panics on malformed
// documents.

// StringAt returns the text of the atom at index i, whether it was
// quoted or bare.
func StringAt(n *Node, i int) (string, error) {
	c := n.Child(i)
	if c == nil {
		return "", fmt.Errorf("(%s): missing value at index %d", n.Tag(), i)
	}
	if c.IsList() {
		return "", fmt.Errorf("(%s): expected atom at index %d, got list", n.Tag(), i)
	}
	return c.Text(), nil
}

// FloatAt returns the numeric value at index i.
func FloatAt(n *Node, i int) (float64, error) {
	c := n.Child(i)
	if c == nil {
		return 0, fmt.Errorf("(%s): missing number at index %d", n.Tag(), i)
	}
	v, ok := c.Float()
	if !ok {
		return 0, fmt.Errorf("(%s): expected number at index %d, got %q", n.Tag(), i, c.Text())
	}
	return v, nil
}

// IntAt returns the integer value at index i.
func IntAt(n *Node, i int) (int, error) {
	c := n.Child(i)
	if c == nil {
		return 0, fmt.Errorf("(%s): missing integer at index %d", n.Tag(), i)
	}
	v, ok := c.Int()
	if !ok {
		return 0, fmt.Errorf("(%s): expected integer at index %d, got %q", n.Tag(), i, c.Text())
	}
	return v, nil
}

// MmAt returns the child at index i as an exact fixed-point millimeter
// length, parsed from its source lexeme so no floating-point rounding
// can creep in.
func MmAt(n *Node, i int) (coord.Coord, error) {
	c := n.Child(i)
	if c == nil {
		return 0, fmt.Errorf("(%s): missing coordinate at index %d", n.Tag(), i)
	}
	if c.IsList() {
		return 0, fmt.Errorf("(%s): expected coordinate at index %d, got list", n.Tag(), i)
	}
	v, err := coord.FromString(c.Text())
	if err != nil {
		return 0, fmt.Errorf("(%s): bad coordinate at index %d: %w", n.Tag(), i, err)
	}
	return v, nil
}

// PointAt reads the two coordinates starting at index i as a point.
func PointAt(n *Node, i int) (coord.Point, error) {
	x, err := MmAt(n, i)
	if err != nil {
		return coord.Point{}, err
	}
	y, err := MmAt(n, i+1)
	if err != nil {
		return coord.Point{}, err
	}
	return coord.Point{X: x, Y: y}, nil
}

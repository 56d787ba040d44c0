// Package sexp implements the S-expression engine shared by every KiCad
// file reader and writer in this module: a generic tree model, a
// diagnostic-collecting tokenizer and parser, a fluent builder, and a
// formatter that reproduces KiCad's own output style.
//
// The package is deliberately lossless. Atoms remember whether they were
// quoted, numbers remember their exact source spelling, and unrecognized
// subtrees can be carried through a load/save cycle untouched. Domain
// mappers build on those guarantees to make an unmodified document
// re-serialize to exactly what KiCad itself would write.
package sexp

import (
	"strconv"
	"strings"
)

// Kind discriminates the node variants.
type Kind int

const (
	// KindSymbol is a bare identifier atom (layer names, keywords, yes/no).
	KindSymbol Kind = iota
	// KindString is a quoted string atom, stored decoded.
	KindString
	// KindNumber is an integer or real atom. The exact source lexeme is
	// retained so unmodified numbers re-serialize byte-identically.
	KindNumber
	// KindList is an ordered sequence of child nodes. By convention the
	// first child is a symbol naming the node.
	KindList
)

// Node is a single S-expression tree node. Nodes are immutable once
// built; construction goes through the parser or the Builder.
type Node struct {
	kind     Kind
	text     string // symbol text, decoded string, or number lexeme
	num      float64
	children []*Node
}

// Symbol builds a bare symbol atom.
func Symbol(name string) *Node {
	return &Node{kind: KindSymbol, text: name}
}

// String builds a quoted string atom from decoded text.
func String(s string) *Node {
	return &Node{kind: KindString, text: s}
}

// Number builds a number atom with canonical formatting.
func Number(v float64) *Node {
	return &Node{kind: KindNumber, text: FormatNumber(v), num: v}
}

// Int builds an integer number atom.
func Int(v int) *Node {
	return &Node{kind: KindNumber, text: strconv.Itoa(v), num: float64(v)}
}

// numberLexeme builds a number atom that keeps its source spelling.
func numberLexeme(lexeme string, v float64) *Node {
	return &Node{kind: KindNumber, text: lexeme, num: v}
}

// List builds a list node from already-built children.
func List(children ...*Node) *Node {
	return &Node{kind: KindList, children: children}
}

// Kind returns the node variant.
func (n *Node) Kind() Kind {
	return n.kind
}

// IsList reports whether the node is a list.
func (n *Node) IsList() bool {
	return n.kind == KindList
}

// IsAtom reports whether the node is a leaf.
func (n *Node) IsAtom() bool {
	return n.kind != KindList
}

// Text returns the symbol name, decoded string content, or number lexeme.
// For lists it returns "".
func (n *Node) Text() string {
	if n.kind == KindList {
		return ""
	}
	return n.text
}

// Float returns the numeric value of a number atom, or parses a
// numeric-looking symbol or string. The second result reports success.
func (n *Node) Float() (float64, bool) {
	switch n.kind {
	case KindNumber:
		return n.num, true
	case KindSymbol, KindString:
		v, err := strconv.ParseFloat(n.text, 64)
		return v, err == nil
	default:
		return 0, false
	}
}

// Int returns the value of an integer atom. The second result reports
// whether the node held an integral number.
func (n *Node) Int() (int, bool) {
	f, ok := n.Float()
	if !ok || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}

// Tag returns the name of a list node: its first child when that child
// is a symbol. Atoms and unnamed lists return "".
func (n *Node) Tag() string {
	if n.kind != KindList || len(n.children) == 0 {
		return ""
	}
	if first := n.children[0]; first.kind == KindSymbol {
		return first.text
	}
	return ""
}

// Len returns the number of children of a list (0 for atoms).
func (n *Node) Len() int {
	return len(n.children)
}

// Child returns the i-th child, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if n.kind != KindList || i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Children returns the child slice. Callers must not modify it.
func (n *Node) Children() []*Node {
	return n.children
}

// Values returns the children after the tag. For an unnamed list it
// returns all children.
func (n *Node) Values() []*Node {
	if n.kind != KindList {
		return nil
	}
	if n.Tag() != "" {
		return n.children[1:]
	}
	return n.children
}

// Find returns the first child list whose tag matches, e.g.
// Find("at") locates (at 100 50) among the children.
func (n *Node) Find(tag string) (*Node, bool) {
	for _, c := range n.Values() {
		if c.kind == KindList && c.Tag() == tag {
			return c, true
		}
	}
	return nil, false
}

// FindAll returns every child list with the given tag, in order.
func (n *Node) FindAll(tag string) []*Node {
	var out []*Node
	for _, c := range n.Values() {
		if c.kind == KindList && c.Tag() == tag {
			out = append(out, c)
		}
	}
	return out
}

// HasFlag reports whether a bare symbol child with the given name is
// present, e.g. the `locked` flag in (footprint ... locked ...).
func (n *Node) HasFlag(name string) bool {
	for _, c := range n.Values() {
		if c.kind == KindSymbol && c.text == name {
			return true
		}
	}
	return false
}

// String renders the node on a single line, mainly for debugging and
// error messages. Use Format for file output.
func (n *Node) String() string {
	var sb strings.Builder
	writeCompact(&sb, n)
	return sb.String()
}

func writeCompact(sb *strings.Builder, n *Node) {
	if n.kind != KindList {
		sb.WriteString(renderAtom(n))
		return
	}
	sb.WriteByte('(')
	for i, c := range n.children {
		if i > 0 {
			sb.WriteByte(' ')
		}
		writeCompact(sb, c)
	}
	sb.WriteByte(')')
}

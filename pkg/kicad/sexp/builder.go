package sexp

import (
	"fmt"
	"strconv"

	"github.com/issus/kicadgo/pkg/kicad/coord"
)

// Builder assembles a list node without manual child bookkeeping.
// Domain mappers use it to re-derive a tree from a typed model:
//
//	b := sexp.NewBuilder("pad")
//	b.AddValue("1").AddSymbol("smd").AddSymbol("circle")
//	b.AddChild("at", func(at *sexp.Builder) {
//		at.AddMm(x).AddMm(y)
//	})
//	node := b.Build()
//
// Passing an unsupported value type to AddValue panics: that is a caller
// bug, not a malformed document, and it is the engine's only hard
// failure mode. Builders perform no I/O and hold no global state.
type Builder struct {
	children []*Node
}

// NewBuilder starts a list whose first child is the tag symbol.
func NewBuilder(tag string) *Builder {
	return &Builder{children: []*Node{Symbol(tag)}}
}

// newAnonymousBuilder starts a list without a tag, for nested point
// lists like the children of (pts ...).
func newAnonymousBuilder() *Builder {
	return &Builder{}
}

// AddValue appends an atom whose encoding is chosen by v's dynamic type:
// strings become quoted string atoms, numeric types become number atoms,
// bools become yes/no symbols, and coord.Coord becomes its exact
// millimeter rendering. Any other type panics.
func (b *Builder) AddValue(v any) *Builder {
	switch x := v.(type) {
	case string:
		b.children = append(b.children, String(x))
	case int:
		b.children = append(b.children, Int(x))
	case int64:
		b.children = append(b.children, &Node{kind: KindNumber, text: strconv.FormatInt(x, 10), num: float64(x)})
	case float64:
		b.children = append(b.children, Number(x))
	case bool:
		b.AddBool(x)
	case coord.Coord:
		b.AddMm(x)
	default:
		panic(fmt.Sprintf("sexp: AddValue called with unsupported type %T", v))
	}
	return b
}

// AddSymbol appends a bare symbol atom. Only known-safe keywords (layer
// names, yes/no, shape names) belong here; symbols are never quoted on
// output.
func (b *Builder) AddSymbol(name string) *Builder {
	b.children = append(b.children, Symbol(name))
	return b
}

// AddString appends a quoted string atom.
func (b *Builder) AddString(s string) *Builder {
	b.children = append(b.children, String(s))
	return b
}

// AddNumber appends a real number atom with canonical formatting.
func (b *Builder) AddNumber(v float64) *Builder {
	b.children = append(b.children, Number(v))
	return b
}

// AddInt appends an integer number atom.
func (b *Builder) AddInt(v int) *Builder {
	b.children = append(b.children, Int(v))
	return b
}

// AddMm appends a number atom holding the coordinate's exact millimeter
// value.
func (b *Builder) AddMm(c coord.Coord) *Builder {
	b.children = append(b.children, numberLexeme(c.String(), c.ToMm()))
	return b
}

// AddBool appends the symbol yes or no, never true/false and never
// quoted.
func (b *Builder) AddBool(v bool) *Builder {
	if v {
		return b.AddSymbol("yes")
	}
	return b.AddSymbol("no")
}

// AddChild builds a nested tagged list through the callback and appends
// it.
func (b *Builder) AddChild(tag string, configure func(*Builder)) *Builder {
	child := NewBuilder(tag)
	configure(child)
	b.children = append(b.children, child.Build())
	return b
}

// AddAnonymousChild builds a nested untagged list, e.g. the coordinate
// pairs inside (pts (xy ...) ...) variants that omit the tag.
func (b *Builder) AddAnonymousChild(configure func(*Builder)) *Builder {
	child := newAnonymousBuilder()
	configure(child)
	b.children = append(b.children, child.Build())
	return b
}

// AddNode appends an already-built node directly. This is how
// raw-passthrough subtrees return to their original position on write.
// Nil nodes are ignored.
func (b *Builder) AddNode(n *Node) *Builder {
	if n != nil {
		b.children = append(b.children, n)
	}
	return b
}

// Build finalizes the list. The builder must not be reused afterwards.
func (b *Builder) Build() *Node {
	n := &Node{kind: KindList, children: b.children}
	b.children = nil
	return n
}

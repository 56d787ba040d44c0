package sexp

// Variant identifies which of several historically equivalent encodings
// a field used in its source file. The same logical value has appeared
// as a quoted string or a bare symbol, as a child node `(name yes)` or a
// bare flag `name`, and under current or legacy token spellings,
// depending on which KiCad release wrote the file.
type Variant int

const (
	// VariantCanonical marks a value created fresh in memory: it was
	// never parsed, so the writer uses the newest supported encoding.
	VariantCanonical Variant = iota
	// VariantQuoted marks a value read from a quoted string atom.
	VariantQuoted
	// VariantBare marks a value read from a bare symbol atom.
	VariantBare
	// VariantChildNode marks a boolean read from a `(name yes)` child.
	VariantChildNode
	// VariantFlag marks a boolean read from a bare `name` symbol.
	VariantFlag
	// VariantEmptyChild marks a boolean read from a valueless child
	// list `(name)`, a form KiCad 7 wrote for markers like
	// (fields_autoplaced).
	VariantEmptyChild
)

// EncodedValue pairs a field value with the fidelity metadata recorded
// when it was read. Mappers fill it in while walking the parsed tree and
// consult it when rebuilding, so an untouched document reproduces each
// field exactly as its source spelled it, while fields invented by user
// code fall back to the canonical encoding.
//
// The zero value means "absent": not present in the source and not set
// by the caller, so nothing is written unless the format requires a
// default.
type EncodedValue[T any] struct {
	Value   T
	Present bool    // an explicit value existed in the source or was Set
	Variant Variant // observed source encoding
	Token   string  // observed token name when it differs from the current spelling
}

// Set installs a fresh value with canonical encoding, as if the field
// had been created by user code rather than parsed.
func (e *EncodedValue[T]) Set(v T) {
	e.Value = v
	e.Present = true
	e.Variant = VariantCanonical
	e.Token = ""
}

// Record installs a value observed in a source file together with its
// encoding.
func (e *EncodedValue[T]) Record(v T, variant Variant) {
	e.Value = v
	e.Present = true
	e.Variant = variant
}

// Or returns the value when present, otherwise the given default.
func (e EncodedValue[T]) Or(def T) T {
	if e.Present {
		return e.Value
	}
	return def
}

// TokenOr returns the observed token name, or the current spelling when
// the value is fresh or used the current name already.
func (e EncodedValue[T]) TokenOr(current string) string {
	if e.Token != "" {
		return e.Token
	}
	return current
}

// AddAtom appends a recorded string value to b as a quoted string or a
// bare symbol according to its variant. Fresh values use the canonical
// encoding for the field, given by quotedByDefault.
func AddAtom(b *Builder, e EncodedValue[string], quotedByDefault bool) {
	switch e.Variant {
	case VariantBare:
		b.AddSymbol(e.Value)
	case VariantQuoted:
		b.AddString(e.Value)
	default:
		if quotedByDefault {
			b.AddString(e.Value)
		} else {
			b.AddSymbol(e.Value)
		}
	}
}

// RecordAtom captures a string value from an atom node, noting whether
// it was quoted.
func RecordAtom(e *EncodedValue[string], n *Node) {
	if n == nil || n.IsList() {
		return
	}
	if n.Kind() == KindString {
		e.Record(n.Text(), VariantQuoted)
	} else {
		e.Record(n.Text(), VariantBare)
	}
}

// RecordBoolField captures a boolean that KiCad has written both as a
// child node `(name yes)` and as a bare flag symbol `name`, recording
// which form the parent actually used. When neither form is present the
// field stays absent.
func RecordBoolField(e *EncodedValue[bool], parent *Node, name string) {
	if child, ok := parent.Find(name); ok {
		v := child.Child(1)
		if v == nil {
			// Valueless child list: presence alone means true.
			e.Record(true, VariantEmptyChild)
			return
		}
		val := false
		if v.Kind() == KindSymbol {
			val = v.Text() == "yes" || v.Text() == "true"
		}
		e.Record(val, VariantChildNode)
		return
	}
	if parent.HasFlag(name) {
		e.Record(true, VariantFlag)
	}
}

// AddBoolField writes a recorded boolean back in the form it was read
// in. Fresh values use the child-node form, the newest encoding. Absent
// fields write nothing, and a false flag-form value has no spelling, so
// it also writes nothing.
func AddBoolField(b *Builder, e EncodedValue[bool], name string) {
	b.AddNode(BoolFieldNode(e, name))
}

// BoolFieldNode renders a recorded boolean as a standalone node in its
// observed encoding, or nil when the field has no spelling (absent, or
// false in a presence-only form).
func BoolFieldNode(e EncodedValue[bool], name string) *Node {
	if !e.Present {
		return nil
	}
	switch e.Variant {
	case VariantFlag:
		if !e.Value {
			return nil
		}
		return Symbol(name)
	case VariantEmptyChild:
		if !e.Value {
			return nil
		}
		return NewBuilder(name).Build()
	default:
		b := NewBuilder(name)
		b.AddBool(e.Value)
		return b.Build()
	}
}

// Modeler is implemented by typed model elements that can rebuild their
// subtree through the Builder.
type Modeler interface {
	Tree() *Node
}

// Section is one position in a document body: either a modeled element
// that re-derives its subtree on write, or an unmodeled subtree kept
// verbatim for forward compatibility. Exactly one of the two fields is
// set. Keeping modeled and raw sections in a single ordered slice is
// what preserves the original child ordering across a round trip.
type Section struct {
	Model Modeler
	Raw   *Node
}

// Modeled wraps a typed element as a section.
func Modeled(m Modeler) Section {
	return Section{Model: m}
}

// RawSection wraps an unmodeled subtree as a section.
func RawSection(n *Node) Section {
	return Section{Raw: n}
}

// Node returns the subtree this section contributes on write.
func (s Section) Node() *Node {
	if s.Model != nil {
		return s.Model.Tree()
	}
	return s.Raw
}

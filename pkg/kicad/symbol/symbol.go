package symbol

import (
	"strings"

	"github.com/issus/kicadgo/pkg/kicad/sexp"
)

// Symbol is one library symbol. Units are the nested (symbol "Name_0_1")
// sub-symbols KiCad splits graphic bodies and pins into; their pins are
// modeled, the drawing primitives are not. InBom and OnBoard have only
// ever used the child-node form, but recording them through the same
// fidelity wrapper keeps older files honest should a dialect turn up.
type Symbol struct {
	Name    string
	InBom   sexp.EncodedValue[bool]
	OnBoard sexp.EncodedValue[bool]
	// PinNamesHide covers (pin_names hide) from KiCad 6/7 and
	// (pin_names (hide yes)) from KiCad 8.
	PinNamesHide sexp.EncodedValue[bool]
	Properties   []*Property
	Units        []*Unit
	// DirectPins are pins declared directly on the symbol rather than
	// inside a unit, as simple single-unit symbols do.
	DirectPins []*Pin

	sections      []sexp.Section
	pinNamesExtra []*sexp.Node
	named         bool
}

// NewSymbol creates an empty in-memory symbol with canonical defaults.
func NewSymbol(name string) *Symbol {
	s := &Symbol{Name: name, named: true}
	s.InBom.Set(true)
	s.OnBoard.Set(true)
	return s
}

func parseSymbol(node *sexp.Node, diags *sexp.Diagnostics) *Symbol {
	s := &Symbol{}
	values := node.Values()
	if len(values) > 0 && values[0].IsAtom() {
		s.Name = values[0].Text()
		s.named = true
		values = values[1:]
	} else {
		diags.Add(sexp.SeverityWarning, "symbol without a name")
	}

	sexp.RecordBoolField(&s.InBom, node, "in_bom")
	sexp.RecordBoolField(&s.OnBoard, node, "on_board")

	for _, child := range values {
		if !child.IsList() {
			s.sections = append(s.sections, sexp.RawSection(child))
			continue
		}
		switch child.Tag() {
		case "in_bom":
			s.sections = append(s.sections, sexp.Modeled(&symbolBool{&s.InBom, "in_bom"}))

		case "on_board":
			s.sections = append(s.sections, sexp.Modeled(&symbolBool{&s.OnBoard, "on_board"}))

		case "pin_names":
			sexp.RecordBoolField(&s.PinNamesHide, child, "hide")
			for _, extra := range child.Values() {
				if extra.Kind() == sexp.KindSymbol && extra.Text() == "hide" {
					continue
				}
				if extra.IsList() && extra.Tag() == "hide" {
					continue
				}
				s.pinNamesExtra = append(s.pinNamesExtra, extra)
			}
			s.sections = append(s.sections, sexp.Modeled(&pinNamesField{s}))

		case "property":
			p, ok := parseProperty(child)
			if !ok {
				diags.Add(sexp.SeverityWarning, "symbol %q: skipping malformed property", s.Name)
				s.sections = append(s.sections, sexp.RawSection(child))
				continue
			}
			s.Properties = append(s.Properties, p)
			s.sections = append(s.sections, sexp.Modeled(p))

		case "symbol":
			u := parseUnit(child, diags)
			s.Units = append(s.Units, u)
			s.sections = append(s.sections, sexp.Modeled(u))

		case "pin":
			p, ok := parsePin(child)
			if !ok {
				diags.Add(sexp.SeverityWarning, "symbol %q: skipping malformed pin", s.Name)
				s.sections = append(s.sections, sexp.RawSection(child))
				continue
			}
			s.DirectPins = append(s.DirectPins, p)
			s.sections = append(s.sections, sexp.Modeled(p))

		default:
			s.sections = append(s.sections, sexp.RawSection(child))
		}
	}
	return s
}

// Pins returns every pin of the symbol, direct and per-unit, in file
// order.
func (s *Symbol) Pins() []*Pin {
	out := append([]*Pin(nil), s.DirectPins...)
	for _, u := range s.Units {
		out = append(out, u.Pins...)
	}
	return out
}

// Property returns the value of the named property (Reference, Value,
// Footprint, Datasheet, ...).
func (s *Symbol) Property(key string) (string, bool) {
	for _, p := range s.Properties {
		if strings.EqualFold(p.Key, key) {
			return p.Value, true
		}
	}
	return "", false
}

// Tree rebuilds the (symbol ...) subtree. A symbol parsed without a
// name atom writes back without one.
func (s *Symbol) Tree() *sexp.Node {
	b := sexp.NewBuilder("symbol")
	if s.named || s.Name != "" {
		b.AddString(s.Name)
	}
	if s.sections == nil {
		if s.PinNamesHide.Present {
			b.AddNode((&pinNamesField{s}).Tree())
		}
		sexp.AddBoolField(b, s.InBom, "in_bom")
		sexp.AddBoolField(b, s.OnBoard, "on_board")
		for _, p := range s.Properties {
			b.AddNode(p.Tree())
		}
		for _, p := range s.DirectPins {
			b.AddNode(p.Tree())
		}
		for _, u := range s.Units {
			b.AddNode(u.Tree())
		}
		return b.Build()
	}
	for _, sec := range s.sections {
		b.AddNode(sec.Node())
	}
	return b.Build()
}

// symbolBool rebuilds one boolean child in its recorded encoding.
type symbolBool struct {
	v    *sexp.EncodedValue[bool]
	name string
}

func (f *symbolBool) Tree() *sexp.Node {
	return sexp.BoolFieldNode(*f.v, f.name)
}

// pinNamesField rebuilds (pin_names ...) with the hide marker in its
// observed spelling and any other children (like offset) untouched.
type pinNamesField struct{ s *Symbol }

func (f *pinNamesField) Tree() *sexp.Node {
	b := sexp.NewBuilder("pin_names")
	for _, extra := range f.s.pinNamesExtra {
		b.AddNode(extra)
	}
	sexp.AddBoolField(b, f.s.PinNamesHide, "hide")
	return b.Build()
}

// Unit is a nested sub-symbol like (symbol "R_1_1" ...), holding one
// interchangeable unit's pins and graphics.
type Unit struct {
	Name string
	Pins []*Pin

	sections []sexp.Section
	named    bool
}

func parseUnit(node *sexp.Node, diags *sexp.Diagnostics) *Unit {
	u := &Unit{}
	values := node.Values()
	if len(values) > 0 && values[0].IsAtom() {
		u.Name = values[0].Text()
		u.named = true
		values = values[1:]
	}
	for _, child := range values {
		if child.IsList() && child.Tag() == "pin" {
			p, ok := parsePin(child)
			if !ok {
				diags.Add(sexp.SeverityWarning, "unit %q: skipping malformed pin", u.Name)
				u.sections = append(u.sections, sexp.RawSection(child))
				continue
			}
			u.Pins = append(u.Pins, p)
			u.sections = append(u.sections, sexp.Modeled(p))
			continue
		}
		u.sections = append(u.sections, sexp.RawSection(child))
	}
	return u
}

// Tree rebuilds the nested (symbol ...) unit subtree.
func (u *Unit) Tree() *sexp.Node {
	b := sexp.NewBuilder("symbol")
	if u.named || u.Name != "" {
		b.AddString(u.Name)
	}
	if u.sections == nil {
		for _, p := range u.Pins {
			b.AddNode(p.Tree())
		}
		return b.Build()
	}
	for _, sec := range u.sections {
		b.AddNode(sec.Node())
	}
	return b.Build()
}

// Property is a symbol key/value field: (property "Key" "Value" ...).
// Position and text effects pass through raw.
type Property struct {
	Key   string
	Value string

	extras []*sexp.Node
}

func parseProperty(node *sexp.Node) (*Property, bool) {
	key, err := sexp.StringAt(node, 1)
	if err != nil {
		return nil, false
	}
	value, err := sexp.StringAt(node, 2)
	if err != nil {
		return nil, false
	}
	p := &Property{Key: key, Value: value}
	p.extras = append(p.extras, node.Values()[2:]...)
	return p, true
}

// Tree rebuilds the (property ...) subtree.
func (p *Property) Tree() *sexp.Node {
	b := sexp.NewBuilder("property")
	b.AddString(p.Key)
	b.AddString(p.Value)
	for _, extra := range p.extras {
		b.AddNode(extra)
	}
	return b.Build()
}

package footprint

import (
	"fmt"

	"github.com/issus/kicadgo/pkg/kicad/coord"
	"github.com/issus/kicadgo/pkg/kicad/sexp"
)

// Pad is one footprint pad:
// (pad "1" smd roundrect (at -0.8 0) (size 1 0.95) (layers ...)).
// Type is thru_hole, smd, connect, or np_thru_hole; Shape is circle,
// rect, oval, roundrect, trapezoid, or custom. Both are bare symbols in
// every era, while the pad number has always been quoted.
type Pad struct {
	Number string
	Type   string
	Shape  string
	At     coord.Point
	// Angle is the optional third value of the at node, in degrees.
	Angle  sexp.EncodedValue[float64]
	Size   coord.Point
	Drill  sexp.EncodedValue[coord.Coord]
	Layers []sexp.EncodedValue[string]
	Net    sexp.EncodedValue[int]
	// NetName is the net's label carried next to the number inside
	// (net 2 "GND") pad children.
	NetName string

	sections []sexp.Section
}

func parsePad(node *sexp.Node) (*Pad, error) {
	p := &Pad{}

	number, err := sexp.StringAt(node, 1)
	if err != nil {
		return nil, fmt.Errorf("pad number: %w", err)
	}
	p.Number = number

	padType, err := sexp.StringAt(node, 2)
	if err != nil {
		return nil, fmt.Errorf("pad %q type: %w", number, err)
	}
	p.Type = padType

	shape, err := sexp.StringAt(node, 3)
	if err != nil {
		return nil, fmt.Errorf("pad %q shape: %w", number, err)
	}
	p.Shape = shape

	var hasAt, hasSize bool
	for _, child := range node.Values()[3:] {
		if !child.IsList() {
			p.sections = append(p.sections, sexp.RawSection(child))
			continue
		}
		tag := child.Tag()
		switch tag {
		case "at":
			pt, err := sexp.PointAt(child, 1)
			if err != nil {
				return nil, fmt.Errorf("pad %q: %w", number, err)
			}
			p.At, hasAt = pt, true
			if angle, err := sexp.FloatAt(child, 3); err == nil {
				p.Angle.Record(angle, sexp.VariantChildNode)
			}

		case "size":
			pt, err := sexp.PointAt(child, 1)
			if err != nil {
				return nil, fmt.Errorf("pad %q: %w", number, err)
			}
			p.Size, hasSize = pt, true

		case "drill":
			d, err := sexp.MmAt(child, 1)
			if err != nil {
				return nil, fmt.Errorf("pad %q: %w", number, err)
			}
			p.Drill.Record(d, sexp.VariantChildNode)

		case "layers":
			for _, atom := range child.Values() {
				var layer sexp.EncodedValue[string]
				sexp.RecordAtom(&layer, atom)
				p.Layers = append(p.Layers, layer)
			}

		case "net":
			n, err := sexp.IntAt(child, 1)
			if err != nil {
				return nil, fmt.Errorf("pad %q: %w", number, err)
			}
			p.Net.Record(n, sexp.VariantChildNode)
			if name, err := sexp.StringAt(child, 2); err == nil {
				p.NetName = name
			}

		default:
			p.sections = append(p.sections, sexp.RawSection(child))
			continue
		}
		p.sections = append(p.sections, sexp.Modeled(&padField{p, tag}))
	}

	if !hasAt || !hasSize {
		return nil, fmt.Errorf("pad %q missing at or size", number)
	}
	return p, nil
}

// Tree rebuilds the (pad ...) subtree. Parsed pads keep their original
// child order; fresh ones use the canonical order.
func (p *Pad) Tree() *sexp.Node {
	b := sexp.NewBuilder("pad")
	b.AddString(p.Number)
	b.AddSymbol(p.Type)
	b.AddSymbol(p.Shape)

	if p.sections == nil {
		b.AddNode((&padField{p, "at"}).Tree())
		b.AddNode((&padField{p, "size"}).Tree())
		if p.Drill.Present {
			b.AddNode((&padField{p, "drill"}).Tree())
		}
		if len(p.Layers) > 0 {
			b.AddNode((&padField{p, "layers"}).Tree())
		}
		if p.Net.Present {
			b.AddNode((&padField{p, "net"}).Tree())
		}
		return b.Build()
	}
	for _, s := range p.sections {
		b.AddNode(s.Node())
	}
	return b.Build()
}

type padField struct {
	p   *Pad
	tag string
}

func (f *padField) Tree() *sexp.Node {
	b := sexp.NewBuilder(f.tag)
	switch f.tag {
	case "at":
		b.AddMm(f.p.At.X).AddMm(f.p.At.Y)
		if f.p.Angle.Present {
			b.AddNumber(f.p.Angle.Value)
		}
	case "size":
		b.AddMm(f.p.Size.X).AddMm(f.p.Size.Y)
	case "drill":
		b.AddMm(f.p.Drill.Value)
	case "layers":
		for _, layer := range f.p.Layers {
			sexp.AddAtom(b, layer, true)
		}
	case "net":
		b.AddInt(f.p.Net.Value)
		if f.p.NetName != "" {
			b.AddString(f.p.NetName)
		}
	}
	return b.Build()
}

package symbol

import (
	"github.com/issus/kicadgo/pkg/kicad/coord"
	"github.com/issus/kicadgo/pkg/kicad/sexp"
)

// Pin is one symbol pin:
//
//	(pin passive line
//		(at -3.81 0 0)
//		(length 1.27)
//		(name "~" (effects ...))
//		(number "1" (effects ...))
//	)
//
// Electrical is passive, input, output, bidirectional, power_in, and so
// on; Graphic is line, inverted, clock, etc. Both are bare symbols. The
// effects subtrees inside name and number pass through raw.
type Pin struct {
	Electrical string
	Graphic    string
	At         coord.Point
	Angle      sexp.EncodedValue[float64]
	Length     sexp.EncodedValue[coord.Coord]
	Name       string
	Number     string

	sections     []sexp.Section
	nameExtras   []*sexp.Node
	numberExtras []*sexp.Node
}

func parsePin(node *sexp.Node) (*Pin, bool) {
	p := &Pin{}

	electrical, err := sexp.StringAt(node, 1)
	if err != nil {
		return nil, false
	}
	p.Electrical = electrical
	// The graphic style is optional in very old files.
	if graphic, err := sexp.StringAt(node, 2); err == nil {
		p.Graphic = graphic
	}

	skip := 1
	if p.Graphic != "" {
		skip = 2
	}
	for _, child := range node.Values()[skip:] {
		if !child.IsList() {
			p.sections = append(p.sections, sexp.RawSection(child))
			continue
		}
		tag := child.Tag()
		switch tag {
		case "at":
			pt, err := sexp.PointAt(child, 1)
			if err != nil {
				return nil, false
			}
			p.At = pt
			if angle, err := sexp.FloatAt(child, 3); err == nil {
				p.Angle.Record(angle, sexp.VariantChildNode)
			}

		case "length":
			l, err := sexp.MmAt(child, 1)
			if err != nil {
				return nil, false
			}
			p.Length.Record(l, sexp.VariantChildNode)

		case "name":
			text, err := sexp.StringAt(child, 1)
			if err != nil {
				return nil, false
			}
			p.Name = text
			p.nameExtras = child.Values()[1:]

		case "number":
			text, err := sexp.StringAt(child, 1)
			if err != nil {
				return nil, false
			}
			p.Number = text
			p.numberExtras = child.Values()[1:]

		default:
			p.sections = append(p.sections, sexp.RawSection(child))
			continue
		}
		p.sections = append(p.sections, sexp.Modeled(&pinField{p, tag}))
	}
	return p, true
}

// Tree rebuilds the (pin ...) subtree.
func (p *Pin) Tree() *sexp.Node {
	b := sexp.NewBuilder("pin")
	b.AddSymbol(p.Electrical)
	if p.Graphic != "" {
		b.AddSymbol(p.Graphic)
	}
	if p.sections == nil {
		b.AddNode((&pinField{p, "at"}).Tree())
		if p.Length.Present {
			b.AddNode((&pinField{p, "length"}).Tree())
		}
		b.AddNode((&pinField{p, "name"}).Tree())
		b.AddNode((&pinField{p, "number"}).Tree())
		return b.Build()
	}
	for _, s := range p.sections {
		b.AddNode(s.Node())
	}
	return b.Build()
}

type pinField struct {
	p   *Pin
	tag string
}

func (f *pinField) Tree() *sexp.Node {
	b := sexp.NewBuilder(f.tag)
	switch f.tag {
	case "at":
		b.AddMm(f.p.At.X).AddMm(f.p.At.Y)
		if f.p.Angle.Present {
			b.AddNumber(f.p.Angle.Value)
		}
	case "length":
		b.AddMm(f.p.Length.Value)
	case "name":
		b.AddString(f.p.Name)
		for _, extra := range f.p.nameExtras {
			b.AddNode(extra)
		}
	case "number":
		b.AddString(f.p.Number)
		for _, extra := range f.p.numberExtras {
			b.AddNode(extra)
		}
	}
	return b.Build()
}

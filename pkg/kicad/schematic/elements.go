package schematic

import (
	"fmt"

	"github.com/issus/kicadgo/pkg/kicad/coord"
	"github.com/issus/kicadgo/pkg/kicad/sexp"
)

// Wire is a schematic connection: (wire (pts (xy ...) (xy ...)) ...).
// Stroke styling and the uuid pass through raw.
type Wire struct {
	Points []coord.Point

	sections []sexp.Section
}

func parseWire(node *sexp.Node) (*Wire, error) {
	w := &Wire{}
	for _, child := range node.Values() {
		if child.IsList() && child.Tag() == "pts" {
			pts := &wirePts{w: w}
			for _, pc := range child.Values() {
				if pc.IsList() && pc.Tag() == "xy" {
					p, err := sexp.PointAt(pc, 1)
					if err != nil {
						return nil, err
					}
					pts.children = append(pts.children, sexp.Modeled(&wireXY{w, len(w.Points)}))
					w.Points = append(w.Points, p)
					continue
				}
				pts.children = append(pts.children, sexp.RawSection(pc))
			}
			pts.parsed = len(w.Points)
			w.sections = append(w.sections, sexp.Modeled(pts))
			continue
		}
		w.sections = append(w.sections, sexp.RawSection(child))
	}
	if len(w.Points) < 2 {
		return nil, fmt.Errorf("wire needs at least two points")
	}
	return w, nil
}

// Tree rebuilds the (wire ...) subtree.
func (w *Wire) Tree() *sexp.Node {
	b := sexp.NewBuilder("wire")
	if w.sections == nil {
		b.AddNode((&wirePts{w: w}).Tree())
		return b.Build()
	}
	for _, s := range w.sections {
		b.AddNode(s.Node())
	}
	return b.Build()
}

// wirePts rebuilds the (pts ...) child. Each parsed (xy ...) is modeled
// in place, anything else inside pts keeps its original position, and
// points appended to the wire after parsing are emitted at the end.
type wirePts struct {
	w        *Wire
	children []sexp.Section
	parsed   int
}

func (f *wirePts) Tree() *sexp.Node {
	b := sexp.NewBuilder("pts")
	if f.children == nil {
		for _, p := range f.w.Points {
			b.AddChild("xy", func(xy *sexp.Builder) {
				xy.AddMm(p.X).AddMm(p.Y)
			})
		}
		return b.Build()
	}
	for _, s := range f.children {
		b.AddNode(s.Node())
	}
	for _, p := range f.w.Points[min(f.parsed, len(f.w.Points)):] {
		b.AddChild("xy", func(xy *sexp.Builder) {
			xy.AddMm(p.X).AddMm(p.Y)
		})
	}
	return b.Build()
}

// wireXY rebuilds one coordinate pair from the wire's current points,
// so edits made after parsing flow into the output.
type wireXY struct {
	w *Wire
	i int
}

func (f *wireXY) Tree() *sexp.Node {
	if f.i >= len(f.w.Points) {
		return nil
	}
	b := sexp.NewBuilder("xy")
	p := f.w.Points[f.i]
	b.AddMm(p.X).AddMm(p.Y)
	return b.Build()
}

// Junction marks an explicit connection dot: (junction (at ...) ...).
type Junction struct {
	At coord.Point

	sections []sexp.Section
}

func parseJunction(node *sexp.Node) (*Junction, error) {
	j := &Junction{}
	var hasAt bool
	for _, child := range node.Values() {
		if child.IsList() && child.Tag() == "at" {
			p, err := sexp.PointAt(child, 1)
			if err != nil {
				return nil, err
			}
			j.At, hasAt = p, true
			j.sections = append(j.sections, sexp.Modeled(&junctionAt{j}))
			continue
		}
		j.sections = append(j.sections, sexp.RawSection(child))
	}
	if !hasAt {
		return nil, fmt.Errorf("junction missing at")
	}
	return j, nil
}

// Tree rebuilds the (junction ...) subtree.
func (j *Junction) Tree() *sexp.Node {
	b := sexp.NewBuilder("junction")
	if j.sections == nil {
		b.AddNode((&junctionAt{j}).Tree())
		return b.Build()
	}
	for _, s := range j.sections {
		b.AddNode(s.Node())
	}
	return b.Build()
}

type junctionAt struct{ j *Junction }

func (f *junctionAt) Tree() *sexp.Node {
	b := sexp.NewBuilder("at")
	b.AddMm(f.j.At.X).AddMm(f.j.At.Y)
	return b.Build()
}

// NoConnect is the X marker on an intentionally unconnected pin.
type NoConnect struct {
	At coord.Point

	sections []sexp.Section
}

func parseNoConnect(node *sexp.Node) (*NoConnect, error) {
	nc := &NoConnect{}
	var hasAt bool
	for _, child := range node.Values() {
		if child.IsList() && child.Tag() == "at" {
			p, err := sexp.PointAt(child, 1)
			if err != nil {
				return nil, err
			}
			nc.At, hasAt = p, true
			nc.sections = append(nc.sections, sexp.Modeled(&noConnectAt{nc}))
			continue
		}
		nc.sections = append(nc.sections, sexp.RawSection(child))
	}
	if !hasAt {
		return nil, fmt.Errorf("no_connect missing at")
	}
	return nc, nil
}

// Tree rebuilds the (no_connect ...) subtree.
func (nc *NoConnect) Tree() *sexp.Node {
	b := sexp.NewBuilder("no_connect")
	if nc.sections == nil {
		b.AddNode((&noConnectAt{nc}).Tree())
		return b.Build()
	}
	for _, s := range nc.sections {
		b.AddNode(s.Node())
	}
	return b.Build()
}

type noConnectAt struct{ nc *NoConnect }

func (f *noConnectAt) Tree() *sexp.Node {
	b := sexp.NewBuilder("at")
	b.AddMm(f.nc.At.X).AddMm(f.nc.At.Y)
	return b.Build()
}

// Label is a local net label: (label "NET" (at x y angle) ...).
// FieldsAutoplaced has three historical spellings: absent, the
// valueless (fields_autoplaced) of KiCad 7, and (fields_autoplaced yes)
// from KiCad 8 on; whichever was read is reproduced.
type Label struct {
	Text             string
	At               coord.Point
	Angle            sexp.EncodedValue[float64]
	FieldsAutoplaced sexp.EncodedValue[bool]

	sections []sexp.Section
}

func parseLabel(node *sexp.Node) (*Label, error) {
	l := &Label{}

	text, err := sexp.StringAt(node, 1)
	if err != nil {
		return nil, fmt.Errorf("label text: %w", err)
	}
	l.Text = text

	var hasAt bool
	for _, child := range node.Values()[1:] {
		if !child.IsList() {
			l.sections = append(l.sections, sexp.RawSection(child))
			continue
		}
		switch child.Tag() {
		case "at":
			p, err := sexp.PointAt(child, 1)
			if err != nil {
				return nil, fmt.Errorf("label %q: %w", text, err)
			}
			l.At, hasAt = p, true
			if angle, err := sexp.FloatAt(child, 3); err == nil {
				l.Angle.Record(angle, sexp.VariantChildNode)
			}
			l.sections = append(l.sections, sexp.Modeled(&labelAt{l}))

		case "fields_autoplaced":
			sexp.RecordBoolField(&l.FieldsAutoplaced, node, "fields_autoplaced")
			l.sections = append(l.sections, sexp.Modeled(&labelAutoplaced{l}))

		default:
			l.sections = append(l.sections, sexp.RawSection(child))
		}
	}
	if !hasAt {
		return nil, fmt.Errorf("label %q missing at", text)
	}
	return l, nil
}

// Tree rebuilds the (label ...) subtree.
func (l *Label) Tree() *sexp.Node {
	b := sexp.NewBuilder("label")
	b.AddString(l.Text)
	if l.sections == nil {
		b.AddNode((&labelAt{l}).Tree())
		if l.FieldsAutoplaced.Present {
			sexp.AddBoolField(b, l.FieldsAutoplaced, "fields_autoplaced")
		}
		return b.Build()
	}
	for _, s := range l.sections {
		b.AddNode(s.Node())
	}
	return b.Build()
}

type labelAt struct{ l *Label }

func (f *labelAt) Tree() *sexp.Node {
	b := sexp.NewBuilder("at")
	b.AddMm(f.l.At.X).AddMm(f.l.At.Y)
	if f.l.Angle.Present {
		b.AddNumber(f.l.Angle.Value)
	}
	return b.Build()
}

type labelAutoplaced struct{ l *Label }

func (f *labelAutoplaced) Tree() *sexp.Node {
	return sexp.BoolFieldNode(f.l.FieldsAutoplaced, "fields_autoplaced")
}

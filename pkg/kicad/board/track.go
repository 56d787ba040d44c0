package board

import (
	"fmt"

	"github.com/issus/kicadgo/pkg/kicad/coord"
	"github.com/issus/kicadgo/pkg/kicad/sexp"
)

// Track is one copper segment: (segment (start ...) (end ...)
// (width ...) (layer ...) (net ...)). Children the model does not cover,
// like uuid/tstamp or the locked flag, keep their original positions.
type Track struct {
	Start coord.Point
	End   coord.Point
	Width coord.Coord
	Layer sexp.EncodedValue[string]
	Net   int

	sections []sexp.Section
}

func parseTrack(node *sexp.Node) (*Track, error) {
	t := &Track{}
	var hasStart, hasEnd, hasWidth bool

	for _, child := range node.Values() {
		if !child.IsList() {
			t.sections = append(t.sections, sexp.RawSection(child))
			continue
		}
		tag := child.Tag()
		switch tag {
		case "start":
			p, err := sexp.PointAt(child, 1)
			if err != nil {
				return nil, err
			}
			t.Start, hasStart = p, true

		case "end":
			p, err := sexp.PointAt(child, 1)
			if err != nil {
				return nil, err
			}
			t.End, hasEnd = p, true

		case "width":
			w, err := sexp.MmAt(child, 1)
			if err != nil {
				return nil, err
			}
			t.Width, hasWidth = w, true

		case "layer":
			sexp.RecordAtom(&t.Layer, child.Child(1))

		case "net":
			n, err := sexp.IntAt(child, 1)
			if err != nil {
				return nil, err
			}
			t.Net = n

		default:
			t.sections = append(t.sections, sexp.RawSection(child))
			continue
		}
		t.sections = append(t.sections, sexp.Modeled(&trackField{t, tag}))
	}

	if !hasStart || !hasEnd || !hasWidth {
		return nil, fmt.Errorf("segment missing start, end, or width")
	}
	return t, nil
}

// Tree rebuilds the (segment ...) subtree. A track parsed from a file
// keeps its original child order; a fresh one uses the canonical order.
func (t *Track) Tree() *sexp.Node {
	b := sexp.NewBuilder("segment")
	if t.sections == nil {
		for _, tag := range []string{"start", "end", "width", "layer", "net"} {
			b.AddNode((&trackField{t, tag}).Tree())
		}
		return b.Build()
	}
	for _, s := range t.sections {
		b.AddNode(s.Node())
	}
	return b.Build()
}

// trackField rebuilds a single modeled child of a segment from the
// track's current field values, so edits made after parsing flow into
// the output while untouched fields reproduce their source encoding.
type trackField struct {
	t   *Track
	tag string
}

func (f *trackField) Tree() *sexp.Node {
	b := sexp.NewBuilder(f.tag)
	switch f.tag {
	case "start":
		b.AddMm(f.t.Start.X).AddMm(f.t.Start.Y)
	case "end":
		b.AddMm(f.t.End.X).AddMm(f.t.End.Y)
	case "width":
		b.AddMm(f.t.Width)
	case "layer":
		sexp.AddAtom(b, f.t.Layer, true)
	case "net":
		b.AddInt(f.t.Net)
	}
	return b.Build()
}

// Via is a plated through-hole connecting layers:
// (via (at ...) (size ...) (drill ...) (layers ...) (net ...)).
type Via struct {
	At     coord.Point
	Size   coord.Coord
	Drill  coord.Coord
	Layers []sexp.EncodedValue[string]
	Net    int

	sections []sexp.Section
}

func parseVia(node *sexp.Node) (*Via, error) {
	v := &Via{}
	var hasAt, hasSize bool

	for _, child := range node.Values() {
		if !child.IsList() {
			v.sections = append(v.sections, sexp.RawSection(child))
			continue
		}
		tag := child.Tag()
		switch tag {
		case "at":
			p, err := sexp.PointAt(child, 1)
			if err != nil {
				return nil, err
			}
			v.At, hasAt = p, true

		case "size":
			s, err := sexp.MmAt(child, 1)
			if err != nil {
				return nil, err
			}
			v.Size, hasSize = s, true

		case "drill":
			d, err := sexp.MmAt(child, 1)
			if err != nil {
				return nil, err
			}
			v.Drill = d

		case "layers":
			for _, atom := range child.Values() {
				var layer sexp.EncodedValue[string]
				sexp.RecordAtom(&layer, atom)
				v.Layers = append(v.Layers, layer)
			}

		case "net":
			n, err := sexp.IntAt(child, 1)
			if err != nil {
				return nil, err
			}
			v.Net = n

		default:
			v.sections = append(v.sections, sexp.RawSection(child))
			continue
		}
		v.sections = append(v.sections, sexp.Modeled(&viaField{v, tag}))
	}

	if !hasAt || !hasSize {
		return nil, fmt.Errorf("via missing at or size")
	}
	return v, nil
}

// Tree rebuilds the (via ...) subtree.
func (v *Via) Tree() *sexp.Node {
	b := sexp.NewBuilder("via")
	if v.sections == nil {
		for _, tag := range []string{"at", "size", "drill", "layers", "net"} {
			b.AddNode((&viaField{v, tag}).Tree())
		}
		return b.Build()
	}
	for _, s := range v.sections {
		b.AddNode(s.Node())
	}
	return b.Build()
}

type viaField struct {
	v   *Via
	tag string
}

func (f *viaField) Tree() *sexp.Node {
	b := sexp.NewBuilder(f.tag)
	switch f.tag {
	case "at":
		b.AddMm(f.v.At.X).AddMm(f.v.At.Y)
	case "size":
		b.AddMm(f.v.Size)
	case "drill":
		b.AddMm(f.v.Drill)
	case "layers":
		for _, layer := range f.v.Layers {
			sexp.AddAtom(b, layer, true)
		}
	case "net":
		b.AddInt(f.v.Net)
	}
	return b.Build()
}

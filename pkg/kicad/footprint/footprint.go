// Package footprint reads and writes KiCad footprint files
// (.kicad_mod). Pads are modeled; everything else a footprint can
// contain (graphics, 3D models, fabrication attributes) rides through a
// load/save cycle verbatim. The legacy "module" root tag from KiCad 5
// libraries is accepted and preserved.
package footprint

import (
	"io"
	"os"

	"github.com/issus/kicadgo/pkg/kicad/coord"
	"github.com/issus/kicadgo/pkg/kicad/document"
	"github.com/issus/kicadgo/pkg/kicad/sexp"
)

// Footprint is a parsed .kicad_mod file.
type Footprint struct {
	// Name is the library link, e.g. "Resistor_SMD:R_0603_1608Metric".
	Name   sexp.EncodedValue[string]
	Header document.Header
	Layer  sexp.EncodedValue[string]
	Descr  sexp.EncodedValue[string]
	Tags   sexp.EncodedValue[string]
	// Locked has been spelled both as a bare `locked` flag and as a
	// `(locked yes)` child across format eras.
	Locked sexp.EncodedValue[bool]
	Pads   []*Pad

	rootTag     string
	body        []sexp.Section
	Diagnostics sexp.Diagnostics
}

// New creates an empty in-memory footprint with the newest encodings.
func New(name string) *Footprint {
	fp := &Footprint{rootTag: "footprint"}
	fp.Name.Set(name)
	fp.Header.Generator.Set("kicadgo")
	return fp
}

// ParseFile reads and parses a footprint file from disk.
func ParseFile(path string) (*Footprint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the whole stream and parses it; the error covers I/O only.
func Parse(r io.Reader) (*Footprint, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data)), nil
}

// ParseString parses footprint text held in memory.
func ParseString(text string) *Footprint {
	root, diags := sexp.ParseString(text)
	fp := &Footprint{rootTag: "footprint", Diagnostics: diags}
	if root == nil {
		return fp
	}

	tag := root.Tag()
	if tag != "footprint" && tag != "module" {
		fp.Diagnostics.Add(sexp.SeverityError, "not a footprint file: root tag is %q", tag)
		return fp
	}
	fp.rootTag = tag

	children := root.Values()
	if len(children) > 0 && children[0].IsAtom() {
		sexp.RecordAtom(&fp.Name, children[0])
		children = children[1:]
	}

	// The bare locked flag sits between the name and the first child
	// list in KiCad 6 era files.
	sexp.RecordBoolField(&fp.Locked, root, "locked")

	for _, child := range children {
		if child.IsAtom() && child.Kind() == sexp.KindSymbol && child.Text() == "locked" {
			fp.body = append(fp.body, sexp.Modeled(&lockedField{fp}))
			continue
		}
		if section, ok := fp.Header.Consume(child); ok {
			fp.body = append(fp.body, section)
			continue
		}
		fp.body = append(fp.body, fp.consume(child))
	}
	return fp
}

func (fp *Footprint) consume(child *sexp.Node) sexp.Section {
	if !child.IsList() {
		return sexp.RawSection(child)
	}
	switch child.Tag() {
	case "locked":
		return sexp.Modeled(&lockedField{fp})

	case "layer":
		sexp.RecordAtom(&fp.Layer, child.Child(1))
		return sexp.Modeled(&atomField{&fp.Layer, "layer"})

	case "descr":
		sexp.RecordAtom(&fp.Descr, child.Child(1))
		return sexp.Modeled(&atomField{&fp.Descr, "descr"})

	case "tags":
		sexp.RecordAtom(&fp.Tags, child.Child(1))
		return sexp.Modeled(&atomField{&fp.Tags, "tags"})

	case "pad":
		p, err := parsePad(child)
		if err != nil {
			fp.Diagnostics.Add(sexp.SeverityWarning, "skipping malformed pad: %v", err)
			return sexp.RawSection(child)
		}
		fp.Pads = append(fp.Pads, p)
		return sexp.Modeled(p)
	}
	return sexp.RawSection(child)
}

// HasErrors reports whether parsing produced any Error diagnostic.
func (fp *Footprint) HasErrors() bool {
	return fp.Diagnostics.HasErrors()
}

// AddPad appends a freshly created pad to the model and the body.
func (fp *Footprint) AddPad(p *Pad) {
	fp.Pads = append(fp.Pads, p)
	fp.body = append(fp.body, sexp.Modeled(p))
}

// FindPad returns the first pad with the given number.
func (fp *Footprint) FindPad(number string) (*Pad, bool) {
	for _, p := range fp.Pads {
		if p.Number == number {
			return p, true
		}
	}
	return nil, false
}

// BoundingBox returns the extent of all pads around the footprint
// origin. Pad rotation is ignored; for bounding purposes the larger
// half-dimension is used on both axes, matching how coarse placement
// tools treat rotated pads.
func (fp *Footprint) BoundingBox() coord.BoundingBox {
	box := coord.NewBoundingBox()
	for _, p := range fp.Pads {
		half := coord.Max(p.Size.X, p.Size.Y).Half()
		box.Expand(coord.Point{X: p.At.X - half, Y: p.At.Y - half})
		box.Expand(coord.Point{X: p.At.X + half, Y: p.At.Y + half})
	}
	return box
}

// Tree rebuilds the footprint's S-expression tree.
func (fp *Footprint) Tree() *sexp.Node {
	b := sexp.NewBuilder(fp.rootTag)
	sexp.AddAtom(b, fp.Name, true)
	for _, s := range fp.Header.FreshSections() {
		b.AddNode(s.Node())
	}
	for _, s := range fp.body {
		b.AddNode(s.Node())
	}
	return b.Build()
}

// Save writes the footprint in the newest canonical style.
func (fp *Footprint) Save(w io.Writer) error {
	return fp.SaveStyled(w, sexp.DefaultStyle)
}

// SaveStyled writes the footprint with an explicit formatting style.
func (fp *Footprint) SaveStyled(w io.Writer, style sexp.Style) error {
	return sexp.Write(w, fp.Tree(), style)
}

// atomField rebuilds a single-atom child like (layer "F.Cu") from the
// footprint's current value, preserving the quoted/bare encoding it was
// read in.
type atomField struct {
	value *sexp.EncodedValue[string]
	tag   string
}

func (f *atomField) Tree() *sexp.Node {
	b := sexp.NewBuilder(f.tag)
	sexp.AddAtom(b, *f.value, true)
	return b.Build()
}

// lockedField rebuilds the locked marker in whichever spelling the
// source used.
type lockedField struct{ fp *Footprint }

func (f *lockedField) Tree() *sexp.Node {
	return sexp.BoolFieldNode(f.fp.Locked, "locked")
}

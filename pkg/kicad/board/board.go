// Package board reads and writes KiCad board files (.kicad_pcb).
//
// The model is deliberately thin: the net table, track segments, and
// vias are typed, because they are what downstream tooling inspects and
// edits. Every other section travels through a load/save cycle as a raw
// subtree at its original position, so a board saved without edits
// reproduces its input and forward-compatible sections from newer KiCad
// releases are never dropped.
package board

import (
	"io"
	"os"

	"github.com/issus/kicadgo/pkg/kicad/coord"
	"github.com/issus/kicadgo/pkg/kicad/document"
	"github.com/issus/kicadgo/pkg/kicad/sexp"
)

// Board is a parsed .kicad_pcb file.
type Board struct {
	Header  document.Header
	General *General
	Nets    []*Net
	Tracks  []*Track
	Vias    []*Via

	rootTag     string
	body        []sexp.Section
	Diagnostics sexp.Diagnostics
}

// New creates an empty in-memory board with the newest header encoding.
func New() *Board {
	b := &Board{rootTag: "kicad_pcb"}
	b.Header.Generator.Set("kicadgo")
	return b
}

// ParseFile reads and parses a board file from disk.
func ParseFile(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the whole stream and parses it. The error covers I/O
// only; malformed content is reported through Board.Diagnostics.
func Parse(r io.Reader) (*Board, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data)), nil
}

// ParseString parses board text held in memory.
func ParseString(text string) *Board {
	root, diags := sexp.ParseString(text)
	b := &Board{rootTag: "kicad_pcb", Diagnostics: diags}
	if root == nil {
		return b
	}

	if tag := root.Tag(); tag != "kicad_pcb" {
		b.Diagnostics.Add(sexp.SeverityError, "not a board file: root tag is %q, expected kicad_pcb", tag)
		return b
	}

	for _, child := range root.Values() {
		if section, ok := b.Header.Consume(child); ok {
			b.body = append(b.body, section)
			continue
		}
		b.body = append(b.body, b.consume(child))
	}
	return b
}

// consume maps one top-level child into the typed model, falling back
// to raw passthrough for anything unrecognized or malformed.
func (b *Board) consume(child *sexp.Node) sexp.Section {
	if !child.IsList() {
		return sexp.RawSection(child)
	}
	switch child.Tag() {
	case "general":
		g := parseGeneral(child)
		b.General = g
		return sexp.Modeled(g)

	case "net":
		n, err := parseNet(child)
		if err != nil {
			b.Diagnostics.Add(sexp.SeverityWarning, "skipping malformed net: %v", err)
			return sexp.RawSection(child)
		}
		b.Nets = append(b.Nets, n)
		return sexp.Modeled(n)

	case "segment":
		t, err := parseTrack(child)
		if err != nil {
			b.Diagnostics.Add(sexp.SeverityWarning, "skipping malformed segment: %v", err)
			return sexp.RawSection(child)
		}
		b.Tracks = append(b.Tracks, t)
		return sexp.Modeled(t)

	case "via":
		v, err := parseVia(child)
		if err != nil {
			b.Diagnostics.Add(sexp.SeverityWarning, "skipping malformed via: %v", err)
			return sexp.RawSection(child)
		}
		b.Vias = append(b.Vias, v)
		return sexp.Modeled(v)
	}
	return sexp.RawSection(child)
}

// HasErrors reports whether parsing produced any Error diagnostic.
func (b *Board) HasErrors() bool {
	return b.Diagnostics.HasErrors()
}

// NetName resolves a net number against the board's net table.
func (b *Board) NetName(id int) (string, bool) {
	for _, n := range b.Nets {
		if n.ID == id {
			return n.Name, true
		}
	}
	return "", false
}

// AddTrack appends a freshly created track to both the model and the
// document body, so it serializes after the existing content.
func (b *Board) AddTrack(t *Track) {
	b.Tracks = append(b.Tracks, t)
	b.body = append(b.body, sexp.Modeled(t))
}

// AddVia appends a freshly created via to the model and the body.
func (b *Board) AddVia(v *Via) {
	b.Vias = append(b.Vias, v)
	b.body = append(b.body, sexp.Modeled(v))
}

// AddNet appends a net table entry to the model and the body.
func (b *Board) AddNet(n *Net) {
	b.Nets = append(b.Nets, n)
	b.body = append(b.body, sexp.Modeled(n))
}

// Tree rebuilds the board's S-expression tree from the typed model,
// reinserting every unmodeled subtree at its original position.
func (b *Board) Tree() *sexp.Node {
	bld := sexp.NewBuilder(b.rootTag)
	for _, s := range b.Header.FreshSections() {
		bld.AddNode(s.Node())
	}
	for _, s := range b.body {
		bld.AddNode(s.Node())
	}
	return bld.Build()
}

// Save writes the board in the newest canonical style.
func (b *Board) Save(w io.Writer) error {
	return b.SaveStyled(w, sexp.DefaultStyle)
}

// SaveStyled writes the board with an explicit formatting style.
func (b *Board) SaveStyled(w io.Writer, style sexp.Style) error {
	return sexp.Write(w, b.Tree(), style)
}

// BoundingBox returns the extent of all tracks and vias, expanded by
// their copper widths.
func (b *Board) BoundingBox() coord.BoundingBox {
	box := coord.NewBoundingBox()
	for _, t := range b.Tracks {
		half := t.Width.Half()
		for _, p := range []coord.Point{t.Start, t.End} {
			box.Expand(coord.Point{X: p.X - half, Y: p.Y - half})
			box.Expand(coord.Point{X: p.X + half, Y: p.Y + half})
		}
	}
	for _, v := range b.Vias {
		half := v.Size.Half()
		box.Expand(coord.Point{X: v.At.X - half, Y: v.At.Y - half})
		box.Expand(coord.Point{X: v.At.X + half, Y: v.At.Y + half})
	}
	return box
}

// Package schematic reads and writes KiCad schematic files
// (.kicad_sch). Wires, junctions, no-connects, and net labels are
// modeled; symbol instances, sheet hierarchy, and title block content
// pass through a load/save cycle verbatim at their original positions.
package schematic

import (
	"io"
	"os"

	"github.com/issus/kicadgo/pkg/kicad/coord"
	"github.com/issus/kicadgo/pkg/kicad/document"
	"github.com/issus/kicadgo/pkg/kicad/sexp"
)

// Schematic is a parsed .kicad_sch file.
type Schematic struct {
	Header     document.Header
	Wires      []*Wire
	Junctions  []*Junction
	NoConnects []*NoConnect
	Labels     []*Label

	body        []sexp.Section
	Diagnostics sexp.Diagnostics
}

// ParseFile reads and parses a schematic file from disk.
func ParseFile(path string) (*Schematic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the whole stream and parses it; the error covers I/O only.
func Parse(r io.Reader) (*Schematic, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data)), nil
}

// ParseString parses schematic text held in memory.
func ParseString(text string) *Schematic {
	root, diags := sexp.ParseString(text)
	s := &Schematic{Diagnostics: diags}
	if root == nil {
		return s
	}

	if tag := root.Tag(); tag != "kicad_sch" {
		s.Diagnostics.Add(sexp.SeverityError, "not a schematic file: root tag is %q, expected kicad_sch", tag)
		return s
	}

	for _, child := range root.Values() {
		if section, ok := s.Header.Consume(child); ok {
			s.body = append(s.body, section)
			continue
		}
		s.body = append(s.body, s.consume(child))
	}
	return s
}

func (s *Schematic) consume(child *sexp.Node) sexp.Section {
	if !child.IsList() {
		return sexp.RawSection(child)
	}
	switch child.Tag() {
	case "wire":
		w, err := parseWire(child)
		if err != nil {
			s.Diagnostics.Add(sexp.SeverityWarning, "skipping malformed wire: %v", err)
			return sexp.RawSection(child)
		}
		s.Wires = append(s.Wires, w)
		return sexp.Modeled(w)

	case "junction":
		j, err := parseJunction(child)
		if err != nil {
			s.Diagnostics.Add(sexp.SeverityWarning, "skipping malformed junction: %v", err)
			return sexp.RawSection(child)
		}
		s.Junctions = append(s.Junctions, j)
		return sexp.Modeled(j)

	case "no_connect":
		nc, err := parseNoConnect(child)
		if err != nil {
			s.Diagnostics.Add(sexp.SeverityWarning, "skipping malformed no_connect: %v", err)
			return sexp.RawSection(child)
		}
		s.NoConnects = append(s.NoConnects, nc)
		return sexp.Modeled(nc)

	case "label":
		l, err := parseLabel(child)
		if err != nil {
			s.Diagnostics.Add(sexp.SeverityWarning, "skipping malformed label: %v", err)
			return sexp.RawSection(child)
		}
		s.Labels = append(s.Labels, l)
		return sexp.Modeled(l)
	}
	return sexp.RawSection(child)
}

// HasErrors reports whether parsing produced any Error diagnostic.
func (s *Schematic) HasErrors() bool {
	return s.Diagnostics.HasErrors()
}

// AddWire appends a freshly created wire to the model and the body.
func (s *Schematic) AddWire(w *Wire) {
	s.Wires = append(s.Wires, w)
	s.body = append(s.body, sexp.Modeled(w))
}

// AddJunction appends a junction to the model and the body.
func (s *Schematic) AddJunction(j *Junction) {
	s.Junctions = append(s.Junctions, j)
	s.body = append(s.body, sexp.Modeled(j))
}

// AddLabel appends a net label to the model and the body.
func (s *Schematic) AddLabel(l *Label) {
	s.Labels = append(s.Labels, l)
	s.body = append(s.body, sexp.Modeled(l))
}

// LabelsAt returns every label anchored at the given position.
func (s *Schematic) LabelsAt(p coord.Point) []*Label {
	var out []*Label
	for _, l := range s.Labels {
		if l.At == p {
			out = append(out, l)
		}
	}
	return out
}

// BoundingBox returns the extent of all modeled wires and junctions.
func (s *Schematic) BoundingBox() coord.BoundingBox {
	box := coord.NewBoundingBox()
	for _, w := range s.Wires {
		for _, p := range w.Points {
			box.Expand(p)
		}
	}
	for _, j := range s.Junctions {
		box.Expand(j.At)
	}
	return box
}

// Tree rebuilds the schematic's S-expression tree.
func (s *Schematic) Tree() *sexp.Node {
	b := sexp.NewBuilder("kicad_sch")
	for _, sec := range s.Header.FreshSections() {
		b.AddNode(sec.Node())
	}
	for _, sec := range s.body {
		b.AddNode(sec.Node())
	}
	return b.Build()
}

// Save writes the schematic in the newest canonical style.
func (s *Schematic) Save(w io.Writer) error {
	return s.SaveStyled(w, sexp.DefaultStyle)
}

// SaveStyled writes the schematic with an explicit formatting style.
func (s *Schematic) SaveStyled(w io.Writer, style sexp.Style) error {
	return sexp.Write(w, s.Tree(), style)
}

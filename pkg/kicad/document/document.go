// Package document provides generic load/save over the four KiCad file
// kinds. All four share one grammar and differ only in their top-level
// tag and schema, so kind detection, the version/generator header, and
// the raw-passthrough body machinery live here; the per-kind packages
// (board, schematic, footprint, symbol) layer typed models on top.
package document

import (
	"io"
	"os"

	"github.com/issus/kicadgo/pkg/kicad/sexp"
)

// Kind identifies the document flavor by its root tag.
type Kind int

const (
	KindUnknown Kind = iota
	KindBoard
	KindSchematic
	KindFootprint
	KindSymbolLibrary
)

func (k Kind) String() string {
	switch k {
	case KindBoard:
		return "board"
	case KindSchematic:
		return "schematic"
	case KindFootprint:
		return "footprint"
	case KindSymbolLibrary:
		return "symbol library"
	default:
		return "unknown"
	}
}

// DetectKind maps a root tag to a document kind. The legacy "module"
// tag is the KiCad 5 spelling of a footprint.
func DetectKind(tag string) Kind {
	switch tag {
	case "kicad_pcb":
		return KindBoard
	case "kicad_sch":
		return KindSchematic
	case "footprint", "module":
		return KindFootprint
	case "kicad_symbol_lib":
		return KindSymbolLibrary
	default:
		return KindUnknown
	}
}

// Document is a loaded KiCad file with its header modeled and every
// other top-level child preserved verbatim, in order. A single Document
// is not safe for concurrent mutation; distinct Documents are fully
// independent.
type Document struct {
	Kind        Kind
	RootTag     string
	Header      Header
	Body        []sexp.Section
	Diagnostics sexp.Diagnostics
}

// Load reads the entire stream, then parses it. The returned error is
// only ever an I/O failure; malformed content is reported through
// Diagnostics on the returned document instead.
func Load(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return LoadString(string(data)), nil
}

// LoadFile opens and loads a document from disk.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// LoadString parses a document held in memory.
func LoadString(text string) *Document {
	root, diags := sexp.ParseString(text)

	doc := &Document{Diagnostics: diags}
	if root == nil {
		return doc
	}

	doc.RootTag = root.Tag()
	doc.Kind = DetectKind(doc.RootTag)

	for _, child := range root.Values() {
		if section, ok := doc.Header.Consume(child); ok {
			doc.Body = append(doc.Body, section)
			continue
		}
		doc.Body = append(doc.Body, sexp.RawSection(child))
	}
	return doc
}

// HasErrors reports whether loading produced any Error diagnostic. The
// document is still best-effort usable when it did.
func (d *Document) HasErrors() bool {
	return d.Diagnostics.HasErrors()
}

// Tree rebuilds the document's S-expression tree: header fields are
// re-derived from the model (consulting their recorded encodings) and
// every unmodeled child returns at its original position.
func (d *Document) Tree() *sexp.Node {
	tag := d.RootTag
	if tag == "" {
		tag = d.Kind.canonicalTag()
	}
	b := sexp.NewBuilder(tag)
	for _, s := range d.Header.FreshSections() {
		b.AddNode(s.Node())
	}
	for _, s := range d.Body {
		b.AddNode(s.Node())
	}
	return b.Build()
}

// Save writes the document in the newest canonical style.
func (d *Document) Save(w io.Writer) error {
	return d.SaveStyled(w, sexp.DefaultStyle)
}

// SaveStyled writes the document with an explicit formatting style.
func (d *Document) SaveStyled(w io.Writer, style sexp.Style) error {
	return sexp.Write(w, d.Tree(), style)
}

func (k Kind) canonicalTag() string {
	switch k {
	case KindBoard:
		return "kicad_pcb"
	case KindSchematic:
		return "kicad_sch"
	case KindFootprint:
		return "footprint"
	case KindSymbolLibrary:
		return "kicad_symbol_lib"
	default:
		return "kicad_pcb"
	}
}

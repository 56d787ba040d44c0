// Package symbol reads and writes KiCad symbol library files
// (.kicad_sym). Symbols, their properties, and their pins are modeled;
// graphic bodies (rectangles, polylines, arcs) and text effects pass
// through a load/save cycle verbatim.
package symbol

import (
	"io"
	"os"

	"github.com/issus/kicadgo/pkg/kicad/document"
	"github.com/issus/kicadgo/pkg/kicad/sexp"
)

// Library is a parsed .kicad_sym file.
type Library struct {
	Header  document.Header
	Symbols []*Symbol

	body        []sexp.Section
	Diagnostics sexp.Diagnostics
}

// ParseFile reads and parses a symbol library from disk.
func ParseFile(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads the whole stream and parses it; the error covers I/O only.
func Parse(r io.Reader) (*Library, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(data)), nil
}

// ParseString parses symbol library text held in memory.
func ParseString(text string) *Library {
	root, diags := sexp.ParseString(text)
	lib := &Library{Diagnostics: diags}
	if root == nil {
		return lib
	}

	if tag := root.Tag(); tag != "kicad_symbol_lib" {
		lib.Diagnostics.Add(sexp.SeverityError, "not a symbol library: root tag is %q, expected kicad_symbol_lib", tag)
		return lib
	}

	for _, child := range root.Values() {
		if section, ok := lib.Header.Consume(child); ok {
			lib.body = append(lib.body, section)
			continue
		}
		if child.IsList() && child.Tag() == "symbol" {
			sym := parseSymbol(child, &lib.Diagnostics)
			lib.Symbols = append(lib.Symbols, sym)
			lib.body = append(lib.body, sexp.Modeled(sym))
			continue
		}
		lib.body = append(lib.body, sexp.RawSection(child))
	}
	return lib
}

// HasErrors reports whether parsing produced any Error diagnostic.
func (lib *Library) HasErrors() bool {
	return lib.Diagnostics.HasErrors()
}

// Find returns the symbol with the given name.
func (lib *Library) Find(name string) (*Symbol, bool) {
	for _, s := range lib.Symbols {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// AddSymbol appends a freshly created symbol to the model and the body.
func (lib *Library) AddSymbol(s *Symbol) {
	lib.Symbols = append(lib.Symbols, s)
	lib.body = append(lib.body, sexp.Modeled(s))
}

// Tree rebuilds the library's S-expression tree.
func (lib *Library) Tree() *sexp.Node {
	b := sexp.NewBuilder("kicad_symbol_lib")
	for _, s := range lib.Header.FreshSections() {
		b.AddNode(s.Node())
	}
	for _, s := range lib.body {
		b.AddNode(s.Node())
	}
	return b.Build()
}

// Save writes the library in the newest canonical style.
func (lib *Library) Save(w io.Writer) error {
	return lib.SaveStyled(w, sexp.DefaultStyle)
}

// SaveStyled writes the library with an explicit formatting style.
func (lib *Library) SaveStyled(w io.Writer, style sexp.Style) error {
	return sexp.Write(w, lib.Tree(), style)
}

package document

import (
	"github.com/issus/kicadgo/pkg/kicad/sexp"
)

// Header models the version/generator preamble every KiCad file starts
// with. The generator identity alone has gone through three encodings:
//
//	(host pcbnew "(5.1.6)")        KiCad 5 and early 6
//	(generator pcbnew)             KiCad 6/7, bare symbol
//	(generator "pcbnew")           KiCad 8+, quoted, plus
//	(generator_version "8.0")
//
// Each field records the spelling it was read in and reproduces it on
// write; fields set fresh in memory use the newest form.
type Header struct {
	Version          sexp.EncodedValue[int]
	Generator        sexp.EncodedValue[string]
	GeneratorVersion sexp.EncodedValue[string]

	// HostInfo is the trailing version string of the legacy host form,
	// e.g. `(6.0.10)`. Preserved verbatim when Generator.Token is
	// "host".
	HostInfo string

	seenVersion          bool
	seenGenerator        bool
	seenGeneratorVersion bool
}

// Consume records child into the header when it is one of the header
// nodes, returning a modeled section bound to this header so the field
// keeps its original position in the document body. A header tag whose
// value cannot be recorded is declined, so the caller carries the node
// through as a raw section instead of rewriting it.
func (h *Header) Consume(child *sexp.Node) (sexp.Section, bool) {
	if !child.IsList() {
		return sexp.Section{}, false
	}
	switch child.Tag() {
	case "version":
		v, err := sexp.IntAt(child, 1)
		if err != nil {
			return sexp.Section{}, false
		}
		h.Version.Record(v, sexp.VariantChildNode)
		h.seenVersion = true
		return sexp.Modeled(&versionSection{h}), true

	case "generator":
		name := child.Child(1)
		if name == nil || name.IsList() {
			return sexp.Section{}, false
		}
		sexp.RecordAtom(&h.Generator, name)
		h.Generator.Token = "generator"
		h.seenGenerator = true
		return sexp.Modeled(&generatorSection{h}), true

	case "host":
		name := child.Child(1)
		if name == nil || name.IsList() {
			return sexp.Section{}, false
		}
		sexp.RecordAtom(&h.Generator, name)
		h.Generator.Token = "host"
		if info := child.Child(2); info != nil && info.IsAtom() {
			h.HostInfo = info.Text()
		}
		h.seenGenerator = true
		return sexp.Modeled(&generatorSection{h}), true

	case "generator_version":
		v := child.Child(1)
		if v == nil || v.IsList() {
			return sexp.Section{}, false
		}
		sexp.RecordAtom(&h.GeneratorVersion, v)
		h.seenGeneratorVersion = true
		return sexp.Modeled(&generatorVersionSection{h}), true
	}
	return sexp.Section{}, false
}

// FreshSections returns sections for header fields that were set in
// memory but never appeared in the source, in canonical order. They are
// emitted right after the root tag.
func (h *Header) FreshSections() []sexp.Section {
	var out []sexp.Section
	if h.Version.Present && !h.seenVersion {
		out = append(out, sexp.Modeled(&versionSection{h}))
	}
	if h.Generator.Present && !h.seenGenerator {
		out = append(out, sexp.Modeled(&generatorSection{h}))
	}
	if h.GeneratorVersion.Present && !h.seenGeneratorVersion {
		out = append(out, sexp.Modeled(&generatorVersionSection{h}))
	}
	return out
}

type versionSection struct{ h *Header }

func (s *versionSection) Tree() *sexp.Node {
	b := sexp.NewBuilder("version")
	b.AddInt(s.h.Version.Value)
	return b.Build()
}

type generatorSection struct{ h *Header }

func (s *generatorSection) Tree() *sexp.Node {
	if s.h.Generator.TokenOr("generator") == "host" {
		b := sexp.NewBuilder("host")
		sexp.AddAtom(b, s.h.Generator, false)
		b.AddString(s.h.HostInfo)
		return b.Build()
	}
	b := sexp.NewBuilder("generator")
	sexp.AddAtom(b, s.h.Generator, true)
	return b.Build()
}

type generatorVersionSection struct{ h *Header }

func (s *generatorVersionSection) Tree() *sexp.Node {
	b := sexp.NewBuilder("generator_version")
	sexp.AddAtom(b, s.h.GeneratorVersion, true)
	return b.Build()
}

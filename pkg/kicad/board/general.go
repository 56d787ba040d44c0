package board

import (
	"github.com/issus/kicadgo/pkg/kicad/coord"
	"github.com/issus/kicadgo/pkg/kicad/sexp"
)

// General models the (general ...) section. Only the board thickness is
// typed; older files carried drawing/track/zone counts here and newer
// ones the legacy_teardrops flag, all of which pass through raw.
type General struct {
	Thickness sexp.EncodedValue[coord.Coord]

	sections []sexp.Section
}

func parseGeneral(node *sexp.Node) *General {
	g := &General{}
	for _, child := range node.Values() {
		if child.IsList() && child.Tag() == "thickness" {
			if mm, err := sexp.MmAt(child, 1); err == nil {
				g.Thickness.Record(mm, sexp.VariantChildNode)
				g.sections = append(g.sections, sexp.Modeled(&thicknessField{g}))
				continue
			}
		}
		g.sections = append(g.sections, sexp.RawSection(child))
	}
	return g
}

// Tree rebuilds the (general ...) subtree.
func (g *General) Tree() *sexp.Node {
	b := sexp.NewBuilder("general")
	if g.sections == nil {
		if g.Thickness.Present {
			b.AddChild("thickness", func(c *sexp.Builder) {
				c.AddMm(g.Thickness.Value)
			})
		}
		return b.Build()
	}
	for _, s := range g.sections {
		b.AddNode(s.Node())
	}
	return b.Build()
}

type thicknessField struct{ g *General }

func (f *thicknessField) Tree() *sexp.Node {
	b := sexp.NewBuilder("thickness")
	b.AddMm(f.g.Thickness.Value)
	return b.Build()
}

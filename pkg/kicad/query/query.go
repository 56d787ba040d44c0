// Package query implements a small path language for extracting
// subtrees from parsed KiCad documents, used by the kcad CLI:
//
//	footprint/pad          every pad list under every footprint child
//	segment[0]/start       the start node of the first segment
//	*/layer                the layer node of every child
//
// A query is a slash-separated chain of steps. Each step names a child
// list tag (or * for any tag) with an optional zero-based [index] that
// picks one match among its siblings.
package query

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/issus/kicadgo/pkg/kicad/sexp"
)

var queryLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `[ \t]+`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Tag", Pattern: `[A-Za-z_][A-Za-z0-9_]*|\*`},
	{Name: "Slash", Pattern: `/`},
	{Name: "LBracket", Pattern: `\[`},
	{Name: "RBracket", Pattern: `\]`},
})

type queryAST struct {
	Steps []*stepAST `parser:"@@ ( Slash @@ )*"`
}

type stepAST struct {
	Tag   string `parser:"@Tag"`
	Index *int   `parser:"( LBracket @Int RBracket )?"`
}

var queryParser = participle.MustBuild[queryAST](
	participle.Lexer(queryLexer),
	participle.Elide("Whitespace"),
)

// Query is a compiled path expression.
type Query struct {
	steps []*stepAST
	src   string
}

// Compile parses a path expression. Errors describe the position of the
// offending token.
func Compile(src string) (*Query, error) {
	ast, err := queryParser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("bad query %q: %w", src, err)
	}
	return &Query{steps: ast.Steps, src: src}, nil
}

// String returns the source expression.
func (q *Query) String() string {
	return q.src
}

// Select walks root and returns every node the path reaches, in
// document order. The root itself is the anonymous starting point: the
// first step matches its children.
func (q *Query) Select(root *sexp.Node) []*sexp.Node {
	if root == nil {
		return nil
	}
	current := []*sexp.Node{root}
	for _, step := range q.steps {
		var next []*sexp.Node
		for _, n := range current {
			next = append(next, matchStep(n, step)...)
		}
		current = next
		if len(current) == 0 {
			break
		}
	}
	return current
}

func matchStep(n *sexp.Node, step *stepAST) []*sexp.Node {
	var matched []*sexp.Node
	for _, c := range n.Values() {
		if !c.IsList() {
			continue
		}
		if step.Tag == "*" || c.Tag() == step.Tag {
			matched = append(matched, c)
		}
	}
	if step.Index != nil {
		i := *step.Index
		if i < 0 || i >= len(matched) {
			return nil
		}
		return matched[i : i+1]
	}
	return matched
}

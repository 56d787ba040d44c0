package query

import (
	"testing"

	"github.com/issus/kicadgo/pkg/kicad/sexp"
)

const sampleBoard = `(kicad_pcb
	(version 20240108)
	(net 0 "")
	(net 1 "GND")
	(segment (start 100 50) (end 105 50) (width 0.25) (layer "F.Cu") (net 1))
	(segment (start 105 50) (end 105 60) (width 0.25) (layer "B.Cu") (net 1))
	(via (at 105 50) (size 0.8) (layers "F.Cu" "B.Cu"))
)`

func mustCompile(t *testing.T, src string) *Query {
	t.Helper()
	q, err := Compile(src)
	if err != nil {
		t.Fatalf("Compile(%q): %v", src, err)
	}
	return q
}

func parseRoot(t *testing.T, text string) *sexp.Node {
	t.Helper()
	root, diags := sexp.ParseString(text)
	if diags.HasErrors() {
		t.Fatalf("parse: %v", diags)
	}
	return root
}

func TestSelectByTag(t *testing.T) {
	root := parseRoot(t, sampleBoard)

	got := mustCompile(t, "segment").Select(root)
	if len(got) != 2 {
		t.Fatalf("%d segments", len(got))
	}
	for _, n := range got {
		if n.Tag() != "segment" {
			t.Errorf("matched %q", n.Tag())
		}
	}
}

func TestSelectPath(t *testing.T) {
	root := parseRoot(t, sampleBoard)

	got := mustCompile(t, "segment/start").Select(root)
	if len(got) != 2 {
		t.Fatalf("%d start nodes", len(got))
	}
	if got[0].String() != "(start 100 50)" || got[1].String() != "(start 105 50)" {
		t.Errorf("matches: %v %v", got[0], got[1])
	}
}

func TestSelectIndexed(t *testing.T) {
	root := parseRoot(t, sampleBoard)

	got := mustCompile(t, "segment[1]/layer").Select(root)
	if len(got) != 1 || got[0].String() != `(layer "B.Cu")` {
		t.Fatalf("matches: %v", got)
	}

	if got := mustCompile(t, "segment[5]").Select(root); got != nil {
		t.Errorf("out-of-range index matched: %v", got)
	}
}

func TestSelectWildcard(t *testing.T) {
	root := parseRoot(t, sampleBoard)

	got := mustCompile(t, "*/net").Select(root)
	// Two segments carry a net child; the top-level net entries are one
	// step too shallow to match.
	if len(got) != 2 {
		t.Fatalf("%d net nodes: %v", len(got), got)
	}
}

func TestSelectNoMatch(t *testing.T) {
	root := parseRoot(t, sampleBoard)
	if got := mustCompile(t, "zone/polygon").Select(root); got != nil {
		t.Errorf("phantom matches: %v", got)
	}
}

func TestSelectNilRoot(t *testing.T) {
	if got := mustCompile(t, "segment").Select(nil); got != nil {
		t.Errorf("nil root matched: %v", got)
	}
}

func TestCompileErrors(t *testing.T) {
	for _, src := range []string{"", "segment/", "[0]", "segment[x]", "segment[0"} {
		if _, err := Compile(src); err == nil {
			t.Errorf("Compile(%q) succeeded", src)
		}
	}
}

func TestQueryString(t *testing.T) {
	q := mustCompile(t, "segment[0]/start")
	if q.String() != "segment[0]/start" {
		t.Errorf("String() = %q", q.String())
	}
}

package board

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/issus/kicadgo/pkg/kicad/coord"
	"github.com/issus/kicadgo/pkg/kicad/sexp"
)

const modernBoard = "(kicad_pcb\n" +
	"\t(version 20240108)\n" +
	"\t(generator \"pcbnew\")\n" +
	"\t(general\n" +
	"\t\t(thickness 1.6)\n" +
	"\t)\n" +
	"\t(net 0 \"\")\n" +
	"\t(net 1 \"GND\")\n" +
	"\t(segment\n" +
	"\t\t(start 100 50)\n" +
	"\t\t(end 105.4 50)\n" +
	"\t\t(width 0.25)\n" +
	"\t\t(layer \"F.Cu\")\n" +
	"\t\t(net 1)\n" +
	"\t\t(uuid \"3a1f2b44-91f0-4be6-82d7-2d0e6c2b7f10\")\n" +
	"\t)\n" +
	"\t(via\n" +
	"\t\t(at 105.4 50)\n" +
	"\t\t(size 0.8)\n" +
	"\t\t(drill 0.4)\n" +
	"\t\t(layers \"F.Cu\" \"B.Cu\")\n" +
	"\t\t(net 1)\n" +
	"\t)\n" +
	")\n"

const legacyBoard = "(kicad_pcb\n" +
	"  (version 20171130)\n" +
	"  (host pcbnew \"(5.1.6)-1\")\n" +
	"  (net 0 \"\")\n" +
	"  (segment\n" +
	"    (start 100 50)\n" +
	"    (end 110 50)\n" +
	"    (width 0.25)\n" +
	"    (layer F.Cu)\n" +
	"    (net 0)\n" +
	"  )\n" +
	")\n"

func saveString(t *testing.T, b *Board, style sexp.Style) string {
	t.Helper()
	var sb strings.Builder
	if err := b.SaveStyled(&sb, style); err != nil {
		t.Fatal(err)
	}
	return sb.String()
}

func TestParseBoardModel(t *testing.T) {
	b := ParseString(modernBoard)
	if b.HasErrors() {
		t.Fatalf("diagnostics: %v", b.Diagnostics)
	}

	if len(b.Tracks) != 1 || len(b.Vias) != 1 {
		t.Fatalf("counts: %d tracks, %d vias", len(b.Tracks), len(b.Vias))
	}
	wantNets := []*Net{{ID: 0, Name: ""}, {ID: 1, Name: "GND"}}
	if diff := cmp.Diff(wantNets, b.Nets); diff != "" {
		t.Errorf("net table mismatch (-want +got):\n%s", diff)
	}

	tr := b.Tracks[0]
	if tr.Start != coord.Pt(100, 50) || tr.End != coord.Pt(105.4, 50) {
		t.Errorf("track endpoints: %v .. %v", tr.Start, tr.End)
	}
	if tr.Width != coord.FromMm(0.25) {
		t.Errorf("width = %v", tr.Width)
	}
	if tr.Layer.Or("") != "F.Cu" || tr.Layer.Variant != sexp.VariantQuoted {
		t.Errorf("layer = %+v", tr.Layer)
	}
	if tr.Net != 1 {
		t.Errorf("net = %d", tr.Net)
	}

	v := b.Vias[0]
	if v.Size != coord.FromMm(0.8) || v.Drill != coord.FromMm(0.4) {
		t.Errorf("via size/drill: %v / %v", v.Size, v.Drill)
	}
	if len(v.Layers) != 2 || v.Layers[0].Or("") != "F.Cu" || v.Layers[1].Or("") != "B.Cu" {
		t.Errorf("via layers: %+v", v.Layers)
	}

	if name, ok := b.NetName(1); !ok || name != "GND" {
		t.Errorf("NetName(1) = %q, %v", name, ok)
	}
	if b.General == nil || b.General.Thickness.Or(0) != coord.FromMm(1.6) {
		t.Errorf("general thickness missing")
	}
}

func TestBoardRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		style sexp.Style
	}{
		{"modern", modernBoard, sexp.DefaultStyle},
		{"legacy", legacyBoard, sexp.LegacyStyle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ParseString(tt.input)
			if b.HasErrors() {
				t.Fatalf("diagnostics: %v", b.Diagnostics)
			}
			if got := saveString(t, b, tt.style); got != tt.input {
				t.Errorf("round trip changed output:\ngot:\n%s\nwant:\n%s", got, tt.input)
			}
		})
	}
}

func TestLegacyLayerStaysBare(t *testing.T) {
	b := ParseString(legacyBoard)
	tr := b.Tracks[0]
	if tr.Layer.Variant != sexp.VariantBare {
		t.Fatalf("layer variant = %v", tr.Layer.Variant)
	}
	out := saveString(t, b, sexp.LegacyStyle)
	if !strings.Contains(out, "(layer F.Cu)") {
		t.Errorf("bare layer was quoted:\n%s", out)
	}
}

func TestTrackEditFlowsToOutput(t *testing.T) {
	b := ParseString(modernBoard)
	b.Tracks[0].Width = coord.FromMm(0.3)

	out := saveString(t, b, sexp.DefaultStyle)
	if !strings.Contains(out, "(width 0.3)") {
		t.Errorf("edited width missing:\n%s", out)
	}
	// Only the edited field changes; the uuid keeps its position after
	// the net child.
	if !strings.Contains(out, "(net 1)\n\t\t(uuid") {
		t.Errorf("child order disturbed:\n%s", out)
	}
}

func TestFreshTrackCanonicalOrder(t *testing.T) {
	b := New()
	b.AddNet(&Net{ID: 0, Name: ""})
	tr := &Track{
		Start: coord.Pt(0, 0),
		End:   coord.Pt(2.54, 0),
		Width: coord.FromMm(0.2),
		Net:   0,
	}
	tr.Layer.Set("F.Cu")
	b.AddTrack(tr)

	out := saveString(t, b, sexp.DefaultStyle)
	want := "(kicad_pcb\n" +
		"\t(generator \"kicadgo\")\n" +
		"\t(net 0 \"\")\n" +
		"\t(segment\n" +
		"\t\t(start 0 0)\n" +
		"\t\t(end 2.54 0)\n" +
		"\t\t(width 0.2)\n" +
		"\t\t(layer \"F.Cu\")\n" +
		"\t\t(net 0)\n" +
		"\t)\n" +
		")\n"
	if out != want {
		t.Errorf("got:\n%q\nwant:\n%q", out, want)
	}
}

func TestMalformedSegmentKeptRaw(t *testing.T) {
	input := "(kicad_pcb\n" +
		"\t(version 20240108)\n" +
		"\t(generator \"pcbnew\")\n" +
		"\t(segment\n" +
		"\t\t(start 100 50)\n" +
		"\t\t(layer \"F.Cu\")\n" +
		"\t)\n" +
		")\n"

	b := ParseString(input)
	if len(b.Tracks) != 0 {
		t.Fatalf("malformed segment entered the model")
	}
	warned := false
	for _, d := range b.Diagnostics {
		if d.Severity == sexp.SeverityWarning {
			warned = true
		}
	}
	if !warned {
		t.Error("expected a warning diagnostic")
	}
	// The subtree still writes back untouched.
	if got := saveString(t, b, sexp.DefaultStyle); got != input {
		t.Errorf("raw fallback altered output:\n%s", got)
	}
}

func TestNotABoard(t *testing.T) {
	b := ParseString(`(kicad_sch (version 20231120))`)
	if !b.HasErrors() {
		t.Fatal("wrong root tag must be an error")
	}
}

func TestBoardBoundingBox(t *testing.T) {
	b := ParseString(modernBoard)
	box := b.BoundingBox()
	if box.IsEmpty() {
		t.Fatal("empty box")
	}

	wantMin := coord.Pt(99.875, 49.6)
	wantMax := coord.Pt(105.8, 50.4)
	if box.Min != wantMin || box.Max != wantMax {
		t.Errorf("box = %v..%v, want %v..%v", box.Min, box.Max, wantMin, wantMax)
	}
}

package footprint

import (
	"strings"
	"testing"

	"github.com/issus/kicadgo/pkg/kicad/coord"
	"github.com/issus/kicadgo/pkg/kicad/sexp"
)

const modernFootprint = "(footprint \"Resistor_SMD:R_0603_1608Metric\"\n" +
	"\t(version 20240108)\n" +
	"\t(generator \"pcbnew\")\n" +
	"\t(layer \"F.Cu\")\n" +
	"\t(descr \"Resistor SMD 0603\")\n" +
	"\t(tags \"resistor\")\n" +
	"\t(attr smd)\n" +
	"\t(pad \"1\" smd roundrect\n" +
	"\t\t(at -0.825 0)\n" +
	"\t\t(size 0.8 0.95)\n" +
	"\t\t(layers \"F.Cu\" \"F.Paste\" \"F.Mask\")\n" +
	"\t\t(roundrect_rratio 0.25)\n" +
	"\t)\n" +
	"\t(pad \"2\" smd roundrect\n" +
	"\t\t(at 0.825 0)\n" +
	"\t\t(size 0.8 0.95)\n" +
	"\t\t(layers \"F.Cu\" \"F.Paste\" \"F.Mask\")\n" +
	"\t)\n" +
	")\n"

const legacyModule = "(module R_0603 locked\n" +
	"  (layer F.Cu)\n" +
	"  (descr \"0603 chip resistor\")\n" +
	"  (pad \"1\" smd rect\n" +
	"    (at -0.8 0)\n" +
	"    (size 0.75 0.9)\n" +
	"    (layers F.Cu F.Paste F.Mask)\n" +
	"  )\n" +
	")\n"

func saveString(t *testing.T, fp *Footprint, style sexp.Style) string {
	t.Helper()
	var sb strings.Builder
	if err := fp.SaveStyled(&sb, style); err != nil {
		t.Fatal(err)
	}
	return sb.String()
}

func TestParseFootprintModel(t *testing.T) {
	fp := ParseString(modernFootprint)
	if fp.HasErrors() {
		t.Fatalf("diagnostics: %v", fp.Diagnostics)
	}

	if fp.Name.Or("") != "Resistor_SMD:R_0603_1608Metric" {
		t.Errorf("name = %q", fp.Name.Or(""))
	}
	if fp.Layer.Or("") != "F.Cu" || fp.Descr.Or("") != "Resistor SMD 0603" || fp.Tags.Or("") != "resistor" {
		t.Errorf("metadata: %q %q %q", fp.Layer.Or(""), fp.Descr.Or(""), fp.Tags.Or(""))
	}
	if len(fp.Pads) != 2 {
		t.Fatalf("%d pads", len(fp.Pads))
	}

	p := fp.Pads[0]
	if p.Number != "1" || p.Type != "smd" || p.Shape != "roundrect" {
		t.Errorf("pad identity: %q %q %q", p.Number, p.Type, p.Shape)
	}
	if p.At != coord.Pt(-0.825, 0) || p.Size != coord.Pt(0.8, 0.95) {
		t.Errorf("pad geometry: %v %v", p.At, p.Size)
	}
	if len(p.Layers) != 3 {
		t.Errorf("pad layers: %+v", p.Layers)
	}
	if p.Drill.Present {
		t.Error("smd pad should have no drill")
	}
}

func TestFootprintRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		style sexp.Style
	}{
		{"modern", modernFootprint, sexp.DefaultStyle},
		{"legacy module", legacyModule, sexp.LegacyStyle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fp := ParseString(tt.input)
			if fp.HasErrors() {
				t.Fatalf("diagnostics: %v", fp.Diagnostics)
			}
			if got := saveString(t, fp, tt.style); got != tt.input {
				t.Errorf("round trip changed output:\ngot:\n%s\nwant:\n%s", got, tt.input)
			}
		})
	}
}

func TestLegacyModulePreserved(t *testing.T) {
	fp := ParseString(legacyModule)
	if fp.HasErrors() {
		t.Fatalf("diagnostics: %v", fp.Diagnostics)
	}
	if fp.Name.Variant != sexp.VariantBare {
		t.Error("bare module name not recorded")
	}
	if !fp.Locked.Or(false) || fp.Locked.Variant != sexp.VariantFlag {
		t.Errorf("locked = %+v", fp.Locked)
	}

	out := saveString(t, fp, sexp.LegacyStyle)
	if !strings.HasPrefix(out, "(module R_0603 locked\n") {
		t.Errorf("legacy head rewritten:\n%s", out)
	}
}

func TestFindPad(t *testing.T) {
	fp := ParseString(modernFootprint)
	if p, ok := fp.FindPad("2"); !ok || p.At != coord.Pt(0.825, 0) {
		t.Errorf("FindPad(2) = %v, %v", p, ok)
	}
	if _, ok := fp.FindPad("3"); ok {
		t.Error("phantom pad found")
	}
}

func TestPadEditFlowsToOutput(t *testing.T) {
	fp := ParseString(modernFootprint)
	p, _ := fp.FindPad("1")
	p.Size = coord.Pt(0.9, 1)

	out := saveString(t, fp, sexp.DefaultStyle)
	if !strings.Contains(out, "(size 0.9 1)") {
		t.Errorf("edited size missing:\n%s", out)
	}
	// Unmodeled pad children keep their positions.
	if !strings.Contains(out, "(roundrect_rratio 0.25)") {
		t.Errorf("raw pad child lost:\n%s", out)
	}
}

func TestFreshFootprint(t *testing.T) {
	fp := New("Test:FP")
	pad := &Pad{
		Number: "1",
		Type:   "thru_hole",
		Shape:  "circle",
		At:     coord.Pt(0, 0),
		Size:   coord.Pt(1.7, 1.7),
	}
	pad.Drill.Set(coord.FromMm(1))
	var cu sexp.EncodedValue[string]
	cu.Set("*.Cu")
	pad.Layers = []sexp.EncodedValue[string]{cu}
	fp.AddPad(pad)

	out := saveString(t, fp, sexp.DefaultStyle)
	want := "(footprint \"Test:FP\"\n" +
		"\t(generator \"kicadgo\")\n" +
		"\t(pad \"1\" thru_hole circle\n" +
		"\t\t(at 0 0)\n" +
		"\t\t(size 1.7 1.7)\n" +
		"\t\t(drill 1)\n" +
		"\t\t(layers \"*.Cu\")\n" +
		"\t)\n" +
		")\n"
	if out != want {
		t.Errorf("got:\n%q\nwant:\n%q", out, want)
	}
}

func TestMalformedPadKeptRaw(t *testing.T) {
	input := "(footprint \"X\"\n" +
		"\t(pad \"1\" smd)\n" +
		")\n"
	fp := ParseString(input)
	if len(fp.Pads) != 0 {
		t.Fatal("malformed pad entered the model")
	}
	if got := saveString(t, fp, sexp.DefaultStyle); got != input {
		t.Errorf("raw fallback altered output:\n%s", got)
	}
}

func TestFootprintBoundingBox(t *testing.T) {
	fp := ParseString(modernFootprint)
	box := fp.BoundingBox()
	// Pads at x = ±0.825 with max dimension 0.95.
	if box.Min != coord.Pt(-1.3, -0.475) || box.Max != coord.Pt(1.3, 0.475) {
		t.Errorf("box = %v..%v", box.Min, box.Max)
	}
}

package document

import (
	"strings"
	"testing"

	"github.com/issus/kicadgo/pkg/kicad/sexp"
)

const modernBoard = "(kicad_pcb\n" +
	"\t(version 20240108)\n" +
	"\t(generator \"pcbnew\")\n" +
	"\t(generator_version \"8.0\")\n" +
	"\t(general\n" +
	"\t\t(thickness 1.6)\n" +
	"\t)\n" +
	"\t(net 0 \"\")\n" +
	")\n"

const legacyBoard = "(kicad_pcb\n" +
	"  (version 20171130)\n" +
	"  (host pcbnew \"(5.1.6)-1\")\n" +
	"  (general\n" +
	"    (thickness 1.6)\n" +
	"  )\n" +
	")\n"

func TestDetectKind(t *testing.T) {
	tests := []struct {
		tag  string
		want Kind
	}{
		{"kicad_pcb", KindBoard},
		{"kicad_sch", KindSchematic},
		{"footprint", KindFootprint},
		{"module", KindFootprint},
		{"kicad_symbol_lib", KindSymbolLibrary},
		{"kicad_wks", KindUnknown},
	}
	for _, tt := range tests {
		if got := DetectKind(tt.tag); got != tt.want {
			t.Errorf("DetectKind(%q) = %v, want %v", tt.tag, got, tt.want)
		}
	}
}

func TestLoadModernHeader(t *testing.T) {
	doc := LoadString(modernBoard)
	if doc.HasErrors() {
		t.Fatalf("diagnostics: %v", doc.Diagnostics)
	}
	if doc.Kind != KindBoard {
		t.Errorf("kind = %v", doc.Kind)
	}
	if v := doc.Header.Version.Or(0); v != 20240108 {
		t.Errorf("version = %d", v)
	}
	if g := doc.Header.Generator.Or(""); g != "pcbnew" {
		t.Errorf("generator = %q", g)
	}
	if gv := doc.Header.GeneratorVersion.Or(""); gv != "8.0" {
		t.Errorf("generator_version = %q", gv)
	}
}

func TestLoadLegacyHostHeader(t *testing.T) {
	doc := LoadString(legacyBoard)
	if doc.HasErrors() {
		t.Fatalf("diagnostics: %v", doc.Diagnostics)
	}
	if g := doc.Header.Generator.Or(""); g != "pcbnew" {
		t.Errorf("generator = %q", g)
	}
	if doc.Header.Generator.TokenOr("generator") != "host" {
		t.Error("host spelling not recorded")
	}
	if doc.Header.HostInfo != "(5.1.6)-1" {
		t.Errorf("host info = %q", doc.Header.HostInfo)
	}
}

func TestRoundTripUnmodified(t *testing.T) {
	for _, tt := range []struct {
		name  string
		input string
		save  func(*Document) string
	}{
		{"modern", modernBoard, func(d *Document) string {
			var sb strings.Builder
			if err := d.Save(&sb); err != nil {
				t.Fatal(err)
			}
			return sb.String()
		}},
		{"legacy", legacyBoard, func(d *Document) string {
			var sb strings.Builder
			if err := d.SaveStyled(&sb, sexp.LegacyStyle); err != nil {
				t.Fatal(err)
			}
			return sb.String()
		}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			doc := LoadString(tt.input)
			if doc.HasErrors() {
				t.Fatalf("diagnostics: %v", doc.Diagnostics)
			}
			if got := tt.save(doc); got != tt.input {
				t.Errorf("round trip changed output:\n%q\nwant:\n%q", got, tt.input)
			}
		})
	}
}

func TestUnknownSectionsPassThrough(t *testing.T) {
	input := "(kicad_pcb\n" +
		"\t(version 20240108)\n" +
		"\t(generator \"pcbnew\")\n" +
		"\t(some_future_token \"opaque\"\n" +
		"\t\t(nested 1 2 3)\n" +
		"\t)\n" +
		")\n"

	doc := LoadString(input)
	var sb strings.Builder
	if err := doc.Save(&sb); err != nil {
		t.Fatal(err)
	}
	if sb.String() != input {
		t.Errorf("unknown section altered:\n%q", sb.String())
	}
}

func TestHeaderEditFlowsToOutput(t *testing.T) {
	doc := LoadString(modernBoard)
	doc.Header.GeneratorVersion.Set("9.0")

	var sb strings.Builder
	if err := doc.Save(&sb); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	if !strings.Contains(out, "(generator_version \"9.0\")") {
		t.Errorf("edit missing from output:\n%s", out)
	}
	// The field keeps its original position, not a fresh slot.
	if strings.Count(out, "generator_version") != 1 {
		t.Errorf("field duplicated:\n%s", out)
	}
}

func TestFreshHeaderFieldsLeadTheBody(t *testing.T) {
	doc := LoadString("(kicad_pcb\n\t(net 0 \"\")\n)\n")
	doc.Header.Version.Set(20240108)
	doc.Header.Generator.Set("pcbnew")

	var sb strings.Builder
	if err := doc.Save(&sb); err != nil {
		t.Fatal(err)
	}
	want := "(kicad_pcb\n" +
		"\t(version 20240108)\n" +
		"\t(generator \"pcbnew\")\n" +
		"\t(net 0 \"\")\n" +
		")\n"
	if sb.String() != want {
		t.Errorf("got:\n%q\nwant:\n%q", sb.String(), want)
	}
}

func TestUnreadableHeaderFieldsRideThroughRaw(t *testing.T) {
	input := "(kicad_pcb\n" +
		"\t(version unknown-form)\n" +
		"\t(generator)\n" +
		"\t(net 0 \"\")\n" +
		")\n"

	doc := LoadString(input)
	if doc.Header.Version.Present {
		t.Errorf("unreadable version recorded as %+v", doc.Header.Version)
	}
	if doc.Header.Generator.Present {
		t.Errorf("valueless generator recorded as %+v", doc.Header.Generator)
	}

	var sb strings.Builder
	if err := doc.Save(&sb); err != nil {
		t.Fatal(err)
	}
	if sb.String() != input {
		t.Errorf("unreadable header rewritten:\ngot:\n%q\nwant:\n%q", sb.String(), input)
	}
}

func TestLoadMalformedStillUsable(t *testing.T) {
	doc := LoadString("(kicad_pcb (version 20240108) (net 0 \"")
	if !doc.HasErrors() {
		t.Fatal("truncated input must report errors")
	}
	if doc.Kind != KindBoard {
		t.Errorf("kind = %v", doc.Kind)
	}
	if v := doc.Header.Version.Or(0); v != 20240108 {
		t.Errorf("version = %d", v)
	}
}

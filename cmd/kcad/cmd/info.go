package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/issus/kicadgo/pkg/kicad/board"
	"github.com/issus/kicadgo/pkg/kicad/document"
	"github.com/issus/kicadgo/pkg/kicad/footprint"
	"github.com/issus/kicadgo/pkg/kicad/schematic"
	"github.com/issus/kicadgo/pkg/kicad/symbol"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Show document kind, header, and element counts",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	text := string(data)

	doc := document.LoadString(text)
	printDiagnostics(path, doc.Diagnostics)

	fmt.Printf("File:      %s\n", path)
	fmt.Printf("Kind:      %s\n", doc.Kind)
	if doc.Header.Version.Present {
		fmt.Printf("Version:   %d\n", doc.Header.Version.Value)
	}
	if doc.Header.Generator.Present {
		fmt.Printf("Generator: %s\n", doc.Header.Generator.Value)
	}

	switch doc.Kind {
	case document.KindBoard:
		b := board.ParseString(text)
		fmt.Printf("Nets:      %d\n", len(b.Nets))
		fmt.Printf("Tracks:    %d\n", len(b.Tracks))
		fmt.Printf("Vias:      %d\n", len(b.Vias))
		if box := b.BoundingBox(); !box.IsEmpty() {
			fmt.Printf("Bounds:    %s x %s mm (from %s,%s)\n",
				box.Width(), box.Height(), box.Min.X, box.Min.Y)
		}

	case document.KindSchematic:
		s := schematic.ParseString(text)
		fmt.Printf("Wires:     %d\n", len(s.Wires))
		fmt.Printf("Junctions: %d\n", len(s.Junctions))
		fmt.Printf("Labels:    %d\n", len(s.Labels))

	case document.KindFootprint:
		fp := footprint.ParseString(text)
		fmt.Printf("Name:      %s\n", fp.Name.Value)
		fmt.Printf("Pads:      %d\n", len(fp.Pads))

	case document.KindSymbolLibrary:
		lib := symbol.ParseString(text)
		fmt.Printf("Symbols:   %d\n", len(lib.Symbols))
		for _, s := range lib.Symbols {
			if verbose {
				fmt.Printf("  %-24s %d pins\n", s.Name, len(s.Pins()))
			}
		}
	}

	if doc.HasErrors() {
		return fmt.Errorf("%s: document has errors", path)
	}
	return nil
}

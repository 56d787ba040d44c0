package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/issus/kicadgo/pkg/kicad/document"
	"github.com/issus/kicadgo/pkg/kicad/sexp"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Report diagnostics and verify round-trip stability",
	Long: `Parses a KiCad file, prints every diagnostic, and verifies that
formatting the parsed tree reaches a fixpoint: write, re-parse, and
write again must produce identical text. A formatting difference here
would show up as version-control noise on every save.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	doc, err := document.LoadFile(path)
	if err != nil {
		return err
	}
	printDiagnostics(path, doc.Diagnostics)

	first := sexp.Format(doc.Tree(), sexp.DefaultStyle)
	reparsed, rediags := sexp.ParseString(first)
	if rediags.HasErrors() {
		return fmt.Errorf("%s: formatted output failed to re-parse", path)
	}
	second := sexp.Format(reparsed, sexp.DefaultStyle)

	if first != second {
		return fmt.Errorf("%s: round trip is not stable", path)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "%s: %s, round trip stable\n", path, doc.Kind)
	}
	if doc.HasErrors() {
		return fmt.Errorf("%s: document has errors", path)
	}
	fmt.Printf("%s: ok\n", path)
	return nil
}

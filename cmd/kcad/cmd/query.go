package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/issus/kicadgo/pkg/kicad/query"
	"github.com/issus/kicadgo/pkg/kicad/sexp"
)

var queryCmd = &cobra.Command{
	Use:   "query <file> <path>",
	Short: "Extract subtrees matching a path expression",
	Long: `Runs a path query against a KiCad file and prints every matching
subtree.

Path syntax: slash-separated child tags, * for any tag, and an optional
zero-based [index] to pick one match:

  kcad query board.kicad_pcb segment/start
  kcad query board.kicad_pcb "net[1]"
  kcad query sym.kicad_sym "symbol/symbol/pin/number"`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	path, expr := args[0], args[1]

	q, err := query.Compile(expr)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	root, diags := sexp.Parse(f)
	printDiagnostics(path, diags)
	if root == nil {
		return fmt.Errorf("%s: no document found", path)
	}

	matches := q.Select(root)
	if verbose {
		fmt.Fprintf(os.Stderr, "%s: %d match(es) for %s\n", path, len(matches), q)
	}
	for _, m := range matches {
		fmt.Print(sexp.Format(m, sexp.DefaultStyle))
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "kcad",
	Short: "kcad - KiCad file inspection and round-trip tools",
	Long: `kcad reads and writes KiCad design files (boards, schematics,
footprints, symbol libraries) through a fidelity-preserving
S-expression engine.

Examples:
  kcad info board.kicad_pcb            # Show document kind and contents
  kcad fmt -w board.kicad_pcb          # Rewrite in canonical formatting
  kcad check board.kicad_pcb           # Diagnostics + round-trip check
  kcad query board.kicad_pcb segment/start`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

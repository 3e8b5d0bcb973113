// Command wfcgen is a thin CLI wrapping the wfc module: load a YAML rule
// file, run the propagator to completion (or a step budget), and render
// the result as an HTML heatmap. It contains no propagation logic of its
// own; everything here is config parsing and wiring.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wfcgen",
	Short: "Generate a tile grid by wave function collapse",
	Long: `wfcgen loads a YAML tile rule file, runs the propagation engine to
completion or a step budget, and writes the result as an HTML heatmap.`,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Package main provides the citegraph CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors is set, so this is the only place the error
		// reaches the user.
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "citegraph",
	Short: "Generate a citation graph from a bibliography",
	Long: `citegraph turns a set of seed papers into a pruned citation graph.

Starting from the identifiers in a Bib(La)TeX bibliography, it crawls
outward through each paper's references, expanding only the papers that
keep accumulating citations from the already-discovered set, prunes the
weakly connected fringe, and writes the result as a Graphviz DOT file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env if present (for S2_API_KEY when talking to the
	// upstream directly instead of an s2proxy).
	_ = godotenv.Load()

	rootCmd.Version = Version
}

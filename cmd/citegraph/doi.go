package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fporter/citegraph/internal/pdfdoi"
)

func init() {
	rootCmd.AddCommand(doiCmd)
}

var doiCmd = &cobra.Command{
	Use:   "doi <paper.pdf>",
	Short: "Extract the DOI from a PDF",
	Long: `Extract the DOI from a PDF.

Scans the first pages of the document for a DOI so a paper on disk can
seed a crawl without a bibliography entry.`,
	Args: cobra.ExactArgs(1),
	RunE: runDOI,
}

func runDOI(cmd *cobra.Command, args []string) error {
	doi, err := pdfdoi.Extract(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}
	if doi == "" {
		fmt.Fprintf(os.Stderr, "no DOI found in %s\n", args[0])
		os.Exit(ExitError)
	}
	fmt.Println(doi)
	return nil
}

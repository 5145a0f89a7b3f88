package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <bibliography.bib>",
	Short: "Resolve a bibliography's seed identifiers without crawling",
	Long: `Resolve a bibliography's seed identifiers without crawling.

Prints one wire-form identifier per line (DOI:10.x/y or a native paper
id), exactly as the crawl would send them to the batch API. Useful as a
dry run before tuning a crawl.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	seeds, err := resolveSeeds(args[0])
	if err != nil {
		return err
	}
	for _, id := range seeds {
		fmt.Println(id)
	}
	return nil
}

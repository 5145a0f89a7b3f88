package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fporter/citegraph/internal/bib"
	"github.com/fporter/citegraph/internal/cache"
	"github.com/fporter/citegraph/internal/config"
	"github.com/fporter/citegraph/internal/crawl"
	"github.com/fporter/citegraph/internal/dot"
	"github.com/fporter/citegraph/internal/s2"
)

var (
	crawlBaseURL      string
	crawlMaxDepth     int
	crawlConnectivity float64
	crawlOutput       string
	crawlCachePath    string
	crawlConfigPath   string
	crawlPrunePasses  int
	crawlExactPrune   bool
)

func init() {
	crawlCmd.Flags().StringVar(&crawlBaseURL, "base-url", "", "Batch API base URL (an s2proxy instance, or the upstream)")
	crawlCmd.Flags().IntVar(&crawlMaxDepth, "max-depth", 4, "How many search iterations to perform")
	crawlCmd.Flags().Float64Var(&crawlConnectivity, "connectivity", 3.25, "Citation density of the bibliography's reference network; tune so only some dozens of papers are fetched in the last iteration")
	crawlCmd.Flags().StringVarP(&crawlOutput, "output", "o", "", "Write the DOT file here instead of stdout")
	crawlCmd.Flags().StringVar(&crawlCachePath, "cache", "", "SQLite record cache path (skips re-fetching known papers)")
	crawlCmd.Flags().StringVar(&crawlConfigPath, "config", "citegraph.yml", "Crawl configuration file")
	crawlCmd.Flags().IntVar(&crawlPrunePasses, "prune-passes", 0, "Pruning pass bound (0 = default)")
	crawlCmd.Flags().BoolVar(&crawlExactPrune, "exact-prune", false, "Prune to a fixed point instead of a bounded number of passes")
	rootCmd.AddCommand(crawlCmd)
}

var crawlCmd = &cobra.Command{
	Use:   "crawl <bibliography.bib>",
	Short: "Crawl a bibliography's citation network and emit a DOT graph",
	Long: `Crawl a bibliography's citation network and emit a DOT graph.

Examples:
  citegraph crawl refs.bib > graph.dot
  citegraph crawl refs.bib --max-depth 3 --connectivity 2.5 -o graph.dot
  citegraph crawl refs.bib --base-url http://localhost:8080 --cache papers.db`,
	Args: cobra.ExactArgs(1),
	RunE: runCrawl,
}

func runCrawl(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.Load(crawlConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(ExitConfigError)
	}
	applyConfigDefaults(cmd, fileCfg)

	if crawlConnectivity <= 1 {
		fmt.Fprintln(os.Stderr, "error: --connectivity must be greater than 1")
		os.Exit(ExitConfigError)
	}

	seeds, err := resolveSeeds(args[0])
	if err != nil {
		return err
	}

	var opts []s2.ClientOption
	if crawlBaseURL != "" {
		opts = append(opts, s2.WithBaseURL(crawlBaseURL))
	}
	var src crawl.Source = s2.NewClient(opts...)

	if crawlCachePath != "" {
		store, err := cache.Open(crawlCachePath)
		if err != nil {
			return err
		}
		defer store.Close()
		src = cache.NewSource(store, src)
	}

	g, err := crawl.Run(context.Background(), src, crawl.Config{
		MaxDepth:          crawlMaxDepth,
		Connectivity:      crawlConnectivity,
		PrunePasses:       crawlPrunePasses,
		PruneToFixedPoint: crawlExactPrune,
		Progress:          os.Stderr,
	}, seeds)
	if err != nil {
		if s2.IsGatewayTimeout(err) || s2.IsRateLimited(err) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(ExitRateLimited)
		}
		return err
	}

	out := os.Stdout
	if crawlOutput != "" {
		f, err := os.Create(crawlOutput)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	return dot.Write(out, g)
}

// applyConfigDefaults fills in flag values from the config file for
// flags the user didn't set explicitly.
func applyConfigDefaults(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if !flags.Changed("base-url") && cfg.BaseURL != "" {
		crawlBaseURL = cfg.BaseURL
	}
	if !flags.Changed("max-depth") && cfg.MaxDepth != 0 {
		crawlMaxDepth = cfg.MaxDepth
	}
	if !flags.Changed("connectivity") && cfg.Connectivity != 0 {
		crawlConnectivity = cfg.Connectivity
	}
	if !flags.Changed("cache") && cfg.CachePath != "" {
		crawlCachePath = cfg.CachePath
	}
	if !flags.Changed("prune-passes") && cfg.PrunePasses != 0 {
		crawlPrunePasses = cfg.PrunePasses
	}
}

// resolveSeeds extracts and resolves the seed identifiers from a
// bibliography. Entries without a usable identifier are reported and
// skipped; an empty seed set is allowed and produces an empty graph.
func resolveSeeds(path string) ([]s2.PaperID, error) {
	parsed, err := bib.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if warn := parsed.Warn(); warn != "" {
		fmt.Fprintf(os.Stderr, "%s; continuing anyway\n", warn)
	}
	return s2.ResolveAll(parsed.IDs), nil
}

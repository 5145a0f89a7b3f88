// Package main provides the s2proxy rate-limiting proxy binary.
//
// The shared Semantic Scholar API key allows 1 request/second on the
// batch endpoint. s2proxy sits between crawl clients and the API,
// spacing forwarded requests with a token bucket and keeping the key
// out of client hands.
package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fporter/citegraph/internal/proxy"
)

const envAPIKey = "S2_API_KEY"

var (
	proxyListen      string
	proxyUpstream    string
	proxyRate        float64
	proxyBurst       int
	proxyMaxAttempts int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "s2proxy",
	Short: "Rate-limiting proxy for the Semantic Scholar batch API",
	Long: `s2proxy serves the paper batch endpoint, forwarding requests to the
Semantic Scholar API with the shared credential attached and a fixed
minimum spacing between forwards. Upstream 429s are retried a bounded
number of times; when the retries run out the client gets a 504 so it
can tell throttling from an upstream failure.

The API key is read from the ` + envAPIKey + ` environment variable (or a
.env file).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runProxy,
}

func init() {
	rootCmd.Flags().StringVar(&proxyListen, "listen", ":8080", "Address to listen on")
	rootCmd.Flags().StringVar(&proxyUpstream, "upstream", proxy.DefaultUpstream, "Upstream API base URL")
	rootCmd.Flags().Float64Var(&proxyRate, "rate", proxy.DefaultRate, "Forwarding rate in requests per second")
	rootCmd.Flags().IntVar(&proxyBurst, "burst", proxy.DefaultBurst, "Token bucket burst size")
	rootCmd.Flags().IntVar(&proxyMaxAttempts, "retries", proxy.DefaultMaxAttempts, "Attempt bound for upstream 429s")
}

func runProxy(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	apiKey := os.Getenv(envAPIKey)
	if apiKey == "" {
		return errors.New("you must set " + envAPIKey + "=<semantic-scholar-api-key>")
	}

	h := proxy.New(apiKey,
		proxy.WithUpstream(proxyUpstream),
		proxy.WithRate(proxyRate, proxyBurst),
		proxy.WithMaxAttempts(proxyMaxAttempts),
	)

	log.Printf("s2proxy listening on %s, forwarding to %s at %g req/s", proxyListen, proxyUpstream, proxyRate)
	return http.ListenAndServe(proxyListen, h)
}

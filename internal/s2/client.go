package s2

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public Semantic Scholar API. Deployments
	// with a shared credential point this at an s2proxy instance
	// instead.
	DefaultBaseURL = "https://api.semanticscholar.org"

	// BatchPath is the paper batch lookup endpoint.
	BatchPath = "/graph/v1/paper/batch"

	// MaxIDsPerBatch is the upstream ceiling on ids per batch call.
	MaxIDsPerBatch = 500

	// batchFields selects the record and reference-stub fields the
	// crawler needs.
	batchFields = "title,url,references.paperId,references.title,references.url"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxAttempts bounds retries on 429 responses.
	DefaultMaxAttempts = 3
)

// retryBaseDelay is the base backoff after a 429, doubling per attempt.
// Tests override this to avoid real sleeps.
var retryBaseDelay = time.Second

// Client is a rate-limited batch client for the paper API.
type Client struct {
	httpClient  *http.Client
	limiter     *rate.Limiter
	apiKey      string
	baseURL     string
	maxAttempts int
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL points the client at a different base URL (an s2proxy
// instance, or a test server).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithAPIKey sets the API key for direct (unproxied) upstream access.
func WithAPIKey(key string) ClientOption {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithRateLimit overrides the client-side request rate in requests per
// second.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithMaxAttempts overrides the bounded retry count for 429 responses.
func WithMaxAttempts(n int) ClientOption {
	return func(c *Client) {
		c.maxAttempts = n
	}
}

// NewClient creates a batch client. Without options it talks to the
// public API at 1 request per second, matching the documented limit for
// the batch endpoint.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: DefaultTimeout},
		limiter:     rate.NewLimiter(rate.Limit(1), 1),
		baseURL:     DefaultBaseURL,
		maxAttempts: DefaultMaxAttempts,
	}

	if key := os.Getenv("S2_API_KEY"); key != "" {
		c.apiKey = key
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// batchRequest is the JSON body of a batch call.
type batchRequest struct {
	IDs []string `json:"ids"`
}

// FetchBatch looks up a list of paper ids and returns one entry per id,
// in input order. Unresolvable ids yield a nil entry. The id list is
// chunked into sub-batches of at most MaxIDsPerBatch, issued
// concurrently; all sub-batches must succeed or the whole call fails.
// An empty id list returns immediately without a network call.
func (c *Client) FetchBatch(ctx context.Context, ids []PaperID) ([]*Paper, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	type chunk struct {
		low, high int
	}
	var chunks []chunk
	for low := 0; low < len(ids); low += MaxIDsPerBatch {
		high := low + MaxIDsPerBatch
		if high > len(ids) {
			high = len(ids)
		}
		chunks = append(chunks, chunk{low, high})
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([][]*Paper, len(chunks))
	errs := make([]error, len(chunks))
	var wg sync.WaitGroup
	for i, ch := range chunks {
		wg.Add(1)
		go func(i int, ch chunk) {
			defer wg.Done()
			papers, err := c.fetchChunk(ctx, ids[ch.low:ch.high])
			if err != nil {
				errs[i] = err
				cancel()
				return
			}
			results[i] = papers
		}(i, ch)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	papers := make([]*Paper, 0, len(ids))
	for _, r := range results {
		papers = append(papers, r...)
	}
	return papers, nil
}

// fetchChunk issues one sub-batch call, retrying on 429 with bounded
// exponential backoff. Any other non-success status is surfaced
// immediately.
func (c *Client) fetchChunk(ctx context.Context, ids []PaperID) ([]*Paper, error) {
	wire := make([]string, len(ids))
	for i, id := range ids {
		wire[i] = id.String()
	}
	body, err := json.Marshal(batchRequest{IDs: wire})
	if err != nil {
		return nil, fmt.Errorf("encoding batch request: %w", err)
	}

	for attempt := 1; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		text, status, err := c.post(ctx, body)
		if err != nil {
			return nil, err
		}

		switch {
		case status == http.StatusOK:
			var papers []*Paper
			if err := json.Unmarshal(text, &papers); err != nil {
				return nil, fmt.Errorf("%w: %v: %s", ErrInvalidResponse, err, truncate(text, 512))
			}
			if len(papers) != len(ids) {
				return nil, fmt.Errorf("%w: got %d entries for %d ids", ErrInvalidResponse, len(papers), len(ids))
			}
			return papers, nil
		case status == http.StatusTooManyRequests && attempt < c.maxAttempts:
			backoff := retryBaseDelay << (attempt - 1)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		default:
			return nil, &APIError{StatusCode: status, Body: truncate(text, 512)}
		}
	}
}

// post issues the HTTP call and returns the raw body and status.
func (c *Client) post(ctx context.Context, body []byte) ([]byte, int, error) {
	u := c.baseURL + BatchPath + "?fields=" + url.QueryEscape(batchFields)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("batch request: %w", err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading batch response: %w", err)
	}
	return text, resp.StatusCode, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// Package proxy implements the rate-limiting proxy that sits between
// crawl clients and the Semantic Scholar API. It exists to enforce the
// shared API key's rate limit (1 request/second on the batch endpoint)
// and to keep the key itself off client machines.
package proxy

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/fporter/citegraph/internal/s2"
)

const (
	// DefaultUpstream is the real API the proxy forwards to.
	DefaultUpstream = "https://api.semanticscholar.org"

	// DefaultRate and DefaultBurst implement the documented
	// 1 request/second limit on the batch endpoint.
	DefaultRate  = 1.0
	DefaultBurst = 1

	// DefaultMaxAttempts bounds retries when the upstream still
	// answers 429 despite the spacing.
	DefaultMaxAttempts = 3

	// DefaultUpstreamTimeout is the per-forward HTTP timeout.
	DefaultUpstreamTimeout = 2 * time.Minute
)

// Handler serves the batch endpoint, spacing forwards with a token
// bucket and attaching the shared credential.
type Handler struct {
	upstream    string
	apiKey      string
	client      *http.Client
	limiter     *rate.Limiter
	maxAttempts int
	logf        func(format string, args ...any)
}

// Option configures a Handler.
type Option func(*Handler)

// WithUpstream overrides the upstream base URL.
func WithUpstream(u string) Option {
	return func(h *Handler) {
		h.upstream = u
	}
}

// WithHTTPClient sets a custom HTTP client for upstream calls.
func WithHTTPClient(c *http.Client) Option {
	return func(h *Handler) {
		h.client = c
	}
}

// WithRate overrides the forwarding rate (requests per second) and
// burst.
func WithRate(rps float64, burst int) Option {
	return func(h *Handler) {
		h.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithMaxAttempts overrides the bounded retry count for upstream 429s.
func WithMaxAttempts(n int) Option {
	return func(h *Handler) {
		h.maxAttempts = n
	}
}

// WithLogger sets the request log function. The default is log.Printf.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(h *Handler) {
		h.logf = logf
	}
}

// New creates a proxy handler forwarding with the given API key.
func New(apiKey string, opts ...Option) *Handler {
	h := &Handler{
		upstream:    DefaultUpstream,
		apiKey:      apiKey,
		client:      &http.Client{Timeout: DefaultUpstreamTimeout},
		limiter:     rate.NewLimiter(rate.Limit(DefaultRate), DefaultBurst),
		maxAttempts: DefaultMaxAttempts,
		logf:        log.Printf,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP accepts the batch-fetch payload on s2.BatchPath and
// forwards it upstream once the token bucket allows. Upstream 429s are
// retried up to the attempt bound, each retry waiting on the bucket
// again rather than adding backoff of its own; exhaustion maps to 504
// Gateway Timeout so callers can tell throttling from an upstream
// failure, which passes through with its original status.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != s2.BatchPath {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "reading request body", http.StatusBadRequest)
		return
	}

	for attempt := 1; ; attempt++ {
		if err := h.limiter.Wait(r.Context()); err != nil {
			// Client went away while queued.
			return
		}

		status, contentType, respBody, err := h.forward(r, body)
		if err != nil {
			h.logf("upstream error: %v", err)
			http.Error(w, "upstream unreachable", http.StatusBadGateway)
			return
		}

		if status == http.StatusTooManyRequests && attempt < h.maxAttempts {
			h.logf("upstream 429, retrying (attempt %d/%d)", attempt, h.maxAttempts)
			continue
		}
		if status == http.StatusTooManyRequests {
			h.logf("upstream 429 after %d attempts, giving up", h.maxAttempts)
			http.Error(w, "rate limit retries exhausted", http.StatusGatewayTimeout)
			return
		}

		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(status)
		w.Write(respBody)
		return
	}
}

// forward issues one upstream call with the shared credential attached.
func (h *Handler) forward(r *http.Request, body []byte) (status int, contentType string, respBody []byte, err error) {
	u := h.upstream + s2.BatchPath
	if r.URL.RawQuery != "" {
		u += "?" + r.URL.RawQuery
	}
	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return 0, "", nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", h.apiKey)

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, "", nil, err
	}
	defer resp.Body.Close()

	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", nil, err
	}
	return resp.StatusCode, resp.Header.Get("Content-Type"), respBody, nil
}

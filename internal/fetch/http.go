package fetch

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/contact-crawler/internal/resilience"
)

const (
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	maxBodyBytes = 2 * 1024 * 1024

	// minPageBytes is the smallest body treated as a real page; anything
	// shorter is almost always a JS bootstrap shell.
	minPageBytes = 100
)

// HTTPFetcher fetches pages over plain HTTP with a shared pace limiter so a
// batch of domains doesn't hammer one origin host.
type HTTPFetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewHTTPFetcher creates an HTTPFetcher with the given per-request timeout
// and a pace of requestsPerSec across all calls.
func NewHTTPFetcher(timeout time.Duration, requestsPerSec float64) *HTTPFetcher {
	if requestsPerSec <= 0 {
		requestsPerSec = 4
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSec), 1),
	}
}

func (h *HTTPFetcher) Name() string { return "http" }

// Fetch retrieves a page, following redirects. The returned FinalURL is the
// post-redirect URL. Non-2xx statuses are errors; retryable statuses are
// wrapped as transient.
func (h *HTTPFetcher) Fetch(ctx context.Context, url string) (*Result, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "http: rate limit wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, eris.Wrap(err, "http: create request")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "http: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := eris.Errorf("http: status %d", resp.StatusCode)
		if resilience.IsTransientHTTPStatus(resp.StatusCode) {
			return nil, resilience.NewTransientError(statusErr, resp.StatusCode)
		}
		return nil, statusErr
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, eris.Wrap(err, "http: read body")
	}
	if len(body) < minPageBytes {
		return nil, ErrEmptyPage
	}

	return &Result{
		HTML:     string(body),
		FinalURL: resp.Request.URL.String(),
		Source:   "http",
	}, nil
}

// Package fetch retrieves page HTML for the crawler. A plain HTTP fetcher
// handles the common case; a headless-browser fetcher covers JS-rendered
// sites; Chain combines them, escalating to the browser only when the HTTP
// fetch fails in a way consistent with a rendering requirement.
package fetch

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/contact-crawler/internal/resilience"
)

// Result is one fetched page.
type Result struct {
	HTML     string
	FinalURL string
	// Source names the fetcher that produced the result ("http" or "render").
	Source string
}

// Fetcher retrieves a single page. Implementations must honor ctx deadlines.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, url string) (*Result, error)
}

// ErrEmptyPage marks a response too small to hold a real page, the usual
// footprint of a client-side-rendered site.
var ErrEmptyPage = eris.New("fetch: empty page")

// RetryConfig returns the page-fetch retry policy: two retries with a fixed
// one-second backoff, on timeout/network/429/5xx only.
func RetryConfig() resilience.RetryConfig {
	return resilience.RetryConfig{
		MaxAttempts:    3,
		InitialBackoff: time.Second,
		Multiplier:     1.0,
		OnRetry:        resilience.RetryLogger("fetch", "page"),
	}
}

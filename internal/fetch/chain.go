package fetch

import (
	"context"
	neturl "net/url"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/contact-crawler/internal/resilience"
)

// Chain fetches via HTTP first and falls back to headless rendering when the
// failure suggests the page needs JavaScript: an empty shell body, a timeout,
// or a network-level error. Plain HTTP errors like 404 never escalate.
//
// A per-host circuit breaker sits in front of the HTTP fetcher so a host that
// keeps failing transiently stops being hammered for the rest of the batch.
type Chain struct {
	http     Fetcher
	render   Fetcher
	retry    resilience.RetryConfig
	breakers *resilience.ServiceBreakers
}

// NewChain builds a fetch chain. render may be nil, in which case the chain
// is HTTP-only.
func NewChain(http, render Fetcher) *Chain {
	cfg := resilience.DefaultCircuitBreakerConfig()
	cfg.ShouldTrip = resilience.IsTransient
	cfg.OnStateChange = func(from, to resilience.CircuitState) {
		zap.L().Warn("fetch circuit state change",
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	}
	return &Chain{
		http:     http,
		render:   render,
		retry:    RetryConfig(),
		breakers: resilience.NewServiceBreakers(cfg),
	}
}

func (c *Chain) Name() string { return "chain" }

// Fetch runs the chain. Each fetcher gets the page-fetch retry policy.
func (c *Chain) Fetch(ctx context.Context, url string) (*Result, error) {
	breaker := c.breakers.Get(hostOf(url))
	res, httpErr := resilience.ExecuteVal(ctx, breaker, func(ctx context.Context) (*Result, error) {
		return resilience.DoVal(ctx, c.retry, func(ctx context.Context) (*Result, error) {
			return c.http.Fetch(ctx, url)
		})
	})
	if httpErr == nil {
		return res, nil
	}

	if c.render == nil || !renderWorthy(httpErr) {
		return nil, httpErr
	}

	zap.L().Debug("escalating to headless render",
		zap.String("url", url),
		zap.String("http_error", httpErr.Error()),
	)

	res, renderErr := resilience.DoVal(ctx, c.retry, func(ctx context.Context) (*Result, error) {
		return c.render.Fetch(ctx, url)
	})
	if renderErr != nil {
		return nil, eris.Wrap(httpErr, "fetch failed (render fallback also failed)")
	}
	return res, nil
}

// renderWorthy reports whether an HTTP failure is consistent with a
// JS-rendering requirement rather than a genuinely missing page. An open
// circuit never escalates; the host is known down.
func renderWorthy(err error) bool {
	if eris.Is(err, resilience.ErrCircuitOpen) {
		return false
	}
	return eris.Is(err, ErrEmptyPage) || resilience.IsTransient(err)
}

func hostOf(rawURL string) string {
	u, err := neturl.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return u.Host
}

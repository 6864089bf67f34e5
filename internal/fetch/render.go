package fetch

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"
)

// RenderFetcher fetches pages through headless Chrome, for sites whose
// content only exists after client-side rendering. Strictly heavier than
// HTTPFetcher; Chain calls it last.
type RenderFetcher struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	timeout  time.Duration
}

// NewRenderFetcher starts a shared Chrome allocator reused across pages.
// Close must be called when the fetcher is no longer needed.
func NewRenderFetcher(timeout time.Duration) *RenderFetcher {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(userAgent),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &RenderFetcher{allocCtx: allocCtx, cancel: cancel, timeout: timeout}
}

func (r *RenderFetcher) Name() string { return "render" }

// Fetch navigates to the URL in a fresh tab, waits for the body, and returns
// the rendered DOM.
func (r *RenderFetcher) Fetch(ctx context.Context, url string) (*Result, error) {
	tabCtx, cancelTab := chromedp.NewContext(r.allocCtx)
	defer cancelTab()

	runCtx, cancelRun := context.WithTimeout(tabCtx, r.timeout)
	defer cancelRun()

	// Stop early if the caller's context goes away.
	go func() {
		select {
		case <-ctx.Done():
			cancelRun()
		case <-runCtx.Done():
		}
	}()

	var html, finalURL string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Location(&finalURL),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, eris.Wrapf(err, "render: %s", url)
	}
	if len(html) < minPageBytes {
		return nil, ErrEmptyPage
	}

	return &Result{HTML: html, FinalURL: finalURL, Source: "render"}, nil
}

// Close shuts down the shared browser allocator.
func (r *RenderFetcher) Close() error {
	r.cancel()
	return nil
}

// Package crawler orchestrates the per-domain crawl: homepage fetch with URL
// variants, key-page detection, tiered page selection, extractor fan-out, and
// final dedup plus primary-fact selection.
package crawler

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/contact-crawler/internal/dedupe"
	"github.com/sells-group/contact-crawler/internal/enrich"
	"github.com/sells-group/contact-crawler/internal/extract"
	"github.com/sells-group/contact-crawler/internal/fetch"
	"github.com/sells-group/contact-crawler/internal/model"
	"github.com/sells-group/contact-crawler/internal/urlutil"
)

// Page budgets per crawl tier. Every domain starts STANDARD; escalation to
// DEEP happens once, after the initial page set is processed.
const (
	standardMaxPages = 8
	deepMaxPages     = 15
)

// ErrInvalidDomain is returned when the seed URL has no resolvable
// registrable domain.
var ErrInvalidDomain = eris.New("crawler: invalid domain")

// Crawler runs domain crawls. One Crawler is shared across domains; all
// per-domain state lives in the crawl struct.
type Crawler struct {
	fetcher  fetch.Fetcher
	enricher enrich.Extractor // nil disables enrichment
}

// New creates a Crawler. enricher may be nil.
func New(fetcher fetch.Fetcher, enricher enrich.Extractor) *Crawler {
	return &Crawler{fetcher: fetcher, enricher: enricher}
}

// crawl is the per-domain aggregate. Nothing in it crosses a domain boundary.
type crawl struct {
	opts   model.CrawlOptions
	record *model.DomainRecord

	candidates []scoredLink
	seen       map[string]bool
	renderUsed bool
}

// CrawlDomain crawls one registrable domain and returns its record. It fails
// only when the domain cannot be derived from the seed URL or the homepage is
// unreachable through every URL variant; page-level failures are recorded in
// the record's errors and never abort the crawl.
func (c *Crawler) CrawlDomain(ctx context.Context, startURL string, opts model.CrawlOptions) (*model.DomainRecord, error) {
	domain := urlutil.RegistrableDomain(startURL)
	if domain == "" {
		return nil, eris.Wrapf(ErrInvalidDomain, "%s", startURL)
	}

	cr := &crawl{
		opts: opts,
		record: &model.DomainRecord{
			Domain:   domain,
			KeyPages: make(map[model.PageCategory]string),
			Socials:  make(model.Socials),
		},
		seen: make(map[string]bool),
	}

	// Homepage, trying URL variants until one answers.
	home, homeURL, err := c.fetchHomepage(ctx, cr, startURL)
	if err != nil {
		return nil, err
	}

	homeDoc, err := goquery.NewDocumentFromReader(strings.NewReader(home.HTML))
	if err != nil {
		return nil, eris.Wrap(err, "crawler: parse homepage")
	}
	cr.record.KeyPages = detectKeyPages(homeDoc, homeURL)

	// Initial page set: homepage + key pages + top-scored internal links up
	// to the STANDARD budget.
	pages := []string{urlutil.Normalize(homeURL)}
	cr.seen[pages[0]] = true
	for _, cat := range model.AllPageCategories() {
		if u, ok := cr.record.KeyPages[cat]; ok {
			n := urlutil.Normalize(u)
			if !cr.seen[n] {
				cr.seen[n] = true
				pages = append(pages, n)
			}
		}
	}
	cr.addCandidates(extractLinks(homeDoc, homeURL))
	for len(pages) < standardMaxPages && len(cr.candidates) > 0 {
		next := cr.popCandidate()
		if next == "" {
			break
		}
		pages = append(pages, next)
	}

	// The homepage result is already in hand; process it without refetching.
	c.processFetched(ctx, cr, home, pages[0])
	for _, u := range pages[1:] {
		c.processPage(ctx, cr, u)
	}

	if c.shouldEscalate(cr) {
		zap.L().Debug("escalating to deep tier", zap.String("domain", domain))
		for len(cr.record.PagesVisited) < deepMaxPages {
			next := cr.popCandidate()
			if next == "" {
				break
			}
			c.processPage(ctx, cr, next)
		}
	}

	c.finalize(cr)
	return cr.record, nil
}

// fetchHomepage tries the seed URL and its generated variants in order.
func (c *Crawler) fetchHomepage(ctx context.Context, cr *crawl, startURL string) (*fetch.Result, string, error) {
	var lastErr error
	for _, variant := range urlutil.HomepageVariants(startURL) {
		res, err := c.fetcher.Fetch(ctx, variant)
		if err != nil {
			lastErr = err
			continue
		}
		cr.record.FinalURL = res.FinalURL
		if cr.record.FinalURL == "" {
			cr.record.FinalURL = variant
		}
		return res, variant, nil
	}
	if lastErr == nil {
		lastErr = eris.New("crawler: no homepage variants")
	}
	cr.record.Errors = append(cr.record.Errors, model.PageError{URL: startURL, Error: lastErr.Error()})
	return nil, "", eris.Wrap(lastErr, "crawler: homepage unreachable")
}

// processPage fetches one page and runs extraction. Fetch failures land in
// the record's errors.
func (c *Crawler) processPage(ctx context.Context, cr *crawl, pageURL string) {
	res, err := c.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		cr.record.Errors = append(cr.record.Errors, model.PageError{URL: pageURL, Error: err.Error()})
		return
	}
	c.processFetched(ctx, cr, res, pageURL)
}

// processFetched records the visit, re-checks key-page membership, harvests
// candidate links, and runs the enabled extractors.
func (c *Crawler) processFetched(ctx context.Context, cr *crawl, res *fetch.Result, pageURL string) {
	finalURL := res.FinalURL
	if finalURL == "" {
		finalURL = pageURL
	}
	cr.record.PagesVisited = append(cr.record.PagesVisited, finalURL)
	if res.Source == "render" {
		cr.renderUsed = true
	}

	if cat := matchKeyPage(finalURL); cat != "" {
		if _, ok := cr.record.KeyPages[cat]; !ok {
			cr.record.KeyPages[cat] = finalURL
		}
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(res.HTML)); err == nil {
		cr.addCandidates(extractLinks(doc, finalURL))
	}

	// Extractors get the post-redirect URL so fact provenance matches the
	// visited-pages list.
	if cr.opts.IncludeContacts {
		cr.record.Emails = append(cr.record.Emails, extract.Emails(res.HTML, finalURL)...)
		cr.record.Phones = append(cr.record.Phones, extract.Phones(res.HTML, finalURL)...)
	}
	if cr.opts.IncludeSocials {
		for platform, links := range extract.Socials(res.HTML, finalURL) {
			cr.record.Socials[platform] = append(cr.record.Socials[platform], links...)
		}
	}
	if cr.opts.IncludeCompany {
		cr.record.Company = model.MergeCompany(cr.record.Company, extract.Company(res.HTML, finalURL))
	}
	if cr.opts.IncludeTeam {
		cr.record.Team = append(cr.record.Team, extract.Team(res.HTML, finalURL)...)
	}

	c.enrichPage(ctx, cr, res.HTML, finalURL)
}

// enrichPage runs LLM enrichment on key pages. Purely additive; every failure
// is swallowed at warn level.
func (c *Crawler) enrichPage(ctx context.Context, cr *crawl, html, pageURL string) {
	if c.enricher == nil {
		return
	}
	hint := enrichHint(cr, pageURL)
	if hint == "" {
		return
	}

	res, err := c.enricher.Extract(ctx, html, pageURL, hint)
	if err != nil {
		zap.L().Warn("enrichment failed",
			zap.String("url", pageURL),
			zap.Error(err),
		)
		return
	}
	if cr.opts.IncludeCompany && res.Company != nil {
		cr.record.Company = model.MergeCompany(cr.record.Company, res.Company)
	}
	if cr.opts.IncludeTeam {
		cr.record.Team = append(cr.record.Team, res.Team...)
	}
}

// enrichHint maps a page to its enrichment prompt, or "" when the page is
// not worth an LLM call.
func enrichHint(cr *crawl, pageURL string) enrich.PageHint {
	for cat, u := range cr.record.KeyPages {
		if u != pageURL {
			continue
		}
		switch cat {
		case model.PageLegal:
			return enrich.HintLegal
		case model.PageContact:
			return enrich.HintContact
		case model.PageTeam:
			return enrich.HintTeam
		}
	}
	return ""
}

// shouldEscalate decides whether the crawl moves to the DEEP tier after the
// STANDARD pages are done.
func (c *Crawler) shouldEscalate(cr *crawl) bool {
	rec := cr.record

	// A detected team page that was never visited.
	if teamURL, ok := rec.KeyPages[model.PageTeam]; ok && !visited(rec.PagesVisited, teamURL) {
		return true
	}
	// Richly structured site.
	if len(rec.KeyPages) >= 4 {
		return true
	}
	if cr.renderUsed {
		return true
	}
	if cr.opts.IncludeContacts && len(rec.Emails) == 0 && len(rec.Phones) == 0 {
		return true
	}
	if cr.opts.IncludeTeam && len(rec.Team) == 0 {
		if _, ok := rec.KeyPages[model.PageTeam]; ok {
			return true
		}
	}
	if cr.opts.IncludeCompany {
		if rec.Company == nil || rec.Company.LegalName == "" || rec.Company.Address.IsZero() {
			return true
		}
	}
	return false
}

// finalize dedups the aggregate and selects the primary facts.
func (c *Crawler) finalize(cr *crawl) {
	rec := cr.record
	if cr.opts.IncludeContacts {
		rec.Emails = dedupe.Emails(rec.Emails)
		rec.Phones = dedupe.Phones(rec.Phones)
		rec.PrimaryEmail = selectPrimaryEmail(rec.Emails)
		rec.PrimaryPhone = selectPrimaryPhone(rec.Phones)
	}
	if cr.opts.IncludeSocials {
		rec.Socials = dedupe.Socials(rec.Socials)
	}
	if cr.opts.IncludeTeam {
		rec.Team = dedupe.Team(rec.Team)
	}
	if rec.Company.IsZero() {
		rec.Company = nil
	}
}

func (cr *crawl) addCandidates(links []scoredLink) {
	for _, l := range links {
		if !cr.seen[l.url] {
			cr.seen[l.url] = true
			cr.candidates = append(cr.candidates, l)
		}
	}
}

// popCandidate removes and returns the highest-scored unvisited candidate.
func (cr *crawl) popCandidate() string {
	bestIdx := -1
	for i := range cr.candidates {
		if bestIdx == -1 || cr.candidates[i].score > cr.candidates[bestIdx].score {
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return ""
	}
	u := cr.candidates[bestIdx].url
	cr.candidates = append(cr.candidates[:bestIdx], cr.candidates[bestIdx+1:]...)
	return u
}

func visited(pages []string, u string) bool {
	n := urlutil.Normalize(u)
	for _, p := range pages {
		if urlutil.Normalize(p) == n {
			return true
		}
	}
	return false
}

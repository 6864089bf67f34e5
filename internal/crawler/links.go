package crawler

import (
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/contact-crawler/internal/model"
	"github.com/sells-group/contact-crawler/internal/urlutil"
)

// scoredLink is an internal link candidate for crawling, ranked by how likely
// it is to carry contact or legal facts.
type scoredLink struct {
	url   string
	score int
}

// Category weights for link ranking. Contact pages are worth the most, then
// legal notices, then team/privacy/about.
var categoryScores = map[model.PageCategory]int{
	model.PageContact: 120,
	model.PageLegal:   110,
	model.PageTeam:    100,
	model.PagePrivacy: 90,
	model.PageAbout:   80,
}

const (
	headerNavFooterScore = 50
	genericKeywordScore  = 40
)

var (
	paginationQueryRe = regexp.MustCompile(`(?i)[?&](page|p)=\d+`)
	paginationPathRe  = regexp.MustCompile(`(?i)/page/\d+/?$`)
	genericKeywordRe  = regexp.MustCompile(`(?i)(legal|imprint|mentions|privacy|cookies|contact|about|team|equipe)`)
)

// extractLinks collects same-domain links from a page with their crawl
// scores, best first. Pagination links and assets are skipped; duplicate URLs
// keep their best score.
func extractLinks(doc *goquery.Document, baseURL string) []scoredLink {
	best := make(map[string]int)
	var order []string

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if href == "" || strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
			return
		}
		resolved := urlutil.Resolve(baseURL, href)
		if resolved == "" || !urlutil.SameDomain(resolved, baseURL) || urlutil.IsAsset(resolved) {
			return
		}
		u, err := url.Parse(resolved)
		if err != nil {
			return
		}
		if paginationQueryRe.MatchString("?"+u.RawQuery) || paginationPathRe.MatchString(u.Path) {
			return
		}

		score := scoreLink(a, strings.ToLower(u.Path), strings.ToLower(strings.TrimSpace(a.Text())))
		norm := urlutil.Normalize(resolved)
		if prev, ok := best[norm]; !ok {
			best[norm] = score
			order = append(order, norm)
		} else if score > prev {
			best[norm] = score
		}
	})

	links := make([]scoredLink, 0, len(order))
	for _, u := range order {
		links = append(links, scoredLink{url: u, score: best[u]})
	}
	sort.SliceStable(links, func(i, j int) bool { return links[i].score > links[j].score })
	return links
}

func scoreLink(a *goquery.Selection, path, text string) int {
	score := 0
	if a.Closest("header, nav, footer, .header, .nav, .footer").Length() > 0 {
		score += headerNavFooterScore
	}

	combined := path + " " + text
	for cat, weight := range categoryScores {
		for _, hint := range keyPathHints[cat] {
			if strings.Contains(combined, strings.TrimPrefix(hint, "/")) {
				score += weight
				break
			}
		}
	}

	if genericKeywordRe.MatchString(combined) {
		score += genericKeywordScore
	}
	return score
}

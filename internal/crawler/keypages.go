package crawler

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/contact-crawler/internal/model"
	"github.com/sells-group/contact-crawler/internal/urlutil"
)

// keyPathHints are the path fragments matched against homepage links to
// locate each key page. First matching link per category wins, in document
// order.
var keyPathHints = map[model.PageCategory][]string{
	model.PageContact: {"/contact", "/contact-us", "/nous-contacter", "/contactez-nous"},
	model.PageAbout:   {"/about", "/about-us", "/a-propos", "/qui-sommes-nous"},
	model.PageTeam:    {"/team", "/our-team", "/equipe", "/notre-equipe", "/staff", "/people"},
	model.PageLegal:   {"/legal", "/mentions-legales", "/imprint", "/mentions", "/legal-notice"},
	model.PagePrivacy: {"/privacy", "/politique-de-confidentialite", "/confidentialite", "/privacy-policy"},
}

// extendedKeyPatterns widen the match when re-checking pages already fetched;
// a page reached through a scored link can still turn out to be a key page.
var extendedKeyPatterns = map[model.PageCategory][]string{
	model.PageContact: {"contact", "nous-contacter", "contactez"},
	model.PageAbout:   {"about", "story", "a-propos", "qui-sommes", "our-story"},
	model.PageTeam:    {"team", "equipe", "staff", "people", "leadership"},
	model.PageLegal:   {"legal", "disclaimer", "mentions", "imprint", "legal-notice"},
	model.PagePrivacy: {"privacy", "confidentialite", "politique-de-confidentialite", "cookies"},
}

// detectKeyPages scans homepage anchors for links matching the key-path
// hints. Only same-domain, non-asset links count.
func detectKeyPages(doc *goquery.Document, baseURL string) map[model.PageCategory]string {
	keyPages := make(map[model.PageCategory]string)

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if href == "" || strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
			return
		}
		resolved := urlutil.Resolve(baseURL, href)
		if resolved == "" || !urlutil.SameDomain(resolved, baseURL) || urlutil.IsAsset(resolved) {
			return
		}

		lower := strings.ToLower(resolved)
		path := pathOf(resolved)
		for _, cat := range model.AllPageCategories() {
			if _, found := keyPages[cat]; found {
				continue
			}
			for _, hint := range keyPathHints[cat] {
				if path == hint || strings.Contains(path, hint) || strings.Contains(lower, hint) {
					keyPages[cat] = resolved
					break
				}
			}
		}
	})

	return keyPages
}

// matchKeyPage classifies an already-fetched page against both the path
// hints and the extended patterns. Returns "" when the page matches nothing.
func matchKeyPage(pageURL string) model.PageCategory {
	lower := strings.ToLower(pageURL)
	path := pathOf(pageURL)

	for _, cat := range model.AllPageCategories() {
		for _, hint := range keyPathHints[cat] {
			if path == hint || strings.Contains(path, hint) || strings.Contains(lower, hint) {
				return cat
			}
		}
		for _, pattern := range extendedKeyPatterns[cat] {
			if strings.Contains(path, pattern) || strings.Contains(lower, pattern) {
				return cat
			}
		}
	}
	return ""
}

func pathOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Path)
}

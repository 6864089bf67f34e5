package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/contact-crawler/internal/jsonld"
	"github.com/sells-group/contact-crawler/internal/model"
	"github.com/sells-group/contact-crawler/internal/normalize"
	"github.com/sells-group/contact-crawler/internal/urlutil"
)

// emailRe matches an email candidate in free text. Go regexps have no
// lookahead, so trailing-letter concatenations like "contact@domain.frDirecteur"
// match with an over-long apparent TLD; urlutil.ValidEmailDomain rejects those
// downstream because "domain.frdirecteur" is not an ICANN registrable domain.
var emailRe = regexp.MustCompile(`[a-zA-Z0-9._+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,24}`)

var mailtoRe = regexp.MustCompile(`(?i)mailto:([^?&]+)`)

// Emails extracts email facts from a page. Sources in order: mailto links,
// free-text regex scan, JSON-LD email/contactPoint fields. Earlier sources
// win the within-page dedup.
func Emails(html, sourceURL string) []model.EmailFact {
	doc, err := parseDoc(html)
	if err != nil {
		return nil
	}
	domain := urlutil.RegistrableDomain(sourceURL)

	var facts []model.EmailFact
	seen := make(map[string]bool)

	// JSON-LD is read before scripts are stripped for the text scan.
	schemaEmails := jsonld.Emails(doc)

	doc.Find(`a[href^="mailto:"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		m := mailtoRe.FindStringSubmatch(href)
		if m == nil {
			return
		}
		raw := strings.TrimSpace(m[1])
		if normalize.ShouldFilterEmail(raw) {
			return
		}
		value := normalize.Email(raw)
		if seen[value] {
			return
		}
		seen[value] = true

		text := strings.TrimSpace(a.Text())
		context := a.Closest("section, div, article").Text()
		if len(context) > 200 {
			context = context[:200]
		}
		signals := []string{model.SignalMailto}
		if emailDomain(value) == domain {
			signals = append(signals, model.SignalSameDomain)
		}
		snippet := text
		if snippet == "" {
			snippet = value
		}
		facts = append(facts, model.EmailFact{
			Value:     value,
			Type:      normalize.EmailType(value, text+" "+context),
			Priority:  model.PrioritySecondary,
			Signals:   signals,
			SourceURL: sourceURL,
			Snippet:   normalize.Snippet(snippet),
		})
	})

	text := visibleText(doc)
	for _, loc := range emailRe.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		if normalize.ShouldFilterEmail(raw) {
			continue
		}
		value := normalize.Email(raw)
		if seen[value] {
			continue
		}
		if !urlutil.ValidEmailDomain(emailDomain(value)) {
			continue
		}
		// Phone numbers glued onto an address ("...94 91contact@hotel.fr")
		// produce junk local parts; skip matches right after a long digit run.
		if precededByDigitRun(text, loc[0]) {
			continue
		}
		seen[value] = true

		snippet := snippetAround(text, loc[0], loc[1], 50)
		signals := []string{model.SignalText}
		if emailDomain(value) == domain {
			signals = append(signals, model.SignalSameDomain)
		}
		facts = append(facts, model.EmailFact{
			Value:     value,
			Type:      normalize.EmailType(value, snippet),
			Priority:  model.PrioritySecondary,
			Signals:   signals,
			SourceURL: sourceURL,
			Snippet:   normalize.Snippet(snippet),
		})
	}

	for _, raw := range schemaEmails {
		if normalize.ShouldFilterEmail(raw) {
			continue
		}
		value := normalize.Email(raw)
		if seen[value] {
			continue
		}
		seen[value] = true

		signals := []string{model.SignalSchema}
		if emailDomain(value) == domain {
			signals = append(signals, model.SignalSameDomain)
		}
		facts = append(facts, model.EmailFact{
			Value:     value,
			Type:      normalize.EmailType(value, ""),
			Priority:  model.PrioritySecondary,
			Signals:   signals,
			SourceURL: sourceURL,
			Snippet:   value,
		})
	}

	return facts
}

func emailDomain(email string) string {
	_, domain, _ := strings.Cut(email, "@")
	return domain
}

// precededByDigitRun reports whether the text immediately before pos ends in
// a phone-like sequence carrying 7 or more digits.
func precededByDigitRun(text string, pos int) bool {
	digits := 0
	for i := pos - 1; i >= 0; i-- {
		c := text[i]
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == ' ' || c == '.' || c == '-' || c == '(' || c == ')' || c == '+':
			// phone separators, keep scanning
		default:
			return digits >= 7
		}
	}
	return digits >= 7
}

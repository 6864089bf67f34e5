// Package normalize canonicalizes the raw strings the extractors pull out of
// pages: email addresses, phone numbers, context snippets, and the country
// lookups used to interpret them.
package normalize

import (
	"regexp"
	"strings"

	"github.com/sells-group/contact-crawler/internal/model"
)

// emailFilters are local-part substrings that mark generic or test addresses.
var emailFilters = []string{
	"noreply", "donotreply", "no-reply", "no_reply",
	"example", "test", "test@", "@example", "sample",
	"mailer-daemon", "postmaster", "abuse", "webmaster",
}

// excludedEmailDomains are data-protection authorities and example/test
// domains that show up in privacy policies but never belong to the site.
var excludedEmailDomains = map[string]bool{
	"agpd.es":         true, // Spanish data-protection authority
	"cnil.fr":         true, // French data-protection authority
	"ico.org.uk":      true, // UK Information Commissioner's Office
	"edoeb.admin.ch":  true, // Swiss data-protection authority
	"mail.com":        true,
	"example.com":     true,
	"test.com":        true,
	"mailservice.com": true,
	"email.com":       true,
	"domain.com":      true,
	"yourdomain.com":  true,
}

// emailTypePatterns classify an address by substrings of address+context.
var emailTypePatterns = []struct {
	typ      model.EmailType
	patterns []string
}{
	{model.EmailSales, []string{"sales", "commercial", "vente", "business"}},
	{model.EmailSupport, []string{"support", "help", "aide", "assistance"}},
	{model.EmailBooking, []string{"booking", "reservation", "réservation", "reserve"}},
	{model.EmailPress, []string{"press", "media", "presse", "communication"}},
	{model.EmailBilling, []string{"billing", "facturation", "compta", "accounting"}},
}

var leadingDigitsRe = regexp.MustCompile(`^\d+([a-z])`)

// Email lowercases and trims an address, strips trailing punctuation, and
// removes digit prefixes glued on by adjacent phone numbers
// ("00hotel@operaliege.com" -> "hotel@operaliege.com").
func Email(email string) string {
	n := strings.ToLower(strings.TrimSpace(email))
	n = strings.TrimRight(n, ".,;:")
	n = leadingDigitsRe.ReplaceAllString(n, "$1")
	return n
}

// ShouldFilterEmail reports whether an address is a generic/test address or
// belongs to an excluded domain.
func ShouldFilterEmail(email string) bool {
	n := Email(email)
	if n == "" || !strings.Contains(n, "@") {
		return true
	}
	for _, f := range emailFilters {
		if strings.Contains(n, f) {
			return true
		}
	}
	_, domain, _ := strings.Cut(n, "@")
	return excludedEmailDomains[domain]
}

// EmailType classifies an address from its value and surrounding context.
func EmailType(email, context string) model.EmailType {
	combined := strings.ToLower(email) + " " + strings.ToLower(context)
	for _, group := range emailTypePatterns {
		for _, p := range group.patterns {
			if strings.Contains(combined, p) {
				return group.typ
			}
		}
	}
	return model.EmailGeneral
}

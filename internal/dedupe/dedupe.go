// Package dedupe collapses duplicate facts accumulated across a domain's
// pages. All functions keep first-seen order and never mutate their input
// slices.
package dedupe

import (
	"strings"

	"github.com/sells-group/contact-crawler/internal/model"
	"github.com/sells-group/contact-crawler/internal/normalize"
	"github.com/sells-group/contact-crawler/internal/urlutil"
)

// Emails removes exact duplicates and collapses cross-TLD variants of the
// same mailbox (contact@hotel.fr vs contact@hotel.com). The first occurrence
// wins; Emails runs before any primary selection, so no input carries a
// priority worth preferring.
func Emails(emails []model.EmailFact) []model.EmailFact {
	seen := make(map[string]bool) // normalized values already kept
	var out []model.EmailFact

	for _, e := range emails {
		value := normalize.Email(e.Value)
		if seen[value] || hasCrossTLDVariant(value, seen) {
			continue
		}
		seen[value] = true
		out = append(out, e)
	}

	return out
}

// hasCrossTLDVariant reports whether the .fr/.com sibling of value is among
// the already-kept addresses.
func hasCrossTLDVariant(value string, seen map[string]bool) bool {
	local, domain, ok := strings.Cut(value, "@")
	if !ok {
		return false
	}
	var siblings []string
	if strings.HasSuffix(domain, ".fr") {
		siblings = append(siblings, strings.TrimSuffix(domain, ".fr")+".com")
	}
	if strings.HasSuffix(domain, ".com") {
		siblings = append(siblings, strings.TrimSuffix(domain, ".com")+".fr")
	}
	for _, d := range siblings {
		if seen[local+"@"+d] {
			return true
		}
	}
	return false
}

// Phones keeps one fact per dedup key (E.164 when available, digit-only raw
// otherwise).
func Phones(phones []model.PhoneFact) []model.PhoneFact {
	seen := make(map[string]bool)
	var out []model.PhoneFact
	for _, p := range phones {
		key := p.DedupKey()
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// Team collapses members found on multiple pages by name/role/linkedin key.
func Team(members []model.TeamMemberFact) []model.TeamMemberFact {
	seen := make(map[string]bool)
	var out []model.TeamMemberFact
	for _, m := range members {
		key := m.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}

// Socials deduplicates each platform's list by normalized URL and by handle.
func Socials(socials model.Socials) model.Socials {
	out := make(model.Socials, len(socials))
	for platform, links := range socials {
		seenURL := make(map[string]bool)
		seenHandle := make(map[string]bool)
		for _, link := range links {
			u := urlutil.Normalize(link.URL)
			h := strings.ToLower(link.Handle)
			if seenURL[u] || (h != "" && seenHandle[h]) {
				continue
			}
			seenURL[u] = true
			seenHandle[h] = true
			out[platform] = append(out[platform], link)
		}
	}
	return out
}

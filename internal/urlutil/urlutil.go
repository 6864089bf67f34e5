// Package urlutil holds the URL helpers shared by the crawler and extractors:
// registrable-domain extraction, normalization for dedup, same-domain tests,
// asset filtering, homepage variant generation, and country-from-URL hints.
package urlutil

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// assetExtensions are path suffixes the crawler never fetches.
var assetExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".ico",
	".pdf", ".doc", ".docx", ".xls", ".xlsx",
	".css", ".js", ".json", ".xml",
	".zip", ".tar", ".gz", ".rar",
	".mp4", ".mp3", ".avi", ".mov",
}

// RegistrableDomain returns the public-suffix-aware effective domain of a URL
// (e.g. "hotel.co.uk" for "https://www.hotel.co.uk/contact"), or "" when the
// URL has no resolvable ICANN domain.
func RegistrableDomain(rawURL string) string {
	host := hostOf(rawURL)
	if host == "" {
		return ""
	}
	etld1, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return ""
	}
	if _, icann := publicsuffix.PublicSuffix(etld1); !icann {
		return ""
	}
	return etld1
}

// Normalize produces the dedup key form of a URL: fragment stripped, query
// sorted, trailing slash removed except at the root. Unparseable input is
// returned as-is.
func Normalize(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Fragment = ""
	u.RawQuery = u.Query().Encode() // Encode sorts keys
	s := u.String()
	if strings.HasSuffix(s, "/") && u.Path != "/" && u.Path != "" {
		s = strings.TrimSuffix(s, "/")
	}
	return s
}

// SameDomain reports whether two URLs share a registrable domain.
func SameDomain(a, b string) bool {
	da := RegistrableDomain(a)
	db := RegistrableDomain(b)
	return da != "" && db != "" && da == db
}

// IsAsset reports whether the URL path ends in a static-asset extension.
func IsAsset(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	p := strings.ToLower(u.Path)
	for _, ext := range assetExtensions {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}

// Resolve resolves href against base, returning "" when either is unparseable.
func Resolve(baseURL, href string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// ValidEmailDomain reports whether a candidate email domain is a clean ICANN
// registrable domain. Rejects concatenation artifacts like
// "mysmartdigital.frdirecteur" where the apparent TLD is not a real suffix.
func ValidEmailDomain(domain string) bool {
	if domain == "" {
		return false
	}
	if strings.ContainsAny(domain, " \t\"'<>()") {
		return false
	}
	etld1, err := publicsuffix.EffectiveTLDPlusOne(strings.ToLower(domain))
	if err != nil {
		return false
	}
	if _, icann := publicsuffix.PublicSuffix(etld1); !icann {
		return false
	}
	return strings.EqualFold(etld1, domain)
}

// HomepageVariants generates the fallback URLs tried when the seed homepage is
// unreachable: the seed itself, a hyphen-toggled hostname, and the opposite
// scheme. Order matters; the first reachable variant wins.
func HomepageVariants(startURL string) []string {
	variants := []string{startURL}

	u, err := url.Parse(startURL)
	if err != nil || u.Hostname() == "" {
		return variants
	}
	host := u.Hostname()

	if strings.Contains(host, "-") {
		variants = append(variants, strings.Replace(startURL, host, strings.ReplaceAll(host, "-", ""), 1))
	} else {
		// hotelorizonte.com -> hotel-orizonte.com
		label, _, ok := strings.Cut(host, ".")
		if ok && len(label) > 5 && strings.HasPrefix(label, "hotel") {
			withDash := "hotel-" + strings.TrimPrefix(label, "hotel")
			variants = append(variants, strings.Replace(startURL, label, withDash, 1))
		}
	}

	switch u.Scheme {
	case "http":
		variants = append(variants, "https:"+strings.TrimPrefix(startURL, "http:"))
	case "https":
		variants = append(variants, "http:"+strings.TrimPrefix(startURL, "https:"))
	}

	return variants
}

// tldCountry maps public suffixes to ISO-2 country codes. Generic TLDs map to
// nothing on purpose.
var tldCountry = map[string]string{
	"fr": "FR", "de": "DE", "uk": "GB", "co.uk": "GB", "org.uk": "GB",
	"es": "ES", "it": "IT", "be": "BE", "ch": "CH",
	"nl": "NL", "at": "AT", "pt": "PT", "lu": "LU", "mc": "MC",
	"ie": "IE", "dk": "DK", "se": "SE", "no": "NO", "fi": "FI",
	"pl": "PL", "cz": "CZ", "gr": "GR", "us": "US", "ca": "CA",
}

// langCountry maps language subdomain/path hints to ISO-2 codes.
var langCountry = map[string]string{
	"fr": "FR", "de": "DE", "es": "ES", "it": "IT", "nl": "NL", "pt": "PT",
	"en-gb": "GB", "uk": "GB",
}

// CountryFromURL infers an ISO-2 country from a URL, trying the public suffix
// first, then a language subdomain ("fr.hotel.com"), then a leading path
// segment ("/fr/rooms"). Returns "" for generic TLDs with no other hint.
func CountryFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(u.Hostname())

	if suffix, icann := publicsuffix.PublicSuffix(host); icann {
		if cc, ok := tldCountry[suffix]; ok {
			return cc
		}
	}

	if label, _, ok := strings.Cut(host, "."); ok {
		if cc, ok := langCountry[label]; ok {
			return cc
		}
	}

	segs := strings.Split(strings.Trim(strings.ToLower(u.Path), "/"), "/")
	if len(segs) > 0 {
		if cc, ok := langCountry[segs[0]]; ok {
			return cc
		}
	}

	return ""
}

func hostOf(rawURL string) string {
	raw := strings.TrimSpace(rawURL)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

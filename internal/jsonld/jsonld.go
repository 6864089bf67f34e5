// Package jsonld walks schema.org JSON-LD blocks embedded in pages. It
// decodes into plain JSON values and visits them recursively, with explicit
// handling only for the Organization/LocalBusiness shape the extractors care
// about.
package jsonld

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PostalAddress is the subset of schema.org PostalAddress the pipeline reads.
type PostalAddress struct {
	Street     string
	PostalCode string
	City       string
	Country    string
}

// Organization is the subset of schema.org Organization/LocalBusiness the
// pipeline reads.
type Organization struct {
	Name         string
	LegalName    string
	Email        string
	Telephone    string
	Address      *PostalAddress
	OpeningHours any
}

// Organizations parses every ld+json script in the document and returns the
// Organization/LocalBusiness nodes found anywhere in them. Malformed blocks
// are skipped.
func Organizations(doc *goquery.Document) []Organization {
	var orgs []Organization
	eachBlock(doc, func(v any) {
		walk(v, func(obj map[string]any) {
			if !isOrganization(obj) {
				return
			}
			org := Organization{
				Name:      str(obj["name"]),
				LegalName: str(obj["legalName"]),
				Email:     str(obj["email"]),
				Telephone: str(obj["telephone"]),
			}
			if addr, ok := obj["address"].(map[string]any); ok {
				org.Address = &PostalAddress{
					Street:     firstStr(addr, "streetAddress", "street"),
					PostalCode: str(addr["postalCode"]),
					City:       firstStr(addr, "addressLocality", "city"),
					Country:    countryOf(addr["addressCountry"]),
				}
			}
			if hours, ok := obj["openingHoursSpecification"]; ok {
				org.OpeningHours = hours
			}
			orgs = append(orgs, org)
		})
	})
	return orgs
}

// Emails returns every string found under an "email" key or inside a
// "contactPoint" node, across all ld+json blocks.
func Emails(doc *goquery.Document) []string {
	var emails []string
	seen := make(map[string]bool)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" && strings.Contains(s, "@") && !seen[s] {
			seen[s] = true
			emails = append(emails, s)
		}
	}
	eachBlock(doc, func(v any) {
		walk(v, func(obj map[string]any) {
			add(str(obj["email"]))
			if cp, ok := obj["contactPoint"].(map[string]any); ok {
				add(str(cp["email"]))
			}
			if cps, ok := obj["contactPoint"].([]any); ok {
				for _, c := range cps {
					if cp, ok := c.(map[string]any); ok {
						add(str(cp["email"]))
					}
				}
			}
		})
	})
	return emails
}

// eachBlock decodes every <script type="application/ld+json"> in the document
// and passes the decoded value to fn. Parse errors are ignored: broken JSON-LD
// is common and never worth failing a page over.
func eachBlock(doc *goquery.Document, fn func(v any)) {
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		var v any
		if err := json.Unmarshal([]byte(s.Text()), &v); err != nil {
			return
		}
		fn(v)
	})
}

// walk visits every JSON object in v depth-first.
func walk(v any, visit func(obj map[string]any)) {
	switch node := v.(type) {
	case map[string]any:
		visit(node)
		for _, child := range node {
			walk(child, visit)
		}
	case []any:
		for _, child := range node {
			walk(child, visit)
		}
	}
}

// isOrganization matches @type values of Organization/LocalBusiness,
// including the array form and LocalBusiness subtypes like Hotel.
func isOrganization(obj map[string]any) bool {
	match := func(t string) bool {
		switch t {
		case "Organization", "LocalBusiness", "Hotel", "Restaurant", "LodgingBusiness":
			return true
		}
		return false
	}
	switch t := obj["@type"].(type) {
	case string:
		return match(t)
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && match(s) {
				return true
			}
		}
	}
	return false
}

// countryOf handles both the string and the {"@type":"Country","name":...}
// forms of addressCountry.
func countryOf(v any) string {
	switch c := v.(type) {
	case string:
		return strings.TrimSpace(c)
	case map[string]any:
		return str(c["name"])
	}
	return ""
}

func str(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func firstStr(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := str(obj[k]); s != "" {
			return s
		}
	}
	return ""
}

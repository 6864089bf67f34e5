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

// genericTitles are <title> values that name the page, not the business.
var genericTitles = map[string]bool{
	"home": true, "homepage": true, "accueil": true, "welcome": true,
	"privacy policy": true, "politique de confidentialite": true,
	"mentions legales": true, "legal notice": true, "contact": true,
	"about": true, "a propos": true, "cookies": true,
}

// legalNameStop ends a labeled legal-name capture at the next legal-notice
// label. The page text is whitespace-collapsed before matching, so labels are
// the only reliable terminators.
const legalNameStop = `(?:\s+(?:au\s+capital|capital|forme|si[èe]ge|RCS|SIRET|SIREN|num[ée]ro|n°|adresse|t[ée]l|email|courriel|immatricul|directeur|h[ée]berge|inscrite|enregistr[ée]e)\b|[,;.]|$)`

// legalNameMatchers run in order; first submatch wins. Each covers one legal
// phrasing observed on French and English legal-notice pages.
var legalNameMatchers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Raison\s+sociale\s*[:\-]\s*(.+?)` + legalNameStop),
	regexp.MustCompile(`(?i)D[ée]nomination\s+(?:sociale\s+)?[:\-]\s*(.+?)` + legalNameStop),
	regexp.MustCompile(`(?i)Soci[ée]t[ée]\s*[:\-]\s*(.+?)` + legalNameStop),
	// "Le site X est la propriété exclusive de SARL Y, qui l'édite."
	regexp.MustCompile(`(?i)propri[ée]t[ée]\s+exclusive\s+de\s+([^,]+?)(?:\s*,\s*qui|\s+qui)\b`),
	// "owned by Acme Ltd, a company registered in..."
	regexp.MustCompile(`(?i)owned\s+by\s+([^,(]+?)(?:\s*,\s*a\s+company|\s+\()`),
	regexp.MustCompile(`(?i)Legal\s+name\s*[:\-]\s*(.+?)` + legalNameStop),
	// Bare entity-suffix form: "Horizon Software SAS au capital de...". The
	// name words must be capitalized (French particles allowed) so the match
	// cannot swallow the sentence leading up to the name.
	regexp.MustCompile(`\b([\p{Lu}][\p{L}'&.-]+(?:\s+(?:[\p{Lu}][\p{L}'&.-]+|de|du|des|la|le|les|et|d'[\p{L}]+)){0,5}\s+(?:SAS|SARL|SASU|EURL|SA|SCI|SNC|GmbH|Ltd|LLC|BV|AG|SRL))\b`),
}

// addressLabelMatchers locate the address run in legal text. Capture stops at
// the next known legal-notice label.
var addressLabelMatchers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)whose\s+registered\s+office\s+is\s+at\s+(.+?)(?:\s*,\s*(?:with\s+capital|registered|VAT)|$)`),
	regexp.MustCompile(`(?i)Si[èe]ge\s+social\s*[:\-]?\s*(.+?)(?:\s+(?:Immatricul|RCS|SIRET|SIREN|Num[ée]ro|N°|Capital|T[ée]l|Adresse\s+de\s+courrier|Email|Courriel|Directeur|H[ée]berge|Propri[ée]t[ée])\b|$)`),
	regexp.MustCompile(`(?i)Adresse\s+(?:du\s+si[èe]ge|postale)\s*[:\-]?\s*(.+?)(?:\s+(?:Immatricul|RCS|SIRET|SIREN|Num[ée]ro|N°|Capital|T[ée]l|Email|Courriel|Directeur|H[ée]berge|Propri[ée]t[ée])\b|$)`),
	regexp.MustCompile(`(?i)Adresse\s*[:\-]\s*(.+?)(?:\s+(?:Immatricul|RCS|SIRET|SIREN|Num[ée]ro|N°|Capital|T[ée]l|Email|Courriel|Directeur|H[ée]berge|Propri[ée]t[ée])\b|$)`),
}

// parasiticPrefixes are fragments that get glued onto address text in legal
// notices and must be stripped before parsing.
var parasiticPrefixes = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(?:n°\s*)?\d{9}(?:\s?\d{5})?\s*[,\-]?\s*`),           // SIREN/SIRET run
	regexp.MustCompile(`(?i)^\s*repr[ée]sent[ée]e?\s+par\s+son\s+\p{L}+\s*[,]?`), // "représentée par son Président,"
	regexp.MustCompile(`(?i)^\s*au\s+capital\s+(?:social\s+)?de\s+[\d\s.,]+\s*(?:€|euros?)\s*[,]?`),
	regexp.MustCompile(`^\s*\+?\d[\d\s().-]{6,}\d\s*[,]?\s*`), // phone glued in front
}

var postalCodeRe = regexp.MustCompile(`\b(\d{5})\b`)

// legalLabelRe finds the first legal-notice label in the text after a postal
// code; concatenations like "ParisImmatriculée" are common, so no leading
// word boundary.
var legalLabelRe = regexp.MustCompile(`(?i)(Immatricul|RCS|SIRET|SIREN|Num[ée]ro|N°|Adresse|Email|Courriel|Directeur|H[ée]berge|Propri[ée]t[ée]|T[ée]l)`)

var glueRe = regexp.MustCompile(`(\p{Ll})(\p{Lu})`)

// Company extracts the business identity from a page. Layered heuristics fill
// only still-empty fields: meta/title/logo for the display name, JSON-LD for
// the structured block, then legal-notice regexes for legal name and address.
// Never fails; an empty CompanyFact means nothing was found.
func Company(html, sourceURL string) *model.CompanyFact {
	company := &model.CompanyFact{}
	doc, err := parseDoc(html)
	if err != nil {
		return company
	}

	if v, ok := doc.Find(`meta[property="og:site_name"]`).Attr("content"); ok {
		company.Name = strings.TrimSpace(v)
	}
	if company.Name == "" {
		company.Name = nameFromTitle(doc)
	}
	if company.Name == "" {
		company.Name = nameFromLogo(doc)
	}

	fillFromSchema(company, doc)

	legalText := strings.Join(strings.Fields(visibleText(doc)), " ")

	if company.LegalName == "" {
		company.LegalName = matchLegalName(legalText)
	}
	if company.Name == "" && company.LegalName != "" {
		company.Name = company.LegalName
	}

	if company.Address.IsZero() {
		if addr := matchAddress(legalText); addr != nil {
			addr.Country = firstNonEmpty(addr.Country, company.Country)
			company.Address = addr
		}
	}

	resolveCountry(company, legalText, sourceURL)
	return company
}

func nameFromTitle(doc *goquery.Document) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return ""
	}
	// "Hôtel du Parc - Official Site" -> "Hôtel du Parc"
	name := strings.TrimSpace(strings.FieldsFunc(title, func(r rune) bool {
		return r == '-' || r == '|'
	})[0])
	if genericTitles[normalize.Fold(name)] {
		return ""
	}
	return name
}

func nameFromLogo(doc *goquery.Document) string {
	alt, _ := doc.Find(`img[alt*="logo"], .logo img[alt], header img[alt]`).First().Attr("alt")
	alt = strings.TrimSpace(alt)
	if alt == "" || len(alt) >= 100 {
		return ""
	}
	return alt
}

// fillFromSchema copies still-empty fields from the first JSON-LD
// Organization carrying each one.
func fillFromSchema(company *model.CompanyFact, doc *goquery.Document) {
	for _, org := range jsonld.Organizations(doc) {
		if company.Name == "" {
			company.Name = org.Name
		}
		if company.LegalName == "" {
			company.LegalName = org.LegalName
		}
		if company.OpeningHours == nil {
			company.OpeningHours = org.OpeningHours
		}
		if org.Address != nil && company.Address.IsZero() {
			addr := &model.Address{
				Street:     org.Address.Street,
				PostalCode: org.Address.PostalCode,
				City:       org.Address.City,
			}
			if c := org.Address.Country; c != "" {
				if iso := countryToISO(c); iso != "" {
					addr.Country = iso
					addr.CountryName = normalize.CountryName(iso)
				}
			}
			company.Address = addr
			if company.Country == "" && addr.Country != "" {
				company.Country = addr.Country
				company.CountryName = addr.CountryName
			}
		}
	}
}

func matchLegalName(legalText string) string {
	for _, re := range legalNameMatchers {
		if m := re.FindStringSubmatch(legalText); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// matchAddress parses the address run after a legal-notice label: parasitic
// prefixes stripped, then split around the 5-digit postal code into street
// and city, with an embedded country name pulled out of the city fragment.
func matchAddress(legalText string) *model.Address {
	var run string
	for _, re := range addressLabelMatchers {
		if m := re.FindStringSubmatch(legalText); m != nil {
			run = strings.TrimSpace(m[1])
			break
		}
	}
	if run == "" {
		return nil
	}
	for _, re := range parasiticPrefixes {
		run = re.ReplaceAllString(run, "")
	}
	run = strings.Trim(strings.TrimSpace(run), ";,.")

	cp := postalCodeRe.FindStringIndex(run)
	if cp == nil {
		if run == "" {
			return nil
		}
		return &model.Address{Street: run}
	}
	postal := run[cp[0]:cp[1]]
	street := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(run[:cp[0]]), ",-"))

	// The part after the postal code holds the city, often with the next
	// label glued on ("ParisImmatriculée au...").
	after := glueRe.ReplaceAllString(strings.TrimLeft(strings.TrimSpace(run[cp[1]:]), ",-"), "$1 $2")
	if stop := legalLabelRe.FindStringIndex(after); stop != nil {
		after = after[:stop[0]]
	}
	city := strings.TrimSpace(after)

	addr := &model.Address{Street: street, PostalCode: postal, City: city}

	// "Levallois-Perret, France" -> city + country
	if city != "" {
		for _, part := range strings.Split(city, ",") {
			if iso := normalize.CountryFromName(part); iso != "" {
				addr.Country = iso
				addr.CountryName = normalize.CountryName(iso)
				addr.City = strings.TrimSpace(strings.Split(city, ",")[0])
				break
			}
		}
	}
	return addr
}

var countryPhraseRe = regexp.MustCompile(`(?i)\b(?:registered\s+in|incorporated\s+in|domicili[ée]e?\s+en|en|in|at)\s+([\p{L}-]+)(?:\s+([\p{L}-]+))?`)

// matchCountryPhrase scans "registered in X" style phrases, testing the two
// words after the preposition against the country-name table.
func matchCountryPhrase(legalText string) string {
	for _, m := range countryPhraseRe.FindAllStringSubmatch(legalText, 25) {
		if m[2] != "" {
			if iso := normalize.CountryFromName(m[1] + " " + m[2]); iso != "" {
				return iso
			}
		}
		if iso := normalize.CountryFromName(m[1]); iso != "" {
			return iso
		}
	}
	return ""
}

// resolveCountry fills country/countryName with decreasing confidence:
// schema address, a country phrase in the legal text, a standalone country
// token, the French-city heuristic, then the TLD. A French postal code always
// overrides a non-FR resolution.
func resolveCountry(company *model.CompanyFact, legalText, sourceURL string) {
	if company.Country == "" {
		if iso := matchCountryPhrase(legalText); iso != "" {
			setCountry(company, iso)
		}
	}
	if company.Country == "" {
		if iso := normalize.CountryFromContext(legalText); iso != "" {
			setCountry(company, iso)
		}
	}
	if company.Country == "" && company.Address != nil && normalize.IsFrenchCity(company.Address.City) {
		setCountry(company, "FR")
	}
	if company.Country == "" {
		if iso := urlutil.CountryFromURL(sourceURL); iso != "" {
			setCountry(company, iso)
		}
	}

	// Paris-region postal codes are a stronger signal than anything above.
	if company.Address != nil && normalize.IsFrenchRegionPostalCode(company.Address.PostalCode) && company.Country != "FR" {
		company.Country = "FR"
		company.CountryName = normalize.CountryName("FR")
		company.Address.Country = "FR"
		company.Address.CountryName = company.CountryName
	}

	if company.Country != "" && company.Address != nil && company.Address.Country == "" {
		company.Address.Country = company.Country
		company.Address.CountryName = company.CountryName
	}
	if company.Country == "" && company.Address != nil && company.Address.Country != "" {
		company.Country = company.Address.Country
		company.CountryName = company.Address.CountryName
	}
}

func setCountry(company *model.CompanyFact, iso string) {
	company.Country = iso
	company.CountryName = normalize.CountryName(iso)
}

// countryToISO accepts either an ISO-2 code or a country name.
func countryToISO(v string) string {
	v = strings.TrimSpace(v)
	if len(v) == 2 && normalize.CountryName(v) != "" {
		return strings.ToUpper(v)
	}
	return normalize.CountryFromName(v)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/contact-crawler/internal/model"
	"github.com/sells-group/contact-crawler/internal/normalize"
	"github.com/sells-group/contact-crawler/internal/urlutil"
)

// phoneRe over-matches on purpose; the rejection rules below carry the real
// precision.
var phoneRe = regexp.MustCompile(`\+?\d[\d\s().-]{6,}\d`)

var telRe = regexp.MustCompile(`(?i)tel:([^?&]+)`)

// phoneRejection is one independent reason to discard a phone candidate.
// Rules run in order; the first match wins.
type phoneRejection struct {
	name   string
	reject func(raw, snippet string) bool
}

var phoneRejections = []phoneRejection{
	{"digit_bounds", rejectDigitBounds},
	{"date_shape", rejectDateShape},
	{"registration_number", rejectRegistrationNumber},
	{"fax", rejectFax},
	{"gps_coordinate", rejectGPSCoordinate},
}

// Phones extracts phone facts from tel links and free text. Free-text
// candidates additionally need phone-typical separators (or the French
// national 0XXXXXXXXX shape) so tracking and app IDs don't slip through.
func Phones(html, sourceURL string) []model.PhoneFact {
	doc, err := parseDoc(html)
	if err != nil {
		return nil
	}
	countryFromURL := urlutil.CountryFromURL(sourceURL)

	var facts []model.PhoneFact
	exists := func(f model.PhoneFact) bool {
		for i := range facts {
			if facts[i].DedupKey() == f.DedupKey() {
				return true
			}
		}
		return false
	}

	doc.Find(`a[href^="tel:"]`).Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		m := telRe.FindStringSubmatch(href)
		if m == nil {
			return
		}
		raw := strings.TrimSpace(m[1])
		text := strings.TrimSpace(a.Text())
		if rejected(raw, text) {
			return
		}
		valueRaw, valueE164 := normalize.Phone(raw, countryFromURL, normalize.CountryFromContext(text))
		if valueRaw == "" {
			return
		}
		snippet := text
		if snippet == "" {
			snippet = valueRaw
		}
		f := model.PhoneFact{
			ValueRaw:  valueRaw,
			ValueE164: valueE164,
			Priority:  model.PrioritySecondary,
			Signals:   []string{model.SignalTel},
			SourceURL: sourceURL,
			Snippet:   normalize.Snippet(snippet),
		}
		if !exists(f) {
			facts = append(facts, f)
		}
	})

	// Text inside footer/contact sections, for the footer_or_contact signal.
	sectionText := doc.Find("footer, .footer, .contact, #contact").Text()

	text := visibleText(doc)
	for _, loc := range phoneRe.FindAllStringIndex(text, -1) {
		raw := strings.TrimSpace(text[loc[0]:loc[1]])
		snippet := snippetAround(text, loc[0], loc[1], 50)
		if rejected(raw, snippet) {
			continue
		}
		if !hasPhoneShape(raw) {
			continue
		}
		valueRaw, valueE164 := normalize.Phone(raw, countryFromURL, normalize.CountryFromContext(snippet))
		if valueRaw == "" {
			continue
		}
		signals := []string{model.SignalText}
		if strings.Contains(sectionText, raw) {
			signals = append(signals, model.SignalFooterOrContact)
		}
		f := model.PhoneFact{
			ValueRaw:  valueRaw,
			ValueE164: valueE164,
			Priority:  model.PrioritySecondary,
			Signals:   signals,
			SourceURL: sourceURL,
			Snippet:   normalize.Snippet(snippet),
		}
		if !exists(f) {
			facts = append(facts, f)
		}
	}

	return facts
}

func rejected(raw, snippet string) bool {
	for _, r := range phoneRejections {
		if r.reject(raw, snippet) {
			return true
		}
	}
	return false
}

// rejectDigitBounds discards candidates outside the 9..15 digit range. This
// removes short codes, dates, and full SIRET numbers (14 digits) in one rule.
func rejectDigitBounds(raw, _ string) bool {
	n := len(normalize.Digits(raw))
	return n < 9 || n > 15
}

var dateShapeRes = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}[-/.]\d{1,2}[-/.]\d{1,2}`),          // 2024-01-15
	regexp.MustCompile(`^\d{1,2}[-/.]\d{1,2}[-/.](?:19|20)\d{2}`), // 15/01/2024
	regexp.MustCompile(`(?:19|20)\d{2}[-/.]\d{1,2}[-/.]\d{1,2}`),  // embedded ISO date
}

func rejectDateShape(raw, _ string) bool {
	for _, re := range dateShapeRes {
		if re.MatchString(raw) {
			return true
		}
	}
	return false
}

// registrationRe catches French company-registration vocabulary near the
// candidate. RCS numbers in particular take the same "752 808 113" shape as a
// 9-digit phone.
var registrationRe = regexp.MustCompile(`(?i)\b(siret|siren|rcs|tva|vat|immatricul\p{L}*|registration\s+number|company\s+number)\b`)

var frenchVATRe = regexp.MustCompile(`(?i)^FR\d{2}`)

func rejectRegistrationNumber(raw, snippet string) bool {
	return frenchVATRe.MatchString(raw) || registrationRe.MatchString(snippet)
}

// faxRe must appear before the number in the snippet, otherwise a
// "Tel: ... Fax: ..." pair would lose the phone as well.
var faxRe = regexp.MustCompile(`(?i)\b(fax|t[ée]l[ée]copie|facsimile)\b`)

func rejectFax(raw, snippet string) bool {
	idx := strings.Index(snippet, raw)
	if idx < 0 {
		return faxRe.MatchString(snippet)
	}
	return faxRe.MatchString(snippet[:idx])
}

var gpsRe = regexp.MustCompile(`(?i)\b(gps|latitude|longitude|coordonn[ée]es)\b`)

// rejectGPSCoordinate discards decimal-looking values near GPS vocabulary
// (e.g. "latitude 48.856614").
func rejectGPSCoordinate(raw, snippet string) bool {
	if !strings.Contains(raw, ".") {
		return false
	}
	return gpsRe.MatchString(snippet)
}

var frenchNationalRe = regexp.MustCompile(`^0\d{9}$`)

// hasPhoneShape requires an international prefix, a separator, or the French
// national form. Bare digit runs are usually IDs, not phones.
func hasPhoneShape(raw string) bool {
	if strings.HasPrefix(raw, "+") || strings.HasPrefix(raw, "00") {
		return true
	}
	if frenchNationalRe.MatchString(raw) {
		return true
	}
	return strings.ContainsAny(raw, " ().-")
}

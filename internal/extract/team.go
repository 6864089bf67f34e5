package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/contact-crawler/internal/model"
	"github.com/sells-group/contact-crawler/internal/normalize"
)

// teamCardSelectors are tried in order; the first selector with matches wins.
var teamCardSelectors = []string{
	".team-member", ".team-member-card", ".person-card", ".member-card",
	".staff-member", ".employee", ".team-item", `[class*="team"]`,
	`[class*="member"]`, `[class*="person"]`,
}

// nameRe matches a "First Last" shaped run of 2-3 capitalized words,
// accented letters included.
var nameRe = regexp.MustCompile(`([\p{Lu}][\p{Ll}\x{00C0}-\x{024F}'-]+(?:\s+[\p{Lu}][\p{Ll}\x{00C0}-\x{024F}'-]+){1,2})`)

// nameBlocklist rejects section titles and UI labels that pass the name
// shape test.
var nameBlocklist = map[string]bool{
	"our team": true, "the team": true, "notre equipe": true,
	"meet the": true, "meet the team": true, "leadership": true,
	"leadership team": true, "send message": true, "send a": true,
	"contact us": true, "read more": true, "learn more": true,
	"en savoir": true, "sales marketing": true, "sales team": true,
	"front desk": true, "room service": true, "human resources": true,
	"ressources humaines": true, "best regards": true, "opening hours": true,
	"privacy policy": true, "mentions legales": true, "suivez nous": true,
	"follow us": true, "book now": true, "reserver maintenant": true,
}

var rolePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(CEO|CTO|CFO|CMO|COO|Founder|Co-founder|General Manager|Directeur(?:\s+G[ée]n[ée]ral)?|Directrice(?:\s+G[ée]n[ée]rale)?|Pr[ée]sident|Pr[ée]sidente|Manager|Chef|Lead|Concierge)\b`),
	regexp.MustCompile(`([\p{Lu}][\p{Ll}]+(?:\s+[\p{Lu}][\p{Ll}]+)*)\s+(?:Manager|Director|Lead|Head|Chef|Responsable)`),
}

var (
	publicationDirectorRe = regexp.MustCompile(`(?i)(?:Directeur|Directrice|Responsable|Head)\s+(?:de\s+(?:la\s+)?publication|of\s+publication)\s*[:\-]?\s*([\p{Lu}][\p{Ll}\x{00C0}-\x{024F}'-]+(?:\s+[\p{Lu}][\p{Ll}\x{00C0}-\x{024F}'-]+){1,2})`)
	linkedinProfileRe     = regexp.MustCompile(`(?i)linkedin\.com/in/([^/?]+)`)
)

// Team extracts team members from a page. A "Directeur de la publication"
// block in legal text yields one high-confidence member; otherwise team-card
// structures are scanned, falling back to generic containers holding a
// name-shaped string. Members from a recognized card class need one
// corroborating signal beyond the name; members from the generic fallback
// need two, since any hero banner pairs an image with a heading.
func Team(html, sourceURL string) []model.TeamMemberFact {
	doc, err := parseDoc(html)
	if err != nil {
		return nil
	}

	var members []model.TeamMemberFact
	seen := make(map[string]bool)
	add := func(m model.TeamMemberFact) {
		key := m.DedupKey()
		if !seen[key] {
			seen[key] = true
			members = append(members, m)
		}
	}

	if m := publicationDirector(doc, sourceURL); m != nil {
		add(*m)
	}

	cards, generic := findTeamCards(doc)
	minSignals := 1
	if generic {
		minSignals = 2
	}
	cards.Each(func(_ int, card *goquery.Selection) {
		if m := memberFromCard(card, sourceURL, minSignals); m != nil {
			add(*m)
		}
	})

	return members
}

// publicationDirector handles the French legal-notice "Directeur de la
// publication: Jean Dupont" block, the one place a name appears without any
// card structure.
func publicationDirector(doc *goquery.Document, sourceURL string) *model.TeamMemberFact {
	text := strings.Join(strings.Fields(doc.Text()), " ")
	m := publicationDirectorRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	name := strings.TrimSpace(m[1])
	if blockedName(name) {
		return nil
	}
	return &model.TeamMemberFact{
		Name:      name,
		Role:      "Directeur de la publication",
		SourceURL: sourceURL,
		Signals:   []string{model.SignalLegalNotice, model.SignalHasRole},
	}
}

// findTeamCards returns the candidate card elements and whether they came
// from the generic fallback rather than a recognized card class.
func findTeamCards(doc *goquery.Document) (*goquery.Selection, bool) {
	for _, sel := range teamCardSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			return found, false
		}
	}
	// No recognizable card class: fall back to containers pairing an image
	// with a name-shaped string.
	return doc.Find("div, article, section, li").FilterFunction(func(_ int, el *goquery.Selection) bool {
		text := el.Text()
		return el.Find("img").Length() > 0 && len(strings.TrimSpace(text)) > 20 && nameRe.MatchString(text)
	}), true
}

func memberFromCard(card *goquery.Selection, sourceURL string, minSignals int) *model.TeamMemberFact {
	cardText := strings.Join(strings.Fields(card.Text()), " ")
	name := memberName(card, cardText)
	if name == "" {
		return nil
	}

	role := matchRole(cardText)
	email := cardEmail(card)
	linkedin := cardLinkedIn(card)

	var signals []string
	if card.Find("img").Length() > 0 {
		signals = append(signals, model.SignalHasImage)
	}
	if email != "" {
		signals = append(signals, model.SignalHasEmail)
	}
	if linkedin != "" {
		signals = append(signals, model.SignalHasLinkedIn)
	}
	if role != "" {
		signals = append(signals, model.SignalHasRole)
	}
	if len(signals) < minSignals {
		return nil
	}

	return &model.TeamMemberFact{
		Name:      name,
		Role:      role,
		Email:     email,
		LinkedIn:  linkedin,
		SourceURL: sourceURL,
		Signals:   signals,
	}
}

// memberName prefers the card's heading, where the name stands alone. In
// flattened card text the greedy name shape would glue a capitalized role
// onto the name ("Pierre Martin Directeur").
func memberName(card *goquery.Selection, cardText string) string {
	heading := strings.Join(strings.Fields(card.Find("h1, h2, h3, h4, .name, strong").First().Text()), " ")
	for _, cand := range nameRe.FindAllString(heading, 3) {
		if !blockedName(cand) {
			return strings.TrimSpace(cand)
		}
	}
	for _, cand := range nameRe.FindAllString(cardText, 5) {
		if !blockedName(cand) {
			return strings.TrimSpace(cand)
		}
	}
	return ""
}

func matchRole(cardText string) string {
	for _, re := range rolePatterns {
		if m := re.FindStringSubmatch(cardText); m != nil {
			if len(m) > 1 && m[1] != "" {
				return strings.TrimSpace(m[1])
			}
			return strings.TrimSpace(m[0])
		}
	}
	return ""
}

func cardEmail(card *goquery.Selection) string {
	href, ok := card.Find(`a[href^="mailto:"]`).First().Attr("href")
	if !ok {
		return ""
	}
	m := mailtoRe.FindStringSubmatch(href)
	if m == nil {
		return ""
	}
	email := normalize.Email(m[1])
	if normalize.ShouldFilterEmail(email) {
		return ""
	}
	return email
}

func cardLinkedIn(card *goquery.Selection) string {
	href, ok := card.Find(`a[href*="linkedin.com/in/"]`).First().Attr("href")
	if !ok {
		return ""
	}
	m := linkedinProfileRe.FindStringSubmatch(href)
	if m == nil {
		return ""
	}
	return "https://linkedin.com/in/" + m[1]
}

func blockedName(name string) bool {
	return nameBlocklist[normalize.Fold(name)]
}

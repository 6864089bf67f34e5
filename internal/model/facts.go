// Package model defines the fact types produced by the extraction pipeline
// and the per-domain output record.
package model

import "strings"

// PageCategory is a key-page classification the crawler tries to locate for
// every domain.
type PageCategory string

const (
	PageContact PageCategory = "contact"
	PageAbout   PageCategory = "about"
	PageTeam    PageCategory = "team"
	PageLegal   PageCategory = "legal"
	PagePrivacy PageCategory = "privacy"
)

// AllPageCategories returns the fixed set of key-page categories.
func AllPageCategories() []PageCategory {
	return []PageCategory{PageContact, PageAbout, PageTeam, PageLegal, PagePrivacy}
}

// Priority marks a fact as the representative contact point for its domain.
type Priority string

const (
	PriorityPrimary   Priority = "primary"
	PrioritySecondary Priority = "secondary"
)

// Provenance signals attached to extracted facts.
const (
	SignalMailto          = "mailto"
	SignalText            = "text"
	SignalSchema          = "schema"
	SignalSameDomain      = "same_domain"
	SignalTel             = "tel"
	SignalFooterOrContact = "footer_or_contact"
	SignalLegalNotice     = "legal_notice"
	SignalHasImage        = "has_image"
	SignalHasEmail        = "has_email"
	SignalHasLinkedIn     = "has_linkedin"
	SignalHasRole         = "has_role"
	SignalLLM             = "llm"
)

// EmailType classifies an email address by its apparent purpose.
type EmailType string

const (
	EmailGeneral EmailType = "general"
	EmailSales   EmailType = "sales"
	EmailSupport EmailType = "support"
	EmailBooking EmailType = "booking"
	EmailPress   EmailType = "press"
	EmailBilling EmailType = "billing"
	EmailOther   EmailType = "other"
)

// EmailFact is one extracted email address with provenance.
type EmailFact struct {
	Value     string    `json:"value"`
	Type      EmailType `json:"type"`
	Priority  Priority  `json:"priority"`
	Signals   []string  `json:"signals"`
	SourceURL string    `json:"sourceUrl"`
	Snippet   string    `json:"snippet,omitempty"`
}

// HasSignal reports whether the fact carries the given provenance signal.
func (e *EmailFact) HasSignal(signal string) bool {
	return hasSignal(e.Signals, signal)
}

// PhoneFact is one extracted phone number with provenance. ValueE164 is empty
// when the country could not be determined or the number failed validation;
// ValueRaw is always retained.
type PhoneFact struct {
	ValueRaw  string   `json:"valueRaw"`
	ValueE164 string   `json:"valueE164,omitempty"`
	Priority  Priority `json:"priority"`
	Signals   []string `json:"signals"`
	SourceURL string   `json:"sourceUrl"`
	Snippet   string   `json:"snippet,omitempty"`
}

// HasSignal reports whether the fact carries the given provenance signal.
func (p *PhoneFact) HasSignal(signal string) bool {
	return hasSignal(p.Signals, signal)
}

// DedupKey returns the E.164 form when present, otherwise the digits of the
// raw value.
func (p *PhoneFact) DedupKey() string {
	if p.ValueE164 != "" {
		return p.ValueE164
	}
	return digitsOnly(p.ValueRaw)
}

// Platform identifies a social network slot in the output record. Twitter and
// X are unified under PlatformX.
type Platform string

const (
	PlatformLinkedIn  Platform = "linkedin"
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformX         Platform = "x"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
	PlatformPinterest Platform = "pinterest"
	PlatformGoogle    Platform = "google"
)

// AllPlatforms returns the social platform slots in output order.
func AllPlatforms() []Platform {
	return []Platform{
		PlatformLinkedIn, PlatformFacebook, PlatformInstagram, PlatformX,
		PlatformTikTok, PlatformYouTube, PlatformPinterest, PlatformGoogle,
	}
}

// SocialLink is one social profile link with its per-platform handle.
type SocialLink struct {
	URL       string `json:"url"`
	Handle    string `json:"handle"`
	SourceURL string `json:"sourceUrl"`
}

// Socials maps platform slots to the links found for them.
type Socials map[Platform][]SocialLink

// TeamMemberFact is one extracted team member.
type TeamMemberFact struct {
	Name      string   `json:"name"`
	Role      string   `json:"role,omitempty"`
	Email     string   `json:"email,omitempty"`
	LinkedIn  string   `json:"linkedin,omitempty"`
	SourceURL string   `json:"sourceUrl"`
	Signals   []string `json:"signals"`
}

// DedupKey collapses members found on multiple pages.
func (t *TeamMemberFact) DedupKey() string {
	return strings.ToLower(t.Name) + "|" + strings.ToLower(t.Role) + "|" + strings.ToLower(t.LinkedIn)
}

// PageError records a page-level failure without aborting the domain crawl.
type PageError struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// DomainRecord is the unit of output: one per crawled registrable domain.
type DomainRecord struct {
	Domain       string                  `json:"domain"`
	FinalURL     string                  `json:"finalUrl"`
	KeyPages     map[PageCategory]string `json:"keyPages,omitempty"`
	PagesVisited []string                `json:"pagesVisited,omitempty"`
	Errors       []PageError             `json:"errors,omitempty"`
	Emails       []EmailFact             `json:"emails,omitempty"`
	Phones       []PhoneFact             `json:"phones,omitempty"`
	Socials      Socials                 `json:"socials,omitempty"`
	Company      *CompanyFact            `json:"company,omitempty"`
	Team         []TeamMemberFact        `json:"team,omitempty"`
	PrimaryEmail string                  `json:"primaryEmail,omitempty"`
	PrimaryPhone string                  `json:"primaryPhone,omitempty"`
}

// CrawlOptions gates extractor invocation and fetch behavior for one run.
type CrawlOptions struct {
	TimeoutSecs       int
	UseRenderFallback bool
	IncludeCompany    bool
	IncludeContacts   bool
	IncludeSocials    bool
	IncludeTeam       bool
	// KeyPaths overrides the built-in key-page path hints. Reserved.
	KeyPaths []string
}

// DefaultCrawlOptions mirrors the documented input defaults.
func DefaultCrawlOptions() CrawlOptions {
	return CrawlOptions{
		TimeoutSecs:       30,
		UseRenderFallback: true,
		IncludeCompany:    true,
		IncludeContacts:   true,
		IncludeSocials:    true,
		IncludeTeam:       true,
	}
}

func hasSignal(signals []string, signal string) bool {
	for _, s := range signals {
		if s == signal {
			return true
		}
	}
	return false
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

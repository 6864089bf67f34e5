package crawler

import (
	"strings"

	"github.com/sells-group/contact-crawler/internal/model"
)

// selectPrimaryEmail marks exactly one email primary and returns its value.
// Same-domain addresses win; within each pool, mailto beats contact/legal
// page provenance beats a "general" type beats first-found.
func selectPrimaryEmail(emails []model.EmailFact) string {
	if len(emails) == 0 {
		return ""
	}
	for i := range emails {
		emails[i].Priority = model.PrioritySecondary
	}

	sameDomain := func(e *model.EmailFact) bool { return e.HasSignal(model.SignalSameDomain) }
	mailto := func(e *model.EmailFact) bool { return e.HasSignal(model.SignalMailto) }
	contactPage := func(e *model.EmailFact) bool {
		return strings.Contains(e.SourceURL, "/contact") || strings.Contains(e.SourceURL, "/legal") ||
			strings.Contains(e.SourceURL, "/mentions")
	}
	general := func(e *model.EmailFact) bool { return e.Type == model.EmailGeneral }
	any := func(*model.EmailFact) bool { return true }

	rules := []func(*model.EmailFact) bool{
		func(e *model.EmailFact) bool { return sameDomain(e) && mailto(e) },
		func(e *model.EmailFact) bool { return sameDomain(e) && contactPage(e) },
		func(e *model.EmailFact) bool { return sameDomain(e) && general(e) },
		sameDomain,
		mailto,
		contactPage,
		general,
		any,
	}
	for _, rule := range rules {
		for i := range emails {
			if rule(&emails[i]) {
				emails[i].Priority = model.PriorityPrimary
				return emails[i].Value
			}
		}
	}
	return ""
}

// selectPrimaryPhone marks at most one phone primary and returns its best
// value (E.164 when available). Tel links outrank footer/contact placement,
// which outranks plain E.164 validity.
func selectPrimaryPhone(phones []model.PhoneFact) string {
	if len(phones) == 0 {
		return ""
	}
	for i := range phones {
		phones[i].Priority = model.PrioritySecondary
	}

	rules := []func(*model.PhoneFact) bool{
		func(p *model.PhoneFact) bool { return p.HasSignal(model.SignalTel) },
		func(p *model.PhoneFact) bool { return p.HasSignal(model.SignalFooterOrContact) },
		func(p *model.PhoneFact) bool { return p.ValueE164 != "" },
		func(*model.PhoneFact) bool { return true },
	}
	for _, rule := range rules {
		for i := range phones {
			if rule(&phones[i]) {
				phones[i].Priority = model.PriorityPrimary
				if phones[i].ValueE164 != "" {
					return phones[i].ValueE164
				}
				return phones[i].ValueRaw
			}
		}
	}
	return ""
}

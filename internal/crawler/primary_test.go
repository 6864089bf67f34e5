package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/contact-crawler/internal/model"
)

func TestSelectPrimaryEmail_MailtoBeatsContactPage(t *testing.T) {
	t.Parallel()

	emails := []model.EmailFact{
		{Value: "press@hotelacme.fr", Signals: []string{model.SignalSameDomain}, SourceURL: "https://hotelacme.fr/contact"},
		{Value: "info@hotelacme.fr", Signals: []string{model.SignalSameDomain, model.SignalMailto}},
	}

	assert.Equal(t, "info@hotelacme.fr", selectPrimaryEmail(emails))
	assert.Equal(t, model.PriorityPrimary, emails[1].Priority)
	assert.Equal(t, model.PrioritySecondary, emails[0].Priority)
}

func TestSelectPrimaryEmail_SameDomainBeatsMailto(t *testing.T) {
	t.Parallel()

	emails := []model.EmailFact{
		{Value: "hotelacme@gmail.com", Signals: []string{model.SignalMailto}},
		{Value: "info@hotelacme.fr", Signals: []string{model.SignalSameDomain}},
	}

	assert.Equal(t, "info@hotelacme.fr", selectPrimaryEmail(emails))
}

func TestSelectPrimaryEmail_ContactPageFallback(t *testing.T) {
	t.Parallel()

	emails := []model.EmailFact{
		{Value: "hotelacme@gmail.com", Type: model.EmailOther, SourceURL: "https://hotelacme.fr/rooms"},
		{Value: "resa@orange.fr", Type: model.EmailOther, SourceURL: "https://hotelacme.fr/contact"},
	}

	assert.Equal(t, "resa@orange.fr", selectPrimaryEmail(emails))
}

func TestSelectPrimaryEmail_Empty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, selectPrimaryEmail(nil))
}

func TestSelectPrimaryPhone_TelBeatsFooter(t *testing.T) {
	t.Parallel()

	phones := []model.PhoneFact{
		{ValueRaw: "01 42 96 10 95", ValueE164: "+33142961095", Signals: []string{model.SignalFooterOrContact}},
		{ValueRaw: "09 70 80 90 00", Signals: []string{model.SignalTel}},
	}

	assert.Equal(t, "09 70 80 90 00", selectPrimaryPhone(phones))
	assert.Equal(t, model.PriorityPrimary, phones[1].Priority)
	assert.Equal(t, model.PrioritySecondary, phones[0].Priority)
}

func TestSelectPrimaryPhone_E164Preferred(t *testing.T) {
	t.Parallel()

	phones := []model.PhoneFact{
		{ValueRaw: "555 0100"},
		{ValueRaw: "01 42 96 10 95", ValueE164: "+33142961095"},
	}

	assert.Equal(t, "+33142961095", selectPrimaryPhone(phones))
}

func TestSelectPrimaryPhone_RawFallback(t *testing.T) {
	t.Parallel()

	phones := []model.PhoneFact{{ValueRaw: "555 0100 2345"}}
	assert.Equal(t, "555 0100 2345", selectPrimaryPhone(phones))
	assert.Equal(t, model.PriorityPrimary, phones[0].Priority)
}

func TestSelectPrimaryPhone_Empty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, selectPrimaryPhone(nil))
}

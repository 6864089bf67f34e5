package dedupe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/contact-crawler/internal/model"
)

func TestEmails_ExactDuplicates(t *testing.T) {
	t.Parallel()

	in := []model.EmailFact{
		{Value: "info@hotel.fr", SourceURL: "https://hotel.fr"},
		{Value: "INFO@hotel.fr", SourceURL: "https://hotel.fr/contact"},
		{Value: "resa@hotel.fr"},
	}

	out := Emails(in)
	require.Len(t, out, 2)
	assert.Equal(t, "https://hotel.fr", out[0].SourceURL)
}

func TestEmails_CrossTLDCollapsed(t *testing.T) {
	t.Parallel()

	in := []model.EmailFact{
		{Value: "contact@hotel.fr"},
		{Value: "contact@hotel.com"},
		{Value: "other@hotel.com"},
	}

	out := Emails(in)
	require.Len(t, out, 2)
	assert.Equal(t, "contact@hotel.fr", out[0].Value)
	assert.Equal(t, "other@hotel.com", out[1].Value)
}

func TestEmails_CrossTLDFirstSeenWins(t *testing.T) {
	t.Parallel()

	// Dedup runs before primary selection, so order decides which TLD
	// sibling survives.
	in := []model.EmailFact{
		{Value: "contact@hotel.com", SourceURL: "https://hotel.com"},
		{Value: "contact@hotel.fr", SourceURL: "https://hotel.com/fr"},
	}

	out := Emails(in)
	require.Len(t, out, 1)
	assert.Equal(t, "contact@hotel.com", out[0].Value)
	assert.Equal(t, "https://hotel.com", out[0].SourceURL)
}

func TestEmails_UnrelatedDomainsKept(t *testing.T) {
	t.Parallel()

	in := []model.EmailFact{
		{Value: "contact@hotel.fr"},
		{Value: "contact@otherhotel.com"},
	}

	out := Emails(in)
	assert.Len(t, out, 2)
}

func TestPhones(t *testing.T) {
	t.Parallel()

	in := []model.PhoneFact{
		{ValueRaw: "+33 1 42 96 10 95", ValueE164: "+33142961095"},
		{ValueRaw: "01 42 96 10 95", ValueE164: "+33142961095"},
		{ValueRaw: "01 42 96 10 96"},
		{ValueRaw: "01.42.96.10.96"},
	}

	out := Phones(in)
	require.Len(t, out, 2)
	assert.Equal(t, "+33 1 42 96 10 95", out[0].ValueRaw)
	assert.Equal(t, "01 42 96 10 96", out[1].ValueRaw)
}

func TestTeam(t *testing.T) {
	t.Parallel()

	in := []model.TeamMemberFact{
		{Name: "Jane Doe", Role: "CEO"},
		{Name: "jane doe", Role: "CEO"},
		{Name: "Jane Doe", Role: "CTO"},
	}

	out := Team(in)
	assert.Len(t, out, 2)
}

func TestSocials(t *testing.T) {
	t.Parallel()

	in := model.Socials{
		model.PlatformLinkedIn: {
			{URL: "https://linkedin.com/company/acme", Handle: "acme"},
			{URL: "https://linkedin.com/company/acme/", Handle: "acme"},
			{URL: "https://linkedin.com/company/acme-group", Handle: "acme-group"},
		},
	}

	out := Socials(in)
	require.Len(t, out[model.PlatformLinkedIn], 2)
	assert.Equal(t, "acme", out[model.PlatformLinkedIn][0].Handle)
	assert.Equal(t, "acme-group", out[model.PlatformLinkedIn][1].Handle)
}

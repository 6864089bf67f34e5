package jsonld

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestOrganizations_Hotel(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<html><head><script type="application/ld+json">
	{
		"@context": "https://schema.org",
		"@type": "Hotel",
		"name": "Hotel Acme",
		"legalName": "ACME SAS",
		"telephone": "+33 1 42 96 10 95",
		"address": {
			"@type": "PostalAddress",
			"streetAddress": "12 rue de la Paix",
			"postalCode": "75002",
			"addressLocality": "Paris",
			"addressCountry": {"@type": "Country", "name": "France"}
		},
		"openingHoursSpecification": [{"opens": "08:00"}]
	}
	</script></head><body></body></html>`)

	orgs := Organizations(doc)
	require.Len(t, orgs, 1)
	assert.Equal(t, "Hotel Acme", orgs[0].Name)
	assert.Equal(t, "ACME SAS", orgs[0].LegalName)
	assert.Equal(t, "+33 1 42 96 10 95", orgs[0].Telephone)
	require.NotNil(t, orgs[0].Address)
	assert.Equal(t, "12 rue de la Paix", orgs[0].Address.Street)
	assert.Equal(t, "France", orgs[0].Address.Country)
	assert.NotNil(t, orgs[0].OpeningHours)
}

func TestOrganizations_GraphAndTypeArray(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<html><head><script type="application/ld+json">
	{
		"@graph": [
			{"@type": "WebSite", "name": "site"},
			{"@type": ["Organization", "Thing"], "name": "Acme"}
		]
	}
	</script></head><body></body></html>`)

	orgs := Organizations(doc)
	require.Len(t, orgs, 1)
	assert.Equal(t, "Acme", orgs[0].Name)
}

func TestOrganizations_BrokenJSONSkipped(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<html><head>
	<script type="application/ld+json">{not valid json</script>
	<script type="application/ld+json">{"@type":"LocalBusiness","name":"Acme"}</script>
	</head><body></body></html>`)

	orgs := Organizations(doc)
	require.Len(t, orgs, 1)
	assert.Equal(t, "Acme", orgs[0].Name)
}

func TestEmails(t *testing.T) {
	t.Parallel()

	doc := parse(t, `<html><head><script type="application/ld+json">
	{
		"@type": "Hotel",
		"email": "info@acme.fr",
		"contactPoint": [
			{"@type": "ContactPoint", "email": "resa@acme.fr"},
			{"@type": "ContactPoint", "email": "info@acme.fr"}
		]
	}
	</script></head><body></body></html>`)

	assert.Equal(t, []string{"info@acme.fr", "resa@acme.fr"}, Emails(doc))
}

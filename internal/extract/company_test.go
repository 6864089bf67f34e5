package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompany_NameFromOGSiteName(t *testing.T) {
	t.Parallel()

	html := `<html><head>
		<meta property="og:site_name" content="Hôtel du Parc">
		<title>Accueil - Hôtel du Parc</title>
	</head><body></body></html>`

	c := Company(html, "https://hotelduparc.fr")
	assert.Equal(t, "Hôtel du Parc", c.Name)
}

func TestCompany_NameFromTitle(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>Hôtel du Parc | Official Site</title></head><body></body></html>`

	c := Company(html, "https://hotelduparc.fr")
	assert.Equal(t, "Hôtel du Parc", c.Name)
}

func TestCompany_GenericTitleIgnored(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>Accueil</title></head><body></body></html>`

	c := Company(html, "https://hotelduparc.com")
	assert.Empty(t, c.Name)
}

func TestCompany_NameFromLogoAlt(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>Accueil</title></head>
	<body><header><img src="/logo.png" alt="Hotel Acme logo"></header></body></html>`

	c := Company(html, "https://hotelacme.com")
	assert.Equal(t, "Hotel Acme logo", c.Name)
}

func TestCompany_LegalNameFromRaisonSociale(t *testing.T) {
	t.Parallel()

	html := `<html><body><p>Raison sociale : HOTEL DU PARC SAS</p><p>Capital social</p></body></html>`

	c := Company(html, "https://hotelduparc.fr")
	assert.Equal(t, "HOTEL DU PARC SAS", c.LegalName)
}

func TestCompany_LegalNameFromProprieteExclusive(t *testing.T) {
	t.Parallel()

	html := `<html><body><p>Le site est la propriété exclusive de SARL Mer et Soleil, qui l'édite.</p></body></html>`

	c := Company(html, "https://meretsoleil.fr")
	assert.Equal(t, "SARL Mer et Soleil", c.LegalName)
}

func TestCompany_LegalNameFromEntitySuffix(t *testing.T) {
	t.Parallel()

	html := `<html><body><p>Le présent site est édité par Horizon Software SAS au capital de 50 000 euros.</p></body></html>`

	c := Company(html, "https://horizon.fr")
	assert.Equal(t, "Horizon Software SAS", c.LegalName)
}

func TestCompany_AddressFromSiegeSocial(t *testing.T) {
	t.Parallel()

	html := `<html><body><p>Siège social : 12 rue de la Paix 75002 Paris Immatriculée au RCS de Paris</p></body></html>`

	c := Company(html, "https://hotelacme.fr")
	require.NotNil(t, c.Address)
	assert.Equal(t, "12 rue de la Paix", c.Address.Street)
	assert.Equal(t, "75002", c.Address.PostalCode)
	assert.Equal(t, "Paris", c.Address.City)
	assert.Equal(t, "FR", c.Country)
	assert.Equal(t, "France", c.CountryName)
}

func TestCompany_AddressGluedCityLabel(t *testing.T) {
	t.Parallel()

	// No space between the city and the next label.
	html := `<html><body><p>Siège social : 8 avenue Foch 75116 ParisImmatriculée au RCS</p></body></html>`

	c := Company(html, "https://hotelacme.fr")
	require.NotNil(t, c.Address)
	assert.Equal(t, "Paris", c.Address.City)
	assert.Equal(t, "75116", c.Address.PostalCode)
}

func TestCompany_AddressWithCountrySuffix(t *testing.T) {
	t.Parallel()

	html := `<html><body><p>Adresse : 3 place Bellecour 69002 Lyon, France Tél 04 72 00 00 00</p></body></html>`

	c := Company(html, "https://hotelacme.com")
	require.NotNil(t, c.Address)
	assert.Equal(t, "Lyon", c.Address.City)
	assert.Equal(t, "FR", c.Address.Country)
	assert.Equal(t, "France", c.Address.CountryName)
}

func TestCompany_ParisPostalCodeOverridesTLD(t *testing.T) {
	t.Parallel()

	// .com domain, no explicit country, but a Paris-region postal code.
	html := `<html><body><p>Siège social : 5 rue Royale 75008 Paris</p></body></html>`

	c := Company(html, "https://hotelacme.com")
	require.NotNil(t, c.Address)
	assert.Equal(t, "FR", c.Country)
	assert.Equal(t, "FR", c.Address.Country)
}

func TestCompany_SchemaOrgOrganization(t *testing.T) {
	t.Parallel()

	html := `<html><head><script type="application/ld+json">
	{
		"@context": "https://schema.org",
		"@type": "Hotel",
		"name": "Hotel Acme",
		"legalName": "ACME HOSPITALITY SAS",
		"address": {
			"@type": "PostalAddress",
			"streetAddress": "12 rue de la Paix",
			"postalCode": "75002",
			"addressLocality": "Paris",
			"addressCountry": "FR"
		}
	}
	</script></head><body></body></html>`

	c := Company(html, "https://hotelacme.com")
	assert.Equal(t, "Hotel Acme", c.Name)
	assert.Equal(t, "ACME HOSPITALITY SAS", c.LegalName)
	require.NotNil(t, c.Address)
	assert.Equal(t, "Paris", c.Address.City)
	assert.Equal(t, "FR", c.Address.Country)
	assert.Equal(t, "FR", c.Country)
}

func TestCompany_CountryFromTLDFallback(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>Hotel Bella</title></head><body><p>Benvenuti</p></body></html>`

	c := Company(html, "https://hotelbella.it")
	assert.Equal(t, "IT", c.Country)
	assert.Equal(t, "Italy", c.CountryName)
}

func TestCompany_NothingFound(t *testing.T) {
	t.Parallel()

	c := Company(`<html><head><title>Contact</title></head><body><p>hi</p></body></html>`, "https://acme.com")
	assert.True(t, c.IsZero())
}

package urlutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistrableDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain", "https://hotelacme.fr", "hotelacme.fr"},
		{"www stripped", "https://www.hotelacme.fr/contact", "hotelacme.fr"},
		{"multi-label suffix", "https://www.hotel.co.uk/rooms", "hotel.co.uk"},
		{"subdomain", "https://booking.hotelacme.com", "hotelacme.com"},
		{"schemeless", "hotelacme.com/contact", "hotelacme.com"},
		{"bare tld", "https://com", ""},
		{"empty", "", ""},
		{"garbage", "not a url at all", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, RegistrableDomain(tt.url))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"trailing slash removed", "https://acme.fr/contact/", "https://acme.fr/contact"},
		{"root slash kept", "https://acme.fr/", "https://acme.fr/"},
		{"fragment stripped", "https://acme.fr/about#team", "https://acme.fr/about"},
		{"query sorted", "https://acme.fr/p?b=2&a=1", "https://acme.fr/p?a=1&b=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.url))
		})
	}
}

func TestSameDomain(t *testing.T) {
	t.Parallel()

	assert.True(t, SameDomain("https://www.acme.fr/a", "https://acme.fr/b"))
	assert.True(t, SameDomain("https://booking.acme.fr", "https://acme.fr"))
	assert.False(t, SameDomain("https://acme.fr", "https://acme.com"))
	assert.False(t, SameDomain("", "https://acme.fr"))
}

func TestIsAsset(t *testing.T) {
	t.Parallel()

	assert.True(t, IsAsset("https://acme.fr/brochure.pdf"))
	assert.True(t, IsAsset("https://acme.fr/img/logo.PNG"))
	assert.True(t, IsAsset("https://acme.fr/styles.css"))
	assert.False(t, IsAsset("https://acme.fr/contact"))
	assert.False(t, IsAsset("https://acme.fr/pdf-guide"))
}

func TestResolve(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://acme.fr/contact", Resolve("https://acme.fr/about", "/contact"))
	assert.Equal(t, "https://acme.fr/about/team", Resolve("https://acme.fr/about/", "team"))
	assert.Equal(t, "https://other.com/x", Resolve("https://acme.fr", "https://other.com/x"))
}

func TestValidEmailDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		domain string
		want   bool
	}{
		{"plain fr", "hotelacme.fr", true},
		{"co.uk", "hotel.co.uk", true},
		{"concatenation artifact", "mysmartdigital.frdirecteur", false},
		{"subdomain is not registrable", "mail.hotelacme.fr", false},
		{"bare suffix", "fr", false},
		{"contains quote", `acme.fr"`, false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ValidEmailDomain(tt.domain))
		})
	}
}

func TestHomepageVariants(t *testing.T) {
	t.Parallel()

	t.Run("hyphen toggled off", func(t *testing.T) {
		t.Parallel()
		got := HomepageVariants("https://hotel-orizonte.com")
		assert.Equal(t, []string{
			"https://hotel-orizonte.com",
			"https://hotelorizonte.com",
			"http://hotel-orizonte.com",
		}, got)
	})

	t.Run("hotel prefix gains hyphen", func(t *testing.T) {
		t.Parallel()
		got := HomepageVariants("http://hotelorizonte.com")
		assert.Equal(t, []string{
			"http://hotelorizonte.com",
			"http://hotel-orizonte.com",
			"https://hotelorizonte.com",
		}, got)
	})

	t.Run("seed always first", func(t *testing.T) {
		t.Parallel()
		got := HomepageVariants("https://acme.fr")
		assert.Equal(t, "https://acme.fr", got[0])
	})
}

func TestCountryFromURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want string
	}{
		{"fr tld", "https://hotelacme.fr", "FR"},
		{"co.uk tld", "https://hotel.co.uk", "GB"},
		{"language subdomain", "https://fr.hotelacme.com", "FR"},
		{"language path", "https://hotelacme.com/de/zimmer", "DE"},
		{"generic com", "https://hotelacme.com/rooms", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CountryFromURL(tt.url))
		})
	}
}

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupByDomain(t *testing.T) {
	t.Parallel()

	seeds := groupByDomain([]string{
		"https://www.hotelacme.fr/contact",
		"https://hotelacme.fr",
		"https://other.com",
		"",
		"https://localhost/admin",
	})

	require.Len(t, seeds, 2)
	assert.Equal(t, "hotelacme.fr", seeds[0].domain)
	assert.Equal(t, "https://hotelacme.fr", seeds[0].url)
	assert.Equal(t, "other.com", seeds[1].domain)
}

func TestBetterSeed(t *testing.T) {
	t.Parallel()

	assert.True(t, betterSeed("https://hotelacme.fr", "https://www.hotelacme.fr"))
	assert.False(t, betterSeed("https://www.hotelacme.fr", "https://hotelacme.fr"))
	assert.True(t, betterSeed("https://hotelacme.fr", "https://hotelacme.fr/contact"))
	assert.False(t, betterSeed("https://hotelacme.fr/contact", "https://hotelacme.fr"))
}

func TestReadURLFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("https://hotelacme.fr\n\n# staging\nhttps://other.com\n"), 0o644))

	urls, err := readURLFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://hotelacme.fr", "https://other.com"}, urls)
}

func TestReadURLFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := readURLFile(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}

package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// countryNames maps lowercase, diacritic-folded country names (English,
// French, and native spellings) to ISO-2 codes. Manually curated and
// incomplete by construction; treat as best-effort geocoding-by-keyword.
var countryNames = map[string]string{
	"france": "FR",
	"united kingdom": "GB", "uk": "GB", "great britain": "GB", "england": "GB", "royaume-uni": "GB",
	"germany": "DE", "deutschland": "DE", "allemagne": "DE",
	"spain": "ES", "espana": "ES", "espagne": "ES",
	"italy": "IT", "italia": "IT", "italie": "IT",
	"belgium": "BE", "belgique": "BE", "belgie": "BE",
	"switzerland": "CH", "suisse": "CH", "schweiz": "CH",
	"netherlands": "NL", "nederland": "NL", "pays-bas": "NL", "holland": "NL",
	"austria": "AT", "osterreich": "AT", "autriche": "AT",
	"portugal":   "PT",
	"luxembourg": "LU",
	"monaco":     "MC",
	"ireland":    "IE", "irlande": "IE",
	"denmark": "DK", "danemark": "DK",
	"sweden": "SE", "suede": "SE",
	"norway": "NO", "norvege": "NO",
	"finland": "FI", "finlande": "FI",
	"poland": "PL", "pologne": "PL",
	"greece": "GR", "grece": "GR",
	"czech republic": "CZ", "czechia": "CZ",
	"united states": "US", "usa": "US", "etats-unis": "US",
	"canada":  "CA",
	"morocco": "MA", "maroc": "MA",
	"tunisia": "TN", "tunisie": "TN",
	"mauritius": "MU", "maurice": "MU",
}

// isoCountryNames maps ISO-2 codes back to an English display name.
var isoCountryNames = map[string]string{
	"FR": "France", "GB": "United Kingdom", "DE": "Germany", "ES": "Spain",
	"IT": "Italy", "BE": "Belgium", "CH": "Switzerland", "NL": "Netherlands",
	"AT": "Austria", "PT": "Portugal", "LU": "Luxembourg", "MC": "Monaco",
	"IE": "Ireland", "DK": "Denmark", "SE": "Sweden", "NO": "Norway",
	"FI": "Finland", "PL": "Poland", "GR": "Greece", "CZ": "Czechia",
	"US": "United States", "CA": "Canada", "MA": "Morocco", "TN": "Tunisia",
	"MU": "Mauritius",
}

// cityCountry maps well-known city names (capitals plus frequent hotel
// locations) to ISO-2 codes, for per-snippet country detection.
var cityCountry = map[string]string{
	"paris": "FR", "london": "GB", "londres": "GB", "berlin": "DE",
	"munich": "DE", "madrid": "ES", "barcelona": "ES", "barcelone": "ES",
	"rome": "IT", "roma": "IT", "milan": "IT", "milano": "IT",
	"brussels": "BE", "bruxelles": "BE", "geneva": "CH", "geneve": "CH",
	"zurich": "CH", "amsterdam": "NL", "vienna": "AT", "vienne": "AT",
	"lisbon": "PT", "lisbonne": "PT", "porto": "PT", "dublin": "IE",
	"copenhagen": "DK", "stockholm": "SE", "oslo": "NO", "helsinki": "FI",
	"warsaw": "PL", "athens": "GR", "prague": "CZ", "marrakech": "MA",
	"casablanca": "MA", "tunis": "TN", "new york": "US", "montreal": "CA",
}

// frenchCities are cities used by the French-context bias in address country
// resolution. Stored folded and lowercase.
var frenchCities = map[string]bool{
	"paris": true, "marseille": true, "lyon": true, "toulouse": true,
	"nice": true, "nantes": true, "montpellier": true, "strasbourg": true,
	"bordeaux": true, "lille": true, "rennes": true, "reims": true,
	"toulon": true, "saint-etienne": true, "le havre": true, "grenoble": true,
	"dijon": true, "angers": true, "nimes": true, "villeurbanne": true,
	"levallois-perret": true, "boulogne-billancourt": true,
	"neuilly-sur-seine": true, "courbevoie": true, "issy-les-moulineaux": true,
	"cannes": true, "antibes": true, "aix-en-provence": true, "avignon": true,
	"annecy": true, "biarritz": true, "bayonne": true, "la rochelle": true,
	"saint-tropez": true, "courchevel": true, "megeve": true, "chamonix": true,
	"deauville": true, "honfleur": true, "versailles": true, "fontainebleau": true,
	"colmar": true, "mulhouse": true, "metz": true, "nancy": true,
	"tours": true, "orleans": true, "rouen": true, "caen": true,
	"perpignan": true, "beziers": true, "arles": true, "ajaccio": true,
	"bastia": true, "porto-vecchio": true, "calvi": true, "saint-malo": true,
}

// parisRegionPrefixes are the postal-code prefixes of Île-de-France
// départements, used as a strong French-context signal.
var parisRegionPrefixes = []string{"75", "77", "78", "91", "92", "93", "94", "95"}

// Fold strips diacritics and lowercases, so "Mégève" matches "megeve".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.ToLower(out)
}

// CountryFromName maps a country name in any supported spelling to ISO-2, or
// "" when unknown.
func CountryFromName(name string) string {
	return countryNames[strings.TrimSpace(Fold(name))]
}

// CountryName returns the English display name for an ISO-2 code.
func CountryName(iso string) string {
	return isoCountryNames[strings.ToUpper(iso)]
}

// IsFrenchCity reports whether name matches the curated French city list.
func IsFrenchCity(name string) bool {
	return frenchCities[strings.TrimSpace(Fold(name))]
}

// IsFrenchRegionPostalCode reports whether a 5-digit postal code belongs to
// the Paris region (75/77/78/91–95).
func IsFrenchRegionPostalCode(code string) bool {
	if len(code) != 5 {
		return false
	}
	for _, p := range parisRegionPrefixes {
		if strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}

var callingCodeRe = regexp.MustCompile(`\+\s?(\d{1,3})`)

// countryNameRe matches any known country name as a word. Built from the fold
// keys that contain only letters, spaces, and hyphens.
var countryNameRe = func() *regexp.Regexp {
	names := make([]string, 0, len(countryNames))
	for name := range countryNames {
		names = append(names, regexp.QuoteMeta(name))
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(names, "|") + `)\b`)
}()

// CountryFromContext infers an ISO-2 country from the text surrounding a
// phone number or address. Priority: explicit calling-code prefix, then a
// known city name, then a country name.
func CountryFromContext(snippet string) string {
	if snippet == "" {
		return ""
	}
	folded := Fold(snippet)

	if m := callingCodeRe.FindStringSubmatch(snippet); m != nil {
		if cc := CallingCodeCountry(m[1]); cc != "" {
			return cc
		}
	}

	for city, cc := range cityCountry {
		if containsWord(folded, city) {
			return cc
		}
	}

	if m := countryNameRe.FindString(folded); m != "" {
		return countryNames[m]
	}

	return ""
}

// containsWord reports whether text contains needle bounded by non-letter
// characters. Both arguments must already be folded/lowercased.
func containsWord(text, needle string) bool {
	start := 0
	for {
		idx := strings.Index(text[start:], needle)
		if idx < 0 {
			return false
		}
		abs := start + idx
		end := abs + len(needle)
		leftOK := abs == 0 || !isLetterByte(text[abs-1])
		rightOK := end == len(text) || !isLetterByte(text[end])
		if leftOK && rightOK {
			return true
		}
		start = abs + 1
	}
}

func isLetterByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

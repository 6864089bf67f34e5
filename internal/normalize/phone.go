package normalize

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// callingCodes maps international calling-code prefixes to ISO-2 regions.
// Used to recognize numbers written without "+" or "00"
// (e.g. "33123456789" -> FR, "441483276699" -> GB).
var callingCodes = map[string]string{
	"1": "US", "7": "RU",
	"20": "EG", "27": "ZA", "30": "GR", "31": "NL", "32": "BE", "33": "FR",
	"34": "ES", "36": "HU", "39": "IT", "40": "RO", "41": "CH", "43": "AT",
	"44": "GB", "45": "DK", "46": "SE", "47": "NO", "48": "PL", "49": "DE",
	"51": "PE", "52": "MX", "53": "CU", "54": "AR", "55": "BR", "56": "CL",
	"57": "CO", "58": "VE", "60": "MY", "61": "AU", "62": "ID", "63": "PH",
	"64": "NZ", "65": "SG", "66": "TH", "81": "JP", "82": "KR", "84": "VN",
	"86": "CN", "90": "TR", "91": "IN", "92": "PK", "93": "AF", "94": "LK",
	"95": "MM", "98": "IR",
	"212": "MA", "213": "DZ", "216": "TN", "218": "LY", "220": "GM",
	"221": "SN", "222": "MR", "223": "ML", "224": "GN", "225": "CI",
	"226": "BF", "227": "NE", "228": "TG", "229": "BJ", "230": "MU",
	"231": "LR", "232": "SL", "233": "GH", "234": "NG", "235": "TD",
	"236": "CF", "237": "CM", "238": "CV", "239": "ST", "240": "GQ",
	"241": "GA", "242": "CG", "243": "CD", "244": "AO", "245": "GW",
	"248": "SC", "249": "SD", "250": "RW", "251": "ET", "252": "SO",
	"253": "DJ", "254": "KE", "255": "TZ", "256": "UG", "257": "BI",
	"258": "MZ", "260": "ZM", "261": "MG", "262": "RE", "263": "ZW",
	"264": "NA", "265": "MW", "266": "LS", "267": "BW", "268": "SZ",
	"269": "KM", "291": "ER", "297": "AW", "298": "FO", "299": "GL",
	"350": "GI", "351": "PT", "352": "LU", "353": "IE", "354": "IS",
	"355": "AL", "356": "MT", "357": "CY", "358": "FI", "359": "BG",
	"370": "LT", "371": "LV", "372": "EE", "373": "MD", "374": "AM",
	"375": "BY", "376": "AD", "377": "MC", "378": "SM", "380": "UA",
	"381": "RS", "382": "ME", "383": "XK", "385": "HR", "386": "SI",
	"387": "BA", "389": "MK",
	"420": "CZ", "421": "SK", "423": "LI",
	"500": "FK", "501": "BZ", "502": "GT", "503": "SV", "504": "HN",
	"505": "NI", "506": "CR", "507": "PA", "508": "PM", "509": "HT",
	"590": "GP", "591": "BO", "592": "GY", "593": "EC", "594": "GF",
	"595": "PY", "596": "MQ", "597": "SR", "598": "UY", "599": "CW",
	"670": "TL", "673": "BN", "674": "NR", "675": "PG", "676": "TO",
	"677": "SB", "678": "VU", "679": "FJ", "680": "PW", "681": "WF",
	"682": "CK", "683": "NU", "685": "WS", "686": "KI", "687": "NC",
	"688": "TV", "689": "PF", "690": "TK", "691": "FM", "692": "MH",
	"850": "KP", "852": "HK", "853": "MO", "855": "KH", "856": "LA",
	"880": "BD", "886": "TW",
	"960": "MV", "961": "LB", "962": "JO", "963": "SY", "964": "IQ",
	"965": "KW", "966": "SA", "967": "YE", "968": "OM", "970": "PS",
	"971": "AE", "972": "IL", "973": "BH", "974": "QA", "975": "BT",
	"976": "MN", "977": "NP",
	"992": "TJ", "993": "TM", "994": "AZ", "995": "GE", "996": "KG", "998": "UZ",
}

var nonDigitRe = regexp.MustCompile(`\D`)

// Digits returns only the decimal digits of s.
func Digits(s string) string {
	return nonDigitRe.ReplaceAllString(s, "")
}

// CallingCodeCountry returns the ISO-2 region for a digit string starting
// with an international calling code, trying 3-, 2-, then 1-digit prefixes.
func CallingCodeCountry(digits string) string {
	for l := 3; l >= 1; l-- {
		if len(digits) < l {
			continue
		}
		if cc, ok := callingCodes[digits[:l]]; ok {
			return cc
		}
	}
	return ""
}

// detectInternational reports the region when a bare digit string plausibly
// starts with a calling code. Numbers under 9 digits are too short to be
// international.
func detectInternational(digits string) string {
	if len(digits) < 9 {
		return ""
	}
	return CallingCodeCountry(digits)
}

// Phone normalizes a raw phone string conservatively. countryFromContext
// takes priority over countryFromURL; when neither is known and the number
// carries no explicit international prefix, no E.164 conversion is attempted
// and the cleaned raw value stands alone. This avoids turning foreign local
// numbers (or tracking IDs) into French numbers.
func Phone(raw, countryFromURL, countryFromContext string) (valueRaw, valueE164 string) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return "", ""
	}

	region := countryFromContext
	if region == "" {
		region = countryFromURL
	}

	switch {
	case strings.HasPrefix(cleaned, "+"):
		// Explicit international format: parse as-is.
		valueE164 = toE164(cleaned, "")
	case strings.HasPrefix(cleaned, "00") && len(cleaned) > 2 && cleaned[2] >= '0' && cleaned[2] <= '9':
		cleaned = "+" + cleaned[2:]
		valueE164 = toE164(cleaned, "")
	default:
		digits := Digits(cleaned)
		if detectInternational(digits) != "" {
			// A guessed calling code only sticks when the result validates;
			// otherwise the raw form must survive untouched.
			if e164 := toE164("+"+digits, ""); e164 != "" {
				return "+" + digits, e164
			}
		}
		if region != "" {
			valueE164 = toE164(cleaned, region)
		}
		// No region and no international prefix: keep the raw form only.
	}

	return cleaned, valueE164
}

// toE164 parses and validates via libphonenumber, returning "" on any
// failure.
func toE164(number, region string) string {
	parsed, err := phonenumbers.Parse(number, region)
	if err != nil {
		return ""
	}
	if !phonenumbers.IsPossibleNumber(parsed) || !phonenumbers.IsValidNumber(parsed) {
		return ""
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}

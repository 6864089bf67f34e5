package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/contact-crawler/internal/model"
	"github.com/sells-group/contact-crawler/internal/urlutil"
)

// socialPlatformPatterns maps each platform slot to the URL substrings that
// identify it. Twitter and X collapse into the single x slot.
var socialPlatformPatterns = []struct {
	platform model.Platform
	patterns []string
}{
	{model.PlatformLinkedIn, []string{"linkedin.com/company/"}},
	{model.PlatformFacebook, []string{"facebook.com/", "fb.com/"}},
	{model.PlatformInstagram, []string{"instagram.com/"}},
	{model.PlatformX, []string{"twitter.com/", "x.com/"}},
	{model.PlatformTikTok, []string{"tiktok.com/@"}},
	{model.PlatformYouTube, []string{"youtube.com/", "youtu.be/"}},
	{model.PlatformPinterest, []string{"pinterest.com/"}},
	{model.PlatformGoogle, []string{"google.com/maps", "maps.google.com"}},
}

var shareLinkRes = []*regexp.Regexp{
	regexp.MustCompile(`/share/`),
	regexp.MustCompile(`/sharer\.php`),
	regexp.MustCompile(`share\.php`),
	regexp.MustCompile(`/intent/`),
}

var settingsOrPolicyRes = []*regexp.Regexp{
	regexp.MustCompile(`/policies`),
	regexp.MustCompile(`/settings`),
	regexp.MustCompile(`/help/`),
	regexp.MustCompile(`/rules`),
	regexp.MustCompile(`/terms`),
	regexp.MustCompile(`/privacy`),
	regexp.MustCompile(`/legal`),
	regexp.MustCompile(`/cookies`),
	regexp.MustCompile(`/ads\b`),
}

// nonSocialHosts are services whose links look outbound but never identify a
// social profile.
var nonSocialHosts = []string{
	"wix.com", "dropbox.com", "drive.google.com", "onedrive.live.com",
}

// handleBlocklist rejects handles that are really platform navigation slugs
// or language codes.
var handleBlocklist = map[string]bool{
	"policies": true, "settings": true, "help": true, "rules": true,
	"terms": true, "privacy": true, "legal": true, "cookies": true,
	"ads": true, "share": true, "intent": true, "login": true,
	"es": true, "fr": true, "en": true, "de": true,
}

// Socials extracts social-profile links from every outbound anchor. Share
// intents, settings/policy pages, same-domain links, and known non-social
// services are rejected before platform matching. Dedup is by normalized URL
// globally and by handle per platform.
func Socials(html, sourceURL string) model.Socials {
	socials := make(model.Socials)
	doc, err := parseDoc(html)
	if err != nil {
		return socials
	}

	seenURL := make(map[string]bool)
	seenHandle := make(map[model.Platform]map[string]bool)

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		link := href
		if !strings.HasPrefix(link, "http") {
			link = urlutil.Resolve(sourceURL, href)
			if link == "" {
				return
			}
		}
		if isShareLink(link) || isSettingsOrPolicyLink(link) || isNonSocialService(link) {
			return
		}
		if urlutil.SameDomain(link, sourceURL) {
			return
		}

		lower := strings.ToLower(link)
		for _, entry := range socialPlatformPatterns {
			if !matchesAny(lower, entry.patterns) {
				continue
			}
			norm := urlutil.Normalize(link)
			if seenURL[norm] {
				break
			}
			seenURL[norm] = true

			handle := socialHandle(link, entry.platform)
			if handle == "" || handleBlocklist[strings.ToLower(handle)] {
				break
			}
			if seenHandle[entry.platform] == nil {
				seenHandle[entry.platform] = make(map[string]bool)
			}
			if seenHandle[entry.platform][strings.ToLower(handle)] {
				break
			}
			seenHandle[entry.platform][strings.ToLower(handle)] = true

			// One logical x slot: first twitter.com or x.com profile wins.
			if entry.platform == model.PlatformX && len(socials[model.PlatformX]) > 0 {
				break
			}
			socials[entry.platform] = append(socials[entry.platform], model.SocialLink{
				URL:       link,
				Handle:    handle,
				SourceURL: sourceURL,
			})
			break
		}
	})

	return socials
}

func isShareLink(link string) bool {
	for _, re := range shareLinkRes {
		if re.MatchString(link) {
			return true
		}
	}
	return false
}

func isSettingsOrPolicyLink(link string) bool {
	lower := strings.ToLower(link)
	for _, re := range settingsOrPolicyRes {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

func isNonSocialService(link string) bool {
	host := strings.ToLower(hostname(link))
	for _, h := range nonSocialHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

func hostname(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func matchesAny(lower string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

var (
	linkedinPathRe = regexp.MustCompile(`/(company|in)/([^/?]+)`)
	firstSegRe     = regexp.MustCompile(`^/([^/?]+)`)
	tiktokRe       = regexp.MustCompile(`@([^/?]+)`)
	ytChannelRe    = regexp.MustCompile(`/channel/([^/?]+)`)
	ytHandleRe     = regexp.MustCompile(`/@([^/?]+)`)
	ytCustomRe     = regexp.MustCompile(`/c/([^/?]+)`)
	instagramPerma = regexp.MustCompile(`^/(p|reel|reels|stories)/`)
)

// socialHandle extracts the per-platform profile handle. LinkedIn only counts
// company pages; personal /in/ profiles belong to the team extractor. Google
// Maps keeps the full URL as its handle.
func socialHandle(link string, platform model.Platform) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	path := strings.ToLower(u.Path)
	host := strings.ToLower(u.Hostname())

	switch platform {
	case model.PlatformLinkedIn:
		m := linkedinPathRe.FindStringSubmatch(path)
		if m != nil && m[1] == "company" {
			return strings.TrimSuffix(m[2], "/")
		}
		return ""
	case model.PlatformInstagram:
		if instagramPerma.MatchString(path) {
			return ""
		}
		if m := firstSegRe.FindStringSubmatch(path); m != nil {
			return strings.TrimPrefix(m[1], "@")
		}
		return ""
	case model.PlatformX:
		if host != "twitter.com" && host != "www.twitter.com" &&
			host != "x.com" && host != "www.x.com" {
			return ""
		}
		if m := firstSegRe.FindStringSubmatch(path); m != nil {
			return strings.TrimPrefix(m[1], "@")
		}
		return ""
	case model.PlatformTikTok:
		if m := tiktokRe.FindStringSubmatch(path); m != nil {
			return m[1]
		}
		return ""
	case model.PlatformYouTube:
		for _, re := range []*regexp.Regexp{ytChannelRe, ytHandleRe, ytCustomRe} {
			if m := re.FindStringSubmatch(path); m != nil {
				return m[1]
			}
		}
		return ""
	case model.PlatformGoogle:
		return link
	default:
		// facebook, pinterest: first path segment.
		if m := firstSegRe.FindStringSubmatch(path); m != nil {
			return m[1]
		}
		return ""
	}
}

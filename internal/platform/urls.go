package platform

import (
	"regexp"
	"strings"
)

// urlPattern matches any http(s) token in free-form text. The input box
// accepts arbitrary pasted text, so extraction has to be tolerant of
// surrounding prose, commas and line breaks.
var urlPattern = regexp.MustCompile(`(?i)(https?://[^\s]+)`)

// TikTokHost is the substring used to recognize TikTok links.
const TikTokHost = "tiktok.com"

// ExtractURLs returns every http(s) URL found in the text, in order,
// trimmed of surrounding whitespace. Duplicates are preserved.
func ExtractURLs(text string) []string {
	matches := urlPattern.FindAllString(text, -1)
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		if u := strings.TrimSpace(m); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// FilterTikTokURLs keeps only URLs pointing at tiktok.com, matched
// case-insensitively.
func FilterTikTokURLs(urls []string) []string {
	var filtered []string
	for _, u := range urls {
		if strings.Contains(strings.ToLower(u), TikTokHost) {
			filtered = append(filtered, u)
		}
	}
	return filtered
}

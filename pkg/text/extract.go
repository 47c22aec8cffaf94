package text

import (
	"net/url"
	"regexp"
	"strings"
)

var urlRegex = regexp.MustCompile(`https?://\S+`)

// trackingParams are share-link decorations that carry no identity and
// would otherwise leak into lookup keys.
var trackingParams = []string{
	"utm_source", "utm_medium", "utm_campaign", "utm_term", "utm_content",
	"si",
}

// ExtractURLs pulls every http(s) URL out of free-form dropped text.
// Dropped links often arrive embedded in surrounding prose or with
// trailing punctuation; each match is cleaned before being returned.
// Order follows appearance in the text.
func ExtractURLs(s string) []string {
	matches := urlRegex.FindAllString(s, -1)

	var urls []string
	for _, match := range matches {
		if cleaned := CleanURL(match); cleaned != "" {
			urls = append(urls, cleaned)
		}
	}
	return urls
}

// CleanURL strips trailing punctuation and tracking query parameters from
// a single URL. Returns "" when the input is not a usable absolute URL.
func CleanURL(rawURL string) string {
	rawURL = strings.TrimRight(strings.TrimSpace(rawURL), ".,!?;)")

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return ""
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}

	q := u.Query()
	for _, param := range trackingParams {
		q.Del(param)
	}
	u.RawQuery = q.Encode()

	return u.String()
}

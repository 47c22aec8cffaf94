// Package platform classifies raw track URLs by their source catalog platform.
package platform

import (
	"net/url"
	"strings"
)

// Platform identifies the catalog platform a track URL belongs to.
type Platform int

const (
	// Spotify is the Spotify catalog platform.
	Spotify Platform = iota
	// SoundCloud is the SoundCloud catalog platform.
	SoundCloud
	// Unknown is a well-formed URL that belongs to no supported platform.
	Unknown
	// Invalid is a string that does not parse as a URL.
	Invalid
)

// String returns a human-readable platform name.
func (p Platform) String() string {
	switch p {
	case Spotify:
		return "Spotify"
	case SoundCloud:
		return "SoundCloud"
	case Unknown:
		return "Unknown"
	case Invalid:
		return "Invalid"
	}
	return "Invalid"
}

// domainMatches maps host substrings to platforms. Order matters: the first
// matching entry wins.
var domainMatches = []struct {
	substring string
	platform  Platform
}{
	{"spotify.com", Spotify},
	{"soundcloud.com", SoundCloud},
}

// Identify classifies a raw URL string. It never fails: malformed input
// yields Invalid, a well-formed URL for an unsupported host yields Unknown.
func Identify(rawURL string) Platform {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return Invalid
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return Invalid
	}

	hostname := strings.ToLower(u.Hostname())
	if hostname == "" {
		return Invalid
	}

	for _, m := range domainMatches {
		if strings.Contains(hostname, m.substring) {
			return m.platform
		}
	}

	return Unknown
}

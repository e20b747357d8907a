package registry

import (
	"net/url"
	"strings"
)

// DeriveID maps a feed URL to a stable identifier short enough to type
// on a command line. Two feeds on the same host derive the same ID;
// the load pass resolves that with last-write-wins.
func DeriveID(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil && u.Hostname() != "" {
		host := strings.ToLower(u.Hostname())
		host = strings.TrimPrefix(host, "www.")
		return strings.ReplaceAll(host, ".", "-")
	}

	s := strings.TrimPrefix(rawURL, "http://")
	s = strings.TrimPrefix(s, "https://")

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}

	return strings.ToLower(b.String())
}

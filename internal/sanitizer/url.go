package sanitizer

import (
	"net/url"
	"strings"
)

// trustedDomains are the hosts external links and images may point to.
// Subdomains of each entry are accepted as well.
var trustedDomains = []string{
	"denovi.mk",
	"firebasestorage.googleapis.com",
	"storage.googleapis.com",
	"youtube.com",
	"youtu.be",
	"facebook.com",
	"instagram.com",
}

// URL validates input as an absolute http(s) URL on a trusted domain and
// returns its canonical form. ok is false when the URL must be dropped.
func URL(input string) (string, bool) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return "", false
	}

	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", false
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if u.User != nil {
		return "", false
	}

	host := strings.ToLower(u.Hostname())
	if !isTrustedHost(host) {
		return "", false
	}
	u.Host = strings.ToLower(u.Host)

	return u.String(), true
}

func isTrustedHost(host string) bool {
	for _, d := range trustedDomains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

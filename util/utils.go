package util

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

func StrNotSet(value string) bool {
	return len(strings.TrimSpace(value)) == 0
}

// GetDomain returns the registrable domain of a URL or host, e.g.
// https://www.images.google.co.id -> google.co.id. Input that is not a URL is returned as is.
func GetDomain(raw string) string {
	host := raw
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil || u.Hostname() == "" {
			return raw
		}
		host = u.Hostname()
	} else if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	host = strings.TrimPrefix(host, "www.")

	domain, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return raw
	}
	return domain
}

package companies

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// NormalizeWebsite returns the website as an absolute URL together with its
// registrable domain ("https://careers.acme.co.uk/jobs" → "acme.co.uk").
// A bare host gets an https scheme. An empty input yields two empty strings.
func NormalizeWebsite(raw string) (website, domain string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", nil
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}
	host := strings.ToLower(u.Hostname())
	if host == "" || !strings.Contains(host, ".") {
		return "", "", &invalidWebsiteError{raw: raw}
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		registrable = host
	}
	u.Host = strings.ToLower(u.Host)
	return u.String(), registrable, nil
}

type invalidWebsiteError struct{ raw string }

func (e *invalidWebsiteError) Error() string { return "invalid website " + e.raw }

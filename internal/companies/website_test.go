package companies_test

import (
	"testing"

	"matchahire/marketplace/internal/companies"
)

func TestNormalizeWebsite(t *testing.T) {
	cases := []struct {
		in, website, domain string
	}{
		{"", "", ""},
		{"acme.com", "https://acme.com", "acme.com"},
		{"https://Careers.Acme.co.uk/jobs", "https://careers.acme.co.uk/jobs", "acme.co.uk"},
		{"http://www.example.org", "http://www.example.org", "example.org"},
	}
	for _, c := range cases {
		w, d, err := companies.NormalizeWebsite(c.in)
		if err != nil {
			t.Errorf("NormalizeWebsite(%q) error: %v", c.in, err)
			continue
		}
		if w != c.website || d != c.domain {
			t.Errorf("NormalizeWebsite(%q) = (%q, %q), want (%q, %q)", c.in, w, d, c.website, c.domain)
		}
	}
}

func TestNormalizeWebsite_Invalid(t *testing.T) {
	for _, in := range []string{"localhost", "https://", "http://exa mple.com"} {
		if _, _, err := companies.NormalizeWebsite(in); err == nil {
			t.Errorf("NormalizeWebsite(%q) expected error", in)
		}
	}
}

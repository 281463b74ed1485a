package urlutil

import "testing"

func TestValidate(t *testing.T) {
	valid := []string{
		"http://example.com",
		"https://www.welcometothejungle.com",
	}
	for _, u := range valid {
		if err := ValidateURL(u); err != nil {
			t.Fatalf("expected valid, got error: %v", err)
		}
	}

	invalid := []string{"ftp://example.com", "//example.com", "http:///", "page.html"}
	for _, u := range invalid {
		if err := ValidateURL(u); err == nil {
			t.Fatalf("expected invalid for %s", u)
		}
	}
}

func TestResolveURL(t *testing.T) {
	base := "https://www.welcometothejungle.com/fr/jobs?page=2"
	cases := map[string]string{
		"/fr/companies/acme/jobs/intern": "https://www.welcometothejungle.com/fr/companies/acme/jobs/intern",
		"https://other.example/x":        "https://other.example/x",
		"intern":                         "https://www.welcometothejungle.com/fr/intern",
	}
	for href, want := range cases {
		if got := ResolveURL(base, href); got != want {
			t.Errorf("ResolveURL(%q) = %q, want %q", href, got, want)
		}
	}

	if got := ResolveURL("snapshot.html", "/fr/x"); got != "/fr/x" {
		t.Errorf("relative base should leave href untouched, got %q", got)
	}
}

func TestTrimBase(t *testing.T) {
	if got := TrimBase(" https://example.com/ "); got != "https://example.com" {
		t.Errorf("unexpected %q", got)
	}
}

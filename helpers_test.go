package pubindex

import (
	"os"
	"testing"
)

func writeTestFile(path, body string) error {
	return os.WriteFile(path, []byte(body), 0o644)
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base string
		segs []string
		want string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"blog"}, "https://example.com/blog/"},
		{"https://example.com/site", []string{"tags", "go"}, "https://example.com/site/tags/go/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segs...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segs, got, tt.want)
		}
	}
}

func TestCleanBasePath(t *testing.T) {
	tests := []struct{ input, want string }{
		{"", ""},
		{"/", ""},
		{"blog", "/blog"},
		{"/blog/", "/blog"},
		{" /a/b/ ", "/a/b"},
	}
	for _, tt := range tests {
		if got := cleanBasePath(tt.input); got != tt.want {
			t.Errorf("cleanBasePath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSiteConfigDefaults(t *testing.T) {
	var c SiteConfig
	c.setDefaults()
	if c.Name != "Blog" || c.Addr != ":3000" || c.PostsPerPage != 5 || c.ContentDir != "data/blog" {
		t.Errorf("unexpected defaults: %+v", c)
	}
}

func TestEnvOr(t *testing.T) {
	t.Setenv("PUBINDEX_TEST_VALUE", "set")
	if got := EnvOr("PUBINDEX_TEST_VALUE", "fallback"); got != "set" {
		t.Errorf("EnvOr = %q, want set", got)
	}
	if got := EnvOr("PUBINDEX_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("EnvOr = %q, want fallback", got)
	}
}

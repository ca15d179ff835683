package views

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/eringen/pubindex/listing"
)

func render(t *testing.T, p ListPage) string {
	t.Helper()
	var buf bytes.Buffer
	if err := ListLayout(p).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return buf.String()
}

func samplePage() ListPage {
	return ListPage{
		Site:       SiteConfig{Name: "Blog", BasePath: "/site"},
		Title:      "All Posts",
		ActivePath: "/blog/page/2",
		Posts: []listing.Post{
			{Path: "blog/hello", Date: "2024-03-01", Title: "Hello <World>", Summary: "First", Tags: []string{"Web Dev"}},
		},
		Sections: []TagSection{
			{Partition: listing.English, Label: "English", Tags: []listing.TagEntry{{Tag: "Web Dev", Slug: "web-dev", Count: 3}}},
			{Partition: listing.Vietnamese, Label: "Tiếng Việt"},
		},
		Pagination: listing.ResolvePagination("/blog/page/2", 2, 2).WithPrefix("/site"),
	}
}

func TestListLayoutRendersPostsAndTags(t *testing.T) {
	got := render(t, samplePage())

	for _, want := range []string{
		`href="/site/blog/hello"`,
		"Hello &lt;World&gt;",
		"March 1, 2024",
		`href="/site/tags/web-dev"`,
		"Web Dev (3)",
		"English",
		`<h3 class="tag-current">All Posts</h3>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(got, "Tiếng Việt") {
		t.Error("empty Vietnamese section should be suppressed")
	}
}

func TestListLayoutPagination(t *testing.T) {
	got := render(t, samplePage())
	if !strings.Contains(got, `<a rel="prev" href="/site/blog/">Previous</a>`) {
		t.Errorf("missing prev link to first page: %s", got)
	}
	if !strings.Contains(got, "<button disabled>Next</button>") {
		t.Error("next control should render disabled on the last page")
	}
	if !strings.Contains(got, "2 of 2") {
		t.Error("missing page counter")
	}
}

func TestListLayoutSinglePageHidesPagination(t *testing.T) {
	p := samplePage()
	p.Pagination = listing.ResolvePagination("/blog", 1, 1)
	got := render(t, p)
	if strings.Contains(got, "class=\"pagination\"") {
		t.Error("pagination should not render for a single page")
	}
}

func TestListLayoutActiveTag(t *testing.T) {
	p := samplePage()
	p.ActivePath = "/tags/web-dev/"
	got := render(t, p)
	if !strings.Contains(got, `<h3 class="tag tag-active">Web Dev (3)</h3>`) {
		t.Errorf("active tag should render as heading: %s", got)
	}
	if !strings.Contains(got, `<a class="tag-all" href="/site/blog">All Posts</a>`) {
		t.Error("All Posts should be a link outside /blog")
	}
}

func TestTagActive(t *testing.T) {
	tests := []struct {
		path, slug string
		want       bool
	}{
		{"/tags/go", "go", true},
		{"/tags/go/page/2", "go", true},
		{"/tags/golang", "go", false},
		{"/blog", "go", false},
	}
	for _, tt := range tests {
		if got := TagActive(tt.path, tt.slug); got != tt.want {
			t.Errorf("TagActive(%q, %q) = %v, want %v", tt.path, tt.slug, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct{ input, want string }{
		{"2024-01-15", "January 15, 2024"},
		{"2024-01-15T08:00:00Z", "January 15, 2024"},
		{"soon", "soon"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.input); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNotFound(t *testing.T) {
	var buf bytes.Buffer
	if err := NotFound(SiteConfig{Name: "Blog"}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "404") || !strings.Contains(buf.String(), `href="/blog/"`) {
		t.Errorf("unexpected 404 page: %s", buf.String())
	}
}

func TestListLayoutSummaryResolvesImages(t *testing.T) {
	p := samplePage()
	p.Posts[0].Summary = "A **short** intro ![cover](/static/images/cover.png)"
	got := render(t, p)
	for _, want := range []string{
		"<strong>short</strong>",
		`src="/site/static/images/cover.png"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q", want)
		}
	}
}

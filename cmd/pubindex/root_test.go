package main

import (
	"bytes"
	"testing"

	"github.com/eringen/pubindex"
	"github.com/eringen/pubindex/listing"
)

func TestCountFiles(t *testing.T) {
	c := config{TagCounts: map[string]string{"en": "en.json", "vi": "vi.json"}}
	files, err := c.countFiles()
	if err != nil {
		t.Fatalf("countFiles failed: %v", err)
	}
	if files[listing.English] != "en.json" || files[listing.Vietnamese] != "vi.json" {
		t.Errorf("files = %v", files)
	}

	c = config{TagCounts: map[string]string{"fr": "fr.json"}}
	if _, err := c.countFiles(); err == nil {
		t.Error("expected an error for an unknown language")
	}
}

func TestSiteConfigCarriesSettings(t *testing.T) {
	c := config{Name: "Notes", BasePath: "/notes", Database: "blog.db", PostsPerPage: 3}
	site, err := c.siteConfig()
	if err != nil {
		t.Fatalf("siteConfig failed: %v", err)
	}
	if site.Name != "Notes" || site.BasePath != "/notes" || site.DatabasePath != "blog.db" || site.PostsPerPage != 3 {
		t.Errorf("site = %+v", site)
	}
}

func TestPrintTagIndex(t *testing.T) {
	posts := []listing.Post{
		{Path: "blog/1", Tags: []string{"Go", "Web"}, Partition: listing.English},
		{Path: "blog/2", Tags: []string{"Web"}, Partition: listing.English},
		{Path: "blog/3", Tags: []string{"Lập Trình"}, Partition: listing.Vietnamese},
	}
	ix := pubindex.BuildIndex(posts, nil, nil)

	var buf bytes.Buffer
	if err := printTagIndex(&buf, ix, listing.Partitions()); err != nil {
		t.Fatalf("printTagIndex failed: %v", err)
	}
	want := "English\n  Web (2)\n  Go (1)\n\nTiếng Việt\n  Lập Trình (1)\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

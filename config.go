package pubindex

import (
	"strings"
	"time"

	"github.com/eringen/pubindex/listing"
	"github.com/eringen/pubindex/views"
)

// SiteConfig holds all configuration for a pubindex site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL without base path (default "http://localhost:3000")
	Description string // Site description for RSS
	Author      string

	Addr     string // Listen address (default ":3000")
	BasePath string // URL prefix when served below the root, e.g. "/blog-site" (BASE_PATH)

	ContentDir   string // Markdown posts (default "data/blog")
	DatabasePath string // When set, posts are read from this SQLite database instead of ContentDir
	StaticDir    string // Static assets served at <BasePath>/static (default "public")

	// TagCountFiles maps a partition to a precomputed slug-to-count table.
	// A table replaces the live counts for its partition entirely.
	TagCountFiles map[listing.Partition]string

	PostsPerPage int           // default 5
	PostCacheTTL time.Duration // default 5min
	WatchContent bool          // reload posts when ContentDir changes
	APIRateLimit int           // requests per IP per minute on /api/ (default 60, negative disables)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	c.BasePath = cleanBasePath(c.BasePath)
	if c.ContentDir == "" {
		c.ContentDir = "data/blog"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.PostsPerPage <= 0 {
		c.PostsPerPage = 5
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.APIRateLimit == 0 {
		c.APIRateLimit = 60
	}
}

// cleanBasePath turns "blog/", "/blog/" and "/blog" into "/blog"; "" and "/"
// into "".
func cleanBasePath(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return "/" + p
}

func (c SiteConfig) viewConfig() views.SiteConfig {
	return views.SiteConfig{
		Name:        c.Name,
		URL:         c.URL,
		Description: c.Description,
		Author:      c.Author,
		BasePath:    c.BasePath,
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithCorpus replaces the configured post source.
func WithCorpus(c Corpus) Option {
	return func(a *App) {
		a.corpus = c
	}
}

// WithTagCounts sets the count table for a partition, taking precedence
// over TagCountFiles.
func WithTagCounts(p listing.Partition, counts listing.TagCount) Option {
	return func(a *App) {
		a.overrides[p] = counts
	}
}

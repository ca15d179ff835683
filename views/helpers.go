package views

import (
	"net/url"
	"strings"
	"time"

	"github.com/eringen/pubindex/listing"
)

// Href prefixes a site-relative path with the base path.
func Href(cfg SiteConfig, p string) string {
	return listing.JoinBase(cfg.BasePath, p)
}

// PostHref is the link to a post.
func PostHref(cfg SiteConfig, post listing.Post) string {
	return Href(cfg, "/"+post.Path)
}

// TagHref is the first page of a tag.
func TagHref(cfg SiteConfig, slug string) string {
	return Href(cfg, "/tags/"+url.PathEscape(slug))
}

// TagActive reports whether activePath is a page of the tag with slug.
func TagActive(activePath, slug string) bool {
	return listing.NormalizeBasePath(activePath) == "tags/"+slug
}

// AllPostsActive reports whether activePath is part of the full post list.
func AllPostsActive(activePath string) bool {
	base := listing.NormalizeBasePath(activePath)
	return base == "blog" || strings.HasPrefix(base, "blog/")
}

// TagClass returns CSS classes for a tag link, with active variant.
func TagClass(active bool) string {
	if active {
		return "tag tag-active"
	}
	return "tag"
}

var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// FormatDate renders an ISO-8601 date as "January 2, 2006". Unparsable
// input is returned as is.
func FormatDate(s string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return s
}

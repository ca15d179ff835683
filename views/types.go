package views

import "github.com/eringen/pubindex/listing"

// SiteConfig holds site-wide settings passed to every template.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string
	BasePath    string // prefix for every link and asset, "" at the root
}

// TagSection is one language block of the navigation panel.
type TagSection struct {
	Partition listing.Partition
	Label     string
	Tags      []listing.TagEntry
}

// ListPage is everything the list layout renders.
type ListPage struct {
	Site       SiteConfig
	Title      string
	ActivePath string // request path without BasePath
	Posts      []listing.Post
	Sections   []TagSection
	Pagination listing.Pagination // hrefs already carry BasePath
}

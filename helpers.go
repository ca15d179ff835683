package pubindex

import (
	"net/url"
	"path"
	"strings"

	"github.com/eringen/pubindex/listing"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// siteBase is the canonical URL including the base path.
func (a *App) siteBase() string {
	return a.Config.URL + a.Config.BasePath
}

// absURL is the canonical URL of a site-relative path.
func (a *App) absURL(p string) string {
	return a.Config.URL + listing.JoinBase(a.Config.BasePath, p)
}

package pubindex

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pubindex/listing"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// renderSitemap lists the post index, every post and every tag page.
func (a *App) renderSitemap(c echo.Context, ix *Index) error {
	base := a.siteBase()
	urls := []sitemapURL{
		{Loc: BuildURL(base, "blog")},
	}
	for _, p := range ix.Posts {
		urls = append(urls, sitemapURL{
			Loc:     a.absURL("/" + p.Path),
			LastMod: p.Date,
		})
	}
	seen := make(map[string]struct{})
	for _, part := range listing.Partitions() {
		for _, t := range ix.Tags[part] {
			if _, ok := seen[t.Slug]; ok {
				continue
			}
			seen[t.Slug] = struct{}{}
			urls = append(urls, sitemapURL{Loc: BuildURL(base, "tags", t.Slug)})
		}
	}
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}

package views

import (
	"context"
	"fmt"
	"html"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/eringen/pubindex/listing"
	"github.com/eringen/pubindex/markdown"
)

// htmlWriter collects the first write error so components can write
// sequentially and check once.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

func (h *htmlWriter) text(s string) {
	h.raw(html.EscapeString(s))
}

func (h *htmlWriter) attr(name, value string) {
	h.raw(" " + name + "=\"" + html.EscapeString(value) + "\"")
}

func page(cfg SiteConfig, title string, body func(h *htmlWriter)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw("<!DOCTYPE html><html lang=\"en\"><head><meta charset=\"utf-8\">")
		h.raw("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		h.raw("<title>")
		if title != "" && title != cfg.Name {
			h.text(title + " | ")
		}
		h.text(cfg.Name)
		h.raw("</title>")
		if cfg.Description != "" {
			h.raw("<meta name=\"description\"")
			h.attr("content", cfg.Description)
			h.raw(">")
		}
		h.raw("<link rel=\"alternate\" type=\"application/rss+xml\"")
		h.attr("href", Href(cfg, "/feed.xml"))
		h.raw("></head><body>")
		body(h)
		h.raw("</body></html>")
		return h.err
	})
}

// ListLayout renders the post list with the tag navigation panel.
func ListLayout(p ListPage) templ.Component {
	return page(p.Site, p.Title, func(h *htmlWriter) {
		h.raw("<div class=\"list-layout\"><h1>")
		h.text(p.Title)
		h.raw("</h1><div class=\"list-columns\">")
		tagPanel(h, p)
		h.raw("<div class=\"list-main\">")
		postList(h, p)
		if p.Pagination.Visible() {
			pagination(h, p)
		}
		h.raw("</div></div></div>")
	})
}

func tagPanel(h *htmlWriter, p ListPage) {
	h.raw("<nav class=\"tag-panel\" aria-label=\"Tags\">")
	if AllPostsActive(p.ActivePath) {
		h.raw("<h3 class=\"tag-current\">All Posts</h3>")
	} else {
		h.raw("<a class=\"tag-all\"")
		h.attr("href", Href(p.Site, "/blog"))
		h.raw(">All Posts</a>")
	}
	for _, section := range p.Sections {
		if len(section.Tags) == 0 {
			continue
		}
		h.raw("<div class=\"tag-section\"")
		h.attr("data-lang", section.Partition.String())
		h.raw("><h4>")
		h.text(section.Label)
		h.raw("</h4><ul>")
		for _, t := range section.Tags {
			label := fmt.Sprintf("%s (%d)", t.Tag, t.Count)
			h.raw("<li>")
			if TagActive(p.ActivePath, t.Slug) {
				h.raw("<h3")
				h.attr("class", TagClass(true))
				h.raw(">")
				h.text(label)
				h.raw("</h3>")
			} else {
				h.raw("<a")
				h.attr("class", TagClass(false))
				h.attr("href", TagHref(p.Site, t.Slug))
				h.attr("aria-label", "View posts tagged "+t.Tag)
				h.raw(">")
				h.text(label)
				h.raw("</a>")
			}
			h.raw("</li>")
		}
		h.raw("</ul></div>")
	}
	h.raw("</nav>")
}

func postList(h *htmlWriter, p ListPage) {
	h.raw("<ul class=\"post-list\">")
	for _, post := range p.Posts {
		h.raw("<li><article><dl><dt class=\"sr-only\">Published on</dt><dd><time")
		h.attr("datetime", post.Date)
		h.raw(">")
		h.text(FormatDate(post.Date))
		h.raw("</time></dd></dl><h2><a")
		h.attr("href", PostHref(p.Site, post))
		h.raw(">")
		h.text(post.Title)
		h.raw("</a></h2>")
		if len(post.Tags) > 0 {
			h.raw("<div class=\"post-tags\">")
			for _, tag := range post.Tags {
				h.raw("<a class=\"tag\"")
				h.attr("href", TagHref(p.Site, listing.Slug(tag)))
				h.raw(">")
				h.text(tag)
				h.raw("</a>")
			}
			h.raw("</div>")
		}
		h.raw("<div class=\"post-summary\">")
		h.raw(markdown.SummaryHTML(post.Summary, p.Site.BasePath))
		h.raw("</div></article></li>")
	}
	h.raw("</ul>")
}

func pagination(h *htmlWriter, p ListPage) {
	pg := p.Pagination
	h.raw("<nav class=\"pagination\">")
	if pg.HasPrev {
		h.raw("<a rel=\"prev\"")
		h.attr("href", pg.PrevHref)
		h.raw(">Previous</a>")
	} else {
		h.raw("<button disabled>Previous</button>")
	}
	h.raw("<span>")
	h.text(strconv.Itoa(pg.CurrentPage) + " of " + strconv.Itoa(pg.TotalPages))
	h.raw("</span>")
	if pg.HasNext {
		h.raw("<a rel=\"next\"")
		h.attr("href", pg.NextHref)
		h.raw(">Next</a>")
	} else {
		h.raw("<button disabled>Next</button>")
	}
	h.raw("</nav>")
}

// NotFound renders the 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return page(cfg, "Not Found", func(h *htmlWriter) {
		h.raw("<main class=\"error-page\"><h1>404</h1><p>Sorry, we couldn't find this page.</p><a")
		h.attr("href", Href(cfg, "/blog/"))
		h.raw(">Back to all posts</a></main>")
	})
}

// ServerError renders the 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	return page(cfg, "Server Error", func(h *htmlWriter) {
		h.raw("<main class=\"error-page\"><h1>500</h1><p>Something went wrong. Please try again later.</p><a")
		h.attr("href", Href(cfg, "/blog/"))
		h.raw(">Back to all posts</a></main>")
	})
}

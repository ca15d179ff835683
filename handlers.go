package pubindex

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/pubindex/listing"
	"github.com/eringen/pubindex/views"
)

func (a *App) handleRootRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, listing.JoinBase(a.Config.BasePath, "/blog/"))
}

func (a *App) handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, listing.JoinBase(a.Config.BasePath, "/blog/"))
}

func (a *App) handleTagRedirect(c echo.Context) error {
	tag := url.PathEscape(tagParam(c))
	return c.Redirect(http.StatusMovedPermanently, listing.JoinBase(a.Config.BasePath, "/tags/"+tag+"/"))
}

func (a *App) handleBlog(c echo.Context) error {
	ix, err := a.Cache.Index()
	if err != nil {
		return err
	}
	return a.renderList(c, ix, ix.Posts, "All Posts", 1)
}

func (a *App) handleBlogPage(c echo.Context) error {
	page, ok := parsePage(c.Param("page"))
	if !ok {
		return a.notFound(c)
	}
	ix, err := a.Cache.Index()
	if err != nil {
		return err
	}
	return a.renderList(c, ix, ix.Posts, "All Posts", page)
}

func (a *App) handleTag(c echo.Context) error {
	return a.renderTag(c, 1)
}

func (a *App) handleTagPage(c echo.Context) error {
	page, ok := parsePage(c.Param("page"))
	if !ok {
		return a.notFound(c)
	}
	return a.renderTag(c, page)
}

func (a *App) renderTag(c echo.Context, page int) error {
	slug := listing.Slug(tagParam(c))
	ix, err := a.Cache.Index()
	if err != nil {
		return err
	}
	name, ok := ix.TagName(slug)
	if !ok {
		return a.notFound(c)
	}
	return a.renderList(c, ix, listing.FilterByTag(ix.Posts, slug), name, page)
}

// renderList renders one page of posts. Pages past the end are 404s, so the
// first-page override handed to SelectVisible is never empty here.
func (a *App) renderList(c echo.Context, ix *Index, posts []listing.Post, title string, page int) error {
	total := listing.TotalPages(len(posts), a.Config.PostsPerPage)
	if page < 1 || page > total {
		return a.notFound(c)
	}
	visible := listing.SelectVisible(posts, listing.Paginate(posts, page, a.Config.PostsPerPage))
	active := a.activePath(c)
	return Render(c, a.Views.List(views.ListPage{
		Site:       a.Config.viewConfig(),
		Title:      title,
		ActivePath: active,
		Posts:      visible,
		Sections:   tagSections(ix),
		Pagination: listing.ResolvePagination(active, page, total).WithPrefix(a.Config.BasePath),
	}))
}

// activePath is the request path relative to the site base path.
func (a *App) activePath(c echo.Context) string {
	p := c.Request().URL.Path
	if a.Config.BasePath != "" {
		p = strings.TrimPrefix(p, a.Config.BasePath)
	}
	if p == "" {
		p = "/"
	}
	return p
}

func tagSections(ix *Index) []views.TagSection {
	sections := make([]views.TagSection, 0, len(listing.Partitions()))
	for _, part := range listing.Partitions() {
		sections = append(sections, views.TagSection{
			Partition: part,
			Label:     part.Label(),
			Tags:      ix.Tags[part],
		})
	}
	return sections
}

// handleTagIndex serves the ranked tag index as JSON, keyed by language code.
func (a *App) handleTagIndex(c echo.Context) error {
	ix, err := a.Cache.Index()
	if err != nil {
		return err
	}
	out := make(map[string][]listing.TagEntry)
	for _, part := range listing.Partitions() {
		entries := ix.Tags[part]
		if entries == nil {
			entries = []listing.TagEntry{}
		}
		out[part.String()] = entries
	}
	return c.JSON(http.StatusOK, out)
}

func (a *App) handleSitemap(c echo.Context) error {
	ix, err := a.Cache.Index()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, ix)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	if lang := c.QueryParam("lang"); lang != "" {
		part, ok := listing.ParsePartition(lang)
		if !ok {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown language")
		}
		var filtered []listing.Post
		for _, p := range posts {
			if p.Partition == part {
				filtered = append(filtered, p)
			}
		}
		posts = filtered
	}
	return a.renderRSS(c, posts)
}

func (a *App) notFound(c echo.Context) error {
	return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Config.viewConfig()))
}

// tagParam returns the decoded :tag parameter. Echo leaves it escaped when
// the request used a non-canonical encoding.
func tagParam(c echo.Context) string {
	raw := c.Param("tag")
	if s, err := url.PathUnescape(raw); err == nil {
		return s
	}
	return raw
}

func parsePage(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = a.notFound(c)
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(a.Config.viewConfig()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

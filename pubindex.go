// Package pubindex serves the listing pages of a bilingual blog: the
// paginated post list, tag pages and the tag navigation panel ranked by
// popularity per language. It is built with Go, Echo, and templ.
//
// Posts come from a Corpus (a front matter directory, a SQLite table or any
// custom source). Users may replace the default views through ViewFuncs.
package pubindex

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/eringen/pubindex/content"
	"github.com/eringen/pubindex/listing"
	"github.com/eringen/pubindex/views"
)

// ViewFuncs holds the templ components used to render pages. Nil fields
// fall back to the components in package views.
type ViewFuncs struct {
	List        func(page views.ListPage) templ.Component
	NotFound    func(cfg views.SiteConfig) templ.Component
	ServerError func(cfg views.SiteConfig) templ.Component
}

func (v *ViewFuncs) setDefaults() {
	if v.List == nil {
		v.List = views.ListLayout
	}
	if v.NotFound == nil {
		v.NotFound = views.NotFound
	}
	if v.ServerError == nil {
		v.ServerError = views.ServerError
	}
}

// App wires together the corpus, cache, handlers, middleware and views.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs

	corpus       Corpus
	overrides    map[listing.Partition]listing.TagCount
	customRoutes []func(*App)
	stopWatch    context.CancelFunc
}

// New creates an App with the given configuration and views.
func New(cfg SiteConfig, v ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()
	v.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     v,
		overrides: make(map[listing.Partition]listing.TagCount),
	}
	a.Echo.HideBanner = true
	a.Echo.Logger.SetLevel(log.INFO)

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init opens the corpus, loads tag count tables and registers middleware
// and routes. Start calls it; tests call it directly and use a.Echo as an
// http.Handler.
func (a *App) Init() error {
	if a.corpus == nil {
		if a.Config.DatabasePath != "" {
			store, err := NewStore(a.Config.DatabasePath)
			if err != nil {
				return fmt.Errorf("pubindex: init store: %w", err)
			}
			a.Store = store
			a.corpus = store
		} else {
			a.corpus = content.Dir(a.Config.ContentDir)
		}
	}

	for part, path := range a.Config.TagCountFiles {
		if _, ok := a.overrides[part]; ok {
			continue
		}
		counts, err := content.LoadCounts(path)
		if err != nil {
			return fmt.Errorf("pubindex: load %s tag counts: %w", part, err)
		}
		a.overrides[part] = counts
	}

	a.Cache = NewPostCache(a.corpus, a.Config.PostCacheTTL, a.overrides, a.Echo.Logger)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app, starts the content watcher when enabled and
// serves HTTP until the server is closed.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	if a.Config.WatchContent && a.Store == nil && a.Config.ContentDir != "" {
		ctx, cancel := context.WithCancel(context.Background())
		a.stopWatch = cancel
		go func() {
			err := content.Watch(ctx, a.Config.ContentDir, 300*time.Millisecond, func() {
				a.Echo.Logger.Infof("content changed, reloading posts")
				a.Cache.Invalidate()
			})
			if err != nil {
				a.Echo.Logger.Errorf("content watcher stopped: %v", err)
			}
		}()
	}

	a.Echo.Logger.Infof("serving %s on %s (base path %q)", a.Config.Name, a.Config.Addr, a.Config.BasePath)
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	g := a.Echo.Group(a.Config.BasePath)

	g.Static("/static", a.Config.StaticDir)
	g.GET("/sitemap.xml", a.handleSitemap)
	g.GET("/feed.xml", a.handleFeed)
	var apiMiddleware []echo.MiddlewareFunc
	if a.Config.APIRateLimit > 0 {
		apiMiddleware = append(apiMiddleware, NewRateLimiter(a.Config.APIRateLimit, time.Minute).Middleware)
	}
	g.GET("/api/tags", a.handleTagIndex, apiMiddleware...)

	g.GET("/", a.handleRootRedirect)
	if a.Config.BasePath != "" {
		a.Echo.GET(a.Config.BasePath, a.handleRootRedirect)
	}
	g.GET("/blog", a.handleBlogRedirect)
	g.GET("/blog/", a.handleBlog)
	g.GET("/blog/page/:page", a.handleBlogPage)
	g.GET("/blog/page/:page/", a.handleBlogPage)
	g.GET("/tags/:tag", a.handleTagRedirect)
	g.GET("/tags/:tag/", a.handleTag)
	g.GET("/tags/:tag/page/:page", a.handleTagPage)
	g.GET("/tags/:tag/page/:page/", a.handleTagPage)
}

// Close stops the watcher and releases the store.
func (a *App) Close() error {
	if a.stopWatch != nil {
		a.stopWatch()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Package blog is the engine behind the Smile blog, built with Go, Echo and
// templ components.
//
// Every page, feed and discovery file is derived from the compiled-in site
// configuration (package siteconfig) plus the posts stored in SQLite. The
// views package supplies the default page components; callers can replace
// them through ViewFuncs.
package blog

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/smile243/blog/siteconfig"
	"github.com/smile243/blog/views"
)

// ViewFuncs holds the page components the engine calls when rendering.
type ViewFuncs struct {
	Home           func(site siteconfig.Config, featured, latest []views.Post) templ.Component
	PostList       func(site siteconfig.Config, meta views.PageMeta, posts []views.Post, activeTag string, tags []string) templ.Component
	Post           func(site siteconfig.Config, post views.Post, related []views.Post) templ.Component
	AdminLogin     func(site siteconfig.Config, showError bool, csrfToken string) templ.Component
	AdminDashboard func(site siteconfig.Config, posts []views.Post, message, csrfToken string) templ.Component
	AdminForm      func(site siteconfig.Config, post views.Post, csrfToken string) templ.Component
	NotFound       func(site siteconfig.Config) templ.Component
	ServerError    func(site siteconfig.Config) templ.Component
}

// DefaultViews returns the components from package views.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:           views.Home,
		PostList:       views.PostList,
		Post:           views.PostPage,
		AdminLogin:     views.AdminLogin,
		AdminDashboard: views.AdminDashboard,
		AdminForm:      views.AdminForm,
		NotFound:       views.NotFound,
		ServerError:    views.ServerError,
	}
}

// App is the central blog application. It wires together the store, cache,
// handlers, middleware and page components.
type App struct {
	Config ServerConfig
	Site   siteconfig.Config
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs

	log          zerolog.Logger
	loginLimiter *LoginLimiter
	metrics      *metrics
	rawPaths     map[string]struct{}
	customRoutes []func(*App)
}

// New creates an App with the given server configuration. The site
// configuration defaults to siteconfig.Default().
func New(cfg ServerConfig, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true

	a := &App{
		Config: cfg,
		Site:   siteconfig.Default(),
		Echo:   e,
		Views:  DefaultViews(),
		log:    zlog.Logger,
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the store and registers middleware and routes. Start calls it
// when it has not been called yet.
func (a *App) Init() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("blog: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("blog: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("blog: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)
	a.metrics = newMetrics()
	a.rawPaths = a.buildRawPaths()

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app if needed and serves HTTP until the server is
// shut down.
func (a *App) Start() error {
	if a.Store == nil {
		if err := a.Init(); err != nil {
			return err
		}
	}
	a.log.Info().Str("addr", a.Config.Addr).Str("site", a.Site.Site.URL).Msg("starting server")
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo
	site := a.Site.Site

	// Framework stylesheet, then the user's static assets.
	assets, _ := fs.Sub(EmbeddedAssets, "assets")
	e.GET("/assets/*", echo.WrapHandler(http.StripPrefix("/assets/", http.FileServer(http.FS(assets)))))
	e.Static("/public", a.Config.StaticDir)
	for _, p := range a.iconPaths() {
		e.GET(p, a.handleStaticFile(p))
	}

	// Discovery
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	if site.Manifest != "" {
		e.GET(site.Manifest, a.handleManifest)
	}
	if p := site.RSS.FeedLinks.RSS2; p != "" {
		e.GET(p, a.handleRSS)
	}
	if p := site.RSS.FeedLinks.Atom; p != "" {
		e.GET(p, a.handleAtom)
	}
	if p := site.RSS.FeedLinks.JSON; p != "" {
		e.GET(p, a.handleJSONFeed)
	}

	// Public pages
	e.GET("/", a.handleHome)
	e.GET(archivePath, a.handleArchive)
	for _, item := range listPages(a.Site.Navigation.Main) {
		e.GET(item.Href+"/", a.handleFeatured(item))
	}
	e.GET("/blog/:slug/", a.handlePost)

	if a.Config.MetricsEnabled {
		e.GET("/metrics", echo.WrapHandler(a.metrics.handler()))
	}

	// Admin
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/new/", a.handleAdminNew)
	e.GET("/admin/post/:slug/", a.handleAdminPost)
	e.POST("/admin/save/", a.handleAdminSave)
	e.POST("/admin/post/:slug/delete/", a.handleAdminDelete)
	e.POST("/admin/icons/", a.handleIconUpload)
}

// iconPaths returns the distinct favicon paths from the site configuration,
// plus the Open Graph image when this site serves it.
func (a *App) iconPaths() []string {
	fav := a.Site.Site.Favicon
	seen := make(map[string]struct{})
	var out []string
	for _, p := range []string{fav.ICO, fav.SVG, fav.PNG, fav.AppleTouchIcon, localImagePath(a.Site)} {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}

// buildRawPaths lists exact paths served as files rather than pages. They are
// exempt from trailing-slash redirects.
func (a *App) buildRawPaths() map[string]struct{} {
	site := a.Site.Site
	paths := map[string]struct{}{
		"/robots.txt":  {},
		"/sitemap.xml": {},
		"/metrics":     {},
	}
	for _, p := range append(a.iconPaths(), site.Manifest, site.RSS.FeedLinks.RSS2, site.RSS.FeedLinks.Atom, site.RSS.FeedLinks.JSON) {
		if p != "" {
			paths[p] = struct{}{}
		}
	}
	return paths
}

func (a *App) isRawPath(p string) bool {
	_, ok := a.rawPaths[p]
	return ok
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

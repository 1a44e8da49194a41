package blog

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/smile243/blog/siteconfig"
)

// ServerConfig holds the runtime settings of the HTTP server. The site's
// identity and metadata live in siteconfig and are not part of it.
type ServerConfig struct {
	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/blog.db")
	StaticDir    string // Directory for icons and other static files (default "public")

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	PostCacheTTL   time.Duration // Post cache TTL (default 5min)
	MetricsEnabled bool          // Expose Prometheus metrics on /metrics
}

func (c *ServerConfig) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/blog.db"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithSite replaces the compiled-in site configuration.
func WithSite(site siteconfig.Config) Option {
	return func(a *App) {
		a.Site = site.Clone()
	}
}

// WithLogger sets the logger used for request and error logging.
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) {
		a.log = l
	}
}

// WithViews replaces the default page components.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.Config.StaticDir = dir
	}
}

package blog

import (
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/smile243/blog/siteconfig"
	"github.com/smile243/blog/views"
)

// latestCount is how many recent posts the home page lists.
const latestCount = 5

// archivePath lists every published post. Post pages live beneath it.
const archivePath = "/blog/"

// reservedPrefixes are owned by the engine and never served as list pages.
var reservedPrefixes = []string{"/admin", "/assets", "/public", "/metrics", strings.TrimSuffix(archivePath, "/")}

// listPages returns the navigation entries served as featured lists: internal,
// non-root paths outside the engine's own routes, with trailing slashes
// trimmed and duplicates dropped. The archive entry is routed separately.
func listPages(nav []siteconfig.NavItem) []siteconfig.NavItem {
	seen := make(map[string]struct{})
	var out []siteconfig.NavItem
	for _, item := range nav {
		href := strings.TrimSuffix(item.Href, "/")
		if !strings.HasPrefix(href, "/") || strings.HasPrefix(href, "//") || strings.ContainsAny(href, ".?#:") {
			continue
		}
		if reserved(href) {
			continue
		}
		if _, ok := seen[href]; ok {
			continue
		}
		seen[href] = struct{}{}
		item.Href = href
		out = append(out, item)
	}
	return out
}

func reserved(href string) bool {
	for _, p := range reservedPrefixes {
		if href == p || strings.HasPrefix(href, p+"/") {
			return true
		}
	}
	return false
}

func (a *App) handleHome(c echo.Context) error {
	featured, err := a.Cache.ListFeatured()
	if err != nil {
		return err
	}
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	if len(posts) > latestCount {
		posts = posts[:latestCount]
	}
	a.metrics.page("home", c.Request().UserAgent())
	return Render(c, a.Views.Home(a.Site, featured, posts))
}

// handleFeatured serves the featured list under the navigation entry item.
func (a *App) handleFeatured(item siteconfig.NavItem) echo.HandlerFunc {
	meta := views.PageMeta{
		Title: item.Title,
		Path:  item.Href + "/",
	}
	return func(c echo.Context) error {
		posts, err := a.Cache.ListFeatured()
		if err != nil {
			return err
		}
		a.metrics.page("featured", c.Request().UserAgent())
		return Render(c, a.Views.PostList(a.Site, meta, posts, "", nil))
	}
}

func (a *App) handleArchive(c echo.Context) error {
	tag := c.QueryParam("tag")
	posts, err := a.Cache.ListPosts(tag)
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}
	meta := views.PageMeta{
		Title: views.NavTitle(a.Site, strings.TrimSuffix(archivePath, "/"), "Blog"),
		Path:  archivePath,
	}
	a.metrics.page("archive", c.Request().UserAgent())
	return Render(c, a.Views.PostList(a.Site, meta, posts, tag, tags))
}

func (a *App) handlePost(c echo.Context) error {
	post, err := a.Cache.GetPost(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Site))
		}
		return err
	}
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	a.metrics.page("post", c.Request().UserAgent())
	return Render(c, a.Views.Post(a.Site, post, views.FilterRelatedPosts(post, posts)))
}

// handleStaticFile serves the file at site path p from the static directory.
func (a *App) handleStaticFile(p string) echo.HandlerFunc {
	file := filepath.Join(a.Config.StaticDir, filepath.FromSlash(p))
	return func(c echo.Context) error {
		return c.File(file)
	}
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.Site))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.log.Error().Err(err).
			Str("method", c.Request().Method).
			Str("uri", c.Request().RequestURI).
			Int("status", code).
			Msg("server error")
		_ = RenderStatus(c, code, a.Views.ServerError(a.Site))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

package blog

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/smile243/blog/siteconfig"
	"github.com/smile243/blog/views"
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

// buildSitemap lists the home page, every navigation target this site
// serves and every post.
func buildSitemap(site siteconfig.Config, posts []Post) sitemapURLSet {
	base := site.Site.URL
	seen := map[string]struct{}{}
	var urls []sitemapURL
	add := func(u sitemapURL) {
		if _, ok := seen[u.Loc]; ok {
			return
		}
		seen[u.Loc] = struct{}{}
		urls = append(urls, u)
	}

	add(sitemapURL{Loc: BuildURL(base, ""), LastMod: latestDate(posts)})
	routed := map[string]struct{}{strings.TrimSuffix(archivePath, "/"): {}}
	for _, item := range listPages(site.Navigation.Main) {
		routed[item.Href] = struct{}{}
	}
	for _, item := range site.Navigation.Main {
		if _, ok := routed[strings.TrimSuffix(item.Href, "/")]; ok {
			add(sitemapURL{Loc: BuildURL(base, item.Href)})
		}
	}
	for _, p := range posts {
		add(sitemapURL{Loc: BuildURL(base, "blog", p.Slug), LastMod: p.Date})
	}
	return sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
}

func latestDate(posts []Post) string {
	latest := ""
	for _, p := range posts {
		if p.Date > latest {
			latest = p.Date
		}
	}
	return latest
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return writeXML(c, "application/xml; charset=utf-8", buildSitemap(a.Site, posts))
}

func buildRobots(site siteconfig.Config) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /admin/\n")
	fmt.Fprintf(&b, "\nSitemap: %s\n", AbsURL(site.Site.URL, "/sitemap.xml"))
	return b.String()
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, buildRobots(a.Site))
}

type webManifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	Lang            string         `json:"lang,omitempty"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Icons           []manifestIcon `json:"icons"`
}

type manifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

func buildManifest(site siteconfig.Config) webManifest {
	fav := site.Site.Favicon
	icons := []manifestIcon{}
	if fav.PNG != "" {
		icons = append(icons, manifestIcon{Src: fav.PNG, Sizes: fmt.Sprintf("%dx%d", faviconSize, faviconSize), Type: "image/png"})
	}
	if fav.AppleTouchIcon != "" && fav.AppleTouchIcon != fav.PNG {
		icons = append(icons, manifestIcon{Src: fav.AppleTouchIcon, Sizes: fmt.Sprintf("%dx%d", appleTouchSize, appleTouchSize), Type: "image/png"})
	}
	if fav.SVG != "" {
		icons = append(icons, manifestIcon{Src: fav.SVG, Sizes: "any", Type: "image/svg+xml"})
	}
	if fav.ICO != "" {
		icons = append(icons, manifestIcon{Src: fav.ICO, Sizes: "48x48", Type: "image/x-icon"})
	}
	return webManifest{
		Name:            site.Site.Title,
		ShortName:       site.Site.Name,
		Description:     site.Site.Description,
		StartURL:        "/",
		Display:         "standalone",
		Lang:            views.LangTag(site.SEO.OpenGraph.Locale),
		BackgroundColor: "#ffffff",
		ThemeColor:      "#ffffff",
		Icons:           icons,
	}
}

func (a *App) handleManifest(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/manifest+json; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	enc := json.NewEncoder(c.Response())
	enc.SetEscapeHTML(false)
	return enc.Encode(buildManifest(a.Site))
}

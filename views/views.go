// Package views renders the blog's pages from the site configuration.
//
// Every component is a templ.Component so the engine can render them the same
// way it renders user-provided components.
package views

import (
	"context"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/smile243/blog/markdown"
	"github.com/smile243/blog/siteconfig"
)

// page is the data every template receives.
type page struct {
	Site        siteconfig.Config
	Meta        PageMeta
	Lang        string
	Title       string
	Description string
	Keywords    string
	Canonical   string
	OGType      string
	Image       string
	JSONLD      template.JS

	Heading   string
	Posts     []Post
	Featured  []Post
	Post      Post
	Body      template.HTML
	Related   []Post
	Tags      []string
	ActiveTag string
	Message   string
	CSRF      string
	ShowError bool
}

func newPage(site siteconfig.Config, meta PageMeta) *page {
	p := &page{
		Site:        site,
		Meta:        meta,
		Lang:        LangTag(site.SEO.OpenGraph.Locale),
		Title:       site.Site.Title,
		Description: meta.Description,
		Keywords:    strings.Join(site.Site.Keywords, ", "),
		Canonical:   site.SEO.Canonical(meta.Path),
		OGType:      meta.OGType,
		Image:       meta.Image,
		JSONLD:      template.JS(WebsiteJsonLD(site)),
	}
	if meta.Title != "" && meta.Title != site.Site.Title {
		p.Title = meta.Title + " | " + site.Site.Title
	}
	if p.Description == "" {
		p.Description = site.Site.Description
	}
	if p.OGType == "" {
		p.OGType = string(site.SEO.OpenGraph.Type)
	}
	if p.Image == "" {
		p.Image = site.Site.Image
	}
	return p
}

func component(t *template.Template, name string, data *page) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return t.ExecuteTemplate(w, name, data)
	})
}

// NavTitle returns the title of the navigation entry for href, or fallback.
func NavTitle(site siteconfig.Config, href, fallback string) string {
	for _, item := range site.Navigation.Main {
		if NavActive(item.Href, href) {
			return item.Title
		}
	}
	return fallback
}

// Head renders the contents of <head> for a page.
func Head(site siteconfig.Config, meta PageMeta) templ.Component {
	return component(baseTmpl, "head", newPage(site, meta))
}

// Nav renders the primary navigation with the entry for activePath marked.
func Nav(site siteconfig.Config, activePath string) templ.Component {
	return component(baseTmpl, "nav", newPage(site, PageMeta{Path: activePath}))
}

// Comments renders the giscus widget for post. It renders nothing unless the
// widget is fully configured.
func Comments(site siteconfig.Config, post Post) templ.Component {
	return component(baseTmpl, "comments", newPage(site, PageMeta{Path: post.Link}))
}

// Home renders the landing page with featured posts above the latest ones.
func Home(site siteconfig.Config, featured, latest []Post) templ.Component {
	p := newPage(site, PageMeta{Path: "/"})
	p.Heading = NavTitle(site, "/featured", "Featured")
	p.Featured = featured
	p.Posts = latest
	return component(homeTmpl, "layout", p)
}

// PostList renders a titled list of posts with optional tag filtering.
func PostList(site siteconfig.Config, meta PageMeta, posts []Post, activeTag string, tags []string) templ.Component {
	p := newPage(site, meta)
	p.Heading = NavTitle(site, meta.Path, meta.Title)
	p.Posts = posts
	p.ActiveTag = activeTag
	p.Tags = tags
	return component(listTmpl, "layout", p)
}

// PostPage renders a single post, related posts and comments.
func PostPage(site siteconfig.Config, post Post, related []Post) templ.Component {
	p := newPage(site, PageMeta{
		Title:       post.Title,
		Description: post.Summary,
		Path:        post.Link,
		OGType:      string(siteconfig.OGTypeArticle),
	})
	p.JSONLD = template.JS(BlogPostingJsonLD(site, post))
	p.Post = post
	p.Related = related
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		body, err := markdown.HTML(post.Content)
		if err != nil {
			return err
		}
		p.Body = template.HTML(body)
		return postTmpl.ExecuteTemplate(w, "layout", p)
	})
}

// NotFound renders the 404 page.
func NotFound(site siteconfig.Config) templ.Component {
	return component(notFoundTmpl, "layout", newPage(site, PageMeta{Title: "404"}))
}

// ServerError renders the 500 page.
func ServerError(site siteconfig.Config) templ.Component {
	return component(serverErrorTmpl, "layout", newPage(site, PageMeta{Title: "500"}))
}

// AdminLogin renders the admin login form.
func AdminLogin(site siteconfig.Config, showError bool, csrfToken string) templ.Component {
	p := newPage(site, PageMeta{Title: "Admin", Path: "/admin/"})
	p.ShowError = showError
	p.CSRF = csrfToken
	return component(adminLoginTmpl, "layout", p)
}

// AdminDashboard renders every post, drafts included.
func AdminDashboard(site siteconfig.Config, posts []Post, message, csrfToken string) templ.Component {
	p := newPage(site, PageMeta{Title: "Admin", Path: "/admin/"})
	p.Posts = posts
	p.Message = message
	p.CSRF = csrfToken
	return component(adminDashboardTmpl, "layout", p)
}

// AdminForm renders the editor for post. A zero post renders an empty form.
func AdminForm(site siteconfig.Config, post Post, csrfToken string) templ.Component {
	p := newPage(site, PageMeta{Title: "Admin", Path: "/admin/"})
	p.Post = post
	p.CSRF = csrfToken
	return component(adminFormTmpl, "layout", p)
}

package views

import "html/template"

var funcs = template.FuncMap{
	"navActive":  NavActive,
	"joinTags":   JoinTags,
	"pathEscape": PathEscape,
}

const baseHTML = `
{{define "layout"}}<!DOCTYPE html>
<html{{with .Lang}} lang="{{.}}"{{end}}>
<head>
{{template "head" .}}
</head>
<body>
<header class="site-header">
  <a class="site-title" href="/">{{.Site.Site.Title}}</a>
  {{template "nav" .}}
</header>
<main>
{{template "main" .}}
</main>
{{template "footer" .}}
</body>
</html>
{{end}}

{{define "head"}}<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<meta name="description" content="{{.Description}}">
{{with .Keywords}}<meta name="keywords" content="{{.}}">
{{end}}{{with .Site.Author.Name}}<meta name="author" content="{{.}}">
{{end}}<link rel="canonical" href="{{.Canonical}}">
<meta property="og:type" content="{{.OGType}}">
{{with .Site.SEO.OpenGraph.Locale}}<meta property="og:locale" content="{{.}}">
{{end}}<meta property="og:site_name" content="{{.Site.Site.Name}}">
<meta property="og:title" content="{{.Title}}">
<meta property="og:description" content="{{.Description}}">
<meta property="og:url" content="{{.Canonical}}">
{{with .Image}}<meta property="og:image" content="{{.}}">
{{end}}<meta name="twitter:card" content="{{.Site.SEO.Twitter.Card}}">
{{with .Site.SEO.Twitter.Creator}}<meta name="twitter:creator" content="{{.}}">
{{end}}<meta name="twitter:title" content="{{.Title}}">
<meta name="twitter:description" content="{{.Description}}">
{{with .Image}}<meta name="twitter:image" content="{{.}}">
{{end}}{{with .Site.Site.Favicon}}{{with .ICO}}<link rel="icon" href="{{.}}" sizes="any">
{{end}}{{with .SVG}}<link rel="icon" href="{{.}}" type="image/svg+xml">
{{end}}{{with .PNG}}<link rel="icon" href="{{.}}" type="image/png">
{{end}}{{with .AppleTouchIcon}}<link rel="apple-touch-icon" href="{{.}}">
{{end}}{{end}}{{with .Site.Site.Manifest}}<link rel="manifest" href="{{.}}">
{{end}}{{with .Site.Site.RSS}}{{$title := .Title}}{{with .FeedLinks}}{{with .RSS2}}<link rel="alternate" type="application/rss+xml" title="{{$title}}" href="{{.}}">
{{end}}{{with .Atom}}<link rel="alternate" type="application/atom+xml" title="{{$title}}" href="{{.}}">
{{end}}{{with .JSON}}<link rel="alternate" type="application/feed+json" title="{{$title}}" href="{{.}}">
{{end}}{{end}}{{end}}<link rel="stylesheet" href="/assets/style.css">
<script type="application/ld+json">{{.JSONLD}}</script>
{{end}}

{{define "nav"}}<nav class="site-nav">
{{- $path := .Meta.Path}}
{{- range .Site.Navigation.Main}}
  <a href="{{.Href}}"{{if navActive .Href $path}} class="active" aria-current="page"{{end}}>{{.Title}}</a>
{{- end}}
</nav>
{{end}}

{{define "footer"}}<footer class="site-footer">
  <p>{{.Site.Author.Bio}}</p>
  <p>
  {{- range .Site.Social.Links}}
    <a href="{{.URL}}" rel="me noopener" target="_blank">{{.Name}}</a>
  {{- end}}
  {{- with .Site.Site.RSS.FeedLinks.RSS2}}
    <a href="{{.}}">RSS</a>
  {{- end}}
  </p>
  <p>&copy; {{.Site.Author.Name}}</p>
</footer>
{{end}}

{{define "comments"}}{{if .Site.Giscus.Enabled}}<section class="comments">
<script src="https://giscus.app/client.js"
  data-repo="{{.Site.Giscus.Repo}}"
  data-repo-id="{{.Site.Giscus.RepoID}}"
  data-category-id="{{.Site.Giscus.CategoryID}}"
  data-mapping="pathname"
  data-reactions-enabled="1"
  data-input-position="top"
  data-lang="{{.Lang}}"
  crossorigin="anonymous"
  async></script>
</section>
{{end}}{{end}}

{{define "postcard"}}<article class="post-card">
  <h2><a href="/blog/{{pathEscape .Slug}}/">{{.Title}}</a>{{if .Featured}} <span class="badge">★</span>{{end}}</h2>
  <time datetime="{{.Date}}">{{.Date}}</time>
  {{with .Summary}}<p>{{.}}</p>{{end}}
  {{with .Tags}}<ul class="tags">{{range .}}<li><a href="/blog/?tag={{.}}">{{.}}</a></li>{{end}}</ul>{{end}}
</article>
{{end}}
`

const homeHTML = `{{define "main"}}
<section class="intro">
  <h1>{{.Site.Site.Title}}</h1>
  <p>{{.Site.Site.Description}}</p>
</section>
{{with .Featured}}<section class="featured">
  <h2>{{$.Heading}}</h2>
  {{range .}}{{template "postcard" .}}{{end}}
</section>
{{end}}<section class="latest">
  {{range .Posts}}{{template "postcard" .}}{{else}}<p class="empty">No posts yet.</p>{{end}}
</section>
{{end}}`

const listHTML = `{{define "main"}}
<h1>{{.Heading}}</h1>
{{with .Tags}}<ul class="tags">
  {{range .}}<li><a href="?tag={{.}}"{{if eq . $.ActiveTag}} class="active"{{end}}>{{.}}</a></li>{{end}}
</ul>{{end}}
{{range .Posts}}{{template "postcard" .}}{{else}}<p class="empty">No posts yet.</p>{{end}}
{{end}}`

const postHTML = `{{define "main"}}
<article class="post">
  <h1>{{.Post.Title}}</h1>
  <time datetime="{{.Post.Date}}">{{.Post.Date}}</time>
  {{with .Post.Tags}}<ul class="tags">{{range .}}<li><a href="/blog/?tag={{.}}">{{.}}</a></li>{{end}}</ul>{{end}}
  <div class="post-body">{{.Body}}</div>
</article>
{{with .Related}}<aside class="related">
  {{range .}}<a href="/blog/{{pathEscape .Slug}}/">{{.Title}}</a>{{end}}
</aside>{{end}}
{{template "comments" .}}
{{end}}`

const notFoundHTML = `{{define "main"}}
<h1>404</h1>
<p><a href="/">{{.Site.Site.Title}}</a></p>
{{end}}`

const serverErrorHTML = `{{define "main"}}
<h1>500</h1>
<p><a href="/">{{.Site.Site.Title}}</a></p>
{{end}}`

const adminLoginHTML = `{{define "main"}}
<h1>Admin</h1>
{{if .ShowError}}<p class="error">Wrong password.</p>{{end}}
<form method="post" action="/admin/login/">
  <input type="hidden" name="_csrf" value="{{.CSRF}}">
  <input type="password" name="password" autocomplete="current-password" required>
  <button type="submit">Log in</button>
</form>
{{end}}`

const adminDashboardHTML = `{{define "main"}}
<h1>Posts</h1>
{{with .Message}}<p class="message">{{.}}</p>{{end}}
<p><a href="/admin/new/">New post</a></p>
<table class="admin-posts">
{{range .Posts}}<tr>
  <td><a href="/admin/post/{{pathEscape .Slug}}/">{{.Title}}</a></td>
  <td>{{.Date}}</td>
  <td>{{if .Published}}published{{else}}draft{{end}}{{if .Featured}}, featured{{end}}</td>
  <td><form method="post" action="/admin/post/{{pathEscape .Slug}}/delete/">
    <input type="hidden" name="_csrf" value="{{$.CSRF}}">
    <button type="submit">Delete</button>
  </form></td>
</tr>{{end}}
</table>
<h2>Icons</h2>
<form method="post" action="/admin/icons/" enctype="multipart/form-data">
  <input type="hidden" name="_csrf" value="{{.CSRF}}">
  <input type="file" name="image" accept="image/png,image/jpeg,image/gif,image/webp,image/bmp" required>
  <button type="submit">Regenerate</button>
</form>
<form method="post" action="/admin/logout/">
  <input type="hidden" name="_csrf" value="{{.CSRF}}">
  <button type="submit">Log out</button>
</form>
{{end}}`

const adminFormHTML = `{{define "main"}}
<h1>{{if .Post.Slug}}Edit{{else}}New post{{end}}</h1>
<form method="post" action="/admin/save/" class="admin-form">
  <input type="hidden" name="_csrf" value="{{.CSRF}}">
  <label>Title <input name="title" value="{{.Post.Title}}" required></label>
  <label>Slug <input name="slug" value="{{.Post.Slug}}"></label>
  <label>Date <input name="date" value="{{.Post.Date}}" placeholder="2006-01-02"></label>
  <label>Tags <input name="tags" value="{{joinTags .Post.Tags}}"></label>
  <label>Summary <textarea name="summary">{{.Post.Summary}}</textarea></label>
  <label>Content <textarea name="content" rows="20">{{.Post.Content}}</textarea></label>
  <label><input type="checkbox" name="published"{{if .Post.Published}} checked{{end}}> Published</label>
  <label><input type="checkbox" name="featured"{{if .Post.Featured}} checked{{end}}> Featured</label>
  <button type="submit">Save</button>
</form>
{{end}}`

var (
	baseTmpl           = template.Must(template.New("base").Funcs(funcs).Parse(baseHTML))
	homeTmpl           = pageTemplate(homeHTML)
	listTmpl           = pageTemplate(listHTML)
	postTmpl           = pageTemplate(postHTML)
	notFoundTmpl       = pageTemplate(notFoundHTML)
	serverErrorTmpl    = pageTemplate(serverErrorHTML)
	adminLoginTmpl     = pageTemplate(adminLoginHTML)
	adminDashboardTmpl = pageTemplate(adminDashboardHTML)
	adminFormTmpl      = pageTemplate(adminFormHTML)
)

// pageTemplate returns a copy of the base template set with "main" defined by body.
func pageTemplate(body string) *template.Template {
	return template.Must(template.Must(baseTmpl.Clone()).Parse(body))
}

package blog

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/smile243/blog/siteconfig"
)

const testPassword = "correct horse"

func newTestApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	dir := t.TempDir()
	a := New(ServerConfig{
		DatabasePath:   filepath.Join(dir, "blog.db"),
		StaticDir:      filepath.Join(dir, "public"),
		AdminPassword:  testPassword,
		SessionSecret:  "0123456789abcdef0123456789abcdef",
		MetricsEnabled: true,
	}, append([]Option{WithLogger(zerolog.Nop())}, opts...)...)
	if err := a.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { a.Close() })

	savePosts(t, a.Store,
		Post{Slug: "hello-echo", Title: "Hello Echo", Date: "2024-02-01", Tags: []string{"go"}, Summary: "First", Content: "Some **markdown**.", Published: true, Featured: true},
		Post{Slug: "spring-notes", Title: "Spring Notes", Date: "2024-01-01", Tags: []string{"java"}, Summary: "Second", Content: "text", Published: true},
		Post{Slug: "secret-draft", Title: "Secret Draft", Date: "2024-03-01", Content: "wip"},
	)
	a.Cache.Invalidate()
	return a
}

func request(a *App, method, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func TestInitRequiresSecrets(t *testing.T) {
	dir := t.TempDir()
	if err := New(ServerConfig{DatabasePath: filepath.Join(dir, "a.db"), SessionSecret: "x"}).Init(); err == nil {
		t.Error("expected error without AdminPassword")
	}
	if err := New(ServerConfig{DatabasePath: filepath.Join(dir, "b.db"), AdminPassword: "x"}).Init(); err == nil {
		t.Error("expected error without SessionSecret")
	}
}

func TestPublicPages(t *testing.T) {
	a := newTestApp(t)
	tests := []struct {
		target   string
		status   int
		contains []string
		absent   []string
	}{
		{"/", http.StatusOK, []string{"推荐文章", "Hello Echo", "Spring Notes", `<html lang="zh-CN">`}, []string{"Secret Draft"}},
		{"/featured/", http.StatusOK, []string{"<h1>推荐文章</h1>", "Hello Echo"}, []string{"Spring Notes"}},
		{"/blog/", http.StatusOK, []string{"<h1>历史文章</h1>", "Hello Echo", "Spring Notes"}, []string{"Secret Draft"}},
		{"/blog/?tag=java", http.StatusOK, []string{"Spring Notes"}, []string{"Hello Echo"}},
		{"/blog/hello-echo/", http.StatusOK, []string{"Hello Echo | Smile", "<strong>markdown</strong>", `"@type":"BlogPosting"`}, nil},
		{"/blog/secret-draft/", http.StatusNotFound, []string{"404"}, nil},
		{"/nothing-here/", http.StatusNotFound, []string{"404"}, nil},
	}
	for _, tt := range tests {
		rec := request(a, http.MethodGet, tt.target, nil, nil)
		if rec.Code != tt.status {
			t.Errorf("GET %s status = %d, want %d", tt.target, rec.Code, tt.status)
			continue
		}
		body := rec.Body.String()
		for _, want := range tt.contains {
			if !strings.Contains(body, want) {
				t.Errorf("GET %s missing %q", tt.target, want)
			}
		}
		for _, bad := range tt.absent {
			if strings.Contains(body, bad) {
				t.Errorf("GET %s should not contain %q", tt.target, bad)
			}
		}
	}
}

func TestTrailingSlashRedirect(t *testing.T) {
	a := newTestApp(t)
	rec := request(a, http.MethodGet, "/blog", nil, nil)
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("GET /blog status = %d, want 301", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/blog/" {
		t.Errorf("Location = %q, want /blog/", loc)
	}
}

func TestListPagesFollowNavigation(t *testing.T) {
	site := siteconfig.Default()
	site.Navigation.Main = []siteconfig.NavItem{
		{Title: "精选", Href: "/picks"},
		{Title: "文章", Href: "/posts/"},
		{Title: "全部", Href: "/blog"},
		{Title: "GitHub", Href: "https://github.com/smile243"},
		{Title: "后台", Href: "/admin"},
	}
	a := newTestApp(t, WithSite(site))

	tests := []struct {
		target string
		status int
		want   string
	}{
		{"/picks/", http.StatusOK, "<h1>精选</h1>"},
		{"/posts/", http.StatusOK, "<h1>文章</h1>"},
		{"/blog/", http.StatusOK, "<h1>全部</h1>"},
		{"/featured/", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		rec := request(a, http.MethodGet, tt.target, nil, nil)
		if rec.Code != tt.status {
			t.Errorf("GET %s status = %d, want %d", tt.target, rec.Code, tt.status)
			continue
		}
		if tt.want != "" && !strings.Contains(rec.Body.String(), tt.want) {
			t.Errorf("GET %s missing %q", tt.target, tt.want)
		}
	}

	rec := request(a, http.MethodGet, "/sitemap.xml", nil, nil)
	for _, loc := range []string{"https://jialeyu.com/picks/", "https://jialeyu.com/posts/"} {
		if !strings.Contains(rec.Body.String(), "<loc>"+loc+"</loc>") {
			t.Errorf("sitemap missing %s", loc)
		}
	}
	if strings.Contains(rec.Body.String(), "github.com") || strings.Contains(rec.Body.String(), "/admin") {
		t.Error("sitemap should list only pages this site serves")
	}
}

func TestListPages(t *testing.T) {
	got := listPages([]siteconfig.NavItem{
		{Title: "a", Href: "/featured"},
		{Title: "dup", Href: "/featured/"},
		{Title: "home", Href: "/"},
		{Title: "archive", Href: "/blog"},
		{Title: "post", Href: "/blog/hello"},
		{Title: "ext", Href: "https://example.com"},
		{Title: "proto", Href: "//example.com"},
		{Title: "file", Href: "/rss.xml"},
		{Title: "admin", Href: "/admin/"},
		{Title: "b", Href: "/picks"},
	})
	if len(got) != 2 || got[0].Href != "/featured" || got[1].Href != "/picks" {
		t.Errorf("listPages = %v, want [/featured /picks]", got)
	}
}

func TestDiscoveryEndpoints(t *testing.T) {
	a := newTestApp(t)
	tests := []struct {
		target, contentType, contains string
	}{
		{"/rss.xml", "application/rss+xml", "<link>https://jialeyu.com/blog/hello-echo/</link>"},
		{"/atom.xml", "application/atom+xml", `<feed xmlns="http://www.w3.org/2005/Atom">`},
		{"/feed.json", "application/feed+json", `"content_html"`},
		{"/sitemap.xml", "application/xml", "<loc>https://jialeyu.com/featured/</loc>"},
		{"/robots.txt", "text/plain", "Sitemap: https://jialeyu.com/sitemap.xml"},
		{"/site.webmanifest", "application/manifest+json", `"short_name":"Smile"`},
	}
	for _, tt := range tests {
		rec := request(a, http.MethodGet, tt.target, nil, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", tt.target, rec.Code)
			continue
		}
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, tt.contentType) {
			t.Errorf("GET %s Content-Type = %q, want %s", tt.target, ct, tt.contentType)
		}
		if !strings.Contains(rec.Body.String(), tt.contains) {
			t.Errorf("GET %s missing %q", tt.target, tt.contains)
		}
		if strings.Contains(rec.Body.String(), "secret-draft") {
			t.Errorf("GET %s leaks a draft", tt.target)
		}
	}
}

func TestFaviconServedFromStaticDir(t *testing.T) {
	a := newTestApp(t)
	if err := os.MkdirAll(a.Config.StaticDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(a.Config.StaticDir, "favicon.svg"), []byte("<svg/>"), 0o644); err != nil {
		t.Fatal(err)
	}
	rec := request(a, http.MethodGet, "/favicon.svg", nil, nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "<svg/>" {
		t.Errorf("GET /favicon.svg = %d %q", rec.Code, rec.Body.String())
	}
	if rec := request(a, http.MethodGet, "/favicon.ico", nil, nil); rec.Code != http.StatusNotFound {
		t.Errorf("missing favicon status = %d, want 404", rec.Code)
	}
}

func TestMetricsCountFeeds(t *testing.T) {
	a := newTestApp(t)
	request(a, http.MethodGet, "/rss.xml", nil, nil)
	request(a, http.MethodGet, "/", nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/blog/", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")
	a.Echo.ServeHTTP(httptest.NewRecorder(), req)

	rec := request(a, http.MethodGet, "/metrics", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /metrics status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`blog_feed_requests_total{format="rss"} 1`,
		`blog_page_views_total{client="desktop",page="home"} 1`,
		`blog_page_views_total{client="bot",page="archive"} 1`,
		`blog_crawler_requests_total{crawler="Googlebot"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}

// csrfCookie fetches the login page and returns the CSRF cookie it sets.
func csrfCookie(t *testing.T, a *App) *http.Cookie {
	t.Helper()
	rec := request(a, http.MethodGet, "/admin/", nil, nil)
	for _, c := range rec.Result().Cookies() {
		if c.Name == "_csrf" {
			return c
		}
	}
	t.Fatal("no _csrf cookie on /admin/")
	return nil
}

func login(t *testing.T, a *App, password string, csrf *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"password": {password}, "_csrf": {csrf.Value}}
	return request(a, http.MethodPost, "/admin/login/", form, []*http.Cookie{csrf})
}

func TestAdminRequiresCSRF(t *testing.T) {
	a := newTestApp(t)
	form := url.Values{"password": {testPassword}}
	if rec := request(a, http.MethodPost, "/admin/login/", form, nil); rec.Code != http.StatusForbidden {
		t.Errorf("login without token status = %d, want 403", rec.Code)
	}
}

func TestAdminLoginAndSave(t *testing.T) {
	a := newTestApp(t)
	csrf := csrfCookie(t, a)

	if rec := login(t, a, "wrong", csrf); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password status = %d, want 401", rec.Code)
	}

	rec := login(t, a, testPassword, csrf)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d, want 303", rec.Code)
	}
	cookies := append(rec.Result().Cookies(), csrf)

	dash := request(a, http.MethodGet, "/admin/", nil, cookies)
	if !strings.Contains(dash.Body.String(), "Secret Draft") {
		t.Error("dashboard should list drafts")
	}

	form := url.Values{
		"_csrf":     {csrf.Value},
		"title":     {"你好 世界"},
		"date":      {"2024-04-01"},
		"tags":      {"随笔, ,go"},
		"summary":   {"hi"},
		"content":   {"body"},
		"published": {"on"},
		"featured":  {"on"},
	}
	rec = request(a, http.MethodPost, "/admin/save/", form, cookies)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin/?msg=saved" {
		t.Fatalf("save = %d %q", rec.Code, rec.Header().Get("Location"))
	}

	post, err := a.Cache.GetPost("你好-世界")
	if err != nil {
		t.Fatalf("saved post not visible: %v", err)
	}
	if !post.Featured || len(post.Tags) != 2 {
		t.Errorf("saved post = %+v", post)
	}

	form.Set("date", "April 1st")
	rec = request(a, http.MethodPost, "/admin/save/", form, cookies)
	if loc := rec.Header().Get("Location"); !strings.Contains(loc, "Invalid+date") {
		t.Errorf("invalid date redirect = %q", loc)
	}

	rec = request(a, http.MethodPost, "/admin/post/spring-notes/delete/", url.Values{"_csrf": {csrf.Value}}, cookies)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("delete status = %d", rec.Code)
	}
	if rec := request(a, http.MethodGet, "/blog/spring-notes/", nil, nil); rec.Code != http.StatusNotFound {
		t.Errorf("deleted post status = %d, want 404", rec.Code)
	}
}

func TestAdminActionsNeedSession(t *testing.T) {
	a := newTestApp(t)
	csrf := csrfCookie(t, a)
	form := url.Values{"_csrf": {csrf.Value}, "title": {"Sneaky"}}
	rec := request(a, http.MethodPost, "/admin/save/", form, []*http.Cookie{csrf})
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin/" {
		t.Errorf("anonymous save = %d %q", rec.Code, rec.Header().Get("Location"))
	}
	if _, err := a.Store.GetPostAny("sneaky"); err == nil {
		t.Error("anonymous save must not write")
	}
}

func TestAdminLoginRateLimited(t *testing.T) {
	a := newTestApp(t)
	csrf := csrfCookie(t, a)
	for i := 0; i < 5; i++ {
		if rec := login(t, a, "wrong", csrf); rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d status = %d, want 401", i+1, rec.Code)
		}
	}
	if rec := login(t, a, testPassword, csrf); rec.Code != http.StatusTooManyRequests {
		t.Errorf("attempt after limit status = %d, want 429", rec.Code)
	}
}

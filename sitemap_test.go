package blog

import (
	"strings"
	"testing"

	"github.com/smile243/blog/siteconfig"
)

func TestBuildSitemap(t *testing.T) {
	posts := []Post{
		{Slug: "newer", Date: "2024-03-01"},
		{Slug: "older", Date: "2023-12-31"},
	}
	set := buildSitemap(siteconfig.Default(), posts)

	want := []sitemapURL{
		{Loc: "https://jialeyu.com/", LastMod: "2024-03-01"},
		{Loc: "https://jialeyu.com/featured/"},
		{Loc: "https://jialeyu.com/blog/"},
		{Loc: "https://jialeyu.com/blog/newer/", LastMod: "2024-03-01"},
		{Loc: "https://jialeyu.com/blog/older/", LastMod: "2023-12-31"},
	}
	if len(set.URLs) != len(want) {
		t.Fatalf("urls = %+v, want %+v", set.URLs, want)
	}
	for i := range want {
		if set.URLs[i] != want[i] {
			t.Errorf("url[%d] = %+v, want %+v", i, set.URLs[i], want[i])
		}
	}
	if set.XMLNS != "http://www.sitemaps.org/schemas/sitemap/0.9" {
		t.Errorf("xmlns = %q", set.XMLNS)
	}
}

func TestBuildSitemapSkipsDuplicateNavigation(t *testing.T) {
	site := siteconfig.Default()
	site.Navigation.Main = append(site.Navigation.Main, siteconfig.NavItem{Title: "Home", Href: "/"})
	set := buildSitemap(site, nil)
	if len(set.URLs) != 3 {
		t.Errorf("urls = %+v, want home plus two navigation targets", set.URLs)
	}
}

func TestBuildRobots(t *testing.T) {
	got := buildRobots(siteconfig.Default())
	for _, want := range []string{"User-agent: *", "Disallow: /admin/", "Sitemap: https://jialeyu.com/sitemap.xml"} {
		if !strings.Contains(got, want) {
			t.Errorf("robots.txt missing %q:\n%s", want, got)
		}
	}
}

func TestBuildManifest(t *testing.T) {
	m := buildManifest(siteconfig.Default())
	if m.Name != "Smile" || m.ShortName != "Smile" || m.Description != "No code, no life." {
		t.Errorf("manifest identity = %q %q %q", m.Name, m.ShortName, m.Description)
	}
	if m.StartURL != "/" || m.Lang != "zh-CN" {
		t.Errorf("start_url = %q lang = %q", m.StartURL, m.Lang)
	}
	// png and appleTouchIcon share a path, so only one PNG entry appears.
	if len(m.Icons) != 3 {
		t.Fatalf("icons = %+v, want png, svg and ico", m.Icons)
	}
	if m.Icons[0].Src != "/favicon.png" || m.Icons[0].Sizes != "512x512" {
		t.Errorf("first icon = %+v", m.Icons[0])
	}
}

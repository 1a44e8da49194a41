// Package siteconfig holds the static configuration of the blog: identity and
// feed metadata, the author profile, social links, the comment widget, primary
// navigation and SEO defaults.
//
// The configuration is compiled in. Default returns it by value, so callers
// read it by plain field access (siteconfig.Default().Site.Title) and can never
// change what other readers see.
package siteconfig

// Config is the root configuration record.
type Config struct {
	Site       Site       `json:"site" yaml:"site"`
	Author     Author     `json:"author" yaml:"author"`
	Social     Social     `json:"social" yaml:"social"`
	Giscus     Giscus     `json:"giscus" yaml:"giscus"`
	Navigation Navigation `json:"navigation" yaml:"navigation"`
	SEO        SEO        `json:"seo" yaml:"seo"`
}

// Site carries identity and discovery metadata for the site and its feeds.
type Site struct {
	Title       string   `json:"title" yaml:"title"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Keywords    []string `json:"keywords" yaml:"keywords"` // render order
	URL         string   `json:"url" yaml:"url"`
	BaseURL     string   `json:"baseUrl" yaml:"baseUrl"`
	Image       string   `json:"image" yaml:"image"`
	Favicon     Favicon  `json:"favicon" yaml:"favicon"`
	Manifest    string   `json:"manifest" yaml:"manifest"`
	RSS         RSS      `json:"rss" yaml:"rss"`
}

// Favicon lists site-relative icon paths.
type Favicon struct {
	ICO            string `json:"ico" yaml:"ico"`
	PNG            string `json:"png" yaml:"png"`
	SVG            string `json:"svg" yaml:"svg"`
	AppleTouchIcon string `json:"appleTouchIcon" yaml:"appleTouchIcon"`
}

// RSS describes the syndication channel shared by every feed format.
type RSS struct {
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	FeedLinks   FeedLinks `json:"feedLinks" yaml:"feedLinks"`
}

// FeedLinks are the site-relative endpoints of each feed format.
type FeedLinks struct {
	RSS2 string `json:"rss2" yaml:"rss2"`
	JSON string `json:"json" yaml:"json"`
	Atom string `json:"atom" yaml:"atom"`
}

// Author is the single author profile.
type Author struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Bio   string `json:"bio" yaml:"bio"`
}

// Social holds profile URLs. An empty string means the profile is not set.
type Social struct {
	GitHub       string `json:"github" yaml:"github"`
	X            string `json:"x" yaml:"x"`
	Xiaohongshu  string `json:"xiaohongshu" yaml:"xiaohongshu"`
	WeChat       string `json:"wechat" yaml:"wechat"`
	BuyMeACoffee string `json:"buyMeACoffee" yaml:"buyMeACoffee"`
}

// SocialLink is one set social profile.
type SocialLink struct {
	Name string
	URL  string
}

// Links returns the profiles that are set, in a fixed order.
func (s Social) Links() []SocialLink {
	all := []SocialLink{
		{Name: "GitHub", URL: s.GitHub},
		{Name: "X", URL: s.X},
		{Name: "小红书", URL: s.Xiaohongshu},
		{Name: "WeChat", URL: s.WeChat},
		{Name: "Buy Me a Coffee", URL: s.BuyMeACoffee},
	}
	var out []SocialLink
	for _, l := range all {
		if l.URL != "" {
			out = append(out, l)
		}
	}
	return out
}

// Giscus identifies the repository and discussion category backing the
// comment widget.
type Giscus struct {
	Repo       string `json:"repo" yaml:"repo"`
	RepoID     string `json:"repoId" yaml:"repoId"`
	CategoryID string `json:"categoryId" yaml:"categoryId"`
}

// Enabled reports whether all identifiers needed to embed the widget are set.
func (g Giscus) Enabled() bool {
	return g.Repo != "" && g.RepoID != "" && g.CategoryID != ""
}

// Navigation defines the primary navigation.
type Navigation struct {
	Main []NavItem `json:"main" yaml:"main"` // render order
}

// NavItem is one navigation link.
type NavItem struct {
	Title string `json:"title" yaml:"title"`
	Href  string `json:"href" yaml:"href"`
}

// OGType is an Open Graph object type.
type OGType string

const (
	OGTypeWebsite OGType = "website"
	OGTypeArticle OGType = "article"
)

// TwitterCard is a Twitter card type.
type TwitterCard string

const (
	TwitterCardSummary           TwitterCard = "summary"
	TwitterCardSummaryLargeImage TwitterCard = "summary_large_image"
)

// SEO holds the default search and sharing metadata.
type SEO struct {
	MetadataBase URL        `json:"metadataBase" yaml:"metadataBase"`
	Alternates   Alternates `json:"alternates" yaml:"alternates"`
	OpenGraph    OpenGraph  `json:"openGraph" yaml:"openGraph"`
	Twitter      Twitter    `json:"twitter" yaml:"twitter"`
}

// Alternates holds the canonical reference, relative to MetadataBase.
type Alternates struct {
	Canonical string `json:"canonical" yaml:"canonical"`
}

// OpenGraph holds Open Graph defaults.
type OpenGraph struct {
	Type   OGType `json:"type" yaml:"type"`
	Locale string `json:"locale" yaml:"locale"`
}

// Twitter holds Twitter card defaults.
type Twitter struct {
	Card    TwitterCard `json:"card" yaml:"card"`
	Creator string      `json:"creator" yaml:"creator"`
}

// Canonical returns the canonical URL of the page at path: Alternates.Canonical
// resolved against MetadataBase joined with path.
func (s SEO) Canonical(path string) string {
	page := s.MetadataBase.Resolve(path)
	ref := s.Alternates.Canonical
	if ref == "" {
		return page
	}
	base, err := ParseURL(page)
	if err != nil {
		return page
	}
	return base.Resolve(ref)
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	if c.Site.Keywords != nil {
		out.Site.Keywords = append([]string(nil), c.Site.Keywords...)
	}
	if c.Navigation.Main != nil {
		out.Navigation.Main = append([]NavItem(nil), c.Navigation.Main...)
	}
	out.SEO.MetadataBase = c.SEO.MetadataBase.clone()
	return out
}

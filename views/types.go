package views

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	Path        string // site-relative path; canonical + og:url are derived from it
	OGType      string // "website" or "article"; empty falls back to the configured type
	Image       string // absolute image URL; empty falls back to site.image
}

// Post is the core content type stored in SQLite and rendered by templates.
type Post struct {
	Title     string
	Date      string
	Tags      []string
	Summary   string
	Link      string
	Slug      string
	Content   string
	Published bool
	Featured  bool
}

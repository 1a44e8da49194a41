package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"golang.org/x/text/language"

	"github.com/smile243/blog/siteconfig"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// FilterRelatedPosts returns posts that share at least one tag with the current post.
func FilterRelatedPosts(current Post, posts []Post) []Post {
	tagSet := make(map[string]struct{})
	for _, t := range current.Tags {
		tag := strings.ToLower(strings.TrimSpace(t))
		if tag != "" {
			tagSet[tag] = struct{}{}
		}
	}
	var related []Post
	for _, p := range posts {
		if p.Slug == current.Slug {
			continue
		}
		for _, t := range p.Tags {
			tag := strings.ToLower(strings.TrimSpace(t))
			if _, ok := tagSet[tag]; ok {
				related = append(related, p)
				break
			}
		}
	}
	return related
}

// PathEscape wraps url.PathEscape for use in template expressions.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// JoinTags formats a tag slice as a comma-separated string for form fields.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// LangTag converts an Open Graph locale such as "zh_CN" to a BCP 47 tag
// ("zh-CN"). It returns "" when the locale is empty or not a valid tag.
func LangTag(locale string) string {
	if locale == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil || tag == language.Und {
		return ""
	}
	return tag.String()
}

// NavActive reports whether href is the navigation entry for the page at p.
func NavActive(href, p string) bool {
	return strings.TrimSuffix(href, "/") == strings.TrimSuffix(p, "/") && href != ""
}

func authorLD(cfg siteconfig.Config) map[string]interface{} {
	if cfg.Author.Name == "" {
		return nil
	}
	author := map[string]interface{}{
		"@type": "Person",
		"name":  cfg.Author.Name,
	}
	var sameAs []string
	for _, l := range cfg.Social.Links() {
		sameAs = append(sameAs, l.URL)
	}
	if len(sameAs) > 0 {
		author["sameAs"] = sameAs
	}
	return author
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg siteconfig.Config) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Site.Name,
		"url":      buildURL(cfg.Site.URL),
	}
	if cfg.Site.Description != "" {
		data["description"] = cfg.Site.Description
	}
	if lang := LangTag(cfg.SEO.OpenGraph.Locale); lang != "" {
		data["inLanguage"] = lang
	}
	if author := authorLD(cfg); author != nil {
		data["author"] = author
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(cfg siteconfig.Config, post Post) string {
	postURL := buildURL(cfg.Site.URL, "blog", post.Slug)
	data := map[string]interface{}{
		"@context":      "https://schema.org",
		"@type":         "BlogPosting",
		"headline":      post.Title,
		"description":   post.Summary,
		"datePublished": post.Date,
		"url":           postURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Site.Name,
		},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if cfg.Site.Image != "" {
		data["image"] = cfg.Site.Image
	}
	if author := authorLD(cfg); author != nil {
		data["author"] = author
	}
	if len(post.Tags) > 0 {
		data["keywords"] = strings.Join(post.Tags, ", ")
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

package blog

import (
	"net/url"
	"path"
	"strings"
	"unicode"
)

// Slugify converts a title to a URL-safe slug. Letters and digits of any
// script are kept, so Chinese titles produce Chinese slugs.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	prev := false
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prev = false
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
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

// AbsURL resolves a site-relative path such as "/rss.xml" against base. Unlike
// BuildURL it keeps the path exactly as given.
func AbsURL(base, p string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base + p
	}
	ref, err := url.Parse(p)
	if err != nil {
		return base + p
	}
	return u.ResolveReference(ref).String()
}

// FilterEmpty removes empty/whitespace-only strings from a slice.
func FilterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

package blog

import "strings"

// crawlers maps User-Agent fragments to crawler names. More specific patterns
// come first.
var crawlers = []struct{ pattern, name string }{
	{"googlebot", "Googlebot"},
	{"bingbot", "Bingbot"},
	{"baiduspider", "Baidu"},
	{"yandex", "Yandex"},
	{"duckduckbot", "DuckDuckBot"},
	{"sogou", "Sogou"},
	{"bytespider", "Bytespider"},
	{"facebookexternalhit", "Facebook"},
	{"twitterbot", "Twitterbot"},
	{"linkedinbot", "LinkedIn"},
	{"ahrefsbot", "Ahrefs"},
	{"semrushbot", "SEMrush"},
	{"slurp", "Yahoo Slurp"},
	{"crawler", "Generic Crawler"},
	{"spider", "Generic Spider"},
	{"bot", "Other Bot"},
}

// crawlerName returns the crawler that sent ua, or "" for regular browsers.
func crawlerName(ua string) string {
	ua = strings.ToLower(ua)
	for _, c := range crawlers {
		if strings.Contains(ua, c.pattern) {
			return c.name
		}
	}
	return ""
}

// clientClass buckets a User-Agent into "bot", "tablet", "mobile" or
// "desktop". iPad agents also contain "mobile", so tablets are checked first.
func clientClass(ua string) string {
	if crawlerName(ua) != "" {
		return "bot"
	}
	ua = strings.ToLower(ua)
	switch {
	case strings.Contains(ua, "tablet"), strings.Contains(ua, "ipad"):
		return "tablet"
	case strings.Contains(ua, "mobile"):
		return "mobile"
	default:
		return "desktop"
	}
}

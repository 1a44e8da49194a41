package siteconfig

var canonical = Config{
	Site: Site{
		Title:       "Smile",
		Name:        "Smile",
		Description: "No code, no life.",
		Keywords:    []string{"Javaer"},
		URL:         "https://jialeyu.com",
		BaseURL:     "https://jialeyu.com",
		Image:       "https://jialeyu.com/og-image.png",
		Favicon: Favicon{
			ICO:            "/favicon.ico",
			PNG:            "/favicon.png",
			SVG:            "/favicon.svg",
			AppleTouchIcon: "/favicon.png",
		},
		Manifest: "/site.webmanifest",
		RSS: RSS{
			Title:       "Nextjs Blog Template",
			Description: "Thoughts on Full-stack development, AI",
			FeedLinks: FeedLinks{
				RSS2: "/rss.xml",
				JSON: "/feed.json",
				Atom: "/atom.xml",
			},
		},
	},
	Author: Author{
		Name:  "Jiale Yu",
		Email: "827359508@qq.com",
		Bio:   "smile的博客",
	},
	Social: Social{
		GitHub:       "https://github.com/smile243",
		X:            "",
		Xiaohongshu:  "",
		WeChat:       "",
		BuyMeACoffee: "",
	},
	Giscus: Giscus{
		Repo:       "",
		RepoID:     "、",
		CategoryID: "",
	},
	Navigation: Navigation{
		Main: []NavItem{
			{Title: "推荐文章", Href: "/featured"},
			{Title: "历史文章", Href: "/blog"},
		},
	},
	SEO: SEO{
		MetadataBase: MustParseURL("https://xxx.com"),
		Alternates: Alternates{
			Canonical: "./",
		},
		OpenGraph: OpenGraph{
			Type:   OGTypeWebsite,
			Locale: "zh_CN",
		},
		Twitter: Twitter{
			Card:    TwitterCardSummaryLargeImage,
			Creator: "@xxx",
		},
	},
}

// Default returns the site configuration. Each call returns an independent
// deep copy.
func Default() Config {
	return canonical.Clone()
}

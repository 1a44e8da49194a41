package blog

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/smile243/blog/markdown"
	"github.com/smile243/blog/siteconfig"
	"github.com/smile243/blog/views"
)

const postDateLayout = "2006-01-02"

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	AtomNS  string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title          string      `xml:"title"`
	Link           string      `xml:"link"`
	Description    string      `xml:"description"`
	Language       string      `xml:"language,omitempty"`
	ManagingEditor string      `xml:"managingEditor,omitempty"`
	LastBuildDate  string      `xml:"lastBuildDate,omitempty"`
	AtomLink       rssAtomLink `xml:"atom:link"`
	Items          []rssItem   `xml:"item"`
}

type rssAtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        rssGUID  `xml:"guid"`
	Categories  []string `xml:"category"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

type atomFeed struct {
	XMLName  xml.Name    `xml:"http://www.w3.org/2005/Atom feed"`
	Title    string      `xml:"title"`
	Subtitle string      `xml:"subtitle,omitempty"`
	ID       string      `xml:"id"`
	Updated  string      `xml:"updated"`
	Links    []atomLink  `xml:"link"`
	Author   *atomPerson `xml:"author,omitempty"`
	Icon     string      `xml:"icon,omitempty"`
	Entries  []atomEntry `xml:"entry"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
	Type string `xml:"type,attr,omitempty"`
}

type atomPerson struct {
	Name  string `xml:"name"`
	Email string `xml:"email,omitempty"`
	URI   string `xml:"uri,omitempty"`
}

type atomEntry struct {
	Title      string         `xml:"title"`
	ID         string         `xml:"id"`
	Updated    string         `xml:"updated"`
	Published  string         `xml:"published,omitempty"`
	Links      []atomLink     `xml:"link"`
	Summary    string         `xml:"summary,omitempty"`
	Categories []atomCategory `xml:"category"`
}

type atomCategory struct {
	Term string `xml:"term,attr"`
}

type jsonFeed struct {
	Version     string           `json:"version"`
	Title       string           `json:"title"`
	HomePageURL string           `json:"home_page_url"`
	FeedURL     string           `json:"feed_url"`
	Description string           `json:"description,omitempty"`
	Icon        string           `json:"icon,omitempty"`
	Favicon     string           `json:"favicon,omitempty"`
	Language    string           `json:"language,omitempty"`
	Authors     []jsonFeedAuthor `json:"authors,omitempty"`
	Items       []jsonFeedItem   `json:"items"`
}

type jsonFeedAuthor struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type jsonFeedItem struct {
	ID            string   `json:"id"`
	URL           string   `json:"url"`
	Title         string   `json:"title"`
	Summary       string   `json:"summary,omitempty"`
	ContentHTML   string   `json:"content_html"`
	DatePublished string   `json:"date_published,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

func postTime(p Post) (time.Time, bool) {
	t, err := time.Parse(postDateLayout, p.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// latestUpdate returns the date of the newest post, or fallback when no post
// has a parsable date.
func latestUpdate(posts []Post, fallback time.Time) time.Time {
	var latest time.Time
	for _, p := range posts {
		if t, ok := postTime(p); ok && t.After(latest) {
			latest = t
		}
	}
	if latest.IsZero() {
		return fallback.UTC()
	}
	return latest
}

// entryID derives a stable Atom entry id from the post URL.
func entryID(postURL string) string {
	return "urn:uuid:" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(postURL)).String()
}

func authorURL(site siteconfig.Config) string {
	if links := site.Social.Links(); len(links) > 0 {
		return links[0].URL
	}
	return site.Site.URL
}

func buildRSS(site siteconfig.Config, posts []Post, now time.Time) rssXML {
	base := site.Site.URL
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		pubDate := ""
		if t, ok := postTime(p); ok {
			pubDate = t.Format(time.RFC1123Z)
		}
		postURL := BuildURL(base, "blog", p.Slug)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Summary,
			PubDate:     pubDate,
			GUID:        rssGUID{IsPermaLink: true, Value: postURL},
			Categories:  p.Tags,
		})
	}
	editor := ""
	if site.Author.Email != "" {
		editor = fmt.Sprintf("%s (%s)", site.Author.Email, site.Author.Name)
	}
	return rssXML{
		Version: "2.0",
		AtomNS:  "http://www.w3.org/2005/Atom",
		Channel: rssChannel{
			Title:          site.Site.RSS.Title,
			Link:           base,
			Description:    site.Site.RSS.Description,
			Language:       views.LangTag(site.SEO.OpenGraph.Locale),
			ManagingEditor: editor,
			LastBuildDate:  latestUpdate(posts, now).Format(time.RFC1123Z),
			AtomLink: rssAtomLink{
				Href: AbsURL(base, site.Site.RSS.FeedLinks.RSS2),
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Items: items,
		},
	}
}

func buildAtom(site siteconfig.Config, posts []Post, now time.Time) atomFeed {
	base := site.Site.URL
	entries := make([]atomEntry, 0, len(posts))
	for _, p := range posts {
		postURL := BuildURL(base, "blog", p.Slug)
		e := atomEntry{
			Title:   p.Title,
			ID:      entryID(postURL),
			Updated: latestUpdate([]Post{p}, now).Format(time.RFC3339),
			Links:   []atomLink{{Href: postURL, Rel: "alternate", Type: "text/html"}},
			Summary: p.Summary,
		}
		if t, ok := postTime(p); ok {
			e.Published = t.Format(time.RFC3339)
		}
		for _, tag := range p.Tags {
			e.Categories = append(e.Categories, atomCategory{Term: tag})
		}
		entries = append(entries, e)
	}
	feed := atomFeed{
		Title:    site.Site.RSS.Title,
		Subtitle: site.Site.RSS.Description,
		ID:       BuildURL(base, ""),
		Updated:  latestUpdate(posts, now).Format(time.RFC3339),
		Links: []atomLink{
			{Href: AbsURL(base, site.Site.RSS.FeedLinks.Atom), Rel: "self", Type: "application/atom+xml"},
			{Href: base, Rel: "alternate", Type: "text/html"},
		},
		Icon:    site.Site.Image,
		Entries: entries,
	}
	if site.Author.Name != "" {
		feed.Author = &atomPerson{
			Name:  site.Author.Name,
			Email: site.Author.Email,
			URI:   authorURL(site),
		}
	}
	return feed
}

func buildJSONFeed(site siteconfig.Config, posts []Post) (jsonFeed, error) {
	base := site.Site.URL
	items := make([]jsonFeedItem, 0, len(posts))
	for _, p := range posts {
		content, err := markdown.HTML(p.Content)
		if err != nil {
			return jsonFeed{}, fmt.Errorf("render %s: %w", p.Slug, err)
		}
		postURL := BuildURL(base, "blog", p.Slug)
		item := jsonFeedItem{
			ID:          postURL,
			URL:         postURL,
			Title:       p.Title,
			Summary:     p.Summary,
			ContentHTML: content,
			Tags:        p.Tags,
		}
		if t, ok := postTime(p); ok {
			item.DatePublished = t.Format(time.RFC3339)
		}
		items = append(items, item)
	}
	feed := jsonFeed{
		Version:     "https://jsonfeed.org/version/1.1",
		Title:       site.Site.RSS.Title,
		HomePageURL: base,
		FeedURL:     AbsURL(base, site.Site.RSS.FeedLinks.JSON),
		Description: site.Site.RSS.Description,
		Icon:        site.Site.Image,
		Language:    views.LangTag(site.SEO.OpenGraph.Locale),
		Items:       items,
	}
	if site.Site.Favicon.PNG != "" {
		feed.Favicon = AbsURL(base, site.Site.Favicon.PNG)
	}
	if site.Author.Name != "" {
		feed.Authors = []jsonFeedAuthor{{Name: site.Author.Name, URL: authorURL(site)}}
	}
	return feed, nil
}

func writeXML(c echo.Context, contentType string, v any) error {
	c.Response().Header().Set(echo.HeaderContentType, contentType)
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(v)
}

func (a *App) handleRSS(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	a.metrics.feed("rss", c.Request().UserAgent())
	return writeXML(c, "application/rss+xml; charset=utf-8", buildRSS(a.Site, posts, time.Now()))
}

func (a *App) handleAtom(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	a.metrics.feed("atom", c.Request().UserAgent())
	return writeXML(c, "application/atom+xml; charset=utf-8", buildAtom(a.Site, posts, time.Now()))
}

func (a *App) handleJSONFeed(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	feed, err := buildJSONFeed(a.Site, posts)
	if err != nil {
		return err
	}
	a.metrics.feed("json", c.Request().UserAgent())
	c.Response().Header().Set(echo.HeaderContentType, "application/feed+json; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	enc := json.NewEncoder(c.Response())
	enc.SetEscapeHTML(false)
	return enc.Encode(feed)
}

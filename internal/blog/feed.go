package blog

import (
	"fmt"
	"strings"

	"github.com/gorilla/feeds"

	"github.com/mahdiarghyani/portfolio/internal/content"
)

// FeedPath is the public route of the RSS feed of loc.
func FeedPath(loc content.Locale) string {
	return ListPath(loc) + "/rss.xml"
}

// Feed renders an RSS 2.0 document for posts, which should already be
// filtered to published entries and sorted newest first.
func Feed(loc content.Locale, posts []*Post, siteURL, siteName string) (string, error) {
	siteURL = strings.TrimRight(siteURL, "/")

	title, desc := "Blog - "+siteName, "Latest blog posts"
	if loc == content.Persian {
		title, desc = "وبلاگ - "+siteName, "آخرین پست‌های وبلاگ"
	}

	f := &feeds.Feed{
		Title:       title,
		Link:        &feeds.Link{Href: siteURL + ListPath(loc)},
		Description: desc,
	}
	if len(posts) > 0 {
		f.Updated = posts[0].Date
	}
	for _, p := range posts {
		link := siteURL + p.Path
		f.Items = append(f.Items, &feeds.Item{
			Title:       p.Title,
			Link:        &feeds.Link{Href: link},
			Id:          link,
			Description: p.Description,
			Created:     p.Date,
		})
	}

	rss := (&feeds.Rss{Feed: f}).RssFeed()
	rss.Language = string(loc)
	out, err := feeds.ToXML(rss)
	if err != nil {
		return "", fmt.Errorf("encoding %s feed: %w", loc, err)
	}
	return out, nil
}

package api

import (
	"encoding/xml"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/folio/internal/models"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Category    string `xml:"category,omitempty"`
	Author      string `xml:"author,omitempty"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// postURL joins base and the post path.
func postURL(base, slug string) string {
	u, err := url.JoinPath(base, "posts", slug)
	if err != nil {
		return strings.TrimRight(base, "/") + "/posts/" + slug
	}
	return u
}

// Feed returns the GET /feed.xml handler, linking posts under siteURL.
func (h *Handler) Feed(siteURL string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			posts []models.Post
			site  models.SiteInfo
		)
		g, ctx := errgroup.WithContext(r.Context())
		g.Go(func() (err error) {
			posts, err = h.repo().ListPosts(ctx)
			return err
		})
		g.Go(func() (err error) {
			site, err = h.repo().GetSiteInfo(ctx)
			return err
		})
		if err := g.Wait(); err != nil {
			internalError(w, r, "feed", err)
			return
		}

		base := siteURL
		if base == "" {
			base = "http://" + r.Host
		}
		items := make([]rssItem, 0, len(posts))
		for _, p := range posts {
			link := postURL(base, p.Slug)
			items = append(items, rssItem{
				Title:       p.Title,
				Link:        link,
				Description: p.Excerpt,
				Category:    p.Category.Name,
				Author:      p.Author.Name,
				PubDate:     p.PublishedAt.Format(time.RFC1123Z),
				GUID:        link,
			})
		}
		feed := rssXML{
			Version: "2.0",
			Channel: rssChannel{
				Title:       site.BlogTitle,
				Link:        base,
				Description: site.BlogDescription,
				Items:       items,
			},
		}

		w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(xml.Header))
		if err := xml.NewEncoder(w).Encode(feed); err != nil {
			slog.Error("rss encode failed", slog.String("error", err.Error()))
		}
	}
}

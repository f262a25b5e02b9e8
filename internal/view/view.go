// Package view builds page models from the query layer. Loaders never fail:
// a query error is logged, recorded in the matching state container and the
// page falls back to an empty model.
package view

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/folio/internal/app"
	"github.com/starford/folio/internal/client"
	"github.com/starford/folio/internal/markdown"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/state"
)

// Loader builds page models.
type Loader struct {
	app *app.Context
	md  *markdown.Renderer
}

// New returns a Loader over ac.
func New(ac *app.Context, md *markdown.Renderer) *Loader {
	if md == nil {
		md = markdown.New()
	}
	return &Loader{app: ac, md: md}
}

// HomePage lists every post.
type HomePage struct {
	Posts []models.Post `json:"posts"`
	Error string        `json:"error,omitempty"`
}

// Home loads the home page and mirrors the posts into the posts state.
// The page reports only its own outcome; the shared state is a mirror.
func (l *Loader) Home(ctx context.Context) HomePage {
	posts, errMsg := l.loadPosts(ctx, "home", func(ctx context.Context) ([]models.Post, error) {
		return l.app.Repo.ListPosts(ctx)
	})
	return HomePage{Posts: posts, Error: errMsg}
}

// SearchPage holds the results of a free-text search.
type SearchPage struct {
	Query   string        `json:"query"`
	Results []models.Post `json:"results"`
	Count   int           `json:"count"`
	Error   string        `json:"error,omitempty"`
}

// Search runs q. A blank q answers immediately with no results.
func (l *Loader) Search(ctx context.Context, q string) SearchPage {
	page := SearchPage{Query: q, Results: []models.Post{}}
	if strings.TrimSpace(q) == "" {
		return page
	}
	results, err := l.app.Repo.Search(ctx, q)
	if err != nil {
		l.fail("search", err, slog.String("query", q))
		page.Error = message(err)
		return page
	}
	page.Results = results
	page.Count = len(results)
	return page
}

// ArchiveMonth is one month of the archive.
type ArchiveMonth struct {
	Key   string        `json:"key"`
	Label string        `json:"label"`
	Count int           `json:"count"`
	Posts []models.Post `json:"posts"`
}

// ArchivePage lists months newest first.
type ArchivePage struct {
	Months []ArchiveMonth `json:"months"`
	Total  int            `json:"total"`
	Error  string         `json:"error,omitempty"`
}

// Archive loads the monthly archive.
func (l *Loader) Archive(ctx context.Context) ArchivePage {
	page := ArchivePage{Months: []ArchiveMonth{}}
	archive, err := l.app.Repo.GetArchive(ctx)
	if err != nil {
		l.fail("archive", err)
		page.Error = message(err)
		return page
	}
	for _, key := range archive.Keys() {
		posts := archive.Buckets[key]
		page.Months = append(page.Months, ArchiveMonth{
			Key:   key,
			Label: MonthLabel(key),
			Count: len(posts),
			Posts: posts,
		})
		page.Total += len(posts)
	}
	return page
}

// MonthLabel turns "2024-11" into "November 2024"; malformed keys are
// returned unchanged.
func MonthLabel(key string) string {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return key
	}
	return t.Format("January 2006")
}

// AboutPage shows the site metadata.
type AboutPage struct {
	Site  models.SiteInfo     `json:"site"`
	Links []models.SocialLink `json:"links"`
	Error string              `json:"error,omitempty"`
}

// About loads the about page; only non-empty social links are listed.
func (l *Loader) About(ctx context.Context) AboutPage {
	site, err := l.app.Repo.GetSiteInfo(ctx)
	if err != nil {
		l.fail("about", err)
		return AboutPage{Links: []models.SocialLink{}, Error: message(err)}
	}
	return AboutPage{Site: site, Links: site.SocialLinks.Present()}
}

// CategoriesPage lists categories and, when one is selected, its posts.
type CategoriesPage struct {
	Categories []models.Category `json:"categories"`
	Selected   string            `json:"selected,omitempty"`
	Posts      []models.Post     `json:"posts"`
	Error      string            `json:"error,omitempty"`
}

// Categories loads the category list and the selected category's posts
// concurrently.
func (l *Loader) Categories(ctx context.Context, selected string) CategoriesPage {
	page := CategoriesPage{Selected: selected, Categories: []models.Category{}, Posts: []models.Post{}}
	store := l.app.State.Categories

	var g errgroup.Group
	g.Go(func() error {
		store.Dispatch(state.SetCategoriesLoading(true))
		cats, err := l.app.Repo.ListCategories(ctx)
		if err != nil {
			l.fail("categories", err)
			page.Error = message(err)
			store.Dispatch(state.SetCategoriesError(page.Error))
			store.Dispatch(state.SetCategoriesLoading(false))
			return nil
		}
		page.Categories = cats
		store.Dispatch(state.SetCategories(cats))
		return nil
	})
	if selected != "" {
		g.Go(func() error {
			posts, err := l.app.Repo.ListPostsByCategory(ctx, selected)
			if err != nil {
				l.fail("category posts", err, slog.String("category", selected))
				return nil
			}
			page.Posts = posts
			return nil
		})
	}
	_ = g.Wait()
	return page
}

// TagStats summarizes the listed tags.
type TagStats struct {
	Count      int `json:"count"`
	MaxPosts   int `json:"maxPosts"`
	TotalPosts int `json:"totalPosts"`
}

// TagsPage lists tags whose name contains Filter and the selected tag's posts.
type TagsPage struct {
	Tags     []models.Tag  `json:"tags"`
	Filter   string        `json:"filter,omitempty"`
	Selected string        `json:"selected,omitempty"`
	Posts    []models.Post `json:"posts"`
	Stats    TagStats      `json:"stats"`
	Error    string        `json:"error,omitempty"`
}

// Tags loads the tag cloud, filtered case-insensitively by name.
func (l *Loader) Tags(ctx context.Context, filter, selected string) TagsPage {
	page := TagsPage{Filter: filter, Selected: selected, Posts: []models.Post{}}
	store := l.app.State.Tags
	var tags []models.Tag

	var g errgroup.Group
	g.Go(func() error {
		store.Dispatch(state.SetTagsLoading(true))
		list, err := l.app.Repo.ListTags(ctx)
		if err != nil {
			l.fail("tags", err)
			page.Error = message(err)
			store.Dispatch(state.SetTagsError(page.Error))
			store.Dispatch(state.SetTagsLoading(false))
			return nil
		}
		tags = list
		store.Dispatch(state.SetTags(list))
		return nil
	})
	if selected != "" {
		g.Go(func() error {
			posts, err := l.app.Repo.ListPostsByTag(ctx, selected)
			if err != nil {
				l.fail("tag posts", err, slog.String("tag", selected))
				return nil
			}
			page.Posts = posts
			return nil
		})
	}
	_ = g.Wait()

	page.Tags = FilterTags(tags, filter)
	page.Stats = Stats(page.Tags)
	return page
}

// FilterTags keeps tags whose name contains filter, ignoring case.
func FilterTags(tags []models.Tag, filter string) []models.Tag {
	needle := strings.ToLower(filter)
	out := make([]models.Tag, 0, len(tags))
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t.Name), needle) {
			out = append(out, t)
		}
	}
	return out
}

// Stats computes the tag cloud summary.
func Stats(tags []models.Tag) TagStats {
	s := TagStats{Count: len(tags)}
	for _, t := range tags {
		s.TotalPosts += t.PostCount
		if t.PostCount > s.MaxPosts {
			s.MaxPosts = t.PostCount
		}
	}
	return s
}

// PostPage is a single post with its rendered body.
type PostPage struct {
	models.Post
	markdown.Rendered
}

// Post loads one post and makes it the current post. A missing post yields
// nil with no error; err is only set when the query itself failed.
func (l *Loader) Post(ctx context.Context, slug string) (*PostPage, error) {
	store := l.app.State.Posts
	p, err := l.app.Repo.GetPost(ctx, slug)
	if err != nil {
		l.fail("post", err, slog.String("slug", slug))
		return nil, err
	}
	store.Dispatch(state.SetCurrentPost{Post: p})
	if p == nil {
		return nil, nil
	}
	rendered, err := l.md.Render(p.Content)
	if err != nil {
		return nil, err
	}
	return &PostPage{Post: *p, Rendered: rendered}, nil
}

// loadPosts fetches posts, mirrors them into the posts state and returns
// them with this call's error message, if any.
func (l *Loader) loadPosts(ctx context.Context, page string, fetch func(context.Context) ([]models.Post, error)) ([]models.Post, string) {
	store := l.app.State.Posts
	store.Dispatch(state.SetPostsLoading(true))
	posts, err := fetch(ctx)
	if err != nil {
		l.fail(page, err)
		msg := message(err)
		store.Dispatch(state.SetPostsError(msg))
		store.Dispatch(state.SetPostsLoading(false))
		return []models.Post{}, msg
	}
	store.Dispatch(state.SetPosts(posts))
	return posts, ""
}

func (l *Loader) fail(what string, err error, attrs ...any) {
	if errors.Is(err, context.Canceled) {
		return
	}
	args := append([]any{slog.String("view", what), slog.String("error", err.Error())}, attrs...)
	l.app.Logger.Error("view: load failed", args...)
}

// message is the text stored in a state error slot.
func message(err error) string {
	var ce *client.Error
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Options configures the routers.
type Options struct {
	// AuthEnabled enforces Token on every /api route.
	AuthEnabled bool
	Token       string

	// Events, if non-nil, is mounted at GET /api/events behind the same auth.
	Events http.Handler

	// SiteURL is the absolute base used for links in the RSS feed.
	SiteURL string
}

// NewRouter creates the /api sub-router.
func NewRouter(h *Handler, opts Options) chi.Router {
	r := chi.NewRouter()
	if opts.AuthEnabled {
		r.Use(RequireToken(opts.Token))
	}

	r.Get("/posts", h.ListPosts)
	r.Get("/posts/{slug}", h.GetPost)

	r.Get("/categories", h.ListCategories)
	r.Get("/categories/{slug}/posts", h.CategoryPosts)

	r.Get("/tags", h.ListTags)
	r.Get("/tags/{slug}/posts", h.TagPosts)

	r.Get("/site", h.SiteInfo)
	r.Get("/archive", h.Archive)
	r.Get("/search", h.Search)

	if opts.Events != nil {
		r.Get("/events", opts.Events.ServeHTTP)
	}
	return r
}

// NewServerRouter builds the full HTTP handler: middleware, health checks,
// page models, the feed and the /api sub-router.
func NewServerRouter(h *Handler, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health/live", h.Live)
	r.Get("/health/ready", h.Ready)

	r.Get("/", h.HomePage)
	r.Get("/search", h.SearchPage)
	r.Get("/archive", h.ArchivePage)
	r.Get("/about", h.AboutPage)
	r.Get("/categories", h.CategoriesPage)
	r.Get("/tags", h.TagsPage)
	r.Get("/posts/{slug}", h.PostPage)

	r.Get("/feed.xml", h.Feed(opts.SiteURL))

	r.Mount("/api", NewRouter(h, opts))
	return r
}

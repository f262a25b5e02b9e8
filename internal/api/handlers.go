package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/folio/internal/app"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/query"
	"github.com/starford/folio/internal/view"
)

// Handler holds API route handlers.
type Handler struct {
	app   *app.Context
	views *view.Loader
}

// NewHandler creates a new Handler.
func NewHandler(ac *app.Context, views *view.Loader) *Handler {
	return &Handler{app: ac, views: views}
}

func (h *Handler) repo() query.Repository { return h.app.Repo }

// ListPosts handles GET /api/posts.
//
//	@Summary		List posts, optionally filtered by category and tag
//	@Tags			posts
//	@Produce		json
//	@Param			category	query		string	false	"Category slug"
//	@Param			tag			query		string	false	"Tag slug"
//	@Success		200			{object}	PostListResponse
//	@Security		BearerAuth
//	@Router			/posts [get]
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category, tag := q.Get("category"), q.Get("tag")

	var (
		posts []models.Post
		err   error
	)
	switch {
	case category != "":
		posts, err = h.repo().ListPostsByCategory(r.Context(), category)
		if err == nil && tag != "" {
			posts = query.FilterPosts(posts, query.ByTag(tag))
		}
	case tag != "":
		posts, err = h.repo().ListPostsByTag(r.Context(), tag)
	default:
		posts, err = h.repo().ListPosts(r.Context())
	}
	if err != nil {
		internalError(w, r, "list posts", err)
		return
	}
	writeJSON(w, http.StatusOK, PostListResponse{Posts: posts, Total: len(posts)})
}

// GetPost handles GET /api/posts/{slug}.
//
//	@Summary		Get a post with rendered HTML
//	@Tags			posts
//	@Produce		json
//	@Param			slug	path		string	true	"Post slug"
//	@Success		200		{object}	PostDetail
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/posts/{slug} [get]
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	page, err := h.views.Post(r.Context(), slug)
	if err != nil {
		internalError(w, r, "get post", err)
		return
	}
	if page == nil {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// ListCategories handles GET /api/categories.
//
//	@Summary		List categories with post counts
//	@Tags			taxonomy
//	@Produce		json
//	@Success		200	{object}	CategoryListResponse
//	@Security		BearerAuth
//	@Router			/categories [get]
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.repo().ListCategories(r.Context())
	if err != nil {
		internalError(w, r, "list categories", err)
		return
	}
	writeJSON(w, http.StatusOK, CategoryListResponse{Categories: cats})
}

// CategoryPosts handles GET /api/categories/{slug}/posts. An unknown
// category yields an empty list.
func (h *Handler) CategoryPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.repo().ListPostsByCategory(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		internalError(w, r, "category posts", err)
		return
	}
	writeJSON(w, http.StatusOK, PostListResponse{Posts: posts, Total: len(posts)})
}

// ListTags handles GET /api/tags.
//
//	@Summary		List tags with post counts
//	@Tags			taxonomy
//	@Produce		json
//	@Success		200	{object}	TagListResponse
//	@Security		BearerAuth
//	@Router			/tags [get]
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.repo().ListTags(r.Context())
	if err != nil {
		internalError(w, r, "list tags", err)
		return
	}
	writeJSON(w, http.StatusOK, TagListResponse{Tags: tags})
}

// TagPosts handles GET /api/tags/{slug}/posts.
func (h *Handler) TagPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.repo().ListPostsByTag(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		internalError(w, r, "tag posts", err)
		return
	}
	writeJSON(w, http.StatusOK, PostListResponse{Posts: posts, Total: len(posts)})
}

// SiteInfo handles GET /api/site.
func (h *Handler) SiteInfo(w http.ResponseWriter, r *http.Request) {
	site, err := h.repo().GetSiteInfo(r.Context())
	if err != nil {
		internalError(w, r, "site info", err)
		return
	}
	writeJSON(w, http.StatusOK, site)
}

// Archive handles GET /api/archive.
//
//	@Summary		Posts grouped by publication month
//	@Tags			posts
//	@Produce		json
//	@Success		200	{object}	ArchiveResponse
//	@Security		BearerAuth
//	@Router			/archive [get]
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	a, err := h.repo().GetArchive(r.Context())
	if err != nil {
		internalError(w, r, "archive", err)
		return
	}
	writeJSON(w, http.StatusOK, archiveResponse(a))
}

// Search handles GET /api/search.
//
//	@Summary		Case-insensitive full-text search
//	@Tags			search
//	@Produce		json
//	@Param			q	query		string	false	"Search query; blank returns no results"
//	@Success		200	{object}	SearchResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results, err := h.repo().Search(r.Context(), q)
	if err != nil {
		internalError(w, r, "search", err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Query: q, Results: results, Total: len(results)})
}

// Live handles GET /health/live.
func (h *Handler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Ready handles GET /health/ready: the backend must answer a listing.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	posts, err := h.repo().ListPosts(r.Context())
	if err != nil {
		slog.Warn("readiness check failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Posts: len(posts)})
}

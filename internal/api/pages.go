package api

import (
	"net/http"
)

// HomePage handles GET /.
func (h *Handler) HomePage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.views.Home(r.Context()))
}

// SearchPage handles GET /search?q=.
func (h *Handler) SearchPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.views.Search(r.Context(), r.URL.Query().Get("q")))
}

// ArchivePage handles GET /archive.
func (h *Handler) ArchivePage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.views.Archive(r.Context()))
}

// AboutPage handles GET /about.
func (h *Handler) AboutPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.views.About(r.Context()))
}

// CategoriesPage handles GET /categories?selected=.
func (h *Handler) CategoriesPage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.views.Categories(r.Context(), r.URL.Query().Get("selected")))
}

// TagsPage handles GET /tags?filter=&selected=.
func (h *Handler) TagsPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	writeJSON(w, http.StatusOK, h.views.Tags(r.Context(), q.Get("filter"), q.Get("selected")))
}

// PostPage handles GET /posts/{slug}. Post cards link here, but the
// standalone post page has no model yet; clients use /api/posts/{slug}.
func (h *Handler) PostPage(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotImplemented, errorBody("not implemented"))
}

package api

import (
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/query"
	"github.com/starford/folio/internal/view"
)

// PostListResponse wraps post listings.
type PostListResponse struct {
	Posts []models.Post `json:"posts" validate:"required"`
	Total int           `json:"total" example:"6" validate:"required"`
}

// PostDetail is a post with its rendered HTML and reading time.
type PostDetail = view.PostPage

// CategoryListResponse wraps the category list.
type CategoryListResponse struct {
	Categories []models.Category `json:"categories" validate:"required"`
}

// TagListResponse wraps the tag list.
type TagListResponse struct {
	Tags []models.Tag `json:"tags" validate:"required"`
}

// ArchiveResponse is the archive with its keys newest first.
type ArchiveResponse struct {
	Buckets map[string][]models.Post `json:"buckets" validate:"required"`
	Keys    []string                 `json:"keys" example:"2024-11" validate:"required"`
}

func archiveResponse(a query.Archive) ArchiveResponse {
	return ArchiveResponse{Buckets: a.Buckets, Keys: a.Keys()}
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Query   string        `json:"query" example:"react"`
	Results []models.Post `json:"results" validate:"required"`
	Total   int           `json:"total" example:"2" validate:"required"`
}

// HealthResponse is returned by the health endpoints.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
	Posts  int    `json:"posts,omitempty" example:"6"`
}

// Package query answers content queries: listing, lookup by slug, filtering
// by category or tag, free-text search and the monthly archive.
package query

import (
	"context"

	"github.com/starford/folio/internal/models"
)

// Repository is the contract every content backend satisfies. Misses are
// never errors: lookups return nil and filters return an empty slice.
// Errors are reserved for cancellation and transport or storage failures.
type Repository interface {
	ListPosts(ctx context.Context) ([]models.Post, error)
	GetPost(ctx context.Context, slug string) (*models.Post, error)
	ListPostsByCategory(ctx context.Context, slug string) ([]models.Post, error)
	ListPostsByTag(ctx context.Context, slug string) ([]models.Post, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	GetSiteInfo(ctx context.Context) (models.SiteInfo, error)
	GetArchive(ctx context.Context) (Archive, error)
	Search(ctx context.Context, q string) ([]models.Post, error)
}

// Verify implementations satisfy Repository at compile time.
var (
	_ Repository = (*Memory)(nil)
	_ Repository = (*Delayed)(nil)
)

package query

import (
	"context"
	"time"

	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/models"
)

// Memory answers queries synchronously from the catalog of a content.Source.
// Each call reads the current catalog once, so a concurrent reload never
// mixes two catalogs inside one answer.
type Memory struct {
	src content.Source
	loc *time.Location
}

// NewMemory creates a Memory repository. loc selects the time zone used for
// archive buckets; nil means time.Local.
func NewMemory(src content.Source, loc *time.Location) *Memory {
	if loc == nil {
		loc = time.Local
	}
	return &Memory{src: src, loc: loc}
}

// ListPosts returns every post in store order.
func (m *Memory) ListPosts(_ context.Context) ([]models.Post, error) {
	return m.src.Catalog().Posts(), nil
}

// GetPost returns the post with exactly this slug, or nil.
func (m *Memory) GetPost(_ context.Context, slug string) (*models.Post, error) {
	p, ok := m.src.Catalog().Post(slug)
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// ListPostsByCategory returns posts in the category with this slug.
func (m *Memory) ListPostsByCategory(_ context.Context, slug string) ([]models.Post, error) {
	return FilterPosts(m.src.Catalog().Posts(), ByCategory(slug)), nil
}

// ListPostsByTag returns posts carrying the tag with this slug.
func (m *Memory) ListPostsByTag(_ context.Context, slug string) ([]models.Post, error) {
	return FilterPosts(m.src.Catalog().Posts(), ByTag(slug)), nil
}

// ListCategories returns every category.
func (m *Memory) ListCategories(_ context.Context) ([]models.Category, error) {
	return m.src.Catalog().Categories(), nil
}

// ListTags returns every tag.
func (m *Memory) ListTags(_ context.Context) ([]models.Tag, error) {
	return m.src.Catalog().Tags(), nil
}

// GetSiteInfo returns the blog metadata.
func (m *Memory) GetSiteInfo(_ context.Context) (models.SiteInfo, error) {
	return m.src.Catalog().Site(), nil
}

// GetArchive groups every post by publication month.
func (m *Memory) GetArchive(_ context.Context) (Archive, error) {
	return BuildArchive(m.src.Catalog().Posts(), m.loc), nil
}

// Search returns posts matching q case-insensitively; blank q matches nothing.
func (m *Memory) Search(_ context.Context, q string) ([]models.Post, error) {
	return Search(m.src.Catalog().Posts(), q), nil
}

package client

import (
	"context"
	"errors"
	"net/url"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/query"
)

var _ query.Repository = (*Client)(nil)

type postList struct {
	Posts []models.Post `json:"posts"`
	Total int           `json:"total"`
}

type searchResult struct {
	Query   string        `json:"query"`
	Results []models.Post `json:"results"`
	Total   int           `json:"total"`
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func (c *Client) listPosts(ctx context.Context, path string, q url.Values) ([]models.Post, error) {
	var out postList
	if err := c.get(ctx, path, q, &out); err != nil {
		return nil, err
	}
	return nonNil(out.Posts), nil
}

// ListPosts implements query.Repository.
func (c *Client) ListPosts(ctx context.Context) ([]models.Post, error) {
	return c.listPosts(ctx, "/posts", nil)
}

// GetPost implements query.Repository. A 404 is a miss, not an error.
func (c *Client) GetPost(ctx context.Context, slug string) (*models.Post, error) {
	var p models.Post
	err := c.get(ctx, "/posts/"+url.PathEscape(slug), nil, &p)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Tags = nonNil(p.Tags)
	return &p, nil
}

// ListPostsByCategory implements query.Repository.
func (c *Client) ListPostsByCategory(ctx context.Context, slug string) ([]models.Post, error) {
	return c.listPosts(ctx, "/posts", url.Values{"category": {slug}})
}

// ListPostsByTag implements query.Repository.
func (c *Client) ListPostsByTag(ctx context.Context, slug string) ([]models.Post, error) {
	return c.listPosts(ctx, "/posts", url.Values{"tag": {slug}})
}

// ListCategories implements query.Repository.
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var out struct {
		Categories []models.Category `json:"categories"`
	}
	if err := c.get(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out.Categories), nil
}

// ListTags implements query.Repository.
func (c *Client) ListTags(ctx context.Context) ([]models.Tag, error) {
	var out struct {
		Tags []models.Tag `json:"tags"`
	}
	if err := c.get(ctx, "/tags", nil, &out); err != nil {
		return nil, err
	}
	return nonNil(out.Tags), nil
}

// GetSiteInfo implements query.Repository.
func (c *Client) GetSiteInfo(ctx context.Context) (models.SiteInfo, error) {
	var out models.SiteInfo
	if err := c.get(ctx, "/site", nil, &out); err != nil {
		return models.SiteInfo{}, err
	}
	return out, nil
}

// GetArchive implements query.Repository.
func (c *Client) GetArchive(ctx context.Context) (query.Archive, error) {
	var out query.Archive
	if err := c.get(ctx, "/archive", nil, &out); err != nil {
		return query.Archive{}, err
	}
	if out.Buckets == nil {
		out.Buckets = make(map[string][]models.Post)
	}
	return out, nil
}

// Search implements query.Repository. Blank queries never reach the server.
func (c *Client) Search(ctx context.Context, q string) ([]models.Post, error) {
	if query.NormalizeQuery(q) == "" {
		return []models.Post{}, nil
	}
	var out searchResult
	if err := c.get(ctx, "/search", url.Values{"q": {q}}, &out); err != nil {
		return nil, err
	}
	return nonNil(out.Results), nil
}

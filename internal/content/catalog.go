// Package content holds the immutable catalog of posts, categories, tags and
// site metadata that every query is answered from.
package content

import (
	"errors"
	"fmt"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/models"
)

// Catalog is an immutable snapshot of the blog content. Accessors return
// copies so callers can never mutate the snapshot.
type Catalog struct {
	site       models.SiteInfo
	categories []models.Category
	tags       []models.Tag
	posts      []models.Post
	postIdx    map[string]int
	version    string
}

// NewCatalog validates the entities, resolves each post's category and tag
// references against the given sets and recomputes every PostCount from the
// post list. A post may reference its category or tags by slug alone; the
// stored reference always carries the canonical id and name.
//
// All problems are reported together, wrapped in apperr.ErrInvalidCatalog.
func NewCatalog(site models.SiteInfo, categories []models.Category, tags []models.Tag, posts []models.Post) (*Catalog, error) {
	var problems []error

	if err := site.Validate(); err != nil {
		problems = append(problems, fmt.Errorf("site: %w", err))
	}

	c := &Catalog{
		site:       site,
		categories: make([]models.Category, len(categories)),
		tags:       make([]models.Tag, len(tags)),
		posts:      make([]models.Post, 0, len(posts)),
		postIdx:    make(map[string]int, len(posts)),
	}
	copy(c.categories, categories)
	copy(c.tags, tags)

	catIdx := make(map[string]int, len(categories))
	for i := range c.categories {
		cat := &c.categories[i]
		cat.PostCount = 0
		if err := cat.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("category %q: %w", cat.Slug, err))
			continue
		}
		if _, dup := catIdx[cat.Slug]; dup {
			problems = append(problems, fmt.Errorf("category %q: duplicate slug", cat.Slug))
			continue
		}
		catIdx[cat.Slug] = i
	}

	tagIdx := make(map[string]int, len(tags))
	for i := range c.tags {
		tag := &c.tags[i]
		tag.PostCount = 0
		if err := tag.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("tag %q: %w", tag.Slug, err))
			continue
		}
		if _, dup := tagIdx[tag.Slug]; dup {
			problems = append(problems, fmt.Errorf("tag %q: duplicate slug", tag.Slug))
			continue
		}
		tagIdx[tag.Slug] = i
	}

	for _, in := range posts {
		p := in.Clone()

		ci, ok := catIdx[p.Category.Slug]
		if !ok {
			problems = append(problems, fmt.Errorf("post %q: unknown category %q", p.Slug, p.Category.Slug))
			continue
		}
		p.Category = c.categories[ci].Ref()

		resolved := make([]models.TagRef, 0, len(p.Tags))
		seen := make(map[string]struct{}, len(p.Tags))
		var tagErr error
		for _, ref := range p.Tags {
			ti, ok := tagIdx[ref.Slug]
			if !ok {
				tagErr = fmt.Errorf("post %q: unknown tag %q", p.Slug, ref.Slug)
				break
			}
			if _, dup := seen[ref.Slug]; dup {
				continue
			}
			seen[ref.Slug] = struct{}{}
			resolved = append(resolved, c.tags[ti].Ref())
		}
		if tagErr != nil {
			problems = append(problems, tagErr)
			continue
		}
		p.Tags = resolved

		if err := p.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("post %q: %w", p.Slug, err))
			continue
		}
		if _, dup := c.postIdx[p.Slug]; dup {
			problems = append(problems, fmt.Errorf("post %q: duplicate slug", p.Slug))
			continue
		}

		c.postIdx[p.Slug] = len(c.posts)
		c.posts = append(c.posts, p)
		c.categories[ci].PostCount++
		for _, ref := range p.Tags {
			c.tags[tagIdx[ref.Slug]].PostCount++
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: %w", apperr.ErrInvalidCatalog, errors.Join(problems...))
	}
	return c, nil
}

// WithVersion returns the catalog tagged with a content version, typically
// the combined checksum of the files it was loaded from.
func (c *Catalog) WithVersion(v string) *Catalog {
	out := *c
	out.version = v
	return &out
}

// Version identifies the content the catalog was built from. Empty for
// catalogs that were not loaded from files.
func (c *Catalog) Version() string { return c.version }

// Site returns the blog metadata.
func (c *Catalog) Site() models.SiteInfo { return c.site }

// Posts returns every post in store order.
func (c *Catalog) Posts() []models.Post {
	out := make([]models.Post, len(c.posts))
	for i, p := range c.posts {
		out[i] = p.Clone()
	}
	return out
}

// Post looks up a post by exact slug.
func (c *Catalog) Post(slug string) (models.Post, bool) {
	i, ok := c.postIdx[slug]
	if !ok {
		return models.Post{}, false
	}
	return c.posts[i].Clone(), true
}

// Categories returns every category in store order.
func (c *Catalog) Categories() []models.Category {
	out := make([]models.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Tags returns every tag in store order.
func (c *Catalog) Tags() []models.Tag {
	out := make([]models.Tag, len(c.tags))
	copy(out, c.tags)
	return out
}

// Len returns the number of posts.
func (c *Catalog) Len() int { return len(c.posts) }

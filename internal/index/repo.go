package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/query"
)

// Repo answers content queries from the index.
type Repo struct {
	db  *DB
	loc *time.Location
}

// NewRepo returns a query.Repository over db. loc selects the time zone used
// for archive buckets; nil means time.Local.
func NewRepo(db *DB, loc *time.Location) *Repo {
	if loc == nil {
		loc = time.Local
	}
	return &Repo{db: db, loc: loc}
}

const postColumns = `
	SELECT p.slug, p.id, p.title, p.excerpt, p.content, p.cover_image, p.published_at,
	       c.slug, c.id, c.name, p.author_name, p.author_avatar
	FROM posts p
	JOIN categories c ON c.slug = p.category_slug
`

// ListPosts returns every post in store order.
func (r *Repo) ListPosts(ctx context.Context) ([]models.Post, error) {
	return r.posts(ctx, "", nil)
}

// GetPost returns the post with exactly this slug, or nil.
func (r *Repo) GetPost(ctx context.Context, slug string) (*models.Post, error) {
	posts, err := r.posts(ctx, `WHERE p.slug = ?`, []any{slug})
	if err != nil || len(posts) == 0 {
		return nil, err
	}
	return &posts[0], nil
}

// ListPostsByCategory returns posts in the category with this slug.
func (r *Repo) ListPostsByCategory(ctx context.Context, slug string) ([]models.Post, error) {
	return r.posts(ctx, `WHERE p.category_slug = ?`, []any{slug})
}

// ListPostsByTag returns posts carrying the tag with this slug.
func (r *Repo) ListPostsByTag(ctx context.Context, slug string) ([]models.Post, error) {
	return r.posts(ctx, `WHERE p.slug IN (SELECT post_slug FROM post_tags WHERE tag_slug = ?)`, []any{slug})
}

// ListCategories returns every category.
func (r *Repo) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.conn.QueryContext(ctx, `
		SELECT id, name, slug, description, post_count FROM categories ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("index: list categories: %w", err)
	}
	defer rows.Close()

	out := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.PostCount); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListTags returns every tag.
func (r *Repo) ListTags(ctx context.Context) ([]models.Tag, error) {
	rows, err := r.db.conn.QueryContext(ctx, `SELECT id, name, slug, post_count FROM tags ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("index: list tags: %w", err)
	}
	defer rows.Close()

	out := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.PostCount); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetSiteInfo returns the blog metadata. An empty index yields the zero value.
func (r *Repo) GetSiteInfo(ctx context.Context) (models.SiteInfo, error) {
	var s models.SiteInfo
	err := r.db.conn.QueryRowContext(ctx, `
		SELECT blog_title, blog_description, author_name, author_avatar, twitter, github, linkedin, email
		FROM site WHERE id = 1
	`).Scan(&s.BlogTitle, &s.BlogDescription, &s.AuthorName, &s.AuthorAvatar,
		&s.SocialLinks.Twitter, &s.SocialLinks.GitHub, &s.SocialLinks.LinkedIn, &s.SocialLinks.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SiteInfo{}, nil
	}
	if err != nil {
		return models.SiteInfo{}, fmt.Errorf("index: site info: %w", err)
	}
	return s, nil
}

// GetArchive groups every post by publication month.
func (r *Repo) GetArchive(ctx context.Context) (query.Archive, error) {
	posts, err := r.ListPosts(ctx)
	if err != nil {
		return query.Archive{}, err
	}
	return query.BuildArchive(posts, r.loc), nil
}

// Search narrows candidates with LIKE over fold()ed columns and then applies
// query.Matches, so the result is identical to the in-memory backend.
func (r *Repo) Search(ctx context.Context, q string) ([]models.Post, error) {
	term := query.NormalizeQuery(q)
	if term == "" {
		return []models.Post{}, nil
	}

	pattern := "%" + escapeLike(term) + "%"
	candidates, err := r.posts(ctx, `
		WHERE fold(p.title) LIKE ?1 ESCAPE '\'
		   OR fold(p.excerpt) LIKE ?1 ESCAPE '\'
		   OR fold(p.content) LIKE ?1 ESCAPE '\'
		   OR fold(c.name) LIKE ?1 ESCAPE '\'
		   OR EXISTS (
		       SELECT 1 FROM post_tags pt JOIN tags t ON t.slug = pt.tag_slug
		       WHERE pt.post_slug = p.slug AND fold(t.name) LIKE ?1 ESCAPE '\'
		   )
	`, []any{pattern})
	if err != nil {
		return nil, err
	}
	return query.FilterPosts(candidates, func(p models.Post) bool { return query.Matches(p, term) }), nil
}

// posts loads posts matching the optional where clause in store order, with
// their tags attached. The result is never nil.
func (r *Repo) posts(ctx context.Context, where string, args []any) ([]models.Post, error) {
	rows, err := r.db.conn.QueryContext(ctx, postColumns+where+` ORDER BY p.position`, args...)
	if err != nil {
		return nil, fmt.Errorf("index: query posts: %w", err)
	}
	defer rows.Close()

	out := []models.Post{}
	bySlug := make(map[string]int)
	for rows.Next() {
		var (
			p         models.Post
			published string
		)
		if err := rows.Scan(&p.Slug, &p.ID, &p.Title, &p.Excerpt, &p.Content, &p.CoverImage, &published,
			&p.Category.Slug, &p.Category.ID, &p.Category.Name, &p.Author.Name, &p.Author.Avatar); err != nil {
			return nil, err
		}
		p.PublishedAt, err = time.Parse(time.RFC3339Nano, published)
		if err != nil {
			return nil, fmt.Errorf("index: post %q: bad published_at: %w", p.Slug, err)
		}
		p.Tags = []models.TagRef{}
		bySlug[p.Slug] = len(out)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return out, nil
	}

	tagRows, err := r.db.conn.QueryContext(ctx, `
		SELECT pt.post_slug, t.id, t.name, t.slug
		FROM post_tags pt
		JOIN tags t ON t.slug = pt.tag_slug
		ORDER BY pt.post_slug, pt.position
	`)
	if err != nil {
		return nil, fmt.Errorf("index: query post tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var (
			postSlug string
			t        models.TagRef
		)
		if err := tagRows.Scan(&postSlug, &t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		if i, ok := bySlug[postSlug]; ok {
			out[i].Tags = append(out[i].Tags, t)
		}
	}
	return out, tagRows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

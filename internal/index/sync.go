package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/starford/folio/internal/content"
)

const versionKey = "content_version"

// Version returns the content version of the last synced catalog, or an
// empty string if nothing has been synced.
func (db *DB) Version(ctx context.Context) (string, error) {
	var v string
	err := db.conn.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, versionKey).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: read version: %w", err)
	}
	return v, nil
}

// Sync replaces the indexed content with c inside one transaction, so readers
// see either the old catalog or the new one. A catalog carrying the version
// that is already stored is skipped; it reports whether anything was written.
func (db *DB) Sync(ctx context.Context, c *content.Catalog) (bool, error) {
	if v := c.Version(); v != "" {
		current, err := db.Version(ctx)
		if err != nil {
			return false, err
		}
		if current == v {
			return false, nil
		}
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	for _, table := range []string{"post_tags", "posts", "tags", "categories", "site"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return false, fmt.Errorf("index: clear %s: %w", table, err)
		}
	}

	site := c.Site()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO site (id, blog_title, blog_description, author_name, author_avatar, twitter, github, linkedin, email)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?)
	`, site.BlogTitle, site.BlogDescription, site.AuthorName, site.AuthorAvatar,
		site.SocialLinks.Twitter, site.SocialLinks.GitHub, site.SocialLinks.LinkedIn, site.SocialLinks.Email)
	if err != nil {
		return false, fmt.Errorf("index: insert site: %w", err)
	}

	for i, cat := range c.Categories() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO categories (slug, id, name, description, post_count, position)
			VALUES (?, ?, ?, ?, ?, ?)
		`, cat.Slug, cat.ID, cat.Name, cat.Description, cat.PostCount, i)
		if err != nil {
			return false, fmt.Errorf("index: insert category %q: %w", cat.Slug, err)
		}
	}

	for i, tag := range c.Tags() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO tags (slug, id, name, post_count, position)
			VALUES (?, ?, ?, ?, ?)
		`, tag.Slug, tag.ID, tag.Name, tag.PostCount, i)
		if err != nil {
			return false, fmt.Errorf("index: insert tag %q: %w", tag.Slug, err)
		}
	}

	postStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO posts (slug, id, title, excerpt, content, cover_image, published_at, category_slug, author_name, author_avatar, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return false, fmt.Errorf("index: prepare post insert: %w", err)
	}
	defer postStmt.Close()

	tagStmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO post_tags (post_slug, tag_slug, position) VALUES (?, ?, ?)`)
	if err != nil {
		return false, fmt.Errorf("index: prepare post tag insert: %w", err)
	}
	defer tagStmt.Close()

	for i, p := range c.Posts() {
		_, err := postStmt.ExecContext(ctx, p.Slug, p.ID, p.Title, p.Excerpt, p.Content, p.CoverImage,
			p.PublishedAt.UTC().Format(time.RFC3339Nano), p.Category.Slug, p.Author.Name, p.Author.Avatar, i)
		if err != nil {
			return false, fmt.Errorf("index: insert post %q: %w", p.Slug, err)
		}
		for j, t := range p.Tags {
			if _, err := tagStmt.ExecContext(ctx, p.Slug, t.Slug, j); err != nil {
				return false, fmt.Errorf("index: insert post tag %q/%q: %w", p.Slug, t.Slug, err)
			}
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, versionKey, c.Version())
	if err != nil {
		return false, fmt.Errorf("index: store version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("index: commit: %w", err)
	}
	return true, nil
}

// Package index mirrors the content catalog into SQLite and answers content
// queries from it.
package index

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// driverName is go-sqlite3 with fold() registered on every connection.
// fold lowercases with Go's rules, so SQL-side matching agrees with
// query.Matches where SQLite's lower() would only fold ASCII.
const driverName = "sqlite3_folio"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("fold", strings.ToLower, true)
		},
	})
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS site (
	id               INTEGER PRIMARY KEY CHECK (id = 1),
	blog_title       TEXT NOT NULL DEFAULT '',
	blog_description TEXT NOT NULL DEFAULT '',
	author_name      TEXT NOT NULL DEFAULT '',
	author_avatar    TEXT NOT NULL DEFAULT '',
	twitter          TEXT NOT NULL DEFAULT '',
	github           TEXT NOT NULL DEFAULT '',
	linkedin         TEXT NOT NULL DEFAULT '',
	email            TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS categories (
	slug        TEXT PRIMARY KEY,
	id          TEXT NOT NULL,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	post_count  INTEGER NOT NULL DEFAULT 0,
	position    INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tags (
	slug       TEXT PRIMARY KEY,
	id         TEXT NOT NULL,
	name       TEXT NOT NULL,
	post_count INTEGER NOT NULL DEFAULT 0,
	position   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS posts (
	slug          TEXT PRIMARY KEY,
	id            TEXT NOT NULL,
	title         TEXT NOT NULL,
	excerpt       TEXT NOT NULL DEFAULT '',
	content       TEXT NOT NULL DEFAULT '',
	cover_image   TEXT NOT NULL DEFAULT '',
	published_at  TEXT NOT NULL,
	category_slug TEXT NOT NULL REFERENCES categories(slug),
	author_name   TEXT NOT NULL DEFAULT '',
	author_avatar TEXT NOT NULL DEFAULT '',
	position      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS post_tags (
	post_slug TEXT NOT NULL REFERENCES posts(slug) ON DELETE CASCADE,
	tag_slug  TEXT NOT NULL REFERENCES tags(slug),
	position  INTEGER NOT NULL,
	UNIQUE(post_slug, tag_slug)
);

CREATE INDEX IF NOT EXISTS idx_posts_category ON posts(category_slug);
CREATE INDEX IF NOT EXISTS idx_post_tags_tag ON post_tags(tag_slug);
`

// DB wraps a sql.DB with index-specific operations.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open(driverName, dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("index: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("index: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

package content

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/starford/folio/internal/storage"
)

const siteYAML = `blog_title: Vault Blog
blog_description: Loaded from disk
author_name: Jane
social_links:
  github: https://github.com/jane
`

const categoriesYAML = `- id: "1"
  name: Technology
  slug: technology
- name: Travel
  slug: travel
`

const tagsYAML = `- id: "1"
  name: Go
  slug: go
`

const goPost = `---
title: Writing Go
excerpt: Notes on Go.
published_at: 2024-10-05T08:00:00Z
category: technology
tags: [go]
author:
  name: Jane
---
# Writing Go

Body.
`

const tripPost = `---
id: trip-1
slug: lisbon-trip
published_at: 2024-09-01
category: travel
author:
  name: Jane
---
# Lisbon

Tiles everywhere.
`

func writeVault(t *testing.T, files map[string]string) (string, *storage.FS) {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return dir, store
}

func fullVault() map[string]string {
	return map[string]string{
		SiteFile:           siteYAML,
		CategoriesFile:     categoriesYAML,
		TagsFile:           tagsYAML,
		"posts/go.md":      goPost,
		"posts/lisbon.md":  tripPost,
		"posts/ignore.txt": "not a post",
	}
}

func TestLoadVault(t *testing.T) {
	_, store := writeVault(t, fullVault())

	c, err := LoadVault(store)
	if err != nil {
		t.Fatalf("LoadVault: %v", err)
	}
	if c.Site().BlogTitle != "Vault Blog" {
		t.Errorf("site = %+v", c.Site())
	}
	if c.Len() != 2 {
		t.Fatalf("posts = %d, want 2", c.Len())
	}

	posts := c.Posts()
	if posts[0].Slug != "go" || posts[1].Slug != "lisbon-trip" {
		t.Errorf("order = %s, %s", posts[0].Slug, posts[1].Slug)
	}
	if posts[0].Title != "Writing Go" || posts[0].Tags[0].Name != "Go" {
		t.Errorf("post = %+v", posts[0])
	}
	if posts[1].ID != "trip-1" || posts[1].Title != "Lisbon" {
		t.Errorf("post = %+v", posts[1])
	}
	if posts[0].ID == "" || posts[0].ID != derivedID("post", "go") {
		t.Errorf("derived id = %q", posts[0].ID)
	}
	if c.Categories()[1].ID != derivedID("category", "travel") {
		t.Errorf("category id = %q", c.Categories()[1].ID)
	}
	if c.Version() == "" {
		t.Error("expected a content version")
	}

	v, err := Version(store)
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v != c.Version() {
		t.Errorf("Version() = %q, catalog version = %q", v, c.Version())
	}
}

func TestLoadVault_MissingSite(t *testing.T) {
	files := fullVault()
	delete(files, SiteFile)
	_, store := writeVault(t, files)

	_, err := LoadVault(store)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want ErrNotExist", err)
	}
}

func TestLoadVault_SiteOnly(t *testing.T) {
	_, store := writeVault(t, map[string]string{SiteFile: siteYAML})
	c, err := LoadVault(store)
	if err != nil {
		t.Fatalf("LoadVault: %v", err)
	}
	if c.Len() != 0 || len(c.Categories()) != 0 {
		t.Errorf("expected empty catalog, got %d posts", c.Len())
	}
}

func TestLoadVault_BrokenReference(t *testing.T) {
	files := fullVault()
	files["posts/bad.md"] = "---\ntitle: Bad\npublished_at: 2024-01-01\ncategory: nowhere\nauthor:\n  name: X\n---\nbody\n"
	_, store := writeVault(t, files)

	if _, err := LoadVault(store); err == nil {
		t.Fatal("expected error for unknown category")
	}
}

func TestWatch_ReloadsCatalog(t *testing.T) {
	dir, store := writeVault(t, fullVault())
	c, err := LoadVault(store)
	if err != nil {
		t.Fatal(err)
	}
	holder := NewHolder(c)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	var reloads atomic.Int32
	go func() {
		defer close(done)
		_ = Watch(ctx, store, dir, holder, logger, func(*Catalog) { reloads.Add(1) })
	}()
	defer func() {
		cancel()
		<-done
	}()

	// Give the watcher time to register directories.
	time.Sleep(100 * time.Millisecond)

	newPost := "---\ntitle: Fresh\npublished_at: 2024-12-01T00:00:00Z\ncategory: technology\nauthor:\n  name: Jane\n---\nfresh\n"
	if err := os.WriteFile(filepath.Join(dir, "posts", "fresh.md"), []byte(newPost), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if _, ok := holder.Catalog().Post("fresh"); ok {
			break
		}
		time.Sleep(50 * time.Millisecond)
	}
	if _, ok := holder.Catalog().Post("fresh"); !ok {
		t.Fatal("new post was not picked up by the watcher")
	}
	if reloads.Load() == 0 {
		t.Error("reload callback not called")
	}

	// A broken file keeps the previous catalog.
	if err := os.WriteFile(filepath.Join(dir, "posts", "broken.md"), []byte("---\ncategory: nowhere\n---\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(500 * time.Millisecond)
	if _, ok := holder.Catalog().Post("fresh"); !ok {
		t.Error("catalog was replaced by a broken vault")
	}
}

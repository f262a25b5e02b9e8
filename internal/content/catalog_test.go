package content

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/models"
)

func TestSeed_CountsRecomputed(t *testing.T) {
	c := MustSeed()
	if c.Len() != 6 {
		t.Fatalf("posts = %d, want 6", c.Len())
	}

	wantCat := map[string]int{"technology": 3, "lifestyle": 1, "travel": 1, "food": 1, "photography": 0}
	for _, cat := range c.Categories() {
		if cat.PostCount != wantCat[cat.Slug] {
			t.Errorf("category %s postCount = %d, want %d", cat.Slug, cat.PostCount, wantCat[cat.Slug])
		}
	}

	wantTag := map[string]int{"react": 1, "typescript": 1, "javascript": 1, "css": 1, "nodejs": 0, "ai": 2, "ml": 1, "webdev": 2}
	for _, tag := range c.Tags() {
		if tag.PostCount != wantTag[tag.Slug] {
			t.Errorf("tag %s postCount = %d, want %d", tag.Slug, tag.PostCount, wantTag[tag.Slug])
		}
	}
}

func TestSeed_ReferencesResolved(t *testing.T) {
	c := MustSeed()
	p, ok := c.Post("react-18-typescript-guide")
	if !ok {
		t.Fatal("seed post missing")
	}
	if p.Category != (models.CategoryRef{ID: "1", Name: "Technology", Slug: "technology"}) {
		t.Errorf("category = %+v", p.Category)
	}
	names := make([]string, len(p.Tags))
	for i, tag := range p.Tags {
		names[i] = tag.Name
	}
	if strings.Join(names, ",") != "React,TypeScript,Web Development" {
		t.Errorf("tags = %v", names)
	}
}

func TestCatalog_AccessorsReturnCopies(t *testing.T) {
	c := MustSeed()
	posts := c.Posts()
	posts[0].Title = "mutated"
	posts[0].Tags[0].Slug = "mutated"

	fresh, _ := c.Post(posts[0].Slug)
	if fresh.Title == "mutated" || fresh.Tags[0].Slug == "mutated" {
		t.Error("catalog was mutated through an accessor")
	}

	cats := c.Categories()
	cats[0].Name = "mutated"
	if c.Categories()[0].Name == "mutated" {
		t.Error("categories were mutated through an accessor")
	}
}

func TestNewCatalog_Invariants(t *testing.T) {
	site := models.SiteInfo{BlogTitle: "B", AuthorName: "A"}
	cats := []models.Category{{ID: "1", Name: "Tech", Slug: "tech"}}
	tags := []models.Tag{{ID: "1", Name: "Go", Slug: "go"}}
	post := func(slug, cat string, tagSlugs ...string) models.Post {
		p := models.Post{
			ID:          slug,
			Title:       slug,
			Slug:        slug,
			PublishedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Category:    models.CategoryRef{Slug: cat},
			Author:      models.Author{Name: "A"},
		}
		for _, s := range tagSlugs {
			p.Tags = append(p.Tags, models.TagRef{Slug: s})
		}
		return p
	}

	tests := []struct {
		name    string
		cats    []models.Category
		tags    []models.Tag
		posts   []models.Post
		wantMsg string
	}{
		{name: "duplicate post slug", cats: cats, tags: tags, posts: []models.Post{post("a", "tech"), post("a", "tech")}, wantMsg: "duplicate slug"},
		{name: "unknown category", cats: cats, tags: tags, posts: []models.Post{post("a", "food")}, wantMsg: `unknown category "food"`},
		{name: "unknown tag", cats: cats, tags: tags, posts: []models.Post{post("a", "tech", "rust")}, wantMsg: `unknown tag "rust"`},
		{name: "duplicate category slug", cats: append(cats, models.Category{ID: "2", Name: "T2", Slug: "tech"}), tags: tags, wantMsg: "duplicate slug"},
		{name: "duplicate tag slug", cats: cats, tags: append(tags, models.Tag{ID: "2", Name: "G", Slug: "go"}), wantMsg: "duplicate slug"},
		{name: "invalid post slug", cats: cats, tags: tags, posts: []models.Post{post("Bad Slug", "tech")}, wantMsg: "Bad Slug"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(site, tt.cats, tt.tags, tt.posts)
			if !errors.Is(err, apperr.ErrInvalidCatalog) {
				t.Fatalf("err = %v, want ErrInvalidCatalog", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("err = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestNewCatalog_DuplicateTagOnPostCountedOnce(t *testing.T) {
	site := models.SiteInfo{BlogTitle: "B", AuthorName: "A"}
	c, err := NewCatalog(site,
		[]models.Category{{ID: "1", Name: "Tech", Slug: "tech"}},
		[]models.Tag{{ID: "1", Name: "Go", Slug: "go", PostCount: 99}},
		[]models.Post{{
			ID: "1", Title: "T", Slug: "t",
			PublishedAt: time.Now(),
			Category:    models.CategoryRef{Slug: "tech"},
			Tags:        []models.TagRef{{Slug: "go"}, {Slug: "go"}},
			Author:      models.Author{Name: "A"},
		}},
	)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	if got := c.Tags()[0].PostCount; got != 1 {
		t.Errorf("postCount = %d, want 1", got)
	}
	p, _ := c.Post("t")
	if len(p.Tags) != 1 {
		t.Errorf("tags = %+v, want deduplicated", p.Tags)
	}
}

func TestHolder_Replace(t *testing.T) {
	first := MustSeed()
	h := NewHolder(first)
	second := first.WithVersion("v2")
	if old := h.Replace(second); old != first {
		t.Error("Replace should return the previous catalog")
	}
	if h.Catalog().Version() != "v2" {
		t.Errorf("version = %q", h.Catalog().Version())
	}
}

package index

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/query"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "folio-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func syncedRepo(t *testing.T) (*DB, *Repo) {
	t.Helper()
	db := testDB(t)
	if _, err := db.Sync(context.Background(), content.MustSeed()); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	return db, NewRepo(db, time.UTC)
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	for _, table := range []string{"meta", "site", "categories", "tags", "posts", "post_tags"} {
		var count int
		if err := db.conn.QueryRow(`SELECT count(*) FROM ` + table).Scan(&count); err != nil {
			t.Fatalf("%s table missing: %v", table, err)
		}
	}
}

func TestEmptyIndex(t *testing.T) {
	repo := NewRepo(testDB(t), time.UTC)
	ctx := context.Background()

	posts, err := repo.ListPosts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if posts == nil || len(posts) != 0 {
		t.Errorf("ListPosts = %#v, want empty slice", posts)
	}
	site, err := repo.GetSiteInfo(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if site != (models.SiteInfo{}) {
		t.Errorf("GetSiteInfo = %+v, want zero value", site)
	}
}

// The index must answer every query exactly like the in-memory backend.
func TestRepo_MatchesMemory(t *testing.T) {
	_, repo := syncedRepo(t)
	mem := query.NewMemory(content.NewHolder(content.MustSeed()), time.UTC)
	ctx := context.Background()

	type pair struct {
		name string
		call func(query.Repository) (any, error)
	}
	calls := []pair{
		{"ListPosts", func(r query.Repository) (any, error) { return r.ListPosts(ctx) }},
		{"GetPost", func(r query.Repository) (any, error) { return r.GetPost(ctx, "tokyo-developer-journey") }},
		{"GetPostMissing", func(r query.Repository) (any, error) { return r.GetPost(ctx, "nope") }},
		{"ByCategory", func(r query.Repository) (any, error) { return r.ListPostsByCategory(ctx, "technology") }},
		{"ByEmptyCategory", func(r query.Repository) (any, error) { return r.ListPostsByCategory(ctx, "photography") }},
		{"ByTag", func(r query.Repository) (any, error) { return r.ListPostsByTag(ctx, "webdev") }},
		{"ByUnknownTag", func(r query.Repository) (any, error) { return r.ListPostsByTag(ctx, "rust") }},
		{"ListCategories", func(r query.Repository) (any, error) { return r.ListCategories(ctx) }},
		{"ListTags", func(r query.Repository) (any, error) { return r.ListTags(ctx) }},
		{"GetSiteInfo", func(r query.Repository) (any, error) { return r.GetSiteInfo(ctx) }},
		{"GetArchive", func(r query.Repository) (any, error) { return r.GetArchive(ctx) }},
		{"SearchReact", func(r query.Repository) (any, error) { return r.Search(ctx, "REACT") }},
		{"SearchBangkok", func(r query.Repository) (any, error) { return r.Search(ctx, " bangkok ") }},
		{"SearchTagName", func(r query.Repository) (any, error) { return r.Search(ctx, "machine learning") }},
		{"SearchBlank", func(r query.Repository) (any, error) { return r.Search(ctx, "  ") }},
		{"SearchWildcard", func(r query.Repository) (any, error) { return r.Search(ctx, "%") }},
	}
	for _, c := range calls {
		t.Run(c.name, func(t *testing.T) {
			want, err := c.call(mem)
			if err != nil {
				t.Fatal(err)
			}
			got, err := c.call(repo)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("index differs from memory (-memory +index):\n%s", diff)
			}
		})
	}
}

func TestSync_SkipsSameVersion(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	c := content.MustSeed().WithVersion("v1")

	wrote, err := db.Sync(ctx, c)
	if err != nil || !wrote {
		t.Fatalf("first Sync = %v, %v; want true, nil", wrote, err)
	}
	wrote, err = db.Sync(ctx, c)
	if err != nil || wrote {
		t.Fatalf("second Sync = %v, %v; want false, nil", wrote, err)
	}
	v, _ := db.Version(ctx)
	if v != "v1" {
		t.Errorf("Version = %q, want v1", v)
	}
}

func TestSync_ReplacesContent(t *testing.T) {
	db, repo := syncedRepo(t)
	ctx := context.Background()

	site := content.MustSeed().Site()
	cats := []models.Category{{ID: "c1", Name: "Notes", Slug: "notes"}}
	tags := []models.Tag{{ID: "t1", Name: "Go", Slug: "go"}}
	posts := []models.Post{{
		ID:          "p1",
		Title:       "Hello",
		Slug:        "hello",
		PublishedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Category:    models.CategoryRef{Slug: "notes"},
		Tags:        []models.TagRef{{Slug: "go"}},
		Author:      models.Author{Name: "Ada"},
	}}
	c, err := content.NewCatalog(site, cats, tags, posts)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Sync(ctx, c.WithVersion("v2")); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	got, _ := repo.ListPosts(ctx)
	if len(got) != 1 || got[0].Slug != "hello" {
		t.Fatalf("posts after resync = %+v", got)
	}
	if old, _ := repo.GetPost(ctx, "bangkok-street-food"); old != nil {
		t.Error("old post survived resync")
	}
	tagList, _ := repo.ListTags(ctx)
	if diff := cmp.Diff([]models.Tag{{ID: "t1", Name: "Go", Slug: "go", PostCount: 1}}, tagList); diff != "" {
		t.Errorf("tags (-want +got):\n%s", diff)
	}
}

// Post text whose case only folds under Go's Unicode rules must still reach
// the Go matcher through the SQL prefilter.
func TestSearch_UnicodeFoldMatchesMemory(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	site := content.MustSeed().Site()
	cats := []models.Category{{ID: "c1", Name: "CAFÉ CULTURE", Slug: "cafe"}}
	tags := []models.Tag{{ID: "t1", Name: "ÜBER", Slug: "uber"}}
	posts := []models.Post{
		{
			ID:          "p1",
			Title:       "\u212Aubernetes tips",
			Slug:        "kubernetes-tips",
			PublishedAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			Category:    models.CategoryRef{Slug: "cafe"},
			Author:      models.Author{Name: "Ada"},
		},
		{
			ID:          "p2",
			Title:       "Espresso",
			Excerpt:     "Notes from a CRÈME brûlée tasting",
			Slug:        "espresso",
			PublishedAt: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
			Category:    models.CategoryRef{Slug: "cafe"},
			Tags:        []models.TagRef{{Slug: "uber"}},
			Author:      models.Author{Name: "Ada"},
		},
	}
	c, err := content.NewCatalog(site, cats, tags, posts)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Sync(ctx, c.WithVersion("fold")); err != nil {
		t.Fatalf("Sync: %v", err)
	}
	repo := NewRepo(db, time.UTC)
	mem := query.NewMemory(content.NewHolder(c), time.UTC)

	tests := []struct {
		q    string
		want []string
	}{
		{"kubernetes", []string{"kubernetes-tips"}},
		{"crème", []string{"espresso"}},
		{"café", []string{"kubernetes-tips", "espresso"}},
		{"über", []string{"espresso"}},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			want, err := mem.Search(ctx, tt.q)
			if err != nil {
				t.Fatal(err)
			}
			got, err := repo.Search(ctx, tt.q)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("index differs from memory (-memory +index):\n%s", diff)
			}
			slugs := make([]string, len(got))
			for i, p := range got {
				slugs[i] = p.Slug
			}
			if diff := cmp.Diff(tt.want, slugs); diff != "" {
				t.Errorf("slugs (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(`50%_off\`); got != `50\%\_off\\` {
		t.Errorf("escapeLike = %q", got)
	}
}

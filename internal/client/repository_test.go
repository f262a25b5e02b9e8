package client_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/folio/internal/api"
	"github.com/starford/folio/internal/auth"
	"github.com/starford/folio/internal/client"
	"github.com/starford/folio/internal/markdown"
	"github.com/starford/folio/internal/query"
	"github.com/starford/folio/internal/testutil"
	"github.com/starford/folio/internal/view"
)

// The client must answer every query exactly like the repository behind the
// API it talks to.
func TestClient_MatchesMemory(t *testing.T) {
	mem := testutil.SeedRepo(t)
	ac := testutil.App(t, mem)
	srv := httptest.NewServer(api.NewServerRouter(api.NewHandler(ac, view.New(ac, markdown.New())), api.Options{}))
	t.Cleanup(srv.Close)

	c := client.New(srv.URL+"/api", auth.NewService(auth.NewMemoryStore()))
	ctx := context.Background()

	calls := []struct {
		name string
		call func(query.Repository) (any, error)
	}{
		{"ListPosts", func(r query.Repository) (any, error) { return r.ListPosts(ctx) }},
		{"GetPost", func(r query.Repository) (any, error) { return r.GetPost(ctx, "react-18-typescript-guide") }},
		{"GetPostMissing", func(r query.Repository) (any, error) { return r.GetPost(ctx, "nope") }},
		{"ByCategory", func(r query.Repository) (any, error) { return r.ListPostsByCategory(ctx, "technology") }},
		{"ByEmptyCategory", func(r query.Repository) (any, error) { return r.ListPostsByCategory(ctx, "photography") }},
		{"ByTag", func(r query.Repository) (any, error) { return r.ListPostsByTag(ctx, "typescript") }},
		{"ByUnknownTag", func(r query.Repository) (any, error) { return r.ListPostsByTag(ctx, "rust") }},
		{"ListCategories", func(r query.Repository) (any, error) { return r.ListCategories(ctx) }},
		{"ListTags", func(r query.Repository) (any, error) { return r.ListTags(ctx) }},
		{"GetSiteInfo", func(r query.Repository) (any, error) { return r.GetSiteInfo(ctx) }},
		{"GetArchive", func(r query.Repository) (any, error) { return r.GetArchive(ctx) }},
		{"SearchMixedCase", func(r query.Repository) (any, error) { return r.Search(ctx, "  REACT ") }},
		{"SearchBangkok", func(r query.Repository) (any, error) { return r.Search(ctx, "bangkok") }},
		{"SearchNoMatch", func(r query.Repository) (any, error) { return r.Search(ctx, "haskell") }},
		{"SearchBlank", func(r query.Repository) (any, error) { return r.Search(ctx, "   ") }},
	}
	for _, tt := range calls {
		t.Run(tt.name, func(t *testing.T) {
			want, err := tt.call(mem)
			if err != nil {
				t.Fatal(err)
			}
			got, err := tt.call(c)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("client differs from memory (-memory +client):\n%s", diff)
			}
		})
	}
}

func TestClient_ArchiveKeys(t *testing.T) {
	mem := testutil.SeedRepo(t)
	ac := testutil.App(t, mem)
	srv := httptest.NewServer(api.NewServerRouter(api.NewHandler(ac, view.New(ac, markdown.New())), api.Options{}))
	t.Cleanup(srv.Close)

	c := client.New(srv.URL+"/api", auth.NewService(auth.NewMemoryStore()))
	a, err := c.GetArchive(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"2024-11"}, a.Keys()); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	if a.Len() != 6 {
		t.Errorf("archive holds %d posts, want 6", a.Len())
	}
}

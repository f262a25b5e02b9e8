package state

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/models"
)

func TestPostsReducer(t *testing.T) {
	a := models.Post{ID: "1", Slug: "a"}
	b := models.Post{ID: "2", Slug: "b"}
	c := models.Post{ID: "3", Slug: "c"}

	s := InitialPosts()
	if s.TotalPages != 1 || s.CurrentPage != 1 {
		t.Fatalf("initial pagination = %d/%d", s.TotalPages, s.CurrentPage)
	}

	s = ReducePosts(s, SetPostsLoading(true))
	s = ReducePosts(s, SetPostsError("boom"))
	s = ReducePosts(s, SetPosts{a, b})
	if s.Loading || s.Error != "" {
		t.Errorf("SetPosts left loading=%v error=%q", s.Loading, s.Error)
	}

	s = ReducePosts(s, AddPost{Post: c})
	if got := ids(s.Posts); !cmp.Equal(got, []string{"3", "1", "2"}) {
		t.Errorf("after AddPost = %v, want prepended", got)
	}

	updated := models.Post{ID: "1", Slug: "a", Title: "New"}
	s = ReducePosts(s, UpdatePost{Post: updated})
	if s.Posts[1].Title != "New" {
		t.Errorf("UpdatePost did not replace: %+v", s.Posts[1])
	}
	before := s.Posts
	s = ReducePosts(s, UpdatePost{Post: models.Post{ID: "99"}})
	if !cmp.Equal(before, s.Posts) {
		t.Error("UpdatePost of absent id changed posts")
	}

	s = ReducePosts(s, DeletePost("3"))
	if got := ids(s.Posts); !cmp.Equal(got, []string{"1", "2"}) {
		t.Errorf("after DeletePost = %v", got)
	}

	s = ReducePosts(s, SetCurrentPost{Post: &b})
	if s.CurrentPost == nil || s.CurrentPost.ID != "2" {
		t.Errorf("CurrentPost = %+v", s.CurrentPost)
	}
	s = ReducePosts(s, SetPagination{TotalPages: 4, CurrentPage: 2})
	if s.TotalPages != 4 || s.CurrentPage != 2 {
		t.Errorf("pagination = %d/%d", s.TotalPages, s.CurrentPage)
	}
}

func TestReducersDoNotMutateInput(t *testing.T) {
	start := ReducePosts(InitialPosts(), SetPosts{{ID: "1"}, {ID: "2"}})
	snapshot := ids(start.Posts)

	_ = ReducePosts(start, UpdatePost{Post: models.Post{ID: "1", Title: "x"}})
	_ = ReducePosts(start, DeletePost("1"))
	_ = ReducePosts(start, AddPost{Post: models.Post{ID: "0"}})

	if start.Posts[0].Title != "" || !cmp.Equal(ids(start.Posts), snapshot) {
		t.Errorf("input state was mutated: %+v", start.Posts)
	}
}

func TestCategoriesReducer(t *testing.T) {
	s := ReduceCategories(InitialCategories(), SetCategories{{ID: "1", Slug: "x"}})
	s = ReduceCategories(s, AddCategory{Category: models.Category{ID: "2", Slug: "y"}})
	if got := s.Categories; len(got) != 2 || got[1].ID != "2" {
		t.Errorf("AddCategory should append: %+v", got)
	}
	s = ReduceCategories(s, UpdateCategory{Category: models.Category{ID: "2", Slug: "y", Name: "Y"}})
	s = ReduceCategories(s, DeleteCategory("1"))
	want := []models.Category{{ID: "2", Slug: "y", Name: "Y"}}
	if diff := cmp.Diff(want, s.Categories); diff != "" {
		t.Errorf("categories (-want +got):\n%s", diff)
	}
}

func TestTagsReducer(t *testing.T) {
	s := ReduceTags(InitialTags(), SetTagsLoading(true))
	s = ReduceTags(s, SetTags{{ID: "1", Slug: "go"}})
	if s.Loading {
		t.Error("SetTags should clear loading")
	}
	s = ReduceTags(s, AddTag{Tag: models.Tag{ID: "2", Slug: "rust"}})
	s = ReduceTags(s, DeleteTag("1"))
	s = ReduceTags(s, SetTagsError("nope"))
	if len(s.Tags) != 1 || s.Tags[0].Slug != "rust" || s.Error != "nope" {
		t.Errorf("tags state = %+v", s)
	}
}

func TestAuthReducer(t *testing.T) {
	s := InitialAuth("stored")
	if s.Authenticated || s.Token != "stored" {
		t.Fatalf("initial = %+v", s)
	}
	s = ReduceAuth(s, SetAuthLoading(true))
	s = ReduceAuth(s, LoginSuccess{User: models.User{ID: "u1", Name: "Ada"}, Token: "t1"})
	if !s.Authenticated || s.Loading || s.Token != "t1" || s.User.Name != "Ada" {
		t.Errorf("after login = %+v", s)
	}
	s = ReduceAuth(s, Logout{})
	if diff := cmp.Diff(AuthState{}, s); diff != "" {
		t.Errorf("after logout (-want +got):\n%s", diff)
	}
	s = ReduceAuth(s, SetUser{User: models.User{ID: "u2"}})
	if !s.Authenticated || s.User.ID != "u2" {
		t.Errorf("after SetUser = %+v", s)
	}
}

func TestStore_SubscribeAndUnsubscribe(t *testing.T) {
	st := NewStore(InitialTags(), ReduceTags)
	var seen []int
	unsub := st.Subscribe(func(s TagsState) { seen = append(seen, len(s.Tags)) })

	st.Dispatch(AddTag{Tag: models.Tag{ID: "1"}})
	st.Dispatch(AddTag{Tag: models.Tag{ID: "2"}})
	unsub()
	st.Dispatch(AddTag{Tag: models.Tag{ID: "3"}})

	if !cmp.Equal(seen, []int{1, 2}) {
		t.Errorf("listener saw %v, want [1 2]", seen)
	}
	if n := len(st.State().Tags); n != 3 {
		t.Errorf("state has %d tags, want 3", n)
	}
}

func TestStore_ConcurrentDispatch(t *testing.T) {
	st := NewStore(InitialPosts(), ReducePosts)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st.Dispatch(AddPost{Post: models.Post{ID: "x"}})
		}()
	}
	wg.Wait()
	if n := len(st.State().Posts); n != 50 {
		t.Errorf("posts = %d, want 50", n)
	}
}

func TestRoot_RecountFromPosts(t *testing.T) {
	c := content.MustSeed()
	root := NewRoot("")

	cats := c.Categories()
	for i := range cats {
		cats[i].PostCount = 42
	}
	root.Categories.Dispatch(SetCategories(cats))
	root.Tags.Dispatch(SetTags(c.Tags()))
	root.Posts.Dispatch(SetPosts(c.Posts()))
	root.Posts.Dispatch(DeletePost(c.Posts()[0].ID)) // react-18-typescript-guide

	root.RecountFromPosts()

	gotCats := counts(root.Categories.State().Categories, func(c models.Category) (string, int) { return c.Slug, c.PostCount })
	wantCats := map[string]int{"technology": 2, "lifestyle": 1, "travel": 1, "food": 1, "photography": 0}
	if diff := cmp.Diff(wantCats, gotCats); diff != "" {
		t.Errorf("category counts (-want +got):\n%s", diff)
	}

	gotTags := counts(root.Tags.State().Tags, func(t models.Tag) (string, int) { return t.Slug, t.PostCount })
	wantTags := map[string]int{"react": 0, "typescript": 0, "javascript": 1, "css": 1, "nodejs": 0, "ai": 2, "ml": 1, "webdev": 1}
	if diff := cmp.Diff(wantTags, gotTags); diff != "" {
		t.Errorf("tag counts (-want +got):\n%s", diff)
	}
}

func ids(posts []models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func counts[T any](items []T, kv func(T) (string, int)) map[string]int {
	out := make(map[string]int, len(items))
	for _, it := range items {
		k, v := kv(it)
		out[k] = v
	}
	return out
}

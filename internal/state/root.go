package state

// Root bundles the four containers of a session.
type Root struct {
	Auth       *Store[AuthState]
	Posts      *Store[PostsState]
	Categories *Store[CategoriesState]
	Tags       *Store[TagsState]
}

// NewRoot returns empty containers; token seeds the auth state.
func NewRoot(token string) *Root {
	return &Root{
		Auth:       NewStore(InitialAuth(token), ReduceAuth),
		Posts:      NewStore(InitialPosts(), ReducePosts),
		Categories: NewStore(InitialCategories(), ReduceCategories),
		Tags:       NewStore(InitialTags(), ReduceTags),
	}
}

// RecountFromPosts recomputes category and tag post counts from the posts
// currently held, since the containers are never kept consistent on their own.
func (r *Root) RecountFromPosts() {
	posts := r.Posts.State().Posts
	byCategory := make(map[string]int)
	byTag := make(map[string]int)
	for _, p := range posts {
		byCategory[p.Category.Slug]++
		for _, t := range p.Tags {
			byTag[t.Slug]++
		}
	}
	r.Categories.Dispatch(RecountCategories(byCategory))
	r.Tags.Dispatch(RecountTags(byTag))
}

package state

import "github.com/starford/folio/internal/models"

// PostsState mirrors the posts a view has fetched.
type PostsState struct {
	Posts       []models.Post `json:"posts"`
	CurrentPost *models.Post  `json:"currentPost"`
	Loading     bool          `json:"loading"`
	Error       string        `json:"error,omitempty"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
}

// InitialPosts is the empty posts state on page one of one.
func InitialPosts() PostsState {
	return PostsState{Posts: []models.Post{}, TotalPages: 1, CurrentPage: 1}
}

type (
	SetPostsLoading bool
	// SetPostsError records a failure message; "" clears it.
	SetPostsError string
	// SetPosts replaces all posts and clears loading and error.
	SetPosts []models.Post
	// SetCurrentPost selects the post being viewed; nil clears it.
	SetCurrentPost struct{ Post *models.Post }
	// AddPost prepends a post.
	AddPost struct{ Post models.Post }
	// UpdatePost replaces the post with the same ID, if present.
	UpdatePost struct{ Post models.Post }
	// DeletePost removes the post with this ID.
	DeletePost string
	SetPagination struct{ TotalPages, CurrentPage int }
)

func (SetPostsLoading) Type() string { return "posts/setLoading" }
func (SetPostsError) Type() string   { return "posts/setError" }
func (SetPosts) Type() string        { return "posts/setPosts" }
func (SetCurrentPost) Type() string  { return "posts/setCurrentPost" }
func (AddPost) Type() string         { return "posts/addPost" }
func (UpdatePost) Type() string      { return "posts/updatePost" }
func (DeletePost) Type() string      { return "posts/deletePost" }
func (SetPagination) Type() string   { return "posts/setPagination" }

func postID(p models.Post) string { return p.ID }

// ReducePosts is the posts reducer.
func ReducePosts(s PostsState, a Action) PostsState {
	switch a := a.(type) {
	case SetPostsLoading:
		s.Loading = bool(a)
	case SetPostsError:
		s.Error = string(a)
	case SetPosts:
		s.Posts = copyOf([]models.Post(a))
		s.Loading = false
		s.Error = ""
	case SetCurrentPost:
		s.CurrentPost = a.Post
	case AddPost:
		s.Posts = append([]models.Post{a.Post}, s.Posts...)
	case UpdatePost:
		s.Posts = replaceByID(s.Posts, postID, a.Post)
	case DeletePost:
		s.Posts = removeByID(s.Posts, postID, string(a))
	case SetPagination:
		s.TotalPages = a.TotalPages
		s.CurrentPage = a.CurrentPage
	}
	return s
}

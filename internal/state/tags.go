package state

import "github.com/starford/folio/internal/models"

// TagsState mirrors the fetched tag list.
type TagsState struct {
	Tags    []models.Tag `json:"tags"`
	Loading bool         `json:"loading"`
	Error   string       `json:"error,omitempty"`
}

// InitialTags is the empty tags state.
func InitialTags() TagsState {
	return TagsState{Tags: []models.Tag{}}
}

type (
	SetTagsLoading bool
	SetTagsError   string
	SetTags        []models.Tag
	AddTag         struct{ Tag models.Tag }
	UpdateTag      struct{ Tag models.Tag }
	DeleteTag      string
	RecountTags    map[string]int
)

func (SetTagsLoading) Type() string { return "tags/setLoading" }
func (SetTagsError) Type() string   { return "tags/setError" }
func (SetTags) Type() string        { return "tags/setTags" }
func (AddTag) Type() string         { return "tags/addTag" }
func (UpdateTag) Type() string      { return "tags/updateTag" }
func (DeleteTag) Type() string      { return "tags/deleteTag" }
func (RecountTags) Type() string    { return "tags/recount" }

func tagID(t models.Tag) string { return t.ID }

// ReduceTags is the tags reducer.
func ReduceTags(s TagsState, a Action) TagsState {
	switch a := a.(type) {
	case SetTagsLoading:
		s.Loading = bool(a)
	case SetTagsError:
		s.Error = string(a)
	case SetTags:
		s.Tags = copyOf([]models.Tag(a))
		s.Loading = false
		s.Error = ""
	case AddTag:
		s.Tags = append(copyOf(s.Tags), a.Tag)
	case UpdateTag:
		s.Tags = replaceByID(s.Tags, tagID, a.Tag)
	case DeleteTag:
		s.Tags = removeByID(s.Tags, tagID, string(a))
	case RecountTags:
		out := copyOf(s.Tags)
		for i := range out {
			out[i].PostCount = a[out[i].Slug]
		}
		s.Tags = out
	}
	return s
}

package state

import "github.com/starford/folio/internal/models"

// CategoriesState mirrors the fetched category list.
type CategoriesState struct {
	Categories []models.Category `json:"categories"`
	Loading    bool              `json:"loading"`
	Error      string            `json:"error,omitempty"`
}

// InitialCategories is the empty categories state.
func InitialCategories() CategoriesState {
	return CategoriesState{Categories: []models.Category{}}
}

type (
	SetCategoriesLoading bool
	SetCategoriesError   string
	SetCategories        []models.Category
	// AddCategory appends a category.
	AddCategory    struct{ Category models.Category }
	UpdateCategory struct{ Category models.Category }
	// DeleteCategory removes the category with this ID.
	DeleteCategory string
	// RecountCategories sets every PostCount from a slug to count map;
	// categories missing from the map get zero.
	RecountCategories map[string]int
)

func (SetCategoriesLoading) Type() string { return "categories/setLoading" }
func (SetCategoriesError) Type() string   { return "categories/setError" }
func (SetCategories) Type() string        { return "categories/setCategories" }
func (AddCategory) Type() string          { return "categories/addCategory" }
func (UpdateCategory) Type() string       { return "categories/updateCategory" }
func (DeleteCategory) Type() string       { return "categories/deleteCategory" }
func (RecountCategories) Type() string    { return "categories/recount" }

func categoryID(c models.Category) string { return c.ID }

// ReduceCategories is the categories reducer.
func ReduceCategories(s CategoriesState, a Action) CategoriesState {
	switch a := a.(type) {
	case SetCategoriesLoading:
		s.Loading = bool(a)
	case SetCategoriesError:
		s.Error = string(a)
	case SetCategories:
		s.Categories = copyOf([]models.Category(a))
		s.Loading = false
		s.Error = ""
	case AddCategory:
		s.Categories = append(copyOf(s.Categories), a.Category)
	case UpdateCategory:
		s.Categories = replaceByID(s.Categories, categoryID, a.Category)
	case DeleteCategory:
		s.Categories = removeByID(s.Categories, categoryID, string(a))
	case RecountCategories:
		out := copyOf(s.Categories)
		for i := range out {
			out[i].PostCount = a[out[i].Slug]
		}
		s.Categories = out
	}
	return s
}

package query

import (
	"strings"
	"time"

	"github.com/starford/folio/internal/models"
)

// NormalizeQuery trims and lowercases a search query. An empty result means
// the query matches nothing.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

// Matches reports whether post contains term (already normalized) in its
// title, excerpt, content, category name or any tag name.
func Matches(p models.Post, term string) bool {
	if term == "" {
		return false
	}
	if containsFold(p.Title, term) ||
		containsFold(p.Excerpt, term) ||
		containsFold(p.Content, term) ||
		containsFold(p.Category.Name, term) {
		return true
	}
	for _, t := range p.Tags {
		if containsFold(t.Name, term) {
			return true
		}
	}
	return false
}

func containsFold(s, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(s), lowerTerm)
}

// FilterPosts returns the posts for which keep is true, preserving order.
// The result is never nil.
func FilterPosts(posts []models.Post, keep func(models.Post) bool) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for _, p := range posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// Search applies the free-text search semantics to posts.
func Search(posts []models.Post, q string) []models.Post {
	term := NormalizeQuery(q)
	if term == "" {
		return []models.Post{}
	}
	return FilterPosts(posts, func(p models.Post) bool { return Matches(p, term) })
}

// ByCategory keeps posts whose category slug equals slug exactly.
func ByCategory(slug string) func(models.Post) bool {
	return func(p models.Post) bool { return p.Category.Slug == slug }
}

// ByTag keeps posts carrying a tag whose slug equals slug exactly.
func ByTag(slug string) func(models.Post) bool {
	return func(p models.Post) bool { return p.HasTag(slug) }
}

// ReadingTime estimates minutes to read content at 200 words per minute,
// never less than one.
func ReadingTime(content string) int {
	const wordsPerMinute = 200
	minutes := len(strings.Fields(content)) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// ArchiveKey returns the "YYYY-MM" bucket for t in loc.
func ArchiveKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("2006-01")
}

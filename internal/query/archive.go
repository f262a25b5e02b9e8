package query

import (
	"sort"
	"time"

	"github.com/starford/folio/internal/models"
)

// Archive groups posts into year-month buckets. Buckets keep the source
// order of their posts; they are not sorted.
type Archive struct {
	Buckets map[string][]models.Post `json:"buckets"`
}

// BuildArchive buckets posts by the year and month of their publication
// time in loc (time.Local when nil).
func BuildArchive(posts []models.Post, loc *time.Location) Archive {
	a := Archive{Buckets: make(map[string][]models.Post)}
	for _, p := range posts {
		key := ArchiveKey(p.PublishedAt, loc)
		a.Buckets[key] = append(a.Buckets[key], p)
	}
	return a
}

// Keys returns the bucket keys newest first, for reverse-chronological display.
func (a Archive) Keys() []string {
	keys := make([]string, 0, len(a.Buckets))
	for k := range a.Buckets {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}

// Len returns the total number of posts across all buckets.
func (a Archive) Len() int {
	n := 0
	for _, posts := range a.Buckets {
		n += len(posts)
	}
	return n
}

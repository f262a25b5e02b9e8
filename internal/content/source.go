package content

import "sync/atomic"

// Source hands out the catalog queries should read from.
type Source interface {
	Catalog() *Catalog
}

// Holder is a Source whose catalog can be replaced while queries are in
// flight. Each catalog is immutable; replacing swaps the pointer only.
type Holder struct {
	current atomic.Pointer[Catalog]
}

// NewHolder returns a Holder serving c.
func NewHolder(c *Catalog) *Holder {
	h := &Holder{}
	h.current.Store(c)
	return h
}

// Catalog implements Source.
func (h *Holder) Catalog() *Catalog {
	return h.current.Load()
}

// Replace installs c and returns the previous catalog.
func (h *Holder) Replace(c *Catalog) *Catalog {
	return h.current.Swap(c)
}

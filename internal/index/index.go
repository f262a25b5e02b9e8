package index

import (
	"context"

	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/query"
)

// Mirror is the write side of the index: it replaces the stored content
// with a catalog snapshot.
type Mirror interface {
	Sync(ctx context.Context, c *content.Catalog) (bool, error)
	Version(ctx context.Context) (string, error)
	Close() error
}

// Verify implementations at compile time.
var (
	_ Mirror           = (*DB)(nil)
	_ query.Repository = (*Repo)(nil)
)

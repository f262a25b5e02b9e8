package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/query"
)

// QueryOps lists the operations accepted by RunQuery, with the argument each
// one takes.
var QueryOps = []struct {
	Name string
	Arg  string
}{
	{"posts", ""},
	{"post", "slug"},
	{"category", "slug"},
	{"tag", "slug"},
	{"categories", ""},
	{"tags", ""},
	{"site", ""},
	{"archive", ""},
	{"search", "query"},
}

// ErrUnknownOp is returned for an operation name not in QueryOps.
var ErrUnknownOp = errors.New("unknown query operation")

type archiveResult struct {
	Keys    []string `json:"keys"`
	Buckets any      `json:"buckets"`
}

func runQuery(ctx context.Context, repo query.Repository, op, arg string) (any, error) {
	// A blank search is a valid query with no results; a blank slug is not.
	for _, o := range QueryOps {
		if o.Name == op && o.Arg == "slug" && strings.TrimSpace(arg) == "" {
			return nil, fmt.Errorf("%s: %w: slug is required", op, apperr.ErrInvalidInput)
		}
	}

	switch op {
	case "posts":
		return repo.ListPosts(ctx)
	case "post":
		p, err := repo.GetPost(ctx, arg)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("post %q: %w", arg, apperr.ErrNotFound)
		}
		return p, nil
	case "category":
		return repo.ListPostsByCategory(ctx, arg)
	case "tag":
		return repo.ListPostsByTag(ctx, arg)
	case "categories":
		return repo.ListCategories(ctx)
	case "tags":
		return repo.ListTags(ctx)
	case "site":
		return repo.GetSiteInfo(ctx)
	case "archive":
		a, err := repo.GetArchive(ctx)
		if err != nil {
			return nil, err
		}
		return archiveResult{Keys: a.Keys(), Buckets: a.Buckets}, nil
	case "search":
		return repo.Search(ctx, arg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOp, op)
	}
}

func writeResult(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package content

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/starford/folio/internal/checksum"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/parser"
	"github.com/starford/folio/internal/storage"
)

// Vault file layout.
const (
	SiteFile       = "site.yaml"
	CategoriesFile = "categories.yaml"
	TagsFile       = "tags.yaml"
	PostsDir       = "posts"
)

// idNamespace seeds deterministic ids for vault entities that omit one.
var idNamespace = uuid.MustParse("6f1d2c8e-3b7a-4f0e-9a51-0c2d7e9b4a10")

// LoadVault reads a content vault and builds a catalog from it. site.yaml is
// required; categories.yaml, tags.yaml and posts/ are optional. Posts keep
// the order of their file paths. The catalog version is the combined
// checksum of every file read.
func LoadVault(store storage.Provider) (*Catalog, error) {
	sums := make(map[string]string)

	var site models.SiteInfo
	if err := readYAML(store, SiteFile, &site, sums); err != nil {
		return nil, err
	}

	var categories []models.Category
	if err := readYAML(store, CategoriesFile, &categories, sums); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var tags []models.Tag
	if err := readYAML(store, TagsFile, &tags, sums); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	files, err := store.List(PostsDir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("content: list posts: %w", err)
	}

	posts := make([]models.Post, 0, len(files))
	for _, f := range files {
		if path.Ext(f.Path) != ".md" {
			continue
		}
		data, err := store.Read(f.Path)
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", f.Path, err)
		}
		sums[f.Path] = checksum.Sum(data)

		p, err := ParsePost(f.Path, data)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}

	for i := range categories {
		if categories[i].ID == "" {
			categories[i].ID = derivedID("category", categories[i].Slug)
		}
	}
	for i := range tags {
		if tags[i].ID == "" {
			tags[i].ID = derivedID("tag", tags[i].Slug)
		}
	}

	c, err := NewCatalog(site, categories, tags, posts)
	if err != nil {
		return nil, err
	}
	return c.WithVersion(checksum.Combine(sums)), nil
}

// Version computes the version LoadVault would assign without building a
// catalog, so callers can skip reloading unchanged content.
func Version(store storage.Provider) (string, error) {
	sums := make(map[string]string)
	for _, name := range []string{SiteFile, CategoriesFile, TagsFile} {
		data, err := store.Read(name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", err
		}
		sums[name] = checksum.Sum(data)
	}
	files, err := store.List(PostsDir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	for _, f := range files {
		if path.Ext(f.Path) == ".md" {
			sums[f.Path] = f.Checksum
		}
	}
	return checksum.Combine(sums), nil
}

func readYAML(store storage.Provider, name string, target any, sums map[string]string) error {
	data, err := store.Read(name)
	if err != nil {
		return fmt.Errorf("content: read %s: %w", name, err)
	}
	sums[name] = checksum.Sum(data)
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("content: parse %s: %w", name, err)
	}
	return nil
}

// ParsePost maps a post file onto a Post. The slug defaults to the
// file name stem and the id to a uuid derived from the slug.
func ParsePost(filePath string, data []byte) (models.Post, error) {
	res, err := parser.Parse(data)
	if err != nil {
		return models.Post{}, fmt.Errorf("content: %s: %w", filePath, err)
	}
	fm := res.Frontmatter

	slug := fm.Slug
	if slug == "" {
		slug = strings.TrimSuffix(path.Base(filePath), ".md")
	}
	id := fm.ID
	if id == "" {
		id = derivedID("post", slug)
	}

	tags := make([]models.TagRef, 0, len(fm.Tags))
	for _, t := range fm.Tags {
		tags = append(tags, models.TagRef{Slug: strings.TrimSpace(t)})
	}

	return models.Post{
		ID:          id,
		Title:       res.Title,
		Content:     res.Body,
		Excerpt:     fm.Excerpt,
		CoverImage:  fm.CoverImage,
		Slug:        slug,
		PublishedAt: fm.PublishedAt,
		Category:    models.CategoryRef{Slug: strings.TrimSpace(fm.Category)},
		Tags:        tags,
		Author:      models.Author{Name: fm.Author.Name, Avatar: fm.Author.Avatar},
	}, nil
}

func derivedID(kind, slug string) string {
	return uuid.NewSHA1(idNamespace, []byte(kind+":"+slug)).String()
}

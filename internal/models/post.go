// Package models defines the content types served by Folio.
package models

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SlugPattern matches URL-safe lowercase slugs such as "react-18-typescript-guide".
var SlugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Post is a single published article.
type Post struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	Excerpt     string      `json:"excerpt"`
	CoverImage  string      `json:"coverImage,omitempty"`
	Slug        string      `json:"slug"`
	PublishedAt time.Time   `json:"publishedAt"`
	Category    CategoryRef `json:"category"`
	Tags        []TagRef    `json:"tags"`
	Author      Author      `json:"author"`
}

// Validate checks the fields a post needs to be addressable and listable.
func (p Post) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Slug, validation.Required, validation.Match(SlugPattern)),
		validation.Field(&p.PublishedAt, validation.Required),
		validation.Field(&p.Category),
		validation.Field(&p.Author),
	)
}

// HasTag reports whether the post carries a tag with the given slug.
func (p Post) HasTag(slug string) bool {
	for _, t := range p.Tags {
		if t.Slug == slug {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with p.
func (p Post) Clone() Post {
	out := p
	out.Tags = make([]TagRef, len(p.Tags))
	copy(out.Tags, p.Tags)
	return out
}

// Author identifies who wrote a post.
type Author struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// Validate implements validation.Validatable.
func (a Author) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Name, validation.Required),
	)
}

// CategoryRef is the denormalized category embedded in a post.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Validate implements validation.Validatable.
func (r CategoryRef) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Slug, validation.Required),
	)
}

// TagRef is the denormalized tag embedded in a post.
type TagRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

package models

import validation "github.com/go-ozzo/ozzo-validation/v4"

// Category groups posts by subject. Every post belongs to exactly one.
type Category struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Slug        string `json:"slug" yaml:"slug"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	PostCount   int    `json:"postCount" yaml:"-"`
}

// Validate implements validation.Validatable.
func (c Category) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.Name, validation.Required),
		validation.Field(&c.Slug, validation.Required, validation.Match(SlugPattern)),
	)
}

// Ref returns the reference embedded into posts of this category.
func (c Category) Ref() CategoryRef {
	return CategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

// Tag is a free-form label; a post may carry any number of them.
type Tag struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Slug      string `json:"slug" yaml:"slug"`
	PostCount int    `json:"postCount" yaml:"-"`
}

// Validate implements validation.Validatable.
func (t Tag) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.ID, validation.Required),
		validation.Field(&t.Name, validation.Required),
		validation.Field(&t.Slug, validation.Required, validation.Match(SlugPattern)),
	)
}

// Ref returns the reference embedded into posts carrying this tag.
func (t Tag) Ref() TagRef {
	return TagRef{ID: t.ID, Name: t.Name, Slug: t.Slug}
}

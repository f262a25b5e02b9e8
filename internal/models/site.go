package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// SiteInfo is the blog-wide metadata shown on the about page and in feeds.
type SiteInfo struct {
	BlogTitle       string      `json:"blogTitle" yaml:"blog_title"`
	BlogDescription string      `json:"blogDescription" yaml:"blog_description"`
	AuthorName      string      `json:"authorName" yaml:"author_name"`
	AuthorAvatar    string      `json:"authorAvatar,omitempty" yaml:"author_avatar,omitempty"`
	SocialLinks     SocialLinks `json:"socialLinks" yaml:"social_links"`
}

// Validate implements validation.Validatable.
func (s SiteInfo) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.BlogTitle, validation.Required),
		validation.Field(&s.AuthorName, validation.Required),
		validation.Field(&s.SocialLinks),
	)
}

// SocialLinks holds optional profile links; empty fields are not shown.
type SocialLinks struct {
	Twitter  string `json:"twitter,omitempty" yaml:"twitter,omitempty"`
	GitHub   string `json:"github,omitempty" yaml:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty" yaml:"linkedin,omitempty"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
}

// Validate implements validation.Validatable.
func (l SocialLinks) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Twitter, is.URL),
		validation.Field(&l.GitHub, is.URL),
		validation.Field(&l.LinkedIn, is.URL),
		validation.Field(&l.Email, is.EmailFormat),
	)
}

// SocialLink is one named, non-empty social link.
type SocialLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Present returns the non-empty links in a fixed display order.
func (l SocialLinks) Present() []SocialLink {
	all := []SocialLink{
		{Name: "twitter", URL: l.Twitter},
		{Name: "github", URL: l.GitHub},
		{Name: "linkedin", URL: l.LinkedIn},
		{Name: "email", URL: l.Email},
	}
	out := make([]SocialLink, 0, len(all))
	for _, link := range all {
		if link.URL != "" {
			out = append(out, link)
		}
	}
	return out
}

// Package markdown renders post bodies to sanitized HTML.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/starford/folio/internal/query"
)

// Renderer converts Markdown to HTML safe to embed in a page.
type Renderer struct {
	md       goldmark.Markdown
	sanitize *bluemonday.Policy
}

// New returns a Renderer with GitHub-flavoured Markdown enabled.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithXHTML()),
		),
		sanitize: bluemonday.UGCPolicy().AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6"),
	}
}

// HTML renders src.
func (r *Renderer) HTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("markdown: render: %w", err)
	}
	return r.sanitize.Sanitize(buf.String()), nil
}

// Rendered is a post body ready for display.
type Rendered struct {
	HTML        string `json:"html"`
	ReadingTime int    `json:"readingTime"`
}

// Render renders src and estimates its reading time in minutes.
func (r *Renderer) Render(src string) (Rendered, error) {
	out, err := r.HTML(src)
	if err != nil {
		return Rendered{}, err
	}
	return Rendered{HTML: out, ReadingTime: query.ReadingTime(src)}, nil
}

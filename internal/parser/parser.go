// Package parser splits vault post files into YAML frontmatter and a Markdown body.
package parser

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the metadata block at the top of a post file.
type Frontmatter struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Slug        string    `yaml:"slug"`
	Excerpt     string    `yaml:"excerpt"`
	CoverImage  string    `yaml:"cover_image"`
	PublishedAt time.Time `yaml:"published_at"`
	Category    string    `yaml:"category"`
	Tags        []string  `yaml:"tags"`
	Author      struct {
		Name   string `yaml:"name"`
		Avatar string `yaml:"avatar"`
	} `yaml:"author"`
}

// Result holds the output of parsing a post file.
type Result struct {
	Frontmatter    Frontmatter
	HasFrontmatter bool
	Body           string

	// Title is the frontmatter title, or the first H1 heading of the body.
	Title string
}

// Parse extracts frontmatter and body from raw Markdown bytes. A file
// without a frontmatter block is all body; a malformed block is an error.
func Parse(data []byte) (*Result, error) {
	block, body, ok := splitFrontmatter(data)

	res := &Result{Body: body, HasFrontmatter: ok}
	if ok {
		if err := yaml.Unmarshal(block, &res.Frontmatter); err != nil {
			return nil, fmt.Errorf("parser: invalid frontmatter: %w", err)
		}
	}
	res.Title = deriveTitle(res.Frontmatter.Title, body)
	return res, nil
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the Markdown body. If no frontmatter is found the entire content is body.
func splitFrontmatter(data []byte) ([]byte, string, bool) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data), false
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// No closing delimiter.
		return nil, string(data), false
	}

	block := rest[:idx]
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")
	return block, body, true
}

// deriveTitle returns title if non-empty, otherwise the first H1 heading,
// otherwise empty string.
func deriveTitle(title, body string) string {
	if title = strings.TrimSpace(title); title != "" {
		return title
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}

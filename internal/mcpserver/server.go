// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Folio content queries for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/markdown"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/query"
)

// PostFormatURI addresses the post format resource.
const PostFormatURI = "folio://post-format"

// Server wraps the MCP server with Folio tools.
type Server struct {
	mcp  *server.MCPServer
	repo query.Repository
	md   *markdown.Renderer
}

// New creates a new MCP server with all Folio tools registered.
func New(repo query.Repository, md *markdown.Renderer) *Server {
	s := &Server{repo: repo, md: md}

	s.mcp = server.NewMCPServer(
		"Folio",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_posts",
		mcp.WithDescription("List published posts, optionally filtered by category or tag slug."),
		mcp.WithString("category", mcp.Description("Optional category slug (e.g. technology)")),
		mcp.WithString("tag", mcp.Description("Optional tag slug (e.g. react)")),
	), s.listPosts)

	s.mcp.AddTool(mcp.NewTool("get_post",
		mcp.WithDescription("Read one post by slug, including its rendered HTML and reading time."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Post slug (e.g. react-18-typescript-guide)")),
	), s.getPost)

	s.mcp.AddTool(mcp.NewTool("search_posts",
		mcp.WithDescription("Case-insensitive search over post titles, excerpts, content, category and tag names."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchPosts)

	s.mcp.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List all categories with their post counts."),
	), s.listCategories)

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List all tags with their post counts."),
	), s.listTags)

	s.mcp.AddTool(mcp.NewTool("get_site_info",
		mcp.WithDescription("Return the blog title, description, author and social links."),
	), s.getSiteInfo)

	s.mcp.AddTool(mcp.NewTool("get_archive",
		mcp.WithDescription("Group posts by publication month. Keys are YYYY-MM, newest first."),
	), s.getArchive)

	s.mcp.AddTool(mcp.NewTool("get_post_format",
		mcp.WithDescription("Returns the Folio post file format. "+
			"Call this before drafting a post for the content vault."),
	), s.getPostFormat)

	s.mcp.AddTool(mcp.NewTool("validate_post",
		mcp.WithDescription("Check a draft post file against the post format and the current "+
			"categories and tags. Nothing is written."),
		mcp.WithString("path", mcp.Description("File name used to derive the slug (e.g. posts/my-post.md)")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Markdown content following the Folio post format")),
	), s.validatePost)

	s.mcp.AddResource(
		mcp.NewResource(PostFormatURI, "Post Format",
			mcp.WithResourceDescription("Markdown post format used by the Folio content vault."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readPostFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) listPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	category := strings.TrimSpace(req.GetString("category", ""))
	tag := strings.TrimSpace(req.GetString("tag", ""))

	var (
		posts []models.Post
		err   error
	)
	switch {
	case category != "" && tag != "":
		return mcp.NewToolResultError("use either category or tag, not both"), nil
	case category != "":
		posts, err = s.repo.ListPostsByCategory(ctx, category)
	case tag != "":
		posts, err = s.repo.ListPostsByTag(ctx, tag)
	default:
		posts, err = s.repo.ListPosts(ctx)
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(summaries(posts))
}

func (s *Server) getPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	p, err := s.repo.GetPost(ctx, slug)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if p == nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", slug)), nil
	}
	rendered, err := s.md.Render(p.Content)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(struct {
		models.Post
		markdown.Rendered
	}{*p, rendered})
}

func (s *Server) searchPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.repo.Search(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("no posts found"), nil
	}
	return jsonResult(summaries(results))
}

func (s *Server) listCategories(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(categories)
}

func (s *Server) listTags(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(tags)
}

func (s *Server) getSiteInfo(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	site, err := s.repo.GetSiteInfo(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(site)
}

func (s *Server) getArchive(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	archive, err := s.repo.GetArchive(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	type month struct {
		Key   string        `json:"key"`
		Count int           `json:"count"`
		Posts []postSummary `json:"posts"`
	}
	months := make([]month, 0, len(archive.Buckets))
	for _, key := range archive.Keys() {
		bucket := archive.Buckets[key]
		months = append(months, month{Key: key, Count: len(bucket), Posts: summaries(bucket)})
	}
	return jsonResult(months)
}

func (s *Server) getPostFormat(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(PostFormatContract), nil
}

func (s *Server) validatePost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	body, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path := req.GetString("path", content.PostsDir+"/draft.md")

	p, err := content.ParsePost(path, []byte(body))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var problems []string
	if err := p.Validate(); err != nil {
		problems = append(problems, err.Error())
	}

	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if p.Category.Slug != "" && !hasCategory(categories, p.Category.Slug) {
		problems = append(problems, fmt.Sprintf("unknown category: %s", p.Category.Slug))
	}

	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	for _, t := range p.Tags {
		if !hasTag(tags, t.Slug) {
			problems = append(problems, fmt.Sprintf("unknown tag: %s", t.Slug))
		}
	}

	if existing, err := s.repo.GetPost(ctx, p.Slug); err == nil && existing != nil {
		problems = append(problems, fmt.Sprintf("slug already published: %s", p.Slug))
	}

	if len(problems) > 0 {
		return mcp.NewToolResultError("invalid post:\n- " + strings.Join(problems, "\n- ")), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("valid: %s (%s)", p.Slug, p.Title)), nil
}

func (s *Server) readPostFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      PostFormatURI,
			MIMEType: "text/markdown",
			Text:     PostFormatContract,
		},
	}, nil
}

// postSummary is a post without its body, keeping list results small.
type postSummary struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	PublishedAt string   `json:"publishedAt"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
}

func summaries(posts []models.Post) []postSummary {
	out := make([]postSummary, 0, len(posts))
	for _, p := range posts {
		tags := make([]string, 0, len(p.Tags))
		for _, t := range p.Tags {
			tags = append(tags, t.Slug)
		}
		out = append(out, postSummary{
			Slug:        p.Slug,
			Title:       p.Title,
			Excerpt:     p.Excerpt,
			PublishedAt: p.PublishedAt.Format("2006-01-02"),
			Category:    p.Category.Slug,
			Tags:        tags,
		})
	}
	return out
}

func hasCategory(categories []models.Category, slug string) bool {
	for _, c := range categories {
		if c.Slug == slug {
			return true
		}
	}
	return false
}

func hasTag(tags []models.Tag, slug string) bool {
	for _, t := range tags {
		if t.Slug == slug {
			return true
		}
	}
	return false
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

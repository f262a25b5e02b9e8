package parser

import (
	"testing"
	"time"
)

func TestParse_FrontmatterAndBody(t *testing.T) {
	input := []byte(`---
title: Hello
slug: hello
published_at: 2024-11-20T10:00:00Z
category: technology
tags:
  - react
  - typescript
author:
  name: Admin
  avatar: /avatar.jpg
---
# Hello
Body text.
`)
	r, err := Parse(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.HasFrontmatter {
		t.Fatal("expected frontmatter")
	}
	fm := r.Frontmatter
	if r.Title != "Hello" || fm.Slug != "hello" || fm.Category != "technology" {
		t.Errorf("frontmatter = %+v", fm)
	}
	if len(fm.Tags) != 2 || fm.Tags[0] != "react" || fm.Tags[1] != "typescript" {
		t.Errorf("tags = %v", fm.Tags)
	}
	if !fm.PublishedAt.Equal(time.Date(2024, 11, 20, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("published_at = %v", fm.PublishedAt)
	}
	if fm.Author.Name != "Admin" || fm.Author.Avatar != "/avatar.jpg" {
		t.Errorf("author = %+v", fm.Author)
	}
	if r.Body != "# Hello\nBody text.\n" {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	r, err := Parse([]byte("# Just a heading\nSome text.\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.HasFrontmatter {
		t.Error("expected no frontmatter")
	}
	if r.Title != "Just a heading" {
		t.Errorf("title = %q, want %q", r.Title, "Just a heading")
	}
}

func TestParse_UnclosedFrontmatterIsBody(t *testing.T) {
	input := "---\ntitle: x\nno closing delimiter\n"
	r, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.HasFrontmatter || r.Body != input {
		t.Errorf("result = %+v", r)
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("---\n: invalid: yaml: {{{\n---\nBody\n")); err == nil {
		t.Fatal("expected error for invalid frontmatter")
	}
}

func TestDeriveTitle(t *testing.T) {
	cases := []struct {
		title, body, want string
	}{
		{"Explicit", "# Heading", "Explicit"},
		{"", "intro\n# Heading\n", "Heading"},
		{"  ", "## Only H2\n", ""},
	}
	for _, c := range cases {
		if got := deriveTitle(c.title, c.body); got != c.want {
			t.Errorf("deriveTitle(%q, %q) = %q, want %q", c.title, c.body, got, c.want)
		}
	}
}

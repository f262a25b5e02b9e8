package mcpserver

// PostFormatContract describes the post file format of a Folio content
// vault. LLM consumers read it before drafting posts.
const PostFormatContract = `# Folio Post Format

A content vault is a directory with this layout:

` + "```" + `
site.yaml          # REQUIRED - blog title, description, author, social links
categories.yaml    # OPTIONAL - list of categories
tags.yaml          # OPTIONAL - list of tags
posts/*.md         # one Markdown file per post
` + "```" + `

## Post files

` + "```" + `markdown
---
title: Getting Started with React 18 and TypeScript   # REQUIRED unless the body starts with "# Heading"
slug: react-18-typescript-guide                      # OPTIONAL - defaults to the file name stem
excerpt: A short summary shown in post lists.        # OPTIONAL
cover_image: https://example.com/cover.jpg           # OPTIONAL
published_at: 2024-11-15T10:00:00Z                   # REQUIRED - RFC 3339 timestamp
category: technology                                 # REQUIRED - slug from categories.yaml
tags:                                                # OPTIONAL - slugs from tags.yaml
  - react
  - typescript
author:
  name: Alex Chen                                    # REQUIRED
  avatar: https://example.com/alex.jpg               # OPTIONAL
---

Body text in standard Markdown (GitHub flavored).
` + "```" + `

## Rules

1. **YAML frontmatter is mandatory.** The ` + "`---`" + ` fences must be the first thing in the file.
2. **Slugs** are lowercase kebab-case (` + "`a-z`, `0-9`" + ` and single hyphens) and unique across posts.
3. **category** and every entry of **tags** must name an existing slug. Unknown slugs make the
   whole vault fail to load.
4. **Post counts** in categories.yaml and tags.yaml are ignored; they are recomputed from posts.
5. **Ordering:** posts are listed in file path order. Prefix file names to control it.
6. **Encoding** is UTF-8. Raw HTML in the body is sanitized when rendered.

## categories.yaml / tags.yaml

` + "```" + `yaml
- slug: technology
  name: Technology
  description: Latest in tech and programming   # categories only
` + "```" + `

## site.yaml

` + "```" + `yaml
blog_title: MyBlog
blog_description: Thoughts on technology, travel and life
author_name: Alex Chen
author_avatar: https://example.com/alex.jpg
social_links:
  twitter: https://twitter.com/alexchen
  github: https://github.com/alexchen
  email: alex@example.com
` + "```" + `

Use the ` + "`validate_post`" + ` tool to check a draft before adding it to ` + "`posts/`" + `.
`

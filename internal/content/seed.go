package content

import (
	"time"

	"github.com/starford/folio/internal/models"
)

const fence = "```"

// Seed builds the built-in sample catalog used when no vault is configured.
func Seed() (*Catalog, error) {
	categories := []models.Category{
		{ID: "1", Name: "Technology", Slug: "technology", Description: "Latest tech trends and tutorials"},
		{ID: "2", Name: "Lifestyle", Slug: "lifestyle", Description: "Personal experiences and thoughts"},
		{ID: "3", Name: "Travel", Slug: "travel", Description: "Adventures around the world"},
		{ID: "4", Name: "Food", Slug: "food", Description: "Culinary discoveries"},
		{ID: "5", Name: "Photography", Slug: "photography", Description: "Capturing beautiful moments"},
	}

	tags := []models.Tag{
		{ID: "1", Name: "React", Slug: "react"},
		{ID: "2", Name: "TypeScript", Slug: "typescript"},
		{ID: "3", Name: "JavaScript", Slug: "javascript"},
		{ID: "4", Name: "CSS", Slug: "css"},
		{ID: "5", Name: "Node.js", Slug: "nodejs"},
		{ID: "6", Name: "AI", Slug: "ai"},
		{ID: "7", Name: "Machine Learning", Slug: "ml"},
		{ID: "8", Name: "Web Development", Slug: "webdev"},
	}

	admin := models.Author{Name: "Admin"}

	posts := []models.Post{
		{
			ID:    "1",
			Title: "Getting Started with React 18 and TypeScript",
			Content: `# Getting Started with React 18 and TypeScript

React 18 brings exciting new features that make building user interfaces more efficient and enjoyable. Combined with TypeScript, you get the power of static typing that helps catch errors early in development.

## Key Features of React 18

### Concurrent Features
React 18 introduces concurrent features that allow React to interrupt, pause, resume, or abandon a render. This means your app can stay responsive even during large screen updates.

### Automatic Batching
All updates are now automatically batched, which means fewer re-renders and better performance.

### Suspense Improvements
Enhanced Suspense support for data fetching makes loading states much easier to manage.

## Setting Up TypeScript

` + fence + `bash
npx create-react-app my-app --template typescript
` + fence + `

## Best Practices

1. Use strict mode
2. Define proper interfaces
3. Leverage React hooks with TypeScript
4. Use proper error boundaries

This combination creates a robust development experience that scales well for large applications.`,
			Excerpt:     "Learn how to combine React 18 with TypeScript for a powerful development experience. Explore new features like concurrent rendering and automatic batching.",
			Slug:        "react-18-typescript-guide",
			PublishedAt: time.Date(2024, 11, 20, 10, 0, 0, 0, time.UTC),
			Category:    models.CategoryRef{Slug: "technology"},
			Tags:        []models.TagRef{{Slug: "react"}, {Slug: "typescript"}, {Slug: "webdev"}},
			Author:      models.Author{Name: "Admin", Avatar: "/avatar.jpg"},
		},
		{
			ID:    "2",
			Title: "Modern CSS Techniques for Beautiful Animations",
			Content: `# Modern CSS Techniques for Beautiful Animations

CSS has evolved tremendously, and modern browsers support amazing animation capabilities that can make your websites come alive.

## CSS Grid and Flexbox
Master these layout systems for responsive designs.

## CSS Custom Properties
Use CSS variables for dynamic theming.

## Animation Performance
Learn about transform and opacity for smooth animations.`,
			Excerpt:     "Discover modern CSS techniques including Grid, Flexbox, custom properties, and performance-optimized animations.",
			Slug:        "modern-css-animations",
			PublishedAt: time.Date(2024, 11, 18, 14, 30, 0, 0, time.UTC),
			Category:    models.CategoryRef{Slug: "technology"},
			Tags:        []models.TagRef{{Slug: "css"}, {Slug: "webdev"}},
			Author:      admin,
		},
		{
			ID:    "3",
			Title: "My Journey Through Tokyo: A Developer's Perspective",
			Content: `# My Journey Through Tokyo: A Developer's Perspective

Tokyo is not just a city; it's a living, breathing testament to how technology and tradition can coexist beautifully.

## Tech Districts
Exploring Akihabara and Shibuya from a developer's eye.

## Work Culture
Understanding Japanese work culture in tech companies.

## Innovation Everywhere
From vending machines to train systems, technology is seamlessly integrated.`,
			Excerpt:     "Experience Tokyo through the eyes of a developer. From tech districts to innovative solutions, discover how technology shapes daily life.",
			Slug:        "tokyo-developer-journey",
			PublishedAt: time.Date(2024, 11, 15, 9, 15, 0, 0, time.UTC),
			Category:    models.CategoryRef{Slug: "travel"},
			Tags:        []models.TagRef{{Slug: "ai"}},
			Author:      admin,
		},
		{
			ID:    "4",
			Title: "Building AI-Powered Applications with Modern JavaScript",
			Content: `# Building AI-Powered Applications with Modern JavaScript

Artificial Intelligence is no longer limited to Python and R. JavaScript ecosystem has evolved to support powerful AI applications.

## TensorFlow.js
Run machine learning models directly in the browser.

## Natural Language Processing
Implement chatbots and text analysis.

## Computer Vision
Process images and videos in real-time.`,
			Excerpt:     "Explore how to build AI-powered applications using JavaScript and modern web technologies.",
			Slug:        "ai-javascript-applications",
			PublishedAt: time.Date(2024, 11, 12, 16, 45, 0, 0, time.UTC),
			Category:    models.CategoryRef{Slug: "technology"},
			Tags:        []models.TagRef{{Slug: "javascript"}, {Slug: "ai"}, {Slug: "ml"}},
			Author:      admin,
		},
		{
			ID:    "5",
			Title: "Minimalist Living: Less is More",
			Content: `# Minimalist Living: Less is More

In our digital age, minimalism isn't just about physical possessions; it's about digital minimalism too.

## Digital Declutter
Organize your digital life for better productivity.

## Essential Tools Only
Choose quality over quantity in your development tools.

## Mindful Consumption
Be intentional about what you consume, both physically and digitally.`,
			Excerpt:     "Discover the principles of minimalist living and how it can improve your life as a developer.",
			Slug:        "minimalist-living-developer",
			PublishedAt: time.Date(2024, 11, 10, 11, 20, 0, 0, time.UTC),
			Category:    models.CategoryRef{Slug: "lifestyle"},
			Author:      admin,
		},
		{
			ID:    "6",
			Title: "Street Food Adventures in Bangkok",
			Content: `# Street Food Adventures in Bangkok

Bangkok's street food scene is legendary, offering an incredible variety of flavors and experiences.

## Must-Try Dishes
From Pad Thai to Mango Sticky Rice.

## Best Locations
Chatuchak Weekend Market and floating markets.

## Food Safety Tips
How to enjoy street food safely.`,
			Excerpt:     "Join me on a culinary adventure through Bangkok's vibrant street food scene.",
			Slug:        "bangkok-street-food",
			PublishedAt: time.Date(2024, 11, 8, 13, 0, 0, 0, time.UTC),
			Category:    models.CategoryRef{Slug: "food"},
			Author:      admin,
		},
	}

	site := models.SiteInfo{
		BlogTitle:       "MyBlog",
		BlogDescription: "A modern blog about technology, travel, and life experiences. Sharing knowledge and stories from a developer's perspective.",
		AuthorName:      "John Doe",
		AuthorAvatar:    "/avatar.jpg",
		SocialLinks: models.SocialLinks{
			Twitter:  "https://twitter.com/johndoe",
			GitHub:   "https://github.com/johndoe",
			LinkedIn: "https://linkedin.com/in/johndoe",
			Email:    "john@myblog.com",
		},
	}

	return NewCatalog(site, categories, tags, posts)
}

// MustSeed is Seed for callers that cannot handle an error; the sample data
// is fixed, so a failure here is a programming error.
func MustSeed() *Catalog {
	c, err := Seed()
	if err != nil {
		panic(err)
	}
	return c
}

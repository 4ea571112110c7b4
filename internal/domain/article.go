package domain

import (
	"strings"
	"time"
)

// RawArticle is an article row as stored in the remote dataset,
// joined with its source.
type RawArticle struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	ImageURL    string    `json:"image_url"`
	AISummary   string    `json:"ai_summary"`
	Category    string    `json:"category"`
	PublishedAt time.Time `json:"published_at"`
	IsBreaking  bool      `json:"is_breaking"`
	SourceName  string    `json:"source_name"`
}

// RawText returns the best available body text for an article,
// preferring the AI summary, then the description, then full content.
func (a RawArticle) RawText() string {
	switch {
	case a.AISummary != "":
		return a.AISummary
	case a.Description != "":
		return a.Description
	default:
		return a.Content
	}
}

// FeedArticle is the feed-facing article shape consumed by the view layer.
// It is recomputed wholesale on every fetch and never mutated in place.
type FeedArticle struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	TimeAgo  string `json:"time_ago"`
	Label    string `json:"label"`
	Image    string `json:"image"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
	Source   string `json:"source"`
	Link     string `json:"link"`
}

// MockIDPrefix marks articles coming from the bundled fallback dataset.
// Remote operations short-circuit for these IDs.
const MockIDPrefix = "mock-"

// IsMockArticleID reports whether an article ID belongs to the fallback dataset.
func IsMockArticleID(id string) bool {
	return strings.HasPrefix(id, MockIDPrefix)
}

// ArticlePage identifies one page of the remote dataset.
type ArticlePage struct {
	Page     int
	PageSize int
}

// Offset returns the row offset of the first article on the page.
func (p ArticlePage) Offset() int {
	return p.Page * p.PageSize
}

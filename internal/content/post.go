// Package content discovers markdown posts on disk, loads them into Post
// records and groups them into the category tree used for navigation.
package content

import "time"

// Post is a fully rendered blog post. Posts are rebuilt from disk on every
// request and never mutated after construction.
type Post struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Author      string   `json:"author,omitempty"`
	Content     string   `json:"content"`

	// PublishedAt is Date parsed with ParseDate; zero when unparseable.
	PublishedAt time.Time `json:"-"`
}

// HasDate reports whether Date parsed.
func (p *Post) HasDate() bool {
	return p != nil && !p.PublishedAt.IsZero()
}

// Renderer converts a markdown body to HTML.
type Renderer interface {
	Render(body []byte) (string, error)
}

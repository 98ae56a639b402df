// Package entity defines the core domain entities and errors shared by every command.
// It contains the Article record that all feed pipelines reduce to, along with
// the structured error taxonomy surfaced to the GUI layer.
package entity

// PlaceholderTitle is used when a source provides no title for an entry.
const PlaceholderTitle = "No title"

// Article represents a single normalized article shown by the mascot.
// Every field is always present; absence is represented by the empty string.
type Article struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Link         string `json:"link"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// NewArticle builds an Article, substituting PlaceholderTitle for an empty title.
func NewArticle(title, description, link, thumbnailURL string) Article {
	if title == "" {
		title = PlaceholderTitle
	}
	return Article{
		Title:        title,
		Description:  description,
		Link:         link,
		ThumbnailURL: thumbnailURL,
	}
}

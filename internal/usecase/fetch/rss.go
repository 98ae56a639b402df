package fetch

import (
	"bytes"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"mascot-backend/internal/domain/entity"
)

// NormalizeRSS parses raw syndication feed bytes and reduces the first
// MaxRSSArticles entries to Articles, in the order the parser yields them.
// Any parse failure is reported as entity.ErrParseFailed.
func NormalizeRSS(raw []byte) ([]entity.Article, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, parseError("parse feed", err)
	}

	items := feed.Items
	if len(items) > MaxRSSArticles {
		items = items[:MaxRSSArticles]
	}

	articles := make([]entity.Article, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		articles = append(articles, normalizeItem(it))
	}
	return articles, nil
}

func normalizeItem(it *gofeed.Item) entity.Article {
	// Summary wins over full content even when shorter.
	description := it.Description
	if description == "" {
		description = it.Content
	}

	return entity.NewArticle(it.Title, description, firstLink(it), firstThumbnail(it))
}

func firstLink(it *gofeed.Item) string {
	if len(it.Links) > 0 && it.Links[0] != "" {
		return it.Links[0]
	}
	return it.Link
}

// firstThumbnail scans Media RSS attachments: media:group elements, then
// media:content elements, then item-level media:thumbnail.
func firstThumbnail(it *gofeed.Item) string {
	media, ok := it.Extensions["media"]
	if !ok {
		return ""
	}

	for _, group := range media["group"] {
		if u := thumbnailIn(group.Children); u != "" {
			return u
		}
	}
	for _, content := range media["content"] {
		if u := thumbnailURL(content.Children["thumbnail"]); u != "" {
			return u
		}
	}
	return thumbnailURL(media["thumbnail"])
}

// thumbnailIn returns the first thumbnail listed directly under an attachment,
// falling back to thumbnails of its nested media:content elements.
func thumbnailIn(children map[string][]ext.Extension) string {
	if u := thumbnailURL(children["thumbnail"]); u != "" {
		return u
	}
	for _, content := range children["content"] {
		if u := thumbnailURL(content.Children["thumbnail"]); u != "" {
			return u
		}
	}
	return ""
}

func thumbnailURL(thumbs []ext.Extension) string {
	for _, th := range thumbs {
		if u := th.Attrs["url"]; u != "" {
			return u
		}
	}
	return ""
}

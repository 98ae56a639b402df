// Package fetch provides the article pipelines that feed the mascot's speech bubble.
// It normalizes RSS/Atom feeds, Qiita API responses and Zenn user feeds into a
// single uniform entity.Article record.
package fetch

import "mascot-backend/internal/domain/entity"

// Per-source caps on the number of articles returned.
const (
	MaxRSSArticles   = 30
	MaxQiitaArticles = 20

	// qiitaDescriptionLimit is the rune count kept from a Qiita body.
	qiitaDescriptionLimit = 100
	truncationSuffix      = "..."
)

func parseError(op string, err error) error {
	return entity.NewError(entity.ErrParseFailed, op, err)
}

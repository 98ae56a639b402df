package fetch

import (
	"errors"

	"github.com/tidwall/gjson"

	"mascot-backend/internal/domain/entity"
	"mascot-backend/internal/utils/text"
)

var errInvalidJSON = errors.New("invalid JSON")

// NormalizeQiita reduces a Qiita API item list to at most MaxQiitaArticles Articles.
//
// Malformed JSON is an entity.ErrParseFailed error. Well-formed JSON whose top
// level is not an array yields an empty result and no error.
func NormalizeQiita(raw []byte) ([]entity.Article, error) {
	if !gjson.ValidBytes(raw) {
		return nil, parseError("parse qiita response", errInvalidJSON)
	}

	articles := make([]entity.Article, 0, MaxQiitaArticles)
	root := gjson.ParseBytes(raw)
	if !root.IsArray() {
		return articles, nil
	}

	root.ForEach(func(_, item gjson.Result) bool {
		articles = append(articles, entity.Article{
			Title:       stringField(item, "title", entity.PlaceholderTitle),
			Description: text.Truncate(stringField(item, "body", ""), qiitaDescriptionLimit, truncationSuffix),
			Link:        stringField(item, "url", ""),
		})
		return len(articles) < MaxQiitaArticles
	})
	return articles, nil
}

// stringField returns the named member when it is a JSON string, def otherwise.
func stringField(item gjson.Result, name, def string) string {
	if !item.IsObject() {
		return def
	}
	v := item.Get(name)
	if v.Type != gjson.String {
		return def
	}
	return v.Str
}

package services

import (
	"strings"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
)

// ArticleMarker opens every page that starts a new article in the
// gdpr-text.com rendering of the regulation.
const ArticleMarker = "EN\nArticle"

// IsArticleStart reports whether page text begins with the article marker.
// The match is an exact prefix. Leading whitespace defeats it.
func IsArticleStart(text string) bool {
	return strings.HasPrefix(text, ArticleMarker)
}

// SegmentPages labels every page with a running article number.
// The counter increments on each marker page before the page is labelled,
// so pages ahead of the first marker keep domain.NoArticle. The input is
// not modified.
func SegmentPages(pages []domain.Page) []domain.Page {
	out := make([]domain.Page, len(pages))
	article := domain.NoArticle
	for i, p := range pages {
		if IsArticleStart(p.Content) {
			article++
		}
		p.ArticleNumber = article
		out[i] = p
	}
	return out
}

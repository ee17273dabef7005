package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
)

// CleanPages applies the cleaner to every page's content.
// Labels and order are preserved.
func CleanPages(pages []domain.Page, cleaner driven.PageCleaner) []domain.Page {
	out := make([]domain.Page, len(pages))
	for i, p := range pages {
		p.Content = cleaner.Clean(p.Content)
		out[i] = p
	}
	return out
}

// AssembleArticles returns one document per article 1..21 in order.
// Each document joins the content of its pages with "\n" in page order.
// Articles with no pages get empty content. Pages labelled
// domain.NoArticle, or beyond the last article, are dropped.
func AssembleArticles(pages []domain.Page, summaries domain.ArticleSummaries) ([]domain.ArticleDocument, error) {
	byArticle := make(map[int][]string)
	for _, p := range pages {
		byArticle[p.ArticleNumber] = append(byArticle[p.ArticleNumber], p.Content)
	}

	docs := make([]domain.ArticleDocument, 0, domain.LastArticle)
	for _, n := range domain.ArticleNumbers() {
		summary, err := summaries.Lookup(n)
		if err != nil {
			return nil, fmt.Errorf("assemble article %d: %w", n, err)
		}
		docs = append(docs, domain.ArticleDocument{
			ArticleNumber: n,
			Content:       strings.Join(byArticle[n], "\n"),
			Summary:       summary,
		})
	}
	return docs, nil
}

// DroppedPages counts pages that belong to no assembled article.
func DroppedPages(pages []domain.Page) int {
	n := 0
	for _, p := range pages {
		if p.ArticleNumber < domain.FirstArticle || p.ArticleNumber > domain.LastArticle {
			n++
		}
	}
	return n
}

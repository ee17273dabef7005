package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gdpr-rag/internal/adapters/driven/config/file"
	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
	"github.com/custodia-labs/gdpr-rag/internal/normalisers/boilerplate"
)

func summaries(t *testing.T) domain.ArticleSummaries {
	t.Helper()
	s, err := file.NewSummaryTable("").Summaries()
	require.NoError(t, err)
	return s
}

func TestCleanPages(t *testing.T) {
	pages := []domain.Page{
		{Index: 0, ArticleNumber: 1, Content: "www.gdpr-text.com/en\nEN\nArticle 1\nbody\npage 1 / 88"},
		{Index: 1, ArticleNumber: 1, Content: "body two\nGDPR training, consulting and DPO outsourcing"},
	}

	cleaned := CleanPages(pages, boilerplate.New(boilerplate.GDPRText()))
	require.Len(t, cleaned, 2)
	assert.Equal(t, "EN\nArticle 1\nbody", cleaned[0].Content)
	assert.Equal(t, "body two", cleaned[1].Content)
	assert.Equal(t, 1, cleaned[1].ArticleNumber)
	assert.Contains(t, pages[0].Content, "www.gdpr-text.com/en")
}

func TestAssembleArticles_AlwaysTwentyOne(t *testing.T) {
	pages := []domain.Page{
		{ArticleNumber: 0, Content: "cover"},
		{ArticleNumber: 1, Content: "one a"},
		{ArticleNumber: 1, Content: "one b"},
		{ArticleNumber: 3, Content: "three"},
		{ArticleNumber: 22, Content: "beyond"},
	}
	table := summaries(t)

	docs, err := AssembleArticles(pages, table)
	require.NoError(t, err)
	require.Len(t, docs, 21)

	for i, d := range docs {
		assert.Equal(t, i+1, d.ArticleNumber)
		want, err := table.Lookup(i + 1)
		require.NoError(t, err)
		assert.Equal(t, want, d.Summary)
	}
	assert.Equal(t, "one a\none b", docs[0].Content)
	assert.Empty(t, docs[1].Content)
	assert.Equal(t, "three", docs[2].Content)

	for _, d := range docs {
		assert.NotContains(t, d.Content, "cover")
		assert.NotContains(t, d.Content, "beyond")
	}
	assert.Equal(t, 2, DroppedPages(pages))
}

func TestAssembleArticles_MissingSummary(t *testing.T) {
	table := domain.ArticleSummaries{}
	for n := 1; n <= 20; n++ {
		table[n] = strings.Repeat("s", n)
	}

	_, err := AssembleArticles(nil, table)
	assert.ErrorIs(t, err, domain.ErrMissingSummary)
}

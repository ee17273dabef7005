package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
)

func labels(pages []domain.Page) []int {
	out := make([]int, len(pages))
	for i, p := range pages {
		out[i] = p.ArticleNumber
	}
	return out
}

func TestSegmentPages(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  []int
	}{
		{
			name:  "single article spans pages",
			texts: []string{"EN\nArticle 1\nSubject-matter", "continued", "more"},
			want:  []int{1, 1, 1},
		},
		{
			name:  "cover pages before first marker",
			texts: []string{"GDPR cover", "Table of contents", "EN\nArticle 1", "EN\nArticle 2"},
			want:  []int{0, 0, 1, 2},
		},
		{
			name:  "marker must be a prefix",
			texts: []string{"EN\nArticle 1", "see EN\nArticle 2", " EN\nArticle 3", "EN Article 4"},
			want:  []int{1, 1, 1, 1},
		},
		{
			name:  "consecutive markers",
			texts: []string{"EN\nArticle 1", "EN\nArticle 2", "EN\nArticle 3", "tail"},
			want:  []int{1, 2, 3, 3},
		},
		{
			name: "no pages",
			want: []int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, labels(SegmentPages(pagesOf(tt.texts...))))
		})
	}
}

func TestSegmentPages_CounterNeverDecreases(t *testing.T) {
	texts := []string{"intro"}
	for i := 0; i < 25; i++ {
		texts = append(texts, "EN\nArticle", "body", "body")
	}

	got := labels(SegmentPages(pagesOf(texts...)))
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i], got[i-1])
	}
	assert.Equal(t, 25, got[len(got)-1])
}

func TestSegmentPages_DoesNotModifyInput(t *testing.T) {
	pages := pagesOf("EN\nArticle 1")
	_ = SegmentPages(pages)
	assert.Equal(t, domain.NoArticle, pages[0].ArticleNumber)
}

func TestIsArticleStart(t *testing.T) {
	assert.True(t, IsArticleStart("EN\nArticle 12\nTransparent information"))
	assert.False(t, IsArticleStart("EN\r\nArticle 12"))
	assert.False(t, IsArticleStart(""))
}

package domain

import (
	"fmt"
	"sort"
)

// The assembled article range is fixed and not derived from the PDF.
const (
	// FirstArticle is the lowest article number assembled.
	FirstArticle = 1

	// LastArticle is the highest article number assembled.
	LastArticle = 21
)

// ArticleNumbers returns FirstArticle..LastArticle in order.
func ArticleNumbers() []int {
	nums := make([]int, 0, LastArticle-FirstArticle+1)
	for n := FirstArticle; n <= LastArticle; n++ {
		nums = append(nums, n)
	}
	return nums
}

// ArticleDocument is the concatenated text of one article.
type ArticleDocument struct {
	// ArticleNumber is in FirstArticle..LastArticle.
	ArticleNumber int

	// Content is the newline join of the article's cleaned pages.
	// Empty when the article was never detected in the PDF.
	Content string

	// Summary is the human-written description of the article.
	Summary string
}

// ArticleSummaries maps an article number to its summary.
type ArticleSummaries map[int]string

// Validate checks the table holds exactly FirstArticle..LastArticle.
func (s ArticleSummaries) Validate() error {
	for _, n := range ArticleNumbers() {
		if _, ok := s[n]; !ok {
			return fmt.Errorf("%w: article %d: %w", ErrIncompleteSummaries, n, ErrMissingSummary)
		}
	}
	for n := range s {
		if n < FirstArticle || n > LastArticle {
			return fmt.Errorf("%w: unexpected article %d", ErrIncompleteSummaries, n)
		}
	}
	return nil
}

// Lookup returns the summary for an article.
func (s ArticleSummaries) Lookup(article int) (string, error) {
	summary, ok := s[article]
	if !ok {
		return "", fmt.Errorf("article %d: %w", article, ErrMissingSummary)
	}
	return summary, nil
}

// Numbers returns the article numbers present in ascending order.
func (s ArticleSummaries) Numbers() []int {
	nums := make([]int, 0, len(s))
	for n := range s {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

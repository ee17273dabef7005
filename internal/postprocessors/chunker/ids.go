package chunker

import (
	"fmt"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
)

// idAccumulator carries chunk id state from one chunk to the next.
type idAccumulator struct {
	lastArticle int
	nextIndex   int
	started     bool
}

// step returns the index for a chunk of article and the accumulator for
// the following chunk.
func (a idAccumulator) step(article int) (int, idAccumulator) {
	index := 0
	if a.started && article == a.lastArticle {
		index = a.nextIndex
	}
	return index, idAccumulator{lastArticle: article, nextIndex: index + 1, started: true}
}

// CheckContiguous returns domain.ErrNonContiguousChunks when any article's
// chunks are interrupted by another article's chunks.
func CheckContiguous(chunks []domain.Chunk) error {
	closed := make(map[int]bool)
	for i, c := range chunks {
		if i > 0 && chunks[i-1].ArticleNumber != c.ArticleNumber {
			closed[chunks[i-1].ArticleNumber] = true
		}
		if closed[c.ArticleNumber] {
			return fmt.Errorf("%w: article %d resumes at position %d", domain.ErrNonContiguousChunks, c.ArticleNumber, i)
		}
	}
	return nil
}

// AssignIDs gives every chunk the id "{article}:{index}" and its position
// in the sequence. The index restarts at 0 whenever the article number
// differs from the previous chunk's. The input is not modified.
func AssignIDs(chunks []domain.Chunk) ([]domain.Chunk, error) {
	if err := CheckContiguous(chunks); err != nil {
		return nil, err
	}

	out := make([]domain.Chunk, len(chunks))
	acc := idAccumulator{}
	for i, c := range chunks {
		var index int
		index, acc = acc.step(c.ArticleNumber)
		c.ID = domain.ChunkID(c.ArticleNumber, index)
		c.Position = i
		out[i] = c
	}
	return out, nil
}

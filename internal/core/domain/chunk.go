package domain

import "fmt"

// Chunk is a bounded window of an article's text and the unit of retrieval.
type Chunk struct {
	// ID is "{article}:{index}". Empty until ids are assigned.
	ID string

	// ArticleNumber is inherited from the source article.
	ArticleNumber int

	// Summary is inherited from the source article.
	Summary string

	// Content is the chunk text.
	Content string

	// Position is the chunk's ordinal within the full emitted sequence.
	Position int
}

// ChunkID formats the composite identifier of a chunk.
func ChunkID(article, index int) string {
	return fmt.Sprintf("%d:%d", article, index)
}

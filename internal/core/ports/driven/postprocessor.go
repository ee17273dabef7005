package driven

import (
	"context"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
)

// PostProcessor processes article content to produce chunks.
// PostProcessors are chained in a pipeline.
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process takes an article and returns chunks.
	// A processor that creates chunks (e.g. chunker) receives nil.
	// A processor that refines chunks receives and returns them.
	Process(ctx context.Context, doc *domain.ArticleDocument, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs the article through all processors in order.
	Process(ctx context.Context, doc *domain.ArticleDocument) ([]domain.Chunk, error)

	// ProcessAll chunks every article in order and assigns ids.
	// Returns domain.ErrNonContiguousChunks if articles interleave.
	ProcessAll(ctx context.Context, docs []domain.ArticleDocument) ([]domain.Chunk, error)
}

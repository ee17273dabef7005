package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates a query with no text.
	ErrEmptyQuery = errors.New("empty query")

	// ErrUnsupportedProvider indicates an unknown AI provider.
	ErrUnsupportedProvider = errors.New("unsupported provider")

	// ErrLLMUnavailable indicates the LLM service is not configured or unreachable.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured or unreachable.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// Pipeline Errors.

	// ErrPDFLoad indicates the source PDF could not be opened or read.
	ErrPDFLoad = errors.New("pdf load failed")

	// ErrMissingSummary indicates the summary table has no entry for an article.
	ErrMissingSummary = errors.New("missing article summary")

	// ErrIncompleteSummaries indicates the summary table does not cover exactly
	// the expected article range.
	ErrIncompleteSummaries = errors.New("summary table must cover articles 1 to 21")

	// ErrNonContiguousChunks indicates chunks of one article are interleaved
	// with another article, so positional ids cannot be assigned.
	ErrNonContiguousChunks = errors.New("chunks are not article-contiguous")

	// Index Errors.

	// ErrIndexNotFound indicates no persisted index exists at the configured path.
	ErrIndexNotFound = errors.New("index not found")

	// ErrIndexCorrupt indicates a persisted index could not be decoded.
	ErrIndexCorrupt = errors.New("index corrupt")

	// ErrDimensionMismatch indicates a vector does not match the index dimensions.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
)

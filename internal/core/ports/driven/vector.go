package driven

import (
	"context"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
)

// VectorIndex holds chunk vectors in memory and answers similarity queries.
type VectorIndex interface {
	// Add inserts an entry. All entries must share one dimension.
	Add(ctx context.Context, entry domain.IndexEntry) error

	// Search returns the k entries most similar to query, best first.
	// No score threshold is applied and no results are merged.
	Search(ctx context.Context, query []float32, k int) ([]domain.RetrievedChunk, error)

	// Entries returns every stored entry in insertion order.
	Entries() []domain.IndexEntry

	// Len returns the number of stored entries.
	Len() int

	// Dimensions returns the vector length, or 0 when empty.
	Dimensions() int
}

// IndexStore persists a vector index to a named local directory.
// The directory is written and read wholesale. There is no partial update.
type IndexStore interface {
	// Exists reports whether a complete index is present.
	Exists(ctx context.Context) (bool, error)

	// Clear removes the index directory and everything in it.
	Clear(ctx context.Context) error

	// Save writes the manifest and all entries, replacing prior contents.
	Save(ctx context.Context, manifest domain.IndexManifest, entries []domain.IndexEntry) error

	// Load reads the manifest and all entries in insertion order.
	// Returns domain.ErrIndexNotFound when nothing is persisted.
	Load(ctx context.Context) (*domain.IndexManifest, []domain.IndexEntry, error)

	// Dir returns the index directory.
	Dir() string
}

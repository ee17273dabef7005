// Package memory provides in-memory implementations of the driven ports.
package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
)

// Ensure VectorIndex implements the interface.
var _ driven.VectorIndex = (*VectorIndex)(nil)

// VectorIndex is an exact nearest-neighbour index scored by cosine
// similarity. Every search scans all entries.
type VectorIndex struct {
	mu         sync.RWMutex
	entries    []domain.IndexEntry
	norms      []float64
	dimensions int
}

// NewVectorIndex creates an empty index.
func NewVectorIndex() *VectorIndex {
	return &VectorIndex{}
}

// FromEntries builds an index holding entries in order.
func FromEntries(ctx context.Context, entries []domain.IndexEntry) (*VectorIndex, error) {
	idx := NewVectorIndex()
	for _, e := range entries {
		if err := idx.Add(ctx, e); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

// Add inserts an entry. The first entry fixes the index dimensions.
func (v *VectorIndex) Add(_ context.Context, entry domain.IndexEntry) error {
	if len(entry.Vector) == 0 {
		return fmt.Errorf("chunk %s: %w: empty vector", entry.Chunk.ID, domain.ErrInvalidInput)
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.dimensions == 0 {
		v.dimensions = len(entry.Vector)
	} else if len(entry.Vector) != v.dimensions {
		return fmt.Errorf("chunk %s: %w: got %d, want %d",
			entry.Chunk.ID, domain.ErrDimensionMismatch, len(entry.Vector), v.dimensions)
	}

	v.entries = append(v.entries, entry)
	v.norms = append(v.norms, norm(entry.Vector))
	return nil
}

// Search returns the k entries most similar to query, best first.
// Equal scores keep insertion order.
func (v *VectorIndex) Search(ctx context.Context, query []float32, k int) ([]domain.RetrievedChunk, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if k <= 0 || len(v.entries) == 0 {
		return []domain.RetrievedChunk{}, nil
	}
	if len(query) != v.dimensions {
		return nil, fmt.Errorf("query: %w: got %d, want %d", domain.ErrDimensionMismatch, len(query), v.dimensions)
	}

	qn := norm(query)
	hits := make([]domain.RetrievedChunk, len(v.entries))
	for i, e := range v.entries {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		hits[i] = domain.RetrievedChunk{
			Chunk: e.Chunk,
			Score: cosine(query, e.Vector, qn, v.norms[i]),
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Entries returns a copy of every stored entry in insertion order.
func (v *VectorIndex) Entries() []domain.IndexEntry {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]domain.IndexEntry, len(v.entries))
	copy(out, v.entries)
	return out
}

// Len returns the number of stored entries.
func (v *VectorIndex) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.entries)
}

// Dimensions returns the vector length, or 0 when empty.
func (v *VectorIndex) Dimensions() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.dimensions
}

func norm(vec []float32) float64 {
	var sum float64
	for _, x := range vec {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

// cosine returns 0 when either vector has zero length.
func cosine(a, b []float32, na, nb float64) float64 {
	if na == 0 || nb == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return dot / (na * nb)
}

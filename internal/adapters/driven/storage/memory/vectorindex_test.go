package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
)

func entry(id string, vec ...float32) domain.IndexEntry {
	return domain.IndexEntry{Chunk: domain.Chunk{ID: id}, Vector: vec}
}

func TestVectorIndex_SearchOrdersByCosine(t *testing.T) {
	ctx := context.Background()
	idx, err := FromEntries(ctx, []domain.IndexEntry{
		entry("1:0", 1, 0),
		entry("1:1", 0, 1),
		entry("2:0", 1, 1),
		entry("3:0", -1, 0),
	})
	require.NoError(t, err)

	hits, err := idx.Search(ctx, []float32{2, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)
	assert.Equal(t, []string{"1:0", "2:0", "1:1"}, domain.SourceIDs(hits))
	assert.InDelta(t, 1.0, hits[0].Score, 1e-9)
	assert.InDelta(t, 0.7071, hits[1].Score, 1e-4)
}

func TestVectorIndex_SearchKLargerThanIndex(t *testing.T) {
	ctx := context.Background()
	idx, err := FromEntries(ctx, []domain.IndexEntry{entry("1:0", 1, 0), entry("1:1", 0, 1)})
	require.NoError(t, err)

	hits, err := idx.Search(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

func TestVectorIndex_TiesKeepInsertionOrder(t *testing.T) {
	ctx := context.Background()
	idx, err := FromEntries(ctx, []domain.IndexEntry{entry("5:0", 1, 0), entry("5:1", 1, 0), entry("5:2", 2, 0)})
	require.NoError(t, err)

	hits, err := idx.Search(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"5:0", "5:1", "5:2"}, domain.SourceIDs(hits))
}

func TestVectorIndex_EmptyAndZeroK(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex()

	hits, err := idx.Search(ctx, []float32{1}, 5)
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Zero(t, idx.Dimensions())

	require.NoError(t, idx.Add(ctx, entry("1:0", 1)))
	hits, err = idx.Search(ctx, []float32{1}, 0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestVectorIndex_DimensionMismatch(t *testing.T) {
	ctx := context.Background()
	idx := NewVectorIndex()
	require.NoError(t, idx.Add(ctx, entry("1:0", 1, 2, 3)))

	assert.ErrorIs(t, idx.Add(ctx, entry("1:1", 1, 2)), domain.ErrDimensionMismatch)
	assert.ErrorIs(t, idx.Add(ctx, entry("1:2")), domain.ErrInvalidInput)

	_, err := idx.Search(ctx, []float32{1}, 1)
	assert.ErrorIs(t, err, domain.ErrDimensionMismatch)
	assert.Equal(t, 1, idx.Len())
}

func TestVectorIndex_ZeroVectorScoresZero(t *testing.T) {
	ctx := context.Background()
	idx, err := FromEntries(ctx, []domain.IndexEntry{entry("1:0", 0, 0), entry("1:1", 0, 1)})
	require.NoError(t, err)

	hits, err := idx.Search(ctx, []float32{0, 1}, 2)
	require.NoError(t, err)
	assert.Equal(t, "1:1", hits[0].Chunk.ID)
	assert.Zero(t, hits[1].Score)
}

func TestVectorIndex_EntriesIsACopy(t *testing.T) {
	ctx := context.Background()
	idx, err := FromEntries(ctx, []domain.IndexEntry{entry("1:0", 1)})
	require.NoError(t, err)

	got := idx.Entries()
	got[0].Chunk.ID = "changed"
	assert.Equal(t, "1:0", idx.Entries()[0].Chunk.ID)
}

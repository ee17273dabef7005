package postprocessors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
	"github.com/custodia-labs/gdpr-rag/internal/postprocessors/chunker"
)

// mockProcessor is a test processor that returns predefined chunks.
type mockProcessor struct {
	name   string
	chunks []domain.Chunk
	err    error
	seen   []domain.Chunk
}

func (m *mockProcessor) Name() string {
	return m.name
}

func (m *mockProcessor) Process(_ context.Context, _ *domain.ArticleDocument, chunks []domain.Chunk) ([]domain.Chunk, error) {
	m.seen = chunks
	if m.err != nil {
		return nil, m.err
	}
	if m.chunks != nil {
		return m.chunks, nil
	}
	return chunks, nil
}

func TestNewPipeline(t *testing.T) {
	p := NewPipeline()
	assert.Equal(t, 0, p.Len())

	p.Add(&mockProcessor{name: "a"})
	p.Add(&mockProcessor{name: "b"})
	assert.Equal(t, 2, p.Len())
	assert.Equal(t, []string{"a", "b"}, p.Names())
}

func TestPipeline_Process_NilArticle(t *testing.T) {
	_, err := NewPipeline().Process(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPipeline_Process_EmptyPipeline(t *testing.T) {
	chunks, err := NewPipeline().Process(context.Background(), &domain.ArticleDocument{Content: "x"})
	require.NoError(t, err)
	assert.Nil(t, chunks)
}

func TestPipeline_Process_ChainsProcessors(t *testing.T) {
	first := &mockProcessor{name: "first", chunks: []domain.Chunk{{Content: "a"}, {Content: "b"}}}
	second := &mockProcessor{name: "second"}

	chunks, err := NewPipeline(first, second).Process(context.Background(), &domain.ArticleDocument{})
	require.NoError(t, err)

	assert.Nil(t, first.seen)
	assert.Equal(t, first.chunks, second.seen)
	assert.Equal(t, first.chunks, chunks)
}

func TestPipeline_Process_ProcessorError(t *testing.T) {
	boom := errors.New("boom")
	p := NewPipeline(&mockProcessor{name: "broken", err: boom})

	_, err := p.Process(context.Background(), &domain.ArticleDocument{})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "processor broken")
}

// labelProcessor emits one chunk per article, labelled with a fixed article number.
type labelProcessor struct {
	labels []int
	calls  int
}

func (l *labelProcessor) Name() string { return "label" }

func (l *labelProcessor) Process(_ context.Context, doc *domain.ArticleDocument, _ []domain.Chunk) ([]domain.Chunk, error) {
	n := l.labels[l.calls]
	l.calls++
	return []domain.Chunk{{ArticleNumber: n, Content: doc.Content}}, nil
}

func TestPipeline_ProcessAll_AssignsIDs(t *testing.T) {
	docs := []domain.ArticleDocument{
		{ArticleNumber: 1, Content: strings.Repeat("a", 1000), Summary: "Subject-matter and objectives"},
		{ArticleNumber: 2, Content: "", Summary: "Material scope"},
		{ArticleNumber: 3, Content: "Territorial scope text", Summary: "Territorial scope"},
	}

	chunks, err := NewPipeline(chunker.New()).ProcessAll(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	ids := make([]string, len(chunks))
	for i, c := range chunks {
		ids[i] = c.ID
		assert.Equal(t, i, c.Position)
	}
	assert.Equal(t, []string{"1:0", "1:1", "3:0"}, ids)
	assert.Equal(t, "Territorial scope", chunks[2].Summary)
}

func TestPipeline_ProcessAll_RejectsInterleavedArticles(t *testing.T) {
	docs := []domain.ArticleDocument{{Content: "a"}, {Content: "b"}, {Content: "c"}}
	p := NewPipeline(&labelProcessor{labels: []int{1, 2, 1}})

	_, err := p.ProcessAll(context.Background(), docs)
	assert.ErrorIs(t, err, domain.ErrNonContiguousChunks)
}

func TestPipeline_ProcessAll_WrapsArticleErrors(t *testing.T) {
	p := NewPipeline(&mockProcessor{name: "broken", err: errors.New("boom")})

	_, err := p.ProcessAll(context.Background(), []domain.ArticleDocument{{ArticleNumber: 4}})
	assert.ErrorContains(t, err, "article 4: processor broken: boom")
}

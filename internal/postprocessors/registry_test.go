package postprocessors

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
	"github.com/custodia-labs/gdpr-rag/internal/postprocessors/chunker"
)

func TestRegistry_RegisterBuild(t *testing.T) {
	r := NewRegistry()
	r.Register("test", func(cfg map[string]any) (driven.PostProcessor, error) {
		name, _ := cfg["name"].(string)
		return &mockProcessor{name: name}, nil
	})

	assert.True(t, r.Has("test"))
	assert.False(t, r.Has("other"))

	proc, err := r.Build("test", map[string]any{"name": "custom"})
	require.NoError(t, err)
	assert.Equal(t, "custom", proc.Name())

	_, err = r.Build("other", nil)
	assert.ErrorContains(t, err, "unknown processor: other")
}

func TestRegistry_Names(t *testing.T) {
	r := DefaultRegistry()
	r.Register("alpha", func(map[string]any) (driven.PostProcessor, error) { return &mockProcessor{}, nil })
	assert.Equal(t, []string{"alpha", "chunker"}, r.Names())
}

func TestBuildChunker(t *testing.T) {
	tests := []struct {
		name    string
		cfg     map[string]any
		size    int
		overlap int
	}{
		{"nil config uses defaults", nil, 800, 80},
		{"int values", map[string]any{"chunk_size": 200, "overlap": 20}, 200, 20},
		{"toml int64 values", map[string]any{"chunk_size": int64(500), "overlap": int64(50)}, 500, 50},
		{"zero overlap", map[string]any{"overlap": 0}, 800, 0},
		{"wrong types ignored", map[string]any{"chunk_size": "big"}, 800, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			proc, err := buildChunker(tt.cfg)
			require.NoError(t, err)
			c, ok := proc.(*chunker.Processor)
			require.True(t, ok)
			assert.Equal(t, tt.size, c.ChunkSize())
			assert.Equal(t, tt.overlap, c.Overlap())
		})
	}
}

func TestBuildChunker_Separators(t *testing.T) {
	proc, err := buildChunker(map[string]any{
		"chunk_size": 5,
		"overlap":    0,
		"separators": []any{"|", ""},
	})
	require.NoError(t, err)

	chunks, err := proc.Process(context.Background(), &domain.ArticleDocument{Content: "ab|cd|ef"}, nil)
	require.NoError(t, err)
	got := make([]string, len(chunks))
	for i, c := range chunks {
		got[i] = c.Content
	}
	assert.Equal(t, []string{"ab|cd", "|ef"}, got)
}

func TestBuildPipeline(t *testing.T) {
	p, err := DefaultRegistry().BuildPipeline(domain.DefaultPipelineConfig())
	require.NoError(t, err)
	assert.Equal(t, []string{"chunker"}, p.Names())

	chunks, err := p.Process(context.Background(), &domain.ArticleDocument{
		ArticleNumber: 1,
		Content:       strings.Repeat("a", 1000),
	})
	require.NoError(t, err)
	assert.Len(t, chunks, 2)
}

func TestBuildPipeline_Errors(t *testing.T) {
	_, err := DefaultRegistry().BuildPipeline(domain.PipelineConfig{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = DefaultRegistry().BuildPipeline(domain.PipelineConfig{Processors: []string{"stemmer"}})
	assert.ErrorContains(t, err, "unknown processor: stemmer")
}

func TestConfigInt(t *testing.T) {
	cfg := map[string]any{"a": 1, "b": int64(2), "c": 3.0, "d": "4"}
	assert.Equal(t, 1, configInt(cfg, "a"))
	assert.Equal(t, 2, configInt(cfg, "b"))
	assert.Equal(t, 3, configInt(cfg, "c"))
	assert.Equal(t, 0, configInt(cfg, "d"))
	assert.Equal(t, 0, configInt(cfg, "missing"))
}

package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
)

func TestServer_handleRetrieve(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ranked chunks", func(t *testing.T) {
		query := &mockQueryService{
			hits: []domain.RetrievedChunk{
				{
					Chunk: domain.Chunk{
						ID:            "5:0",
						ArticleNumber: 5,
						Summary:       "Principles",
						Content:       "Personal data shall be processed lawfully",
					},
					Score: 0.91,
				},
				{Chunk: domain.Chunk{ID: "6:2", ArticleNumber: 6}, Score: 0.4},
			},
		}
		server, err := NewServer(&Ports{Query: query})
		require.NoError(t, err)

		_, output, err := server.handleRetrieve(ctx, nil, QueryInput{Query: "lawful processing"})
		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, ChunkOutput{
			ID:      "5:0",
			Article: 5,
			Summary: "Principles",
			Content: "Personal data shall be processed lawfully",
			Score:   0.91,
		}, output.Chunks[0])
		assert.Equal(t, "6:2", output.Chunks[1].ID)
	})

	t.Run("empty query error passes through", func(t *testing.T) {
		server, err := NewServer(&Ports{Query: &mockQueryService{err: domain.ErrEmptyQuery}})
		require.NoError(t, err)

		_, _, err = server.handleRetrieve(ctx, nil, QueryInput{})
		assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	})
}

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns answer and sources", func(t *testing.T) {
		query := &mockQueryService{
			answer: &domain.Answer{
				Text:    "Within one month.",
				Sources: []string{"12:3", "15:0"},
				Model:   "mistral",
			},
		}
		server, err := NewServer(&Ports{Query: query})
		require.NoError(t, err)

		_, output, err := server.handleAsk(ctx, nil, QueryInput{Query: "How fast must a controller respond?"})
		require.NoError(t, err)
		assert.Equal(t, AskOutput{
			Answer:  "Within one month.",
			Sources: []string{"12:3", "15:0"},
			Model:   "mistral",
		}, output)
		assert.Equal(t, []string{"How fast must a controller respond?"}, query.asked)
	})

	t.Run("returns error on llm failure", func(t *testing.T) {
		query := &mockQueryService{err: errors.New("generate answer: connection refused")}
		server, err := NewServer(&Ports{Query: query})
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, QueryInput{Query: "consent"})
		assert.ErrorContains(t, err, "connection refused")
	})
}

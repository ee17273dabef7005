// Package gemini provides an embedding service adapter for Google Gemini.
package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultModel = "text-embedding-004"

	// DefaultBatchSize is the largest batch the Gemini API accepts.
	DefaultBatchSize = 100
)

// Config holds configuration for the Gemini embedding service.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// Model is the embedding model to use (default: text-embedding-004).
	Model string

	// BatchSize caps texts per BatchEmbedContents call.
	BatchSize int
}

type batchEmbedder func(ctx context.Context, texts []string) ([][]float32, error)

// EmbeddingService generates embeddings using the Gemini API.
type EmbeddingService struct {
	client     *genai.Client
	model      string
	batchSize  int
	dimensions int
	embed      batchEmbedder
}

// NewEmbeddingService creates a new Gemini embedding service.
func NewEmbeddingService(ctx context.Context, cfg Config) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	s := newService(cfg, func(ctx context.Context, texts []string) ([][]float32, error) {
		em := client.EmbeddingModel(cfg.Model)
		batch := em.NewBatch()
		for _, t := range texts {
			batch.AddContent(genai.Text(t))
		}
		resp, err := em.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("gemini batch embed: %w", err)
		}
		out := make([][]float32, 0, len(resp.Embeddings))
		for _, e := range resp.Embeddings {
			out = append(out, e.Values)
		}
		return out, nil
	})
	s.client = client
	return s, nil
}

func newService(cfg Config, embed batchEmbedder) *EmbeddingService {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BatchSize <= 0 || cfg.BatchSize > DefaultBatchSize {
		cfg.BatchSize = DefaultBatchSize
	}
	return &EmbeddingService{
		model:      cfg.Model,
		batchSize:  cfg.BatchSize,
		dimensions: domain.EmbeddingDimensions()[cfg.Model],
		embed:      embed,
	}
}

// Embed generates a vector embedding for the given text.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := s.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch generates embeddings for multiple texts, preserving order.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += s.batchSize {
		end := min(start+s.batchSize, len(texts))
		vectors, err := s.embed(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		if len(vectors) != end-start {
			return nil, fmt.Errorf("gemini: got %d embeddings for %d texts", len(vectors), end-start)
		}
		for _, v := range vectors {
			if err := s.checkDimensions(v); err != nil {
				return nil, err
			}
		}
		out = append(out, vectors...)
	}
	return out, nil
}

func (s *EmbeddingService) checkDimensions(v []float32) error {
	if s.dimensions == 0 {
		s.dimensions = len(v)
		return nil
	}
	if len(v) != s.dimensions {
		return fmt.Errorf("gemini: %w: got %d, want %d", domain.ErrDimensionMismatch, len(v), s.dimensions)
	}
	return nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.model
}

// Ping embeds a short text to validate the key and model.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	if _, err := s.embed(ctx, []string{"ping"}); err != nil {
		return fmt.Errorf("gemini: ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *EmbeddingService) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

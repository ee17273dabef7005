// Package throttle wraps an embedding service with a token bucket so index
// builds stay under a provider's request quota.
package throttle

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
)

// Ensure Service implements the interface.
var _ driven.EmbeddingService = (*Service)(nil)

// Config holds throttling configuration.
type Config struct {
	// RequestsPerSecond is the sustained rate limit. Zero or less disables throttling.
	RequestsPerSecond float64

	// BurstSize is the maximum burst size (default: 1).
	BurstSize int

	// MaxRetries is how many times a rate-limited call is retried (default: 3).
	MaxRetries int

	// Backoff is the wait applied after a rate-limited response (default: 10s).
	Backoff time.Duration
}

// Service throttles calls to an inner embedding service.
type Service struct {
	inner      driven.EmbeddingService
	limiter    *rate.Limiter
	maxRetries int
	backoff    time.Duration

	mu      sync.Mutex
	retryAt time.Time
}

// Wrap returns inner unchanged when throttling is disabled, otherwise a
// throttled Service.
func Wrap(inner driven.EmbeddingService, cfg Config) driven.EmbeddingService {
	if cfg.RequestsPerSecond <= 0 {
		return inner
	}
	return New(inner, cfg)
}

// New creates a throttled embedding service.
func New(inner driven.EmbeddingService, cfg Config) *Service {
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 1
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	} else if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 10 * time.Second
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &Service{
		inner:      inner,
		limiter:    rate.NewLimiter(limit, cfg.BurstSize),
		maxRetries: cfg.MaxRetries,
		backoff:    cfg.Backoff,
	}
}

// Embed generates a vector embedding for the given text.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	var out []float32
	err := s.do(ctx, func() error {
		v, err := s.inner.Embed(ctx, text)
		out = v
		return err
	})
	return out, err
}

// EmbedBatch generates embeddings for multiple texts, preserving order.
func (s *Service) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	var out [][]float32
	err := s.do(ctx, func() error {
		vs, err := s.inner.EmbedBatch(ctx, texts)
		out = vs
		return err
	})
	return out, err
}

func (s *Service) do(ctx context.Context, call func() error) error {
	for attempt := 0; ; attempt++ {
		if err := s.wait(ctx); err != nil {
			return err
		}
		err := call()
		if err == nil || !IsRateLimited(err) || attempt >= s.maxRetries {
			return err
		}
		s.mu.Lock()
		s.retryAt = time.Now().Add(s.backoff)
		s.mu.Unlock()
	}
}

func (s *Service) wait(ctx context.Context) error {
	s.mu.Lock()
	retryAt := s.retryAt
	s.mu.Unlock()

	if d := time.Until(retryAt); d > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
		}
	}
	return s.limiter.Wait(ctx)
}

// IsRateLimited reports whether err looks like a provider quota response.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "status 429") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

// Dimensions returns the embedding vector size.
func (s *Service) Dimensions() int { return s.inner.Dimensions() }

// ModelName returns the name of the embedding model being used.
func (s *Service) ModelName() string { return s.inner.ModelName() }

// Ping validates the inner service without consuming a token.
func (s *Service) Ping(ctx context.Context) error { return s.inner.Ping(ctx) }

// Close releases the inner service.
func (s *Service) Close() error { return s.inner.Close() }

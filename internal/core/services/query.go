package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driving"
	"github.com/custodia-labs/gdpr-rag/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// ContextSeparator joins retrieved chunk texts inside the prompt.
const ContextSeparator = "\n\n---\n\n"

// defaultAnswerPrompt is the fallback when no PromptStore is configured.
const defaultAnswerPrompt = `
Answer the question based only on the following context:

{context}

---

Answer the question based on the above context: {question}
`

// QueryServiceConfig wires the query service to its ports.
type QueryServiceConfig struct {
	Index    driving.IndexService
	Embedder driven.EmbeddingService
	LLM      driven.LLMService

	// Prompts supplies the answer template. May be nil.
	Prompts driven.PromptStore

	// TopK is the number of chunks retrieved (default: 5).
	TopK int

	// Progress receives status lines if the index has to be built. May be nil.
	Progress driving.ProgressFunc
}

// QueryService answers questions from the indexed articles.
type QueryService struct {
	cfg QueryServiceConfig

	mu    sync.Mutex
	index driven.VectorIndex
}

// NewQueryService creates a new query service.
func NewQueryService(cfg QueryServiceConfig) *QueryService {
	if cfg.TopK <= 0 {
		cfg.TopK = domain.DefaultTopK
	}
	return &QueryService{cfg: cfg}
}

// vectors opens the index on first use and keeps it for later queries.
func (s *QueryService) vectors(ctx context.Context) (driven.VectorIndex, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index != nil {
		return s.index, nil
	}
	idx, _, err := s.cfg.Index.Open(ctx, s.cfg.Progress)
	if err != nil {
		return nil, err
	}
	s.index = idx
	return idx, nil
}

// Retrieve returns the top-k chunks for the question, best first.
func (s *QueryService) Retrieve(ctx context.Context, question string) ([]domain.RetrievedChunk, error) {
	logger.Section("Retrieval")
	if strings.TrimSpace(question) == "" {
		return nil, domain.ErrEmptyQuery
	}

	idx, err := s.vectors(ctx)
	if err != nil {
		return nil, err
	}

	done := logger.Stage("embed query")
	vec, err := s.cfg.Embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	done()

	hits, err := idx.Search(ctx, vec, s.cfg.TopK)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	for i, h := range hits {
		logger.Debug("#%d %s score=%.4f", i+1, h.Chunk.ID, h.Score)
	}
	return hits, nil
}

// Prepare retrieves context and assembles the prompt.
func (s *QueryService) Prepare(ctx context.Context, question string) (*domain.Answer, error) {
	hits, err := s.Retrieve(ctx, question)
	if err != nil {
		return nil, err
	}

	return &domain.Answer{
		Question: question,
		Prompt:   BuildPrompt(s.template(), JoinContext(hits), question),
		Sources:  domain.SourceIDs(hits),
		Model:    s.ModelName(),
	}, nil
}

// Complete sends the prepared prompt to the language model.
// There are no retries and no streaming.
func (s *QueryService) Complete(ctx context.Context, answer *domain.Answer) error {
	if s.cfg.LLM == nil {
		return domain.ErrLLMUnavailable
	}
	if answer == nil || answer.Prompt == "" {
		return fmt.Errorf("complete: %w: answer has no prompt", domain.ErrInvalidInput)
	}

	done := logger.Stage("generate")
	text, err := s.cfg.LLM.Generate(ctx, answer.Prompt, driven.GenerateOptions{})
	if err != nil {
		return fmt.Errorf("generate answer: %w", err)
	}
	done()

	answer.Text = text
	answer.Model = s.cfg.LLM.ModelName()
	return nil
}

// Ask runs Prepare then Complete.
func (s *QueryService) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	answer, err := s.Prepare(ctx, question)
	if err != nil {
		return nil, err
	}
	if err := s.Complete(ctx, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// ModelName returns the generating model's name.
func (s *QueryService) ModelName() string {
	if s.cfg.LLM == nil {
		return ""
	}
	return s.cfg.LLM.ModelName()
}

// template loads the answer prompt, falling back to the default if unavailable.
func (s *QueryService) template() string {
	if s.cfg.Prompts == nil {
		return defaultAnswerPrompt
	}
	prompt, err := s.cfg.Prompts.Load(driven.PromptAnswer)
	if err != nil {
		logger.Warn("Using default answer prompt: %v", err)
		return defaultAnswerPrompt
	}
	return prompt
}

// JoinContext concatenates hit texts in rank order.
func JoinContext(hits []domain.RetrievedChunk) string {
	texts := make([]string, len(hits))
	for i, h := range hits {
		texts[i] = h.Chunk.Content
	}
	return strings.Join(texts, ContextSeparator)
}

// BuildPrompt substitutes {context} and {question} into template.
// Placeholders inside the substituted text are left alone.
func BuildPrompt(template, context, question string) string {
	return strings.NewReplacer("{context}", context, "{question}", question).Replace(template)
}

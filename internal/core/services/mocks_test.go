package services

import (
	"context"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
)

// fakeLoader returns fixed pages.
type fakeLoader struct {
	pages []domain.Page
	err   error
	calls int
}

func (f *fakeLoader) Load(_ context.Context, _ string) ([]domain.Page, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]domain.Page, len(f.pages))
	copy(out, f.pages)
	return out, nil
}

// pagesOf builds unlabelled pages from raw text.
func pagesOf(texts ...string) []domain.Page {
	pages := make([]domain.Page, len(texts))
	for i, t := range texts {
		pages[i] = domain.Page{Index: i, Content: t}
	}
	return pages
}

// hashEmbedder maps text to a bag-of-words vector. Identical texts get
// identical vectors, texts sharing words point in similar directions.
type hashEmbedder struct {
	mu     sync.Mutex
	dims   int
	model  string
	err    error
	calls  int
	inputs []string
}

func newHashEmbedder() *hashEmbedder {
	return &hashEmbedder{dims: 64, model: "hash-64"}
}

func (h *hashEmbedder) vector(text string) []float32 {
	v := make([]float32, h.dims)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		f := fnv.New32a()
		_, _ = f.Write([]byte(word))
		v[f.Sum32()%uint32(h.dims)]++
	}
	return v
}

func (h *hashEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vs, err := h.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vs[0], nil
}

func (h *hashEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls++
	if h.err != nil {
		return nil, h.err
	}
	h.inputs = append(h.inputs, texts...)
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = h.vector(t)
	}
	return out, nil
}

func (h *hashEmbedder) Dimensions() int { return h.dims }
func (h *hashEmbedder) ModelName() string { return h.model }
func (h *hashEmbedder) Ping(context.Context) error { return nil }
func (h *hashEmbedder) Close() error { return nil }

// fakeLLM records prompts and returns a fixed reply.
type fakeLLM struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeLLM) ModelName() string { return "mistral" }
func (f *fakeLLM) Ping(context.Context) error { return nil }
func (f *fakeLLM) Close() error { return nil }

// fakePrompts serves one template or an error.
type fakePrompts struct {
	template string
	err      error
}

func (f *fakePrompts) Load(string) (string, error) { return f.template, f.err }

// fakeValidator records validation calls.
type fakeValidator struct {
	embedErr error
	llmErr   error
	calls    []string
}

func (f *fakeValidator) ValidateEmbedding(_ context.Context, cfg *domain.EmbeddingSettings) error {
	f.calls = append(f.calls, "embedding:"+cfg.Provider.String())
	return f.embedErr
}

func (f *fakeValidator) ValidateLLM(_ context.Context, cfg *domain.LLMSettings) error {
	f.calls = append(f.calls, "llm:"+cfg.Provider.String())
	return f.llmErr
}

// fakeWatcher fires onChange a fixed number of times, then returns err.
type fakeWatcher struct {
	changes int
	err     error
	path    string
}

func (f *fakeWatcher) Watch(_ context.Context, path string, onChange func()) error {
	f.path = path
	for range f.changes {
		onChange()
	}
	return f.err
}

// Package postprocessors turns assembled articles into chunks.
package postprocessors

import (
	"context"
	"fmt"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
	"github.com/custodia-labs/gdpr-rag/internal/postprocessors/chunker"
)

var _ driven.PostProcessorPipeline = (*Pipeline)(nil)

// Pipeline passes each article through its processors in order. Each
// processor receives the previous one's chunks; the first receives nil.
type Pipeline struct {
	processors []driven.PostProcessor
}

// NewPipeline returns a pipeline running processors in the given order.
func NewPipeline(processors ...driven.PostProcessor) *Pipeline {
	return &Pipeline{processors: processors}
}

// Process chunks one article.
func (p *Pipeline) Process(ctx context.Context, doc *domain.ArticleDocument) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, fmt.Errorf("article is nil: %w", domain.ErrInvalidInput)
	}

	var (
		chunks []domain.Chunk
		err    error
	)
	for _, proc := range p.processors {
		if chunks, err = proc.Process(ctx, doc, chunks); err != nil {
			return nil, fmt.Errorf("processor %s: %w", proc.Name(), err)
		}
	}
	return chunks, nil
}

// ProcessAll chunks the articles in order and numbers the chunks of each
// article from zero, giving ids such as "5:0".
func (p *Pipeline) ProcessAll(ctx context.Context, docs []domain.ArticleDocument) ([]domain.Chunk, error) {
	var all []domain.Chunk
	for i := range docs {
		chunks, err := p.Process(ctx, &docs[i])
		if err != nil {
			return nil, fmt.Errorf("article %d: %w", docs[i].ArticleNumber, err)
		}
		all = append(all, chunks...)
	}

	all, err := chunker.AssignIDs(all)
	if err != nil {
		return nil, fmt.Errorf("assign chunk ids: %w", err)
	}
	return all, nil
}

// Add appends a processor.
func (p *Pipeline) Add(proc driven.PostProcessor) {
	p.processors = append(p.processors, proc)
}

// Len returns the number of processors.
func (p *Pipeline) Len() int {
	return len(p.processors)
}

// Names returns the processor names in run order.
func (p *Pipeline) Names() []string {
	names := make([]string, 0, len(p.processors))
	for _, proc := range p.processors {
		names = append(names, proc.Name())
	}
	return names
}

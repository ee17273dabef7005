package driving

import (
	"context"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
)

// ProgressFunc receives user-facing status lines.
type ProgressFunc func(message string)

// BuildOptions configures an index build request.
type BuildOptions struct {
	// Rerun clears an existing index and builds a new one.
	Rerun bool

	// Progress receives status lines. May be nil.
	Progress ProgressFunc
}

// IndexService owns the persisted vector index lifecycle.
type IndexService interface {
	// State reports whether an index is present.
	State(ctx context.Context) (domain.IndexState, error)

	// Build resolves the rerun decision and builds when required.
	Build(ctx context.Context, opts BuildOptions) (*domain.BuildReport, error)

	// Open loads the persisted index, building it first when none exists.
	Open(ctx context.Context, progress ProgressFunc) (driven.VectorIndex, *domain.IndexManifest, error)

	// Watch rebuilds the index whenever the source PDF changes until ctx
	// is cancelled.
	Watch(ctx context.Context, progress ProgressFunc) error
}

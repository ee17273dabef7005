package driven

import (
	"context"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
)

// PageLoader extracts one page record per physical page of a document.
type PageLoader interface {
	// Load returns pages in physical order with raw text and
	// ArticleNumber left at domain.NoArticle.
	Load(ctx context.Context, path string) ([]domain.Page, error)
}

// PageCleaner removes source-format boilerplate from page text.
// Implementations match literals exactly and must be idempotent.
type PageCleaner interface {
	// Name identifies the boilerplate profile for logging.
	Name() string

	// Clean returns text with the profile's boilerplate removed.
	Clean(text string) string
}

// SummarySource supplies the article summary table.
type SummarySource interface {
	// Summaries returns a table already validated to cover every article.
	Summaries() (domain.ArticleSummaries, error)
}

// FileWatcher reports changes to a source file.
type FileWatcher interface {
	// Watch calls onChange after each settled change to path and blocks
	// until ctx is cancelled.
	Watch(ctx context.Context, path string, onChange func()) error
}

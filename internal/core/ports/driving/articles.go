package driving

import (
	"context"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
)

// ArticleService lists the articles covered by the index.
type ArticleService interface {
	// List returns one document per article in order, with Summary set
	// and Content empty. It does not need an index.
	List(ctx context.Context) ([]domain.ArticleDocument, error)
}

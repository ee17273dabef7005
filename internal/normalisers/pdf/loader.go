// Package pdf loads PDF files as a sequence of plain-text pages.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
	"github.com/custodia-labs/gdpr-rag/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.PageLoader = (*Loader)(nil)

// Loader reads PDFs with github.com/ledongthuc/pdf.
type Loader struct{}

// New creates a new PDF page loader.
func New() *Loader {
	return &Loader{}
}

// Load opens the PDF at path and extracts the text of every page.
// Pages without a content dictionary produce an empty record so page
// indices always match physical positions.
func (l *Loader) Load(ctx context.Context, path string) ([]domain.Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPDFLoad, err)
	}
	pages, err := l.LoadBytes(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("pdf: loaded %d pages from %s", len(pages), path)
	return pages, nil
}

// LoadBytes extracts pages from an in-memory PDF.
func (l *Loader) LoadBytes(ctx context.Context, data []byte) ([]domain.Page, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPDFLoad, err)
	}

	total := reader.NumPage()
	pages := make([]domain.Page, 0, total)

	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := domain.Page{Index: i - 1, ArticleNumber: domain.NoArticle}

		p := reader.Page(i)
		if p.V.IsNull() {
			logger.Warn("pdf: page %d has no content", i)
			pages = append(pages, page)
			continue
		}

		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %w", domain.ErrPDFLoad, i, err)
		}
		page.Content = pageText(text)
		pages = append(pages, page)
	}

	return pages, nil
}

// pageText drops the line breaks the extractor emits before the first
// text run, so a page opens with its first printed line.
func pageText(raw string) string {
	return strings.TrimLeft(raw, "\r\n")
}

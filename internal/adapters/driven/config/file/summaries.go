package file

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
)

// Ensure SummaryTable implements the interface.
var _ driven.SummarySource = (*SummaryTable)(nil)

//go:embed articles.toml
var builtinSummaries []byte

type summaryFile struct {
	Articles map[string]string `toml:"articles"`
}

// SummaryTable loads the article summary table once and validates it.
type SummaryTable struct {
	path string

	once  sync.Once
	table domain.ArticleSummaries
	err   error
}

// NewSummaryTable reads summaries from path, or the built-in table when
// path is empty.
func NewSummaryTable(path string) *SummaryTable {
	return &SummaryTable{path: path}
}

// Summaries returns the validated table. The file is read on the first
// call only; later calls return the same table or the same error.
func (t *SummaryTable) Summaries() (domain.ArticleSummaries, error) {
	t.once.Do(func() {
		data := builtinSummaries
		if t.path != "" {
			var err error
			data, err = os.ReadFile(t.path)
			if err != nil {
				t.err = fmt.Errorf("read summaries: %w", err)
				return
			}
		}
		t.table, t.err = ParseSummaries(data)
	})
	return t.table, t.err
}

// ParseSummaries decodes an [articles] TOML table keyed by article number.
func ParseSummaries(data []byte) (domain.ArticleSummaries, error) {
	var f summaryFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse summaries: %w", err)
	}

	table := make(domain.ArticleSummaries, len(f.Articles))
	for key, summary := range f.Articles {
		n, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%w: key %q is not an article number", domain.ErrIncompleteSummaries, key)
		}
		table[n] = summary
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

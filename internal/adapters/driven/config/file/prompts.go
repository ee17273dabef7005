package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/gdpr-rag/internal/core/ports/driven"
	"github.com/custodia-labs/gdpr-rag/internal/logger"
)

var _ driven.PromptStore = (*PromptStore)(nil)

// DefaultAnswerPrompt grounds a question in retrieved article text.
const DefaultAnswerPrompt = `
Answer the question based only on the following context:

{context}

---

Answer the question based on the above context: {question}
`

var builtinPrompts = map[string]string{
	driven.PromptAnswer: DefaultAnswerPrompt,
}

// PromptStore reads <name>.txt templates from a directory. A missing
// file is seeded with the built-in template so it can be edited.
// Templates are read on every Load and used byte for byte.
type PromptStore struct {
	dir string
}

// NewPromptStore creates a prompt store. It does not touch the disk.
// An empty promptDir means ~/.gdpr-rag/prompts.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		dir, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		promptDir = filepath.Join(dir, "prompts")
	}
	return &PromptStore{dir: promptDir}, nil
}

// Load returns the named template.
func (s *PromptStore) Load(name string) (string, error) {
	path := filepath.Join(s.dir, name+".txt")
	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), nil
	}

	builtin, ok := builtinPrompts[name]
	if !ok {
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}
	if os.IsNotExist(err) {
		s.seed(path, builtin)
	}
	return builtin, nil
}

// seed writes a built-in template for the user to edit. Failure only
// costs the editable copy.
func (s *PromptStore) seed(path, content string) {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		logger.Debug("create prompt directory: %v", err)
		return
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		logger.Debug("write default prompt %s: %v", path, err)
	}
}

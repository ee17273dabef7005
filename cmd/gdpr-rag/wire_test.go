package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/gdpr-rag/internal/adapters/driving/cli"
	"github.com/custodia-labs/gdpr-rag/internal/core/domain"
)

func TestWire_Defaults(t *testing.T) {
	dir := t.TempDir()

	svcs, err := wire(cli.Options{ConfigDir: dir})

	require.NoError(t, err)
	assert.NoError(t, svcs.PipelineErr)
	assert.NotNil(t, svcs.Index)
	assert.NotNil(t, svcs.Query)
	assert.NotNil(t, svcs.Settings)
	assert.Equal(t, domain.DefaultLLMModel, svcs.Query.ModelName())

	docs, err := svcs.Articles.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, docs, domain.LastArticle)
}

func TestWire_MissingEmbeddingKey(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OPENAI_API_KEY", "")
	config := "[embedding]\nprovider = \"openai\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(config), 0o600))

	svcs, err := wire(cli.Options{ConfigDir: dir})

	require.NoError(t, err)
	assert.ErrorIs(t, svcs.PipelineErr, domain.ErrEmbeddingUnavailable)
	assert.Nil(t, svcs.Index)
	assert.Nil(t, svcs.Query)
	assert.NotNil(t, svcs.Settings)
	assert.NotNil(t, svcs.Articles)
}

func TestWire_MissingLLMKey(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ANTHROPIC_API_KEY", "")
	config := "[llm]\nprovider = \"anthropic\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(config), 0o600))

	svcs, err := wire(cli.Options{ConfigDir: dir})

	require.NoError(t, err)
	assert.ErrorIs(t, svcs.PipelineErr, domain.ErrLLMUnavailable)
	assert.NotNil(t, svcs.Index)
	require.NotNil(t, svcs.Query)
	assert.Equal(t, "", svcs.Query.ModelName())
}

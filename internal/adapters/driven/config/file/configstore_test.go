package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
	_, ok := store.Get("llm.model")
	assert.False(t, ok)

	_, err = os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err), "opening must not write the file")
}

func TestNewConfigStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	_, err := NewConfigStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewConfigStore_CorruptedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not = [valid"), 0600))

	_, err := NewConfigStore(dir)
	assert.ErrorContains(t, err, "parse")
}

func TestConfigStore_ReadsHandWrittenFile(t *testing.T) {
	dir := t.TempDir()
	raw := `
[llm]
provider = "anthropic"
model = "claude-3-5-haiku-latest"

[pipeline.chunker]
chunk_size = 600
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(raw), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	val, ok := store.Get("llm.model")
	require.True(t, ok)
	assert.Equal(t, "claude-3-5-haiku-latest", val)

	val, ok = store.Get("pipeline.chunker.chunk_size")
	require.True(t, ok)
	assert.Equal(t, int64(600), val)

	_, ok = store.Get("pipeline.chunker")
	assert.False(t, ok, "tables are not values")
	_, ok = store.Get("llm.model.name")
	assert.False(t, ok)
}

func TestConfigStore_SetPersistsNestedTables(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("paths.index_dir", "FAISS_db"))
	require.NoError(t, store.Set("pipeline.chunker.chunk_size", 800))
	require.NoError(t, store.Set("embedding.requests_per_second", 2.5))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[paths]")
	assert.Contains(t, string(raw), "[pipeline.chunker]")

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)

	val, _ := reloaded.Get("paths.index_dir")
	assert.Equal(t, "FAISS_db", val)
	val, _ = reloaded.Get("pipeline.chunker.chunk_size")
	assert.Equal(t, int64(800), val)
	val, _ = reloaded.Get("embedding.requests_per_second")
	assert.Equal(t, 2.5, val)
}

func TestConfigStore_SetConflicts(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.model", "mistral"))

	assert.ErrorContains(t, store.Set("llm.model.name", "x"), "conflicts")
	assert.ErrorContains(t, store.Set("llm", "x"), "names a table")

	val, _ := store.Get("llm.model")
	assert.Equal(t, "mistral", val)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("llm.api_key", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	_, err = os.Stat(store.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("retrieval.top_k", n)
			_, _ = store.Get("retrieval.top_k")
		}(i)
	}
	wg.Wait()

	_, ok := store.Get("retrieval.top_k")
	assert.True(t, ok)
}

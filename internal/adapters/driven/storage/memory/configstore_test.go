package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetGet(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("llm.model", "mistral"))
	require.NoError(t, store.Set("retrieval.top_k", 5))

	val, ok := store.Get("llm.model")
	assert.True(t, ok)
	assert.Equal(t, "mistral", val)

	val, _ = store.Get("retrieval.top_k")
	assert.Equal(t, 5, val)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}

func TestConfigStore_Seeded(t *testing.T) {
	seed := map[string]any{"llm.provider": "anthropic"}
	store := NewConfigStore(seed)
	require.NoError(t, store.Set("llm.provider", "openai"))

	val, _ := store.Get("llm.provider")
	assert.Equal(t, "openai", val)
	assert.Equal(t, "anthropic", seed["llm.provider"], "seed map is copied")
}

func TestConfigStore_ConcurrentAccess(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("k", n)
		}(i)
		go func() {
			defer wg.Done()
			_, _ = store.Get("k")
		}()
	}
	wg.Wait()

	_, ok := store.Get("k")
	assert.True(t, ok)
}

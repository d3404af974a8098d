package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidenyagah/sema/pkg/api"
)

func TestMemoryProviderContract(t *testing.T) {
	api.RunSessionStoreContract(t, NewMemoryProvider())
}

func TestMemoryProviderConcurrentSessions(t *testing.T) {
	provider := NewMemoryProvider()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store, err := provider.Open(ctx, string(rune('a'+n)))
			assert.NoError(t, err)
			for j := 0; j < 50; j++ {
				assert.NoError(t, store.Set(ctx, "count", j))
			}
		}(i)
	}
	wg.Wait()

	store, err := provider.Open(ctx, "a")
	require.NoError(t, err)
	v, err := store.Get(ctx, "count")
	require.NoError(t, err)
	assert.Equal(t, 49, v)
}

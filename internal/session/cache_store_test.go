package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidenyagah/sema/pkg/api"
)

func TestCacheProviderContract(t *testing.T) {
	api.RunSessionStoreContract(t, NewCacheProvider(time.Hour))
}

func TestCacheProviderExpiresIdleSessions(t *testing.T) {
	provider := NewCacheProvider(20 * time.Millisecond)
	ctx := context.Background()

	store, err := provider.Open(ctx, "ussd-1")
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "name", "Asha"))

	time.Sleep(50 * time.Millisecond)

	v, err := store.Get(ctx, "name")
	require.NoError(t, err)
	assert.Nil(t, v, "idle session should have expired")

	exists, err := store.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCacheProviderWritesRefreshExpiry(t *testing.T) {
	provider := NewCacheProvider(60 * time.Millisecond)
	ctx := context.Background()

	store, err := provider.Open(ctx, "ussd-2")
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "step", 1))

	// Keep the conversation active past the original deadline.
	for i := 0; i < 4; i++ {
		time.Sleep(25 * time.Millisecond)
		require.NoError(t, store.Set(ctx, "step", i+2))
	}

	v, err := store.Get(ctx, "step")
	require.NoError(t, err)
	assert.Equal(t, 5, v)
}

package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidenyagah/sema/pkg/api"
)

func newRedisClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisProviderContract(t *testing.T) {
	_, client := newRedisClient(t)
	api.RunSessionStoreContract(t, NewRedisProvider(client))
}

func TestRedisProviderKeyPrefix(t *testing.T) {
	mr, client := newRedisClient(t)
	provider := NewRedisProvider(client, WithRedisPrefix("myapp:"))

	ctx := context.Background()
	store, err := provider.Open(ctx, "ussd-1")
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "name", "Asha"))

	assert.True(t, mr.Exists("myapp:ussd-1"))
	assert.False(t, mr.Exists("sema:session:ussd-1"))
}

func TestRedisProviderTTL(t *testing.T) {
	mr, client := newRedisClient(t)
	provider := NewRedisProvider(client, WithRedisTTL(90*time.Second))

	ctx := context.Background()
	store, err := provider.Open(ctx, "ussd-2")
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "name", "Asha"))

	assert.Equal(t, 90*time.Second, mr.TTL("sema:session:ussd-2"))

	// An idle session expires and reads back empty.
	mr.FastForward(2 * time.Minute)

	v, err := store.Get(ctx, "name")
	require.NoError(t, err)
	assert.Nil(t, v)

	exists, err := store.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRedisProviderNoTTLByDefault(t *testing.T) {
	mr, client := newRedisClient(t)
	provider := NewRedisProvider(client)

	ctx := context.Background()
	store, err := provider.Open(ctx, "ussd-3")
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "name", "Asha"))

	assert.Equal(t, time.Duration(0), mr.TTL("sema:session:ussd-3"))
}

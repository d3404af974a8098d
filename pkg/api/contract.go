package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests to verify that a
// SessionProvider implementation adheres to the SessionStore contract.
// Every backend test calls this with a fresh provider.
func RunSessionStoreContract(t *testing.T, provider SessionProvider) {
	ctx := context.Background()

	open := func(t *testing.T, id string) SessionStore {
		store, err := provider.Open(ctx, id)
		require.NoError(t, err, "Open should not return error")
		return store
	}

	t.Run("GetMissingKey", func(t *testing.T) {
		store := open(t, "contract-missing")

		v, err := store.Get(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, v, "missing key should read as nil")
	})

	t.Run("SetAndGet", func(t *testing.T) {
		store := open(t, "contract-set-get")

		require.NoError(t, store.Set(ctx, "name", "Asha"))

		v, err := store.Get(ctx, "name")
		require.NoError(t, err)
		assert.Equal(t, "Asha", v)
	})

	t.Run("RoundTripsNestedStructures", func(t *testing.T) {
		store := open(t, "contract-nested")

		nested := map[string]any{
			"page": 2,
			"offsets": map[string]any{
				"1": map[string]any{"start": 0, "finish": 90},
				"2": map[string]any{"start": 90, "finish": 150},
			},
		}
		require.NoError(t, store.Set(ctx, "state", nested))

		v, err := store.Get(ctx, "state")
		require.NoError(t, err)

		var decoded struct {
			Page    int `mapstructure:"page"`
			Offsets map[string]struct {
				Start  int `mapstructure:"start"`
				Finish int `mapstructure:"finish"`
			} `mapstructure:"offsets"`
		}
		require.NoError(t, Decode(v, &decoded))
		assert.Equal(t, 2, decoded.Page)
		assert.Equal(t, 90, decoded.Offsets["1"].Finish)
		assert.Equal(t, 150, decoded.Offsets["2"].Finish)
	})

	t.Run("Overwrite", func(t *testing.T) {
		store := open(t, "contract-overwrite")

		require.NoError(t, store.Set(ctx, "k", "first"))
		require.NoError(t, store.Set(ctx, "k", "second"))

		v, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "second", v)
	})

	t.Run("Delete", func(t *testing.T) {
		store := open(t, "contract-delete")

		require.NoError(t, store.Set(ctx, "k", "v"))
		require.NoError(t, store.Delete(ctx, "k"))

		v, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Nil(t, v)

		// Deleting an absent key is a no-op.
		require.NoError(t, store.Delete(ctx, "k"))
	})

	t.Run("ClearKeepsSessionAlive", func(t *testing.T) {
		store := open(t, "contract-clear")

		require.NoError(t, store.Set(ctx, "a", "1"))
		require.NoError(t, store.Set(ctx, "b", "2"))
		require.NoError(t, store.Clear(ctx))

		v, err := store.Get(ctx, "a")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("DestroyAndExists", func(t *testing.T) {
		store := open(t, "contract-destroy")

		exists, err := store.Exists(ctx)
		require.NoError(t, err)
		assert.False(t, exists, "new session should not exist before first Set")

		require.NoError(t, store.Set(ctx, "k", "v"))

		exists, err = store.Exists(ctx)
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, store.Destroy(ctx))

		exists, err = store.Exists(ctx)
		require.NoError(t, err)
		assert.False(t, exists, "destroyed session should not exist")
	})

	t.Run("SessionsAreIsolated", func(t *testing.T) {
		one := open(t, "contract-iso-1")
		two := open(t, "contract-iso-2")

		require.NoError(t, one.Set(ctx, "k", "one"))
		require.NoError(t, two.Set(ctx, "k", "two"))

		v, err := one.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "one", v)

		v, err = two.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "two", v)
	})
}

package session

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/davidenyagah/sema/pkg/api"
)

func newSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// One connection, or each pooled conn would see its own :memory: db.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSQLiteProviderContract(t *testing.T) {
	provider, err := NewSQLiteProvider(newSQLiteDB(t))
	require.NoError(t, err)
	api.RunSessionStoreContract(t, provider)
}

func TestSQLiteProviderSchemaInitIsIdempotent(t *testing.T) {
	db := newSQLiteDB(t)

	_, err := NewSQLiteProvider(db)
	require.NoError(t, err)
	_, err = NewSQLiteProvider(db)
	require.NoError(t, err)
}

func TestSQLiteValuesSurviveProviderRestart(t *testing.T) {
	db := newSQLiteDB(t)
	ctx := context.Background()

	provider, err := NewSQLiteProvider(db)
	require.NoError(t, err)
	store, err := provider.Open(ctx, "ussd-1")
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "amount", 150.5))

	// A second provider over the same database sees the same session.
	reopened, err := NewSQLiteProvider(db)
	require.NoError(t, err)
	store2, err := reopened.Open(ctx, "ussd-1")
	require.NoError(t, err)

	v, err := store2.Get(ctx, "amount")
	require.NoError(t, err)
	assert.Equal(t, 150.5, v)
}

func TestSQLiteStructsComeBackAsMaps(t *testing.T) {
	provider, err := NewSQLiteProvider(newSQLiteDB(t))
	require.NoError(t, err)

	ctx := context.Background()
	store, err := provider.Open(ctx, "ussd-2")
	require.NoError(t, err)

	type transfer struct {
		To     string  `json:"to" mapstructure:"to"`
		Amount float64 `json:"amount" mapstructure:"amount"`
	}
	require.NoError(t, store.Set(ctx, "transfer", transfer{To: "+254700000002", Amount: 99}))

	v, err := store.Get(ctx, "transfer")
	require.NoError(t, err)
	_, isMap := v.(map[string]any)
	assert.True(t, isMap, "stored struct should read back as a JSON map")

	var decoded transfer
	require.NoError(t, api.Decode(v, &decoded))
	assert.Equal(t, transfer{To: "+254700000002", Amount: 99}, decoded)
}

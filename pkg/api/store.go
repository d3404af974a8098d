package api

import (
	"context"
	"errors"
)

var (
	// ErrSessionNotFound is returned by providers and stores when a session
	// id has no persisted state and the operation requires one.
	ErrSessionNotFound = errors.New("session not found")

	// ErrStoreUnavailable wraps backend connectivity failures. The engine
	// never retries store operations; the error propagates to the caller
	// of the pipeline.
	ErrStoreUnavailable = errors.New("session store unavailable")
)

// SessionStore is a key/value handle bound to a single session id.
//
// Values must be JSON-serializable: persistent backends round-trip them
// through JSON, so structs come back as map[string]any and integers as
// float64. Use Decode to rehydrate typed values.
//
// The engine guarantees single-writer-per-turn for one session id; stores
// only need to be safe for concurrent access across different ids.
type SessionStore interface {
	// Get returns the stored value for key, or (nil, nil) if absent.
	Get(ctx context.Context, key string) (any, error)

	// Set stores value under key, creating the session if needed.
	Set(ctx context.Context, key string, value any) error

	// Delete removes a single key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// Clear removes every key but keeps the session alive.
	Clear(ctx context.Context) error

	// Destroy removes the session entirely.
	Destroy(ctx context.Context) error

	// Exists reports whether the session currently holds any state.
	Exists(ctx context.Context) (bool, error)
}

// SessionProvider opens SessionStore handles by session id. Backends are
// pluggable: in-memory maps for tests, TTL caches, SQL databases, Redis.
type SessionProvider interface {
	// Open returns a store handle for the given session id. The session
	// itself is created lazily on first Set.
	Open(ctx context.Context, sessionID string) (SessionStore, error)
}

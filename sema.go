package sema

import (
	"context"
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidenyagah/sema/internal/session"
	"github.com/davidenyagah/sema/pkg/api"
)

// Re-export key types so users don't need to dig into pkg/api.

type (
	Context              = api.Context
	Prompt               = api.Prompt
	ScreenBuilder        = api.ScreenBuilder
	ActionFunc           = api.ActionFunc
	FlowDefinition       = api.FlowDefinition
	Request              = api.Request
	Response             = api.Response
	Turn                 = api.Turn
	Kind                 = api.Kind
	Choice               = api.Choice
	Media                = api.Media
	Metadata             = api.Metadata
	Handler              = api.Handler
	Middleware           = api.Middleware
	Validator            = api.Validator
	MessageOption        = api.MessageOption
	SessionStore         = api.SessionStore
	SessionProvider      = api.SessionProvider
	Observer             = api.Observer
	NoopObserver         = api.NoopObserver
	LoggingObserver      = api.LoggingObserver
	CompositeObserver    = api.CompositeObserver
	BasicMetrics         = api.BasicMetrics
	BasicMetricsSnapshot = api.BasicMetricsSnapshot
)

// Re-export common helpers.

var (
	NewLoggingObserver   = api.NewLoggingObserver
	NewCompositeObserver = api.NewCompositeObserver
	NewMetadata          = api.NewMetadata
	WithMedia            = api.WithMedia
	WithValidators       = api.WithValidators
	Decode               = api.Decode
)

// Re-export response kinds for convenience.

const (
	KindPrompt   = api.KindPrompt
	KindTerminal = api.KindTerminal
)

// Names of the built-in pipeline stages, usable with UseBefore/UseAfter.

const (
	StageSessionLoader = api.StageSessionLoader
	StagePagination    = api.StagePagination
	StageExecutor      = api.StageExecutor
)

// TypedScreen is a strongly-typed wrapper over Context.Screen. The cached
// value is rehydrated with Decode, so it works across JSON round-trips.
func TypedScreen[T any](c *Context, key string, builder func(p *Prompt) (T, error)) (T, error) {
	return api.TypedScreen(c, key, builder)
}

// Session provider constructors
// These wrap the internal/session package so external callers never need
// to import internal packages.

// NewMemoryProvider returns a SessionProvider backed entirely by in-memory
// maps. Sessions never expire; best for tests.
func NewMemoryProvider() SessionProvider {
	return session.NewMemoryProvider()
}

// NewCacheProvider returns an in-process SessionProvider whose sessions
// expire after ttl of inactivity.
func NewCacheProvider(ttl time.Duration) SessionProvider {
	return session.NewCacheProvider(ttl)
}

// NewSQLiteProvider returns a SessionProvider that persists sessions in a
// SQLite database. The caller imports the driver (e.g. "modernc.org/sqlite").
func NewSQLiteProvider(db *sql.DB) (SessionProvider, error) {
	return session.NewSQLiteProvider(db)
}

// NewPostgresProvider returns a SessionProvider that persists sessions in
// PostgreSQL.
func NewPostgresProvider(db *sql.DB) (SessionProvider, error) {
	return session.NewPostgresProvider(db)
}

// NewRedisProvider returns a SessionProvider that persists sessions in
// Redis, one hash per session. ttl of zero means no expiration.
func NewRedisProvider(client *redis.Client, ttl time.Duration) SessionProvider {
	return session.NewRedisProvider(client, session.WithRedisTTL(ttl))
}

// App constructors per backend, mirroring the provider constructors.

// NewInMemoryApp returns an App backed by an in-memory session store.
func NewInMemoryApp(opts ...Option) *App {
	return NewApp(NewMemoryProvider(), opts...)
}

// NewCacheApp returns an App whose sessions expire after ttl of inactivity.
func NewCacheApp(ttl time.Duration, opts ...Option) *App {
	return NewApp(NewCacheProvider(ttl), opts...)
}

// NewSQLiteApp returns an App that persists sessions in SQLite.
func NewSQLiteApp(db *sql.DB, opts ...Option) (*App, error) {
	provider, err := NewSQLiteProvider(db)
	if err != nil {
		return nil, err
	}
	return NewApp(provider, opts...), nil
}

// NewPostgresApp returns an App that persists sessions in PostgreSQL.
func NewPostgresApp(db *sql.DB, opts ...Option) (*App, error) {
	provider, err := NewPostgresProvider(db)
	if err != nil {
		return nil, err
	}
	return NewApp(provider, opts...), nil
}

// NewRedisApp returns an App that persists sessions in Redis.
func NewRedisApp(client *redis.Client, ttl time.Duration, opts ...Option) *App {
	return NewApp(NewRedisProvider(client, ttl), opts...)
}

// Convenience helper that just forwards to the underlying App.

// ProcessTurn runs one inbound turn through the app's pipeline.
func ProcessTurn(ctx context.Context, app *App, req *Request) (*Response, error) {
	return app.Turn(ctx, req)
}

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/davidenyagah/sema/pkg/api"
)

// RedisProvider is a SessionProvider backed by Redis. Each session is a
// hash keyed <prefix><id>, with one JSON-encoded field per session key.
// An optional TTL is refreshed on every write, so idle conversations
// expire and restart from empty state.
type RedisProvider struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ api.SessionProvider = (*RedisProvider)(nil)

// RedisOption configures a RedisProvider.
type RedisOption func(*RedisProvider)

// WithRedisPrefix sets the key prefix for sessions.
func WithRedisPrefix(prefix string) RedisOption {
	return func(p *RedisProvider) { p.prefix = prefix }
}

// WithRedisTTL sets the session expiry, refreshed on each write.
// Zero means no expiration.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(p *RedisProvider) { p.ttl = ttl }
}

// NewRedisProvider creates a RedisProvider from an existing client.
func NewRedisProvider(client *redis.Client, opts ...RedisOption) *RedisProvider {
	p := &RedisProvider{
		client: client,
		prefix: "sema:session:",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *RedisProvider) Open(ctx context.Context, sessionID string) (api.SessionStore, error) {
	return &redisStore{provider: p, key: p.prefix + sessionID}, nil
}

type redisStore struct {
	provider *RedisProvider
	key      string
}

var _ api.SessionStore = (*redisStore)(nil)

func (s *redisStore) Get(ctx context.Context, key string) (any, error) {
	raw, err := s.provider.client.HGet(ctx, s.key, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", api.ErrStoreUnavailable, err)
	}
	return DecodeValue(raw)
}

func (s *redisStore) Set(ctx context.Context, key string, value any) error {
	raw, err := EncodeValue(value)
	if err != nil {
		return err
	}

	pipe := s.provider.client.TxPipeline()
	pipe.HSet(ctx, s.key, key, raw)
	if s.provider.ttl > 0 {
		pipe.Expire(ctx, s.key, s.provider.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", api.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := s.provider.client.HDel(ctx, s.key, key).Err(); err != nil {
		return fmt.Errorf("%w: %v", api.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context) error {
	if err := s.provider.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%w: %v", api.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *redisStore) Destroy(ctx context.Context) error {
	return s.Clear(ctx)
}

func (s *redisStore) Exists(ctx context.Context) (bool, error) {
	n, err := s.provider.client.Exists(ctx, s.key).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", api.ErrStoreUnavailable, err)
	}
	return n > 0, nil
}

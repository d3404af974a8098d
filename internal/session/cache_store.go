package session

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/davidenyagah/sema/pkg/api"
)

// CacheProvider is a SessionProvider backed by an expiring in-process
// cache. Sessions that see no writes within the TTL are purged, which
// restarts the replay from empty state on the next turn.
type CacheProvider struct {
	mu    sync.Mutex
	cache *gocache.Cache
	ttl   time.Duration
}

var _ api.SessionProvider = (*CacheProvider)(nil)

// NewCacheProvider creates a CacheProvider whose sessions expire after
// ttl of inactivity. Expired entries are purged every ttl/2, with a floor
// of one minute.
func NewCacheProvider(ttl time.Duration) *CacheProvider {
	cleanup := ttl / 2
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &CacheProvider{
		cache: gocache.New(ttl, cleanup),
		ttl:   ttl,
	}
}

func (p *CacheProvider) Open(ctx context.Context, sessionID string) (api.SessionStore, error) {
	return &cacheStore{provider: p, id: sessionID}, nil
}

// data returns the session map, if present. Callers must hold p.mu when
// mutating the returned map.
func (p *CacheProvider) data(id string) (map[string]any, bool) {
	if x, found := p.cache.Get(id); found {
		return x.(map[string]any), true
	}
	return nil, false
}

type cacheStore struct {
	provider *CacheProvider
	id       string
}

var _ api.SessionStore = (*cacheStore)(nil)

func (s *cacheStore) Get(ctx context.Context, key string) (any, error) {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	data, ok := s.provider.data(s.id)
	if !ok {
		return nil, nil
	}
	return data[key], nil
}

func (s *cacheStore) Set(ctx context.Context, key string, value any) error {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	data, ok := s.provider.data(s.id)
	if !ok {
		data = make(map[string]any)
	}
	data[key] = value
	// Re-setting refreshes the expiry, so active conversations stay alive.
	s.provider.cache.Set(s.id, data, s.provider.ttl)
	return nil
}

func (s *cacheStore) Delete(ctx context.Context, key string) error {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	if data, ok := s.provider.data(s.id); ok {
		delete(data, key)
		s.provider.cache.Set(s.id, data, s.provider.ttl)
	}
	return nil
}

func (s *cacheStore) Clear(ctx context.Context) error {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	if _, ok := s.provider.data(s.id); ok {
		s.provider.cache.Set(s.id, make(map[string]any), s.provider.ttl)
	}
	return nil
}

func (s *cacheStore) Destroy(ctx context.Context) error {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	s.provider.cache.Delete(s.id)
	return nil
}

func (s *cacheStore) Exists(ctx context.Context) (bool, error) {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	data, ok := s.provider.data(s.id)
	return ok && len(data) > 0, nil
}

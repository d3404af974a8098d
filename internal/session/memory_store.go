package session

import (
	"context"
	"sync"

	"github.com/davidenyagah/sema/pkg/api"
)

// MemoryProvider is a simple, goroutine-safe SessionProvider backed by
// maps. Sessions never expire; it is intended for tests and development.
type MemoryProvider struct {
	mu       sync.RWMutex
	sessions map[string]map[string]any
}

var _ api.SessionProvider = (*MemoryProvider)(nil)

// NewMemoryProvider creates a new MemoryProvider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		sessions: make(map[string]map[string]any),
	}
}

func (p *MemoryProvider) Open(ctx context.Context, sessionID string) (api.SessionStore, error) {
	return &memoryStore{provider: p, id: sessionID}, nil
}

type memoryStore struct {
	provider *MemoryProvider
	id       string
}

var _ api.SessionStore = (*memoryStore)(nil)

func (s *memoryStore) Get(ctx context.Context, key string) (any, error) {
	s.provider.mu.RLock()
	defer s.provider.mu.RUnlock()

	data, ok := s.provider.sessions[s.id]
	if !ok {
		return nil, nil
	}
	return data[key], nil
}

func (s *memoryStore) Set(ctx context.Context, key string, value any) error {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	data, ok := s.provider.sessions[s.id]
	if !ok {
		data = make(map[string]any)
		s.provider.sessions[s.id] = data
	}
	data[key] = value
	return nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	if data, ok := s.provider.sessions[s.id]; ok {
		delete(data, key)
	}
	return nil
}

func (s *memoryStore) Clear(ctx context.Context) error {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	if _, ok := s.provider.sessions[s.id]; ok {
		s.provider.sessions[s.id] = make(map[string]any)
	}
	return nil
}

func (s *memoryStore) Destroy(ctx context.Context) error {
	s.provider.mu.Lock()
	defer s.provider.mu.Unlock()

	delete(s.provider.sessions, s.id)
	return nil
}

func (s *memoryStore) Exists(ctx context.Context) (bool, error) {
	s.provider.mu.RLock()
	defer s.provider.mu.RUnlock()

	data, ok := s.provider.sessions[s.id]
	return ok && len(data) > 0, nil
}

package settings

import (
	"context"
	"sync"
)

// InMemoryStore holds the live settings in process memory.
type InMemoryStore struct {
	mu      sync.RWMutex
	current Settings
}

// NewInMemoryStore seeds the store with initial values (typically from
// deployment configuration; zero amounts mean "not configured yet").
func NewInMemoryStore(initial Settings) *InMemoryStore {
	return &InMemoryStore{current: initial}
}

func (s *InMemoryStore) Get(_ context.Context) (Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, nil
}

func (s *InMemoryStore) Save(_ context.Context, settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = settings
	return nil
}

package period

import (
	"context"
	"sync"

	id "bursar/pkg/domain"
)

// InMemoryStore holds the live period in process memory.
type InMemoryStore struct {
	mu      sync.RWMutex
	current id.Period
}

func NewInMemoryStore(initial id.Period) *InMemoryStore {
	return &InMemoryStore{current: initial}
}

func (s *InMemoryStore) Get(_ context.Context) (id.Period, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, nil
}

func (s *InMemoryStore) Save(_ context.Context, p id.Period) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = p
	return nil
}

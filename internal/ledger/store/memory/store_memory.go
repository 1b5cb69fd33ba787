package memory

import (
	"context"
	"sync"

	"bursar/internal/ledger"
)

// InMemoryLedgerStore keeps settlement slots in a sparse map. The zero value
// of a missing key is exactly the "not settled" answer, so reads never
// allocate.
type InMemoryLedgerStore struct {
	mu      sync.RWMutex
	settled map[ledger.Key]struct{}
}

func New() *InMemoryLedgerStore {
	return &InMemoryLedgerStore{settled: make(map[ledger.Key]struct{})}
}

func (s *InMemoryLedgerStore) IsSettled(_ context.Context, key ledger.Key) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.settled[key]
	return ok, nil
}

func (s *InMemoryLedgerStore) MarkSettled(_ context.Context, key ledger.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settled[key] = struct{}{}
	return nil
}

package history

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store for tests and single-node runs without
// Redis.
type MemoryStore struct {
	mu   sync.RWMutex
	sets map[string]map[int]struct{}
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[string]map[int]struct{})}
}

func (s *MemoryStore) Members(_ context.Context, playerID string) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int, 0, len(s.sets[playerID]))
	for id := range s.sets[playerID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *MemoryStore) Add(_ context.Context, playerID string, questionIDs ...int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[playerID]
	if !ok {
		set = make(map[int]struct{})
		s.sets[playerID] = set
	}
	for _, id := range questionIDs {
		set[id] = struct{}{}
	}
	return nil
}

func (s *MemoryStore) Contains(_ context.Context, playerID string, questionID int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sets[playerID][questionID]
	return ok, nil
}

func (s *MemoryStore) Clear(_ context.Context, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sets, playerID)
	return nil
}

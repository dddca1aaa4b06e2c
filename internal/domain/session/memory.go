// internal/domain/session/memory.go
package session

import (
	"context"
	"sync"
)

// MemoryStore keeps items in process memory. Flags are lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]map[string]string)}
}

func (s *MemoryStore) GetItem(_ context.Context, clientID, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.items[clientID][key]
	return value, ok, nil
}

func (s *MemoryStore) SetItem(_ context.Context, clientID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.items[clientID] == nil {
		s.items[clientID] = make(map[string]string)
	}
	s.items[clientID][key] = value
	return nil
}

func (s *MemoryStore) RemoveItem(_ context.Context, clientID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items[clientID], key)
	if len(s.items[clientID]) == 0 {
		delete(s.items, clientID)
	}
	return nil
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}

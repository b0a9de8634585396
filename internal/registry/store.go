package registry

import (
	"context"
	"maps"
	"sync"
)

// Store is the persistence boundary for organization-scoped imports.
// Implementations only need get/set by key.
type Store interface {
	// Get returns the stored bytes and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set replaces the bytes stored under key.
	Set(ctx context.Context, key string, data []byte) error
}

// StorageKey is the store key holding an organization's imports.
func StorageKey(orgID string) string {
	return orgID + ":dataEngine:dictionaries"
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}

	return append([]byte(nil), data...), true, nil
}

// Set implements Store.
func (s *MemoryStore) Set(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), data...)

	return nil
}

// Snapshot returns a copy of every stored entry.
func (s *MemoryStore) Snapshot() map[string][]byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return maps.Clone(s.data)
}

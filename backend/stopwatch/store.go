package stopwatch

import (
	"maps"
	"sync"
)

// Store is the durable key/value persistence consumed by the Engine.
// Load returns a nil map and nil error when nothing has been saved.
// Save replaces the whole record; last write wins.
type Store interface {
	Load() (map[string]string, error)
	Save(map[string]string) error
}

// MemoryStore is a Store that lives only as long as the process.
type MemoryStore struct {
	mu    sync.Mutex
	kv    map[string]string
	saves int
}

func NewMemoryStore(initial map[string]string) *MemoryStore {
	return &MemoryStore{kv: maps.Clone(initial)}
}

func (m *MemoryStore) Load() (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.kv), nil
}

func (m *MemoryStore) Save(kv map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kv = maps.Clone(kv)
	m.saves++
	return nil
}

// Saves returns how many times Save has been called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

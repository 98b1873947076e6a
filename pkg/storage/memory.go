package storage

import (
	"sort"
	"strings"
	"sync"
)

// Memory is an in-memory Backend used for tests and demo deployments.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory creates an empty in-memory backend
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get retrieves the value stored under key
func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put stores value under key, replacing any previous value
func (m *Memory) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.data[key] = stored
	return nil
}

// Delete removes key and reports whether it existed
func (m *Memory) Delete(key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.data[key]
	delete(m.data, key)
	return ok, nil
}

// List returns all pairs whose key starts with prefix, in key order
func (m *Memory) List(prefix string) ([]KV, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []KV
	for key, value := range m.data {
		if strings.HasPrefix(key, prefix) {
			stored := make([]byte, len(value))
			copy(stored, value)
			out = append(out, KV{Key: key, Value: stored})
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

// Close is a no-op for the in-memory backend
func (m *Memory) Close() error {
	return nil
}

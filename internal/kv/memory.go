package kv

import (
	"context"
	"sync"
)

// Memory is a map-backed Store. It is the default backend for local
// runs and the fake of choice in tests.
type Memory struct {
	mu     sync.Mutex
	values map[string]string

	// SaveErr, when set, is returned by every Save. Tests use it to
	// exercise the ledger's log-and-swallow write path.
	SaveErr error
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// NewMemorySeeded returns a Memory store preloaded with the given values.
func NewMemorySeeded(values map[string]string) *Memory {
	m := NewMemory()
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *Memory) Load(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Save(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.values[key] = value
	return nil
}

// Len reports the number of stored keys.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}

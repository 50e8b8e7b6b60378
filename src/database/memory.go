package database

import (
	"context"
	"sync"
)

// Memory is a Store that lives as long as the process.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(ctx context.Context, collection string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[collection]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) Set(ctx context.Context, collection string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)
	m.mu.Lock()
	m.values[collection] = v
	m.mu.Unlock()
	return nil
}

func (m *Memory) Close() error {
	return nil
}

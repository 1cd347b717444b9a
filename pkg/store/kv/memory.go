package kv

import (
	"context"
	"sync"
)

// Memory is an ephemeral, thread-safe Backend. Values are copied on the way
// in and out.
type Memory struct {
	values sync.Map // Key: string, Value: []byte
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, ok := m.values.Load(key)
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v.([]byte)...), true, nil
}

func (m *Memory) Set(ctx context.Context, key string, value []byte) error {
	m.values.Store(key, append([]byte(nil), value...))
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.values.Delete(key)
	return nil
}

func (m *Memory) Migrate(ctx context.Context) error { return nil }

func (m *Memory) Close() error { return nil }

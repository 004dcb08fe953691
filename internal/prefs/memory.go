package prefs

import (
	"context"
	"sync"
)

// MemoryStore keeps preferences for the life of the process.
type MemoryStore struct {
	*settings
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty store with the given number of slots.
func NewMemoryStore(slots int) *MemoryStore {
	return &MemoryStore{settings: newSettings(&memoryKV{values: map[string]string{}}, slots)}
}

func (*MemoryStore) Close() error { return nil }

type memoryKV struct {
	mu     sync.RWMutex
	values map[string]string
}

func (m *memoryKV) get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memoryKV) set(ctx context.Context, entries ...entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entries {
		m.values[e.key] = e.value
	}
	return nil
}

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Store persists JSON-encoded values by key.
type Store interface {
	// Load decodes the value stored under key into dest. It reports false,
	// with a nil error, when the key does not exist.
	Load(ctx context.Context, key string, dest any) (bool, error)
	// Save encodes v and stores it under key, replacing any previous value.
	Save(ctx context.Context, key string, v any) error
	// Close releases backend resources.
	Close() error
}

// MemoryStore keeps values in process memory. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Load(ctx context.Context, key string, dest any) (bool, error) {
	m.mu.Lock()
	raw, ok := m.data[key]
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return true, nil
}

func (m *MemoryStore) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Close() error { return nil }

package history

import (
	"context"
	"sync"
)

// DefaultLimit is the number of entries kept by each tool history.
const DefaultLimit = 10

// List is a capped, newest-first list of T persisted under one key.
//
// Push is a read-modify-write and is serialized per List; separate
// processes sharing a backend may still race.
type List[T any] struct {
	store Store
	key   string
	limit int
	same  func(a, b T) bool

	mu sync.Mutex
}

// NewList creates a list stored under key holding at most limit entries
// (DefaultLimit when limit <= 0). When same is non-nil, Push removes any
// existing entry for which same reports true before prepending.
func NewList[T any](store Store, key string, limit int, same func(a, b T) bool) *List[T] {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &List[T]{store: store, key: key, limit: limit, same: same}
}

// Limit returns the maximum number of entries kept.
func (l *List[T]) Limit() int {
	return l.limit
}

// Get returns the stored entries, newest first. A missing key is an empty list.
func (l *List[T]) Get(ctx context.Context) ([]T, error) {
	var items []T
	ok, err := l.store.Load(ctx, l.key, &items)
	if err != nil {
		return nil, err
	}
	if !ok || items == nil {
		return []T{}, nil
	}
	return items, nil
}

// Set replaces the stored entries, truncated to the limit.
func (l *List[T]) Set(ctx context.Context, items []T) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(items) > l.limit {
		items = items[:l.limit]
	}
	if items == nil {
		items = []T{}
	}
	return l.store.Save(ctx, l.key, items)
}

// Push prepends item and returns the updated list.
func (l *List[T]) Push(ctx context.Context, item T) ([]T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	items, err := l.Get(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	for _, existing := range items {
		if l.same != nil && l.same(existing, item) {
			continue
		}
		out = append(out, existing)
	}
	if len(out) > l.limit {
		out = out[:l.limit]
	}

	if err := l.store.Save(ctx, l.key, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Clear removes all entries.
func (l *List[T]) Clear(ctx context.Context) error {
	return l.Set(ctx, nil)
}

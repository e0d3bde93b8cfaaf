package repositories

import (
	"context"
	"errors"
	"sort"
	"sync"
)

var ErrRowNotFound = errors.New("row not found")

// RowStore is a flat key/value table. Keys are tournament names, values are
// opaque payloads.
type RowStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

type memoryRowStore struct {
	mu   sync.RWMutex
	rows map[string][]byte
}

// NewMemoryRowStore keeps rows in process memory. Used for local runs and
// tests.
func NewMemoryRowStore() RowStore {
	return &memoryRowStore{rows: make(map[string][]byte)}
}

func (s *memoryRowStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.rows[key]
	if !ok {
		return nil, ErrRowNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *memoryRowStore) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows[key] = append([]byte(nil), value...)
	return nil
}

func (s *memoryRowStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[key]; !ok {
		return ErrRowNotFound
	}
	delete(s.rows, key)
	return nil
}

func (s *memoryRowStore) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.rows))
	for k := range s.rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

package repositories

import (
	"context"
	"sync"
)

// MemoryStore keeps values for the lifetime of the process.
type MemoryStore struct {
	lock   sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	value, ok := s.values[key]
	if !ok {
		return "", &ErrNotFound{Key: key}
	}
	return value, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.values[key] = value
	return nil
}

package storage

import (
	"errors"
	"sync"
)

// MemoryStore is an in-memory KV used in tests and as a fallback when no
// data file is configured.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string

	// FailWrites makes every Set return an error, simulating a full or
	// broken storage layer.
	FailWrites bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWrites {
		return errors.New("storage write failed")
	}
	s.data[key] = value
	return nil
}

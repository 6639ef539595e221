package store

import (
	"context"
	"sort"
	"sync"

	"github.com/cdoyle/lister-tui/internal/list"
)

// MemStore is an in-memory DocumentStore. Used in tests and as the backing
// store for scratch documents that should not touch disk.
type MemStore struct {
	mu   sync.RWMutex
	docs map[string]*list.List
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{docs: make(map[string]*list.List)}
}

// Load implements DocumentStore. The returned list is a copy, matching the
// deserialize-on-load behavior of the durable stores.
func (s *MemStore) Load(ctx context.Context, name string) (*list.List, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.docs[name]
	if !ok {
		return nil, ErrNotFound
	}
	return l.Copy(), nil
}

// Save implements DocumentStore.
func (s *MemStore) Save(ctx context.Context, name string, l *list.List) error {
	if name == "" {
		return ErrEmptyName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[name] = l.Copy()
	return nil
}

// List implements DocumentStore.
func (s *MemStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Delete implements DocumentStore.
func (s *MemStore) Delete(ctx context.Context, name string) error {
	if name == "" {
		return ErrEmptyName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[name]; !ok {
		return ErrNotFound
	}
	delete(s.docs, name)
	return nil
}

// Close implements DocumentStore.
func (s *MemStore) Close() error {
	return nil
}

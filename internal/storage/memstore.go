package storage

import (
	"context"
	"sync"
)

// MemStore keeps the payload in memory only. It backs the "do not remember
// across sessions" preference: data written here lives exactly as long as
// the process.
type MemStore struct {
	mu   sync.Mutex
	body string
	ok   bool
}

// NewMemStore returns an empty ephemeral store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Read implements Store.
func (s *MemStore) Read(_ context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.body, s.ok, nil
}

// Write implements Store.
func (s *MemStore) Write(_ context.Context, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.body = body
	s.ok = true
	return nil
}

// Clear implements Store.
func (s *MemStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.body = ""
	s.ok = false
	return nil
}

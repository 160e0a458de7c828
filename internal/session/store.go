package session

import (
	"context"
	"sync"
)

// Store holds one Context per session id. Get returns (nil, nil) when the
// session has no stored product.
type Store interface {
	Get(ctx context.Context, sessionID string) (*Context, error)
	Put(ctx context.Context, sessionID string, sc *Context) error
	Clear(ctx context.Context, sessionID string) error
}

// MemoryStore is the in-process Store used in tests and single-instance
// development runs.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Context
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Context)}
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (*Context, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionID], nil
}

func (s *MemoryStore) Put(_ context.Context, sessionID string, sc *Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = sc
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

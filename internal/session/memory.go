package session

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewMemoryStore constructs an in-memory Store implementation for tests and
// development. Sessions do not survive a restart.
func NewMemoryStore() Store {
	return &memoryStore{
		sessions: make(map[int64]*Session),
	}
}

func (m *memoryStore) Get(_ context.Context, userID int64) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		return s.Clone(), nil
	}
	return New(userID), nil
}

func (m *memoryStore) Save(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[s.UserID] = s.Clone()
	return nil
}

func (m *memoryStore) Update(_ context.Context, userID int64, fn func(*Session) error) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.sessions[userID]
	if !ok {
		current = New(userID)
	}
	working := current.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	m.sessions[userID] = working
	return working.Clone(), nil
}

func (m *memoryStore) Close() error {
	return nil
}

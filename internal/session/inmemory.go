package session

import "sync"

// InMemoryStore holds the token in process memory. Used by tests and by
// one-shot command invocations that never persist a login.
type InMemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewInMemoryStore(token string) *InMemoryStore {
	return &InMemoryStore{token: token}
}

func (s *InMemoryStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *InMemoryStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *InMemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}

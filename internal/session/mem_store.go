package session

import (
	"context"
	"sync"
)

// MemStore is an in-memory Store used by tests and short-lived commands.
type MemStore struct {
	mu      sync.Mutex
	token   string
	profile *Profile
}

// NewMemStore returns an empty in-memory session store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) SetToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemStore) Token(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemStore) SetProfile(_ context.Context, profile *Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
	return nil
}

func (s *MemStore) Profile(_ context.Context) (*Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile, nil
}

func (s *MemStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.profile = nil
	return nil
}

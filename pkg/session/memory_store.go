package session

import (
	"context"
	"sync"

	"github.com/fibear/portal/pkg/auth"
)

// MemoryStore is an in-process auth.SessionStore. It does not survive
// restarts and exists for tests and local development without Redis.
type MemoryStore struct {
	mu   sync.RWMutex
	sess *auth.Session
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Current(ctx context.Context) (*auth.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess == nil {
		return nil, nil
	}
	ident := s.sess.Identity
	return &ident, nil
}

func (s *MemoryStore) CurrentSession(ctx context.Context) (*auth.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sess == nil {
		return nil, nil
	}
	sess := *s.sess
	return &sess, nil
}

func (s *MemoryStore) SetCurrent(ctx context.Context, sess auth.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = &sess
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = nil
	return nil
}

func (s *MemoryStore) UpdateDisplayName(ctx context.Context, name string) (*auth.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sess == nil {
		return nil, auth.ErrNoActiveSession
	}
	s.sess.Identity.DisplayName = name
	ident := s.sess.Identity
	return &ident, nil
}

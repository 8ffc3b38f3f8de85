package memory

import (
	"context"
	"sync"

	"github.com/mamadbah2/farmledger/internal/domain/models"
)

// SessionStore keeps the dashboard session in process memory. It is used when
// no MongoDB connection is configured, so sessions do not survive restarts.
type SessionStore struct {
	mu      sync.RWMutex
	session *models.Session
}

// NewSessionStore creates an empty session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// LoadSession returns the stored session or nil.
func (s *SessionStore) LoadSession(_ context.Context) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil, nil
	}
	session := *s.session
	return &session, nil
}

// SaveSession replaces the stored session.
func (s *SessionStore) SaveSession(_ context.Context, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = &session
	return nil
}

// ClearSession removes the stored session.
func (s *SessionStore) ClearSession(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	return nil
}

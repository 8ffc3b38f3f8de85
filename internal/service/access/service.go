// Package access implements dashboard sign-in and user administration.
package access

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/farmledger/internal/domain/models"
)

var (
	ErrDuplicateEmail   = errors.New("email is already registered")
	ErrUserNotFound     = errors.New("user not found")
	ErrLastAdmin        = errors.New("the only administrator cannot lose the admin role or be deleted")
	ErrLastActiveAdmin  = errors.New("the only active administrator cannot be deactivated")
	ErrSelfDeactivation = errors.New("you cannot deactivate your own account")
	ErrSelfDeletion     = errors.New("you cannot delete your own account")
)

// SessionStore persists the sign-in flag across restarts.
type SessionStore interface {
	LoadSession(ctx context.Context) (*models.Session, error)
	SaveSession(ctx context.Context, session models.Session) error
	ClearSession(ctx context.Context) error
}

// Service holds the user list and the current session.
type Service struct {
	mu sync.RWMutex

	users         []models.User
	current       *models.User
	authenticated bool

	store  SessionStore
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewService builds the access service with the given users as the initial list.
func NewService(store SessionStore, seed []models.User, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	users := make([]models.User, len(seed))
	copy(users, seed)
	return &Service{
		users:  users,
		store:  store,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Restore reads a persisted session, if any, into memory.
func (s *Service) Restore(ctx context.Context) error {
	session, err := s.store.LoadSession(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if session == nil || !session.Authenticated {
		return nil
	}
	user := session.User
	s.current = &user
	s.authenticated = true
	s.logger.Info("session restored", zap.String("user_id", user.ID))
	return nil
}

// Login signs in an active user whose email and password match exactly.
func (s *Service) Login(ctx context.Context, email, password string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, u := range s.users {
		if u.Email == email && u.Password == password && u.Active {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.logger.Info("login rejected", zap.String("email", email))
		return false, nil
	}

	user := s.users[idx]
	if err := s.store.SaveSession(ctx, models.Session{Authenticated: true, User: user, SavedAt: s.now()}); err != nil {
		return false, fmt.Errorf("save session: %w", err)
	}
	s.current = &user
	s.authenticated = true
	s.logger.Info("login succeeded", zap.String("user_id", user.ID))
	return true, nil
}

// Logout clears the in-memory and persisted session.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ClearSession(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.current = nil
	s.authenticated = false
	return nil
}

// IsAuthenticated reports the session flag.
func (s *Service) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

// CurrentUser returns the signed-in user.
func (s *Service) CurrentUser() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return models.User{}, false
	}
	return *s.current, true
}

// Users lists every account.
func (s *Service) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.User{}, s.users...)
}

package access

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/farmledger/internal/domain/models"
)

// CreateUser adds an account. Emails must be unique.
func (s *Service) CreateUser(_ context.Context, form models.UserForm) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == form.Email {
			return models.User{}, ErrDuplicateEmail
		}
	}

	user := models.User{
		ID:       s.newID(),
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Role:     form.Role,
		Active:   form.Active == nil || *form.Active,
	}
	s.users = append(s.users, user)
	s.logger.Info("user created", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// UpdateUser replaces an account's fields. An empty password and a nil
// active flag keep the stored values. The only administrator keeps the admin
// role, and deactivation follows the same rules as SetUserActive.
func (s *Service) UpdateUser(ctx context.Context, id string, form models.UserForm) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.User{}, ErrUserNotFound
	}

	for i, u := range s.users {
		if i != idx && u.Email == form.Email {
			return models.User{}, ErrDuplicateEmail
		}
	}

	existing := s.users[idx]
	if existing.Role == models.RoleAdmin && form.Role != models.RoleAdmin && s.countLocked(isAdmin) == 1 {
		return models.User{}, ErrLastAdmin
	}
	if isActiveAdmin(existing) && form.Role != models.RoleAdmin && s.countLocked(isActiveAdmin) == 1 {
		return models.User{}, ErrLastActiveAdmin
	}
	if form.Active != nil && existing.Active && !*form.Active {
		if err := s.checkDeactivationLocked(idx); err != nil {
			return models.User{}, err
		}
	}

	updated := existing
	updated.Name = form.Name
	updated.Email = form.Email
	updated.Role = form.Role
	if form.Active != nil {
		updated.Active = *form.Active
	}
	if form.Password != "" {
		updated.Password = form.Password
	}

	if s.current != nil && s.current.ID == id {
		session := models.Session{Authenticated: s.authenticated, User: updated, SavedAt: s.now()}
		if err := s.store.SaveSession(ctx, session); err != nil {
			return models.User{}, fmt.Errorf("save session: %w", err)
		}
		s.current = &updated
	}

	s.users[idx] = updated
	s.logger.Info("user updated", zap.String("user_id", id))
	return updated, nil
}

// SetUserActive activates or deactivates an account.
func (s *Service) SetUserActive(_ context.Context, id string, active bool) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.User{}, ErrUserNotFound
	}
	return s.setActiveLocked(idx, active)
}

// ToggleUserStatus flips an account between active and inactive.
func (s *Service) ToggleUserStatus(_ context.Context, id string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.User{}, ErrUserNotFound
	}
	return s.setActiveLocked(idx, !s.users[idx].Active)
}

func (s *Service) setActiveLocked(idx int, active bool) (models.User, error) {
	if s.users[idx].Active == active {
		return s.users[idx], nil
	}
	if !active {
		if err := s.checkDeactivationLocked(idx); err != nil {
			return models.User{}, err
		}
	}

	s.users[idx].Active = active
	s.logger.Info("user status changed", zap.String("user_id", s.users[idx].ID), zap.Bool("active", active))
	return s.users[idx], nil
}

// DeleteUser removes an account. The only administrator and the signed-in
// user cannot be deleted.
func (s *Service) DeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return ErrUserNotFound
	}
	if s.users[idx].Role == models.RoleAdmin && s.countLocked(isAdmin) == 1 {
		return ErrLastAdmin
	}
	if s.current != nil && s.current.ID == id {
		return ErrSelfDeletion
	}

	s.users = append(s.users[:idx:idx], s.users[idx+1:]...)
	s.logger.Info("user deleted", zap.String("user_id", id))
	return nil
}

func (s *Service) checkDeactivationLocked(idx int) error {
	u := s.users[idx]
	if u.Role == models.RoleAdmin && u.Active && s.countLocked(isActiveAdmin) == 1 {
		return ErrLastActiveAdmin
	}
	if s.current != nil && s.current.ID == u.ID {
		return ErrSelfDeactivation
	}
	return nil
}

func (s *Service) indexOf(id string) int {
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) countLocked(match func(models.User) bool) int {
	var n int
	for _, u := range s.users {
		if match(u) {
			n++
		}
	}
	return n
}

func isAdmin(u models.User) bool       { return u.Role == models.RoleAdmin }
func isActiveAdmin(u models.User) bool { return isAdmin(u) && u.Active }

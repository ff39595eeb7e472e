package memstore

import (
	"context"
	"strings"
	"sync"

	"edr/internal/core/apperror"
	"edr/internal/domain/auth"
)

// UserStore is the in-memory auth.UserRepository.
type UserStore struct {
	mu    sync.RWMutex
	users map[int64]*auth.User
}

// NewUserStore creates an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[int64]*auth.User)}
}

func cloneUser(u *auth.User) *auth.User {
	cp := *u
	return &cp
}

// Create implements auth.UserRepository. Emails are unique,
// case-insensitively.
func (s *UserStore) Create(ctx context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return apperror.NewDuplicate("user", "email", user.Email)
		}
	}

	var max int64
	for id := range s.users {
		if id > max {
			max = id
		}
	}
	user.ID = max + 1
	s.users[user.ID] = cloneUser(user)
	return nil
}

// GetByID implements auth.UserRepository.
func (s *UserStore) GetByID(ctx context.Context, id int64) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperror.NewNotFound("user", id)
	}
	return cloneUser(u), nil
}

// GetByEmail implements auth.UserRepository.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, apperror.NewNotFound("user", email)
}

// Update implements auth.UserRepository.
func (s *UserStore) Update(ctx context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return apperror.NewNotFound("user", user.ID)
	}
	s.users[user.ID] = cloneUser(user)
	return nil
}

// ExistsByEmail implements auth.UserRepository.
func (s *UserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

var _ auth.UserRepository = (*UserStore)(nil)

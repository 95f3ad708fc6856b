package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bframe197/MilMedMatch/internal/model"
	"github.com/bframe197/MilMedMatch/pkg/apperror"
)

// Users returns a snapshot of every user, in registration order.
func (s *Store) Users() []model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.User, len(s.users))
	for i, u := range s.users {
		out[i] = u.Clone()
	}
	return out
}

// FindUserByID returns a copy of the user with the given id.
func (s *Store) FindUserByID(id uuid.UUID) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u.Clone(), nil
		}
	}
	return model.User{}, fmt.Errorf("user %s: %w", id, apperror.ErrNotFound)
}

// FindUserByUsername returns a copy of the user with the given username.
func (s *Store) FindUserByUsername(username string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u.Clone(), nil
		}
	}
	return model.User{}, fmt.Errorf("user %q: %w", username, apperror.ErrNotFound)
}

// AppendUser adds a new user. Usernames and ids must be unique.
func (s *Store) AppendUser(u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.ID == u.ID {
			return fmt.Errorf("user id %s already exists: %w", u.ID, apperror.ErrConflict)
		}
		if existing.Username == u.Username {
			return fmt.Errorf("username %q already taken: %w", u.Username, apperror.ErrConflict)
		}
	}
	next := make([]model.User, 0, len(s.users)+1)
	next = append(next, s.users...)
	next = append(next, u.Clone())
	s.users = next
	return nil
}

// ReplaceUser swaps the stored user matching u.ID for u, wholesale.
func (s *Store) ReplaceUser(u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.users {
		if existing.ID != u.ID {
			continue
		}
		next := make([]model.User, len(s.users))
		copy(next, s.users)
		next[i] = u.Clone()
		s.users = next
		return nil
	}
	return fmt.Errorf("user %s: %w", u.ID, apperror.ErrNotFound)
}

// RemoveUser deletes the user with the given id.
func (s *Store) RemoveUser(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]model.User, 0, len(s.users))
	found := false
	for _, u := range s.users {
		if u.ID == id {
			found = true
			continue
		}
		next = append(next, u)
	}
	if !found {
		return fmt.Errorf("user %s: %w", id, apperror.ErrNotFound)
	}
	s.users = next
	return nil
}

// NotifyUsers prepends a notification to every user the predicate selects
// and reports how many users were reached. The prepend keeps each list
// ordered newest first.
func (s *Store) NotifyUsers(match func(model.User) bool, n model.Notification) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]model.User, len(s.users))
	copy(next, s.users)
	count := 0
	for i, u := range next {
		if !match(u) {
			continue
		}
		updated := u.Clone()
		updated.Notifications = append([]model.Notification{n}, updated.Notifications...)
		next[i] = updated
		count++
	}
	s.users = next
	return count
}

package store

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/bframe197/MilMedMatch/internal/model"
	"github.com/bframe197/MilMedMatch/pkg/apperror"
)

// Requests returns a snapshot of every ADT request in submission order.
func (s *Store) Requests() []model.ADTRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ADTRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// FindRequest returns a copy of the request with the given id.
func (s *Store) FindRequest(id uuid.UUID) (model.ADTRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return model.ADTRequest{}, fmt.Errorf("adt request %s: %w", id, apperror.ErrNotFound)
}

// AppendRequest adds a newly submitted request.
func (s *Store) AppendRequest(r model.ADTRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.requests {
		if existing.ID == r.ID {
			return fmt.Errorf("adt request %s already exists: %w", r.ID, apperror.ErrConflict)
		}
	}
	next := make([]model.ADTRequest, 0, len(s.requests)+1)
	next = append(next, s.requests...)
	next = append(next, r)
	s.requests = next
	return nil
}

// ReplaceRequest swaps the stored request matching r.ID for r, wholesale.
func (s *Store) ReplaceRequest(r model.ADTRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.requests {
		if existing.ID != r.ID {
			continue
		}
		next := make([]model.ADTRequest, len(s.requests))
		copy(next, s.requests)
		next[i] = r
		s.requests = next
		return nil
	}
	return fmt.Errorf("adt request %s: %w", r.ID, apperror.ErrNotFound)
}

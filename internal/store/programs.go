package store

import (
	"fmt"

	"github.com/bframe197/MilMedMatch/internal/model"
	"github.com/bframe197/MilMedMatch/pkg/apperror"
)

// Programs returns a snapshot of the whole catalog in catalog order.
func (s *Store) Programs() []model.ResidencyProgram {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ResidencyProgram, len(s.programs))
	for i, p := range s.programs {
		out[i] = p.Clone()
	}
	return out
}

// FindProgram returns a copy of the catalog entry with the given id.
func (s *Store) FindProgram(id string) (model.ResidencyProgram, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.programs {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return model.ResidencyProgram{}, fmt.Errorf("program %q: %w", id, apperror.ErrNotFound)
}

// PrependProgram adds a new catalog entry at the front of the list. Two
// programs may never collide on derived id.
func (s *Store) PrependProgram(p model.ResidencyProgram) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.programs {
		if existing.ID == p.ID {
			return fmt.Errorf("program %q already exists: %w", p.ID, apperror.ErrConflict)
		}
	}
	next := make([]model.ResidencyProgram, 0, len(s.programs)+1)
	next = append(next, p.Clone())
	next = append(next, s.programs...)
	s.programs = next
	return nil
}

// AppendProgram adds a catalog entry at the end; used by the bootstrap seed
// so the seeded catalog keeps its authored order.
func (s *Store) AppendProgram(p model.ResidencyProgram) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.programs {
		if existing.ID == p.ID {
			return fmt.Errorf("program %q already exists: %w", p.ID, apperror.ErrConflict)
		}
	}
	next := make([]model.ResidencyProgram, 0, len(s.programs)+1)
	next = append(next, s.programs...)
	next = append(next, p.Clone())
	s.programs = next
	return nil
}

// ReplaceProgram swaps the stored entry matching p.ID for p, wholesale.
// Nested edits (contacts, videos, strengths, residents) all ride on this.
func (s *Store) ReplaceProgram(p model.ResidencyProgram) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.programs {
		if existing.ID != p.ID {
			continue
		}
		next := make([]model.ResidencyProgram, len(s.programs))
		copy(next, s.programs)
		next[i] = p.Clone()
		s.programs = next
		return nil
	}
	return fmt.Errorf("program %q: %w", p.ID, apperror.ErrNotFound)
}

// RemoveProgram deletes a catalog entry.
func (s *Store) RemoveProgram(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make([]model.ResidencyProgram, 0, len(s.programs))
	found := false
	for _, p := range s.programs {
		if p.ID == id {
			found = true
			continue
		}
		next = append(next, p)
	}
	if !found {
		return fmt.Errorf("program %q: %w", id, apperror.ErrNotFound)
	}
	s.programs = next
	return nil
}

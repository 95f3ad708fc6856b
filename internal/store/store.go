// Package store holds all volatile application state behind one owned
// object with controlled mutation entry points. Reads hand out copies and
// every mutation replaces the affected collection wholesale, so callers
// never share a mutable slice with the store and a concurrent session can
// never observe a half-applied edit.
package store

import (
	"sync"

	"github.com/bframe197/MilMedMatch/internal/model"
)

// Store is the single in-memory state container. A fresh Store is empty;
// the bootstrap package seeds the catalog and deadlines.
type Store struct {
	mu sync.RWMutex

	users     []model.User
	programs  []model.ResidencyProgram
	requests  []model.ADTRequest
	deadlines []model.MatchDeadline

	defaultImage string
}

func New() *Store {
	return &Store{}
}

// DefaultImage returns the catalog-wide fallback cover image URL.
func (s *Store) DefaultImage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultImage
}

func (s *Store) SetDefaultImage(url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultImage = url
}

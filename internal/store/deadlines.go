package store

import "github.com/bframe197/MilMedMatch/internal/model"

// Deadlines returns a snapshot of the match timeline in display order.
func (s *Store) Deadlines() []model.MatchDeadline {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.MatchDeadline, len(s.deadlines))
	copy(out, s.deadlines)
	return out
}

// ReplaceDeadlines swaps the whole timeline. The list is small and edited
// as one unit by an administrator, so wholesale replacement is the only
// mutation offered.
func (s *Store) ReplaceDeadlines(deadlines []model.MatchDeadline) {
	next := make([]model.MatchDeadline, len(deadlines))
	copy(next, deadlines)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deadlines = next
}

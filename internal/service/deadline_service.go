package service

import (
	"strconv"

	"github.com/bframe197/MilMedMatch/internal/dto"
	"github.com/bframe197/MilMedMatch/internal/model"
	"github.com/bframe197/MilMedMatch/internal/rbac"
	"github.com/bframe197/MilMedMatch/internal/store"
	"github.com/bframe197/MilMedMatch/pkg/apperror"
)

type DeadlineService interface {
	List() []model.MatchDeadline

	// Replace swaps the whole timeline for the administrator's edited copy.
	Replace(actor model.User, input dto.UpdateDeadlinesInput) ([]model.MatchDeadline, error)
}

type deadlineService struct {
	store *store.Store
}

func NewDeadlineService(s *store.Store) DeadlineService {
	return &deadlineService{store: s}
}

func (s *deadlineService) List() []model.MatchDeadline {
	return s.store.Deadlines()
}

func (s *deadlineService) Replace(actor model.User, input dto.UpdateDeadlinesInput) ([]model.MatchDeadline, error) {
	if !rbac.ForRole(actor.Role).ManagePrograms {
		return nil, apperror.ErrForbidden
	}

	deadlines := make([]model.MatchDeadline, len(input.Deadlines))
	for i, d := range input.Deadlines {
		id := d.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		deadlines[i] = model.MatchDeadline{
			ID:          id,
			Event:       d.Event,
			Date:        d.Date,
			Description: d.Description,
		}
	}
	s.store.ReplaceDeadlines(deadlines)
	return deadlines, nil
}

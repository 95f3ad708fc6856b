package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/bframe197/MilMedMatch/internal/dto"
	"github.com/bframe197/MilMedMatch/internal/model"
	"github.com/bframe197/MilMedMatch/internal/rbac"
	"github.com/bframe197/MilMedMatch/internal/store"
	"github.com/bframe197/MilMedMatch/pkg/apperror"
)

type ProfileService interface {
	Get(userID uuid.UUID) (model.User, error)

	// Update replaces the stored user wholesale with the edited draft.
	Update(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileInput) (model.User, error)

	// Delete removes the user's own account.
	Delete(ctx context.Context, userID uuid.UUID) error

	// ListUsers returns every registered user (administrator view).
	ListUsers() []model.User

	// ListProspects returns the users visible to a recruiter.
	ListProspects() []model.User
}

type profileService struct {
	store *store.Store
}

func NewProfileService(s *store.Store) ProfileService {
	return &profileService{store: s}
}

func (s *profileService) Get(userID uuid.UUID) (model.User, error) {
	return s.store.FindUserByID(userID)
}

func (s *profileService) Update(ctx context.Context, userID uuid.UUID, input dto.UpdateProfileInput) (model.User, error) {
	user, err := s.store.FindUserByID(userID)
	if err != nil {
		return model.User{}, err
	}

	branch := model.Branch(input.Branch)
	if !branch.Valid() {
		return model.User{}, apperror.Invalid(fmt.Sprintf("unknown branch %q", input.Branch))
	}
	if branch == model.BranchUndecided && user.Role != model.RolePreMed {
		return model.User{}, apperror.Invalid("branch Undecided is only available to Pre-med users")
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Email = input.Email
	user.Branch = branch
	user.Specialty = input.Specialty
	user.City = input.City
	user.State = input.State
	user.ProfileImageURL = input.ProfileImageURL
	user.MedicalSchool = input.MedicalSchool
	user.ResidencyProgram = input.ResidencyProgram
	user.UndergradSchool = input.UndergradSchool
	keepRelevantSchool(&user)

	if err := s.store.ReplaceUser(user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (s *profileService) Delete(ctx context.Context, userID uuid.UUID) error {
	return s.store.RemoveUser(userID)
}

func (s *profileService) ListUsers() []model.User {
	return s.store.Users()
}

func (s *profileService) ListProspects() []model.User {
	var out []model.User
	for _, u := range s.store.Users() {
		if rbac.VisibleToRecruiter(u) {
			out = append(out, u)
		}
	}
	return out
}

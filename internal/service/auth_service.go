package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/bframe197/MilMedMatch/internal/accesscode"
	"github.com/bframe197/MilMedMatch/internal/dto"
	"github.com/bframe197/MilMedMatch/internal/model"
	"github.com/bframe197/MilMedMatch/internal/rbac"
	"github.com/bframe197/MilMedMatch/internal/store"
	"github.com/bframe197/MilMedMatch/pkg/apperror"
)

type AuthService interface {
	// Login authenticates an exact (username, password) pair. Failure is a
	// distinguishable error value; the user collection is never mutated.
	Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error)

	// Signup registers a new user and immediately establishes a session.
	// Every role except Pre-med must present the current monthly access
	// code or the registration is rejected without appending a user.
	Signup(ctx context.Context, input dto.SignupInput) (*dto.AuthResponse, error)

	// Logout revokes the session token, returning the caller to the
	// anonymous state.
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
}

type authService struct {
	store  *store.Store
	rdb    *redis.Client
	secret string
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(s *store.Store, rdb *redis.Client, secret string, ttl time.Duration) AuthService {
	return &authService{
		store:  s,
		rdb:    rdb,
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := s.store.FindUserByUsername(input.Username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.New(401, "invalid credentials", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperror.New(401, "invalid credentials", apperror.ErrUnauthorized)
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Signup(ctx context.Context, input dto.SignupInput) (*dto.AuthResponse, error) {
	role := model.Role(input.Role)
	if !role.Valid() {
		return nil, apperror.Invalid(fmt.Sprintf("unknown role %q", input.Role))
	}
	branch := model.Branch(input.Branch)
	if !branch.Valid() {
		return nil, apperror.Invalid(fmt.Sprintf("unknown branch %q", input.Branch))
	}
	if branch == model.BranchUndecided && role != model.RolePreMed {
		return nil, apperror.Invalid("branch Undecided is only available to Pre-med users")
	}

	if rbac.ForRole(role).RequiresAccessCode {
		want := accesscode.For(role, s.now())
		if subtle.ConstantTimeCompare([]byte(input.AccessCode), []byte(want)) != 1 {
			return nil, apperror.Invalid("access code is missing or incorrect for the selected role")
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:               uuid.New(),
		Username:         input.Username,
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		Email:            input.Email,
		PasswordHash:     string(hash),
		Branch:           branch,
		Role:             role,
		Specialty:        input.Specialty,
		City:             input.City,
		State:            input.State,
		CreatedAt:        s.now(),
		Notifications:    []model.Notification{},
		MedicalSchool:    input.MedicalSchool,
		ResidencyProgram: input.ResidencyProgram,
		UndergradSchool:  input.UndergradSchool,
	}
	keepRelevantSchool(&user)

	if err := s.store.AppendUser(user); err != nil {
		return nil, err
	}

	return s.buildAuthResponse(user)
}

func (s *authService) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	return RevokeToken(ctx, s.rdb, tokenID, time.Until(expiresAt))
}

func (s *authService) buildAuthResponse(user model.User) (*dto.AuthResponse, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.ttl.Seconds()),
		User:        user,
		LandingView: rbac.ForRole(user.Role).LandingView,
	}, nil
}

// keepRelevantSchool blanks the school fields that do not apply to the
// user's role: students keep medical school, residents and faculty keep the
// residency program, everyone else keeps the undergrad school.
func keepRelevantSchool(u *model.User) {
	switch u.Role {
	case model.RoleMedicalStudent:
		u.ResidencyProgram, u.UndergradSchool = "", ""
	case model.RoleResident, model.RoleFaculty:
		u.MedicalSchool, u.UndergradSchool = "", ""
	default:
		u.MedicalSchool, u.ResidencyProgram = "", ""
	}
}

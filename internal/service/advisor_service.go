package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"

	"github.com/bframe197/MilMedMatch/internal/ai"
	"github.com/bframe197/MilMedMatch/internal/dto"
	"github.com/bframe197/MilMedMatch/internal/model"
	"github.com/bframe197/MilMedMatch/pkg/apperror"
)

// AdvisorFallback is returned verbatim whenever the advice collaborator is
// unreachable or fails.
const AdvisorFallback = "I'm having trouble connecting to my advisor module. Please try again later."

type AdvisorService interface {
	// GetAdvice answers a free-text match question for the user's branch
	// and selected specialty. Collaborator failure yields the static
	// fallback, never an error.
	GetAdvice(ctx context.Context, user model.User, input dto.AdviceInput) (string, error)

	// FindRecruiters returns synthetic recruiter listings near a zip code.
	// Collaborator failure yields an empty list, never an error.
	FindRecruiters(ctx context.Context, user model.User, input dto.RecruiterSearchInput) ([]dto.Recruiter, error)
}

type advisorService struct {
	aiClient  ai.Client
	rdb       *redis.Client
	timeout   time.Duration
	sanitizer *bluemonday.Policy
}

func NewAdvisorService(aiClient ai.Client, rdb *redis.Client, timeout time.Duration) AdvisorService {
	return &advisorService{
		aiClient:  aiClient,
		rdb:       rdb,
		timeout:   timeout,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *advisorService) GetAdvice(ctx context.Context, user model.User, input dto.AdviceInput) (string, error) {
	release, err := s.acquire(ctx, user, "advice")
	if err != nil {
		return "", err
	}
	defer release()

	if s.aiClient == nil {
		return AdvisorFallback, nil
	}

	branch := user.Branch.Normalized()
	question := s.sanitizer.Sanitize(input.Question)
	prompt := fmt.Sprintf(`You are a Military Graduate Medical Education (GME) advisor.
The user is applying to a %s residency in %s.
Question: %s

Provide professional, encouraging, and accurate advice regarding the Military Match process (MODS),
HPSP/USUHS requirements, and specific considerations for %s.`, branch, input.Specialty, question, branch)

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	answer, err := s.aiClient.GenerateText(genCtx, prompt)
	if err != nil {
		slog.Error("advice generation failed", "error", err)
		return AdvisorFallback, nil
	}
	return answer, nil
}

func (s *advisorService) FindRecruiters(ctx context.Context, user model.User, input dto.RecruiterSearchInput) ([]dto.Recruiter, error) {
	release, err := s.acquire(ctx, user, "recruiters")
	if err != nil {
		return nil, err
	}
	defer release()

	if s.aiClient == nil {
		return []dto.Recruiter{}, nil
	}

	branch := user.Branch.Normalized()
	prompt := fmt.Sprintf(`Find and list 3 realistic HPSP (Health Professions Scholarship Program) recruiters for the %s near zip code %s.
Return a JSON array of objects with the following properties:
"id" (string),
"name" (string, include rank appropriate for the %s),
"office" (string),
"phone" (string),
"distance" (string, strictly numeric value representing miles under 100, e.g., "3.2").
DO NOT include the word "miles" or "mi" in the distance string.
Ensure they sound like professional military recruiting offices.`, branch, input.ZipCode, branch)

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var recruiters []dto.Recruiter
	if err := s.aiClient.GenerateStructured(genCtx, prompt, &recruiters); err != nil {
		slog.Error("recruiter lookup failed", "error", err)
		return []dto.Recruiter{}, nil
	}
	return recruiters, nil
}

// acquire takes the per-user in-flight guard for one advisor action. While
// a call is outstanding a duplicate submission is rejected rather than
// queued.
func (s *advisorService) acquire(ctx context.Context, user model.User, action string) (func(), error) {
	acquired, err := AcquireInFlight(ctx, s.rdb, user.ID, action, s.timeout)
	if err != nil {
		slog.Warn("in-flight guard unavailable", "action", action, "error", err)
		return func() {}, nil
	}
	if !acquired {
		return nil, apperror.New(429, "a request of this kind is already in progress", apperror.ErrRateLimitExceeded)
	}
	return func() {
		if err := ReleaseInFlight(ctx, s.rdb, user.ID, action); err != nil {
			slog.Warn("failed to release in-flight guard", "action", action, "error", err)
		}
	}, nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/bframe197/MilMedMatch/internal/dto"
	"github.com/bframe197/MilMedMatch/internal/model"
	"github.com/bframe197/MilMedMatch/pkg/apperror"
)

// fakeAIClient scripts the collaborator's answers.
type fakeAIClient struct {
	text       string
	textErr    error
	structured string
	structErr  error
	lastPrompt string
}

func (f *fakeAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.text, f.textErr
}

func (f *fakeAIClient) GenerateStructured(ctx context.Context, prompt string, output any) error {
	f.lastPrompt = prompt
	if f.structErr != nil {
		return f.structErr
	}
	return json.Unmarshal([]byte(f.structured), output)
}

func (f *fakeAIClient) GenerateImage(ctx context.Context, prompt string) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAIClient) Close() {}

func advisorTestUser(branch model.Branch) model.User {
	return model.User{ID: uuid.New(), Username: "student", Role: model.RoleMedicalStudent, Branch: branch}
}

func TestGetAdvice(t *testing.T) {
	fake := &fakeAIClient{text: "Focus on your MODS application timeline."}
	svc := NewAdvisorService(fake, nil, time.Second)

	answer, err := svc.GetAdvice(context.Background(), advisorTestUser(model.BranchNavy), dto.AdviceInput{
		Specialty: "Cardiology",
		Question:  "How competitive is cardiology?",
	})
	if err != nil {
		t.Fatalf("GetAdvice() error = %v", err)
	}
	if answer != fake.text {
		t.Errorf("GetAdvice() = %q, want collaborator answer", answer)
	}
	if !strings.Contains(fake.lastPrompt, "Navy") || !strings.Contains(fake.lastPrompt, "Cardiology") {
		t.Errorf("prompt missing branch or specialty: %q", fake.lastPrompt)
	}
}

func TestGetAdviceFallsBackOnFailure(t *testing.T) {
	fake := &fakeAIClient{textErr: errors.New("upstream timeout")}
	svc := NewAdvisorService(fake, nil, time.Second)

	answer, err := svc.GetAdvice(context.Background(), advisorTestUser(model.BranchArmy), dto.AdviceInput{
		Specialty: "Surgery",
		Question:  "When should I apply?",
	})
	if err != nil {
		t.Fatalf("GetAdvice() error = %v, failures must not surface as errors", err)
	}
	if answer != AdvisorFallback {
		t.Errorf("GetAdvice() = %q, want fallback", answer)
	}
}

func TestGetAdviceWithoutCollaborator(t *testing.T) {
	svc := NewAdvisorService(nil, nil, time.Second)
	answer, err := svc.GetAdvice(context.Background(), advisorTestUser(model.BranchArmy), dto.AdviceInput{
		Specialty: "Surgery",
		Question:  "When should I apply?",
	})
	if err != nil || answer != AdvisorFallback {
		t.Fatalf("GetAdvice() = (%q, %v), want fallback", answer, err)
	}
}

func TestGetAdviceNormalizesUndecidedBranch(t *testing.T) {
	fake := &fakeAIClient{text: "ok"}
	svc := NewAdvisorService(fake, nil, time.Second)

	if _, err := svc.GetAdvice(context.Background(), advisorTestUser(model.BranchUndecided), dto.AdviceInput{
		Specialty: "Surgery",
		Question:  "Which branch should I pick?",
	}); err != nil {
		t.Fatalf("GetAdvice() error = %v", err)
	}
	if strings.Contains(fake.lastPrompt, "Undecided") {
		t.Errorf("prompt leaked Undecided branch: %q", fake.lastPrompt)
	}
	if !strings.Contains(fake.lastPrompt, "Army") {
		t.Errorf("prompt should normalize Undecided to Army: %q", fake.lastPrompt)
	}
}

func TestFindRecruiters(t *testing.T) {
	fake := &fakeAIClient{structured: `[
		{"id":"r1","name":"SSG Morgan Blake","office":"Austin Recruiting Station","phone":"512-555-0100","distance":"3.2"},
		{"id":"r2","name":"SFC Riley Cole","office":"Round Rock Office","phone":"512-555-0101","distance":"11.8"}
	]`}
	svc := NewAdvisorService(fake, nil, time.Second)

	recruiters, err := svc.FindRecruiters(context.Background(), advisorTestUser(model.BranchArmy), dto.RecruiterSearchInput{ZipCode: "78701"})
	if err != nil {
		t.Fatalf("FindRecruiters() error = %v", err)
	}
	if len(recruiters) != 2 || recruiters[0].Name != "SSG Morgan Blake" {
		t.Errorf("FindRecruiters() = %+v", recruiters)
	}
	if !strings.Contains(fake.lastPrompt, "78701") {
		t.Errorf("prompt missing zip code: %q", fake.lastPrompt)
	}
}

func TestFindRecruitersEmptyOnFailure(t *testing.T) {
	fake := &fakeAIClient{structErr: errors.New("quota exceeded")}
	svc := NewAdvisorService(fake, nil, time.Second)

	recruiters, err := svc.FindRecruiters(context.Background(), advisorTestUser(model.BranchArmy), dto.RecruiterSearchInput{ZipCode: "78701"})
	if err != nil {
		t.Fatalf("FindRecruiters() error = %v, failures must not surface as errors", err)
	}
	if len(recruiters) != 0 {
		t.Errorf("FindRecruiters() = %d results, want 0", len(recruiters))
	}
}

func TestAdvisorInFlightGuard(t *testing.T) {
	fake := &fakeAIClient{text: "ok"}
	rdb := newTestRedis(t)
	svc := NewAdvisorService(fake, rdb, time.Minute)
	user := advisorTestUser(model.BranchArmy)

	// Simulate an outstanding call by holding the guard ourselves.
	acquired, err := AcquireInFlight(context.Background(), rdb, user.ID, "advice", time.Minute)
	if err != nil || !acquired {
		t.Fatalf("AcquireInFlight() = (%v, %v)", acquired, err)
	}

	_, err = svc.GetAdvice(context.Background(), user, dto.AdviceInput{Specialty: "Surgery", Question: "q"})
	if !errors.Is(err, apperror.ErrRateLimitExceeded) {
		t.Fatalf("GetAdvice() while in flight error = %v, want ErrRateLimitExceeded", err)
	}

	// A different action for the same user is unaffected.
	if _, err := svc.FindRecruiters(context.Background(), user, dto.RecruiterSearchInput{ZipCode: "78701"}); err != nil {
		t.Errorf("FindRecruiters() error = %v", err)
	}

	// Releasing the guard lets the next call through.
	if err := ReleaseInFlight(context.Background(), rdb, user.ID, "advice"); err != nil {
		t.Fatalf("ReleaseInFlight() error = %v", err)
	}
	if _, err := svc.GetAdvice(context.Background(), user, dto.AdviceInput{Specialty: "Surgery", Question: "q"}); err != nil {
		t.Errorf("GetAdvice() after release error = %v", err)
	}
}

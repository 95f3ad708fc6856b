package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bframe197/MilMedMatch/internal/dto"
	"github.com/bframe197/MilMedMatch/internal/model"
	"github.com/bframe197/MilMedMatch/internal/rbac"
	"github.com/bframe197/MilMedMatch/internal/store"
	"github.com/bframe197/MilMedMatch/pkg/apperror"
)

// fixedNow pins signup code checks to April 2025.
var fixedNow = time.Date(2025, time.April, 15, 10, 0, 0, 0, time.UTC)

// Codes for April 2025 (month index 3).
const (
	adminCodeApril2025    = "70941832387"
	studentCodeApril2025  = "27876965214"
	residentCodeApril2025 = "67054125472"
)

func newTestAuthService(st *store.Store) *authService {
	return &authService{
		store:  st,
		secret: "test-secret",
		ttl:    time.Hour,
		now:    func() time.Time { return fixedNow },
	}
}

func seedUser(t *testing.T, st *store.Store, username, password string, role model.Role, branch model.Branch) model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := model.User{
		ID:            uuid.New(),
		Username:      username,
		PasswordHash:  string(hash),
		Role:          role,
		Branch:        branch,
		Notifications: []model.Notification{},
	}
	if err := st.AppendUser(u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestLogin(t *testing.T) {
	st := store.New()
	admin := seedUser(t, st, "admin", "admin123", model.RoleAdministrator, model.BranchArmy)
	svc := newTestAuthService(st)

	res, err := svc.Login(context.Background(), loginInput("admin", "admin123"))
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.AccessToken == "" {
		t.Error("Login() returned empty access token")
	}
	if res.User.ID != admin.ID {
		t.Errorf("Login() user = %s, want %s", res.User.ID, admin.ID)
	}
	if res.LandingView != rbac.ViewAdminDashboard {
		t.Errorf("Login() landing view = %q, want %q", res.LandingView, rbac.ViewAdminDashboard)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	st := store.New()
	seedUser(t, st, "admin", "admin123", model.RoleAdministrator, model.BranchArmy)
	svc := newTestAuthService(st)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "wrong"},
		{"unknown user", "nobody", "admin123"},
		{"case sensitive password", "admin", "Admin123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), loginInput(tt.username, tt.password))
			if !errors.Is(err, apperror.ErrUnauthorized) {
				t.Errorf("Login() error = %v, want ErrUnauthorized", err)
			}
		})
	}

	if got := len(st.Users()); got != 1 {
		t.Errorf("user count after failed logins = %d, want 1", got)
	}
}

func TestSignupRequiresAccessCode(t *testing.T) {
	tests := []struct {
		name    string
		role    model.Role
		code    string
		wantErr bool
	}{
		{"administrator with correct code", model.RoleAdministrator, adminCodeApril2025, false},
		{"administrator with wrong code", model.RoleAdministrator, "00000000000", true},
		{"administrator with empty code", model.RoleAdministrator, "", true},
		{"administrator with another role's code", model.RoleAdministrator, studentCodeApril2025, true},
		{"pre-med without code", model.RolePreMed, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.New()
			svc := newTestAuthService(st)

			input := baseSignup()
			input.Role = string(tt.role)
			input.AccessCode = tt.code

			res, err := svc.Signup(context.Background(), input)
			if tt.wantErr {
				if !errors.Is(err, apperror.ErrInvalidInput) {
					t.Fatalf("Signup() error = %v, want ErrInvalidInput", err)
				}
				if got := len(st.Users()); got != 0 {
					t.Errorf("user count after rejected signup = %d, want 0", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Signup() error = %v", err)
			}
			if res.AccessToken == "" {
				t.Error("Signup() returned empty access token")
			}
			if got := len(st.Users()); got != 1 {
				t.Errorf("user count after signup = %d, want 1", got)
			}
		})
	}
}

func TestSignupUndecidedBranch(t *testing.T) {
	st := store.New()
	svc := newTestAuthService(st)

	input := baseSignup()
	input.Role = string(model.RolePreMed)
	input.Branch = string(model.BranchUndecided)
	if _, err := svc.Signup(context.Background(), input); err != nil {
		t.Fatalf("pre-med Undecided signup error = %v", err)
	}

	input = baseSignup()
	input.Username = "resident1"
	input.Role = string(model.RoleResident)
	input.Branch = string(model.BranchUndecided)
	input.AccessCode = residentCodeApril2025
	if _, err := svc.Signup(context.Background(), input); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Fatalf("resident Undecided signup error = %v, want ErrInvalidInput", err)
	}
}

func TestSignupKeepsRelevantSchool(t *testing.T) {
	tests := []struct {
		role          model.Role
		code          string
		wantMedical   string
		wantResidency string
		wantUndergrad string
	}{
		{model.RolePreMed, "", "", "", "State College"},
		{model.RoleMedicalStudent, studentCodeApril2025, "USUHS", "", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			st := store.New()
			svc := newTestAuthService(st)

			input := baseSignup()
			input.Role = string(tt.role)
			input.AccessCode = tt.code
			input.MedicalSchool = "USUHS"
			input.ResidencyProgram = "SAUSHEC"
			input.UndergradSchool = "State College"

			res, err := svc.Signup(context.Background(), input)
			if err != nil {
				t.Fatalf("Signup() error = %v", err)
			}
			u := res.User
			if u.MedicalSchool != tt.wantMedical || u.ResidencyProgram != tt.wantResidency || u.UndergradSchool != tt.wantUndergrad {
				t.Errorf("schools = (%q, %q, %q), want (%q, %q, %q)",
					u.MedicalSchool, u.ResidencyProgram, u.UndergradSchool,
					tt.wantMedical, tt.wantResidency, tt.wantUndergrad)
			}
		})
	}
}

func TestSignupRejectsDuplicateUsername(t *testing.T) {
	st := store.New()
	seedUser(t, st, "taken", "pw123456", model.RolePreMed, model.BranchArmy)
	svc := newTestAuthService(st)

	input := baseSignup()
	input.Username = "taken"
	input.Role = string(model.RolePreMed)
	if _, err := svc.Signup(context.Background(), input); !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("Signup() error = %v, want ErrConflict", err)
	}
	if got := len(st.Users()); got != 1 {
		t.Errorf("user count = %d, want 1", got)
	}
}

func loginInput(username, password string) dto.LoginInput {
	return dto.LoginInput{Username: username, Password: password}
}

func baseSignup() dto.SignupInput {
	return dto.SignupInput{
		Username:  "newuser",
		Password:  "secret123",
		FirstName: "Alex",
		LastName:  "Reed",
		Email:     "alex.reed@example.com",
		Branch:    string(model.BranchArmy),
		Specialty: "Internal Medicine",
	}
}

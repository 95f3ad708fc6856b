package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bframe197/MilMedMatch/internal/dto"
	"github.com/bframe197/MilMedMatch/internal/model"
	"github.com/bframe197/MilMedMatch/internal/store"
	"github.com/bframe197/MilMedMatch/pkg/apperror"
)

func TestUpdateProfileReplacesWholesale(t *testing.T) {
	st := store.New()
	u := seedUser(t, st, "student", "pw123456", model.RoleMedicalStudent, model.BranchArmy)
	svc := NewProfileService(st)

	got, err := svc.Update(context.Background(), u.ID, dto.UpdateProfileInput{
		FirstName:        "Jordan",
		LastName:         "Kim",
		Email:            "jordan.kim@example.com",
		Branch:           string(model.BranchNavy),
		Specialty:        "Cardiology",
		City:             "San Diego",
		State:            "CA",
		MedicalSchool:    "USUHS",
		ResidencyProgram: "NMCSD",
		UndergradSchool:  "State College",
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.Branch != model.BranchNavy || got.FirstName != "Jordan" {
		t.Errorf("Update() = %+v", got)
	}
	// Only the role-relevant school survives.
	if got.MedicalSchool != "USUHS" || got.ResidencyProgram != "" || got.UndergradSchool != "" {
		t.Errorf("schools = (%q, %q, %q), want only medical school kept",
			got.MedicalSchool, got.ResidencyProgram, got.UndergradSchool)
	}

	stored, _ := st.FindUserByID(u.ID)
	if stored.Email != "jordan.kim@example.com" {
		t.Errorf("stored email = %q", stored.Email)
	}
	// Credentials and role survive a profile edit.
	if stored.PasswordHash != u.PasswordHash || stored.Role != u.Role || stored.Username != u.Username {
		t.Error("profile edit must not touch credentials or role")
	}
}

func TestUpdateProfileUndecidedOnlyForPreMed(t *testing.T) {
	st := store.New()
	student := seedUser(t, st, "student", "pw123456", model.RoleMedicalStudent, model.BranchArmy)
	premed := seedUser(t, st, "premed", "pw123456", model.RolePreMed, model.BranchArmy)
	svc := NewProfileService(st)

	input := dto.UpdateProfileInput{
		FirstName: "A", LastName: "B", Email: "a@example.com",
		Branch: string(model.BranchUndecided),
	}

	if _, err := svc.Update(context.Background(), student.ID, input); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("student Undecided Update() error = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Update(context.Background(), premed.ID, input); err != nil {
		t.Errorf("pre-med Undecided Update() error = %v", err)
	}
}

func TestDeleteOwnAccount(t *testing.T) {
	st := store.New()
	u := seedUser(t, st, "student", "pw123456", model.RoleMedicalStudent, model.BranchArmy)
	svc := NewProfileService(st)

	if err := svc.Delete(context.Background(), u.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := st.FindUserByID(u.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("FindUserByID() after delete error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(context.Background(), u.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Delete() twice error = %v, want ErrNotFound", err)
	}
}

func TestListProspectsExcludesStaffRoles(t *testing.T) {
	st := store.New()
	seedUser(t, st, "premed", "pw123456", model.RolePreMed, model.BranchArmy)
	seedUser(t, st, "student", "pw123456", model.RoleMedicalStudent, model.BranchArmy)
	seedUser(t, st, "faculty", "pw123456", model.RoleFaculty, model.BranchArmy)
	seedUser(t, st, "admin", "pw123456", model.RoleAdministrator, model.BranchArmy)
	seedUser(t, st, "recruiter", "pw123456", model.RoleRecruiter, model.BranchArmy)
	svc := NewProfileService(st)

	prospects := svc.ListProspects()
	if len(prospects) != 3 {
		t.Fatalf("ListProspects() = %d users, want 3", len(prospects))
	}
	for _, p := range prospects {
		if p.Role == model.RoleAdministrator || p.Role == model.RoleRecruiter {
			t.Errorf("ListProspects() leaked %s (%s)", p.Username, p.Role)
		}
	}

	if got := len(svc.ListUsers()); got != 5 {
		t.Errorf("ListUsers() = %d, want 5", got)
	}
}
